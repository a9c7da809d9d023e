package engine

import (
	"math"
	"sort"

	"github.com/jaego-dev/jaegoboard/internal/domain"
)

// GroupByProduct rolls SKU metrics up into product groups keyed by exact
// product name (no normalization; whitespace or case variants form separate
// groups on purpose, see DESIGN.md). Stock and sales fields are summed,
// DaysOfInventory is the worst case (minimum) across children, and the group
// grade is the best grade among children.
//
// Display order is reproducible: urgent groups first, then descending
// aggregate recommendation, ties kept in first-seen order. Children are
// sorted by SKU id so repeated renders are deterministic.
func GroupByProduct(metrics []domain.SkuMetrics, leadTimeDays int) []domain.ProductGroup {
	index := make(map[string]int)
	groups := make([]domain.ProductGroup, 0)

	for _, m := range metrics {
		i, ok := index[m.ProductName]
		if !ok {
			i = len(groups)
			index[m.ProductName] = i
			// Start the running minimum above any real value, sentinel
			// included; a slow seller can legitimately sit past 999 days.
			groups = append(groups, domain.ProductGroup{
				ProductName:     m.ProductName,
				DaysOfInventory: math.Inf(1),
			})
		}

		g := &groups[i]
		g.Children = append(g.Children, m)
		g.CoupangStock += m.CoupangStock
		g.HQStock += m.HQStock
		g.IncomingStock += m.IncomingStock
		g.TotalSales += m.TotalSales
		g.Sales7d += m.Sales7d
		g.Sales30d += m.Sales30d
		g.AvgDailySales += m.AvgDailySales
		g.Shortage += m.Shortage
		g.Recommendation += m.Recommendation

		if m.DaysOfInventory < g.DaysOfInventory {
			g.DaysOfInventory = m.DaysOfInventory
		}
		if m.ABCGrade.BetterThan(g.ABCGrade) {
			g.ABCGrade = m.ABCGrade
		}
		if m.DaysOfInventory <= float64(leadTimeDays) {
			g.IsUrgent = true
		}
	}

	for i := range groups {
		children := groups[i].Children
		sort.SliceStable(children, func(a, b int) bool {
			return children[a].SKUID < children[b].SKUID
		})
	}

	sort.SliceStable(groups, func(a, b int) bool {
		if groups[a].IsUrgent != groups[b].IsUrgent {
			return groups[a].IsUrgent
		}
		return groups[a].Recommendation > groups[b].Recommendation
	})

	return groups
}
