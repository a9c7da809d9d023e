package engine

import (
	"sort"

	"github.com/jaego-dev/jaegoboard/internal/domain"
)

// riskCoverDays is the burn-down horizon below which a selling product is
// considered at imminent stock-out risk.
const riskCoverDays = 3

// deadStock30dMax marks a SKU as dead when its trailing 30-day sales stay at
// or below this count.
const deadStock30dMax = 3

// StockOutRisks screens product groups for imminent stock-outs: stock still
// on hand, actively selling, and three days of cover or less. Sorted by
// descending sales velocity so the biggest opportunity loss surfaces first.
func StockOutRisks(groups []domain.ProductGroup) []domain.ProductGroup {
	var out []domain.ProductGroup
	for _, g := range groups {
		if g.CoupangStock <= 0 || g.Sales7d <= 0 {
			continue
		}
		cover := float64(g.CoupangStock) / (float64(g.Sales7d) / 7)
		if cover <= riskCoverDays {
			out = append(out, g)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AvgDailySales > out[j].AvgDailySales
	})
	return out
}

// DeadStock screens for frozen capital: SKUs holding stock (HQ or Coupang)
// with low grade or near-zero 30-day velocity. Qualifying SKUs are regrouped
// by product and sorted by descending total stock held.
func DeadStock(metrics []domain.SkuMetrics, leadTimeDays int) []domain.ProductGroup {
	var dead []domain.SkuMetrics
	for _, m := range metrics {
		if m.HQStock+m.CoupangStock <= 0 {
			continue
		}
		if m.ABCGrade == domain.GradeC || m.ABCGrade == domain.GradeD || m.Sales30d <= deadStock30dMax {
			dead = append(dead, m)
		}
	}

	groups := GroupByProduct(dead, leadTimeDays)
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].HQStock+groups[i].CoupangStock > groups[j].HQStock+groups[j].CoupangStock
	})
	return groups
}
