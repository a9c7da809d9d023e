package engine

import (
	"sort"

	"github.com/jaego-dev/jaegoboard/internal/domain"
)

// ABC cumulative-share cut points, in percent of total 7-day sales.
const (
	abcShareA = 20
	abcShareB = 50
)

// ClassifyABC annotates every SkuMetrics with its Pareto grade. SKUs are
// ranked descending by trailing 7-day sales and graded by cumulative share:
// A while the running share stays within 20%, B within 50%, C beyond. Any SKU
// with zero trailing sales is D regardless of rank, and when nothing sold at
// all every SKU is D.
func ClassifyABC(metrics []*domain.SkuMetrics) {
	total := 0
	for _, m := range metrics {
		total += m.Sales7d
	}

	if total == 0 {
		for _, m := range metrics {
			m.ABCGrade = domain.GradeD
		}
		return
	}

	ranked := make([]*domain.SkuMetrics, len(metrics))
	copy(ranked, metrics)
	// Stable: ties keep their incoming order. Grade boundaries are
	// share-based, so no secondary key is needed.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Sales7d > ranked[j].Sales7d
	})

	running := 0
	for _, m := range ranked {
		if m.Sales7d == 0 {
			m.ABCGrade = domain.GradeD
			continue
		}
		running += m.Sales7d
		share := float64(running) / float64(total) * 100
		switch {
		case share <= abcShareA:
			m.ABCGrade = domain.GradeA
		case share <= abcShareB:
			m.ABCGrade = domain.GradeB
		default:
			m.ABCGrade = domain.GradeC
		}
	}
}
