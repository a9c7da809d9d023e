package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaego-dev/jaegoboard/internal/domain"
)

func TestStockOutRisksThreeDayCover(t *testing.T) {
	groups := []domain.ProductGroup{
		{ProductName: "AtRisk", CoupangStock: 6, Sales7d: 14, AvgDailySales: 2},   // 3 days cover
		{ProductName: "Healthy", CoupangStock: 60, Sales7d: 14, AvgDailySales: 2}, // 30 days
		{ProductName: "SoldOut", CoupangStock: 0, Sales7d: 14, AvgDailySales: 2},
		{ProductName: "NoSales", CoupangStock: 10, Sales7d: 0},
	}

	risks := StockOutRisks(groups)
	require.Len(t, risks, 1)
	assert.Equal(t, "AtRisk", risks[0].ProductName)
}

func TestStockOutRisksSortByVelocity(t *testing.T) {
	groups := []domain.ProductGroup{
		{ProductName: "Slow", CoupangStock: 2, Sales7d: 7, AvgDailySales: 1},
		{ProductName: "Fast", CoupangStock: 10, Sales7d: 70, AvgDailySales: 10},
	}
	risks := StockOutRisks(groups)
	require.Len(t, risks, 2)
	assert.Equal(t, "Fast", risks[0].ProductName, "highest velocity risk first")
}

func TestDeadStockGradeOrVelocity(t *testing.T) {
	ms := []domain.SkuMetrics{
		{SKUID: "c1", ProductName: "LowGrade", HQStock: 50, ABCGrade: domain.GradeC, Sales30d: 10},
		{SKUID: "d1", ProductName: "NoMove", CoupangStock: 5, ABCGrade: domain.GradeA, Sales30d: 2},
		{SKUID: "a1", ProductName: "Seller", CoupangStock: 5, ABCGrade: domain.GradeA, Sales30d: 100},
		{SKUID: "e1", ProductName: "Empty", ABCGrade: domain.GradeD, Sales30d: 0},
	}

	dead := DeadStock(ms, 10)
	names := make([]string, len(dead))
	for i, g := range dead {
		names[i] = g.ProductName
	}
	// Empty holds no stock, Seller moves; LowGrade (50 units) outranks NoMove (5).
	assert.Equal(t, []string{"LowGrade", "NoMove"}, names)
}

func TestDeadStockSortsByFrozenCapital(t *testing.T) {
	ms := []domain.SkuMetrics{
		{SKUID: "a", ProductName: "Small", HQStock: 3, ABCGrade: domain.GradeD},
		{SKUID: "b", ProductName: "Big", HQStock: 200, CoupangStock: 40, ABCGrade: domain.GradeC},
	}
	dead := DeadStock(ms, 10)
	require.Len(t, dead, 2)
	assert.Equal(t, "Big", dead[0].ProductName)
}
