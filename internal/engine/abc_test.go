package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaego-dev/jaegoboard/internal/domain"
)

func metricsWithSales7(sales ...int) []*domain.SkuMetrics {
	out := make([]*domain.SkuMetrics, len(sales))
	for i, s := range sales {
		out[i] = &domain.SkuMetrics{SKUID: string(rune('a' + i)), Sales7d: s}
	}
	return out
}

func grades(ms []*domain.SkuMetrics) []domain.Grade {
	out := make([]domain.Grade, len(ms))
	for i, m := range ms {
		out[i] = m.ABCGrade
	}
	return out
}

func TestClassifyABCParetoCut(t *testing.T) {
	// Total 100. Ranked desc: 20 (cum 20% -> A), 20 (40% -> B), 15 (55% -> C),
	// then the rest C, zero-sales D.
	ms := metricsWithSales7(20, 20, 15, 15, 10, 10, 10, 0)
	ClassifyABC(ms)

	assert.Equal(t, []domain.Grade{
		domain.GradeA, domain.GradeB, domain.GradeC, domain.GradeC,
		domain.GradeC, domain.GradeC, domain.GradeC, domain.GradeD,
	}, grades(ms))
}

func TestClassifyABCZeroSalesAlwaysD(t *testing.T) {
	ms := metricsWithSales7(50, 0, 0)
	ClassifyABC(ms)
	assert.Equal(t, domain.GradeD, ms[1].ABCGrade)
	assert.Equal(t, domain.GradeD, ms[2].ABCGrade)
}

func TestClassifyABCAllZeroSkipsDivision(t *testing.T) {
	ms := metricsWithSales7(0, 0, 0)
	ClassifyABC(ms)
	assert.Equal(t, []domain.Grade{domain.GradeD, domain.GradeD, domain.GradeD}, grades(ms))
}

func TestClassifyABCCumulativeSharesRespectOrder(t *testing.T) {
	// 10 SKUs at 10 each: first lands at 10% (A), second at 20% (A, boundary
	// inclusive), third at 30% (B), fifth at 50% (B), sixth at 60% (C).
	ms := metricsWithSales7(10, 10, 10, 10, 10, 10, 10, 10, 10, 10)
	ClassifyABC(ms)

	assert.Equal(t, domain.GradeA, ms[0].ABCGrade)
	assert.Equal(t, domain.GradeA, ms[1].ABCGrade)
	assert.Equal(t, domain.GradeB, ms[2].ABCGrade)
	assert.Equal(t, domain.GradeB, ms[4].ABCGrade)
	assert.Equal(t, domain.GradeC, ms[5].ABCGrade)
	assert.Equal(t, domain.GradeC, ms[9].ABCGrade)
}

func TestClassifyABCDoesNotReorderInput(t *testing.T) {
	ms := metricsWithSales7(1, 100, 5)
	ClassifyABC(ms)
	assert.Equal(t, "a", ms[0].SKUID)
	assert.Equal(t, "b", ms[1].SKUID)
	assert.Equal(t, "c", ms[2].SKUID)
	// 100 of 106 is a 94% cumulative share, past both cut points.
	assert.Equal(t, domain.GradeC, ms[1].ABCGrade)
}
