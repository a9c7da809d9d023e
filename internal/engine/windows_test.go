package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaego-dev/jaegoboard/internal/domain"
)

func day(t *testing.T, s string) domain.Date {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}

func fact(t *testing.T, date, sku string, qty int) domain.SalesFact {
	t.Helper()
	return domain.SalesFact{Date: day(t, date), SKUID: sku, Warehouse: domain.WarehousePrimary, Quantity: qty}
}

func TestComputeWindowsAnchorsOnLatestFactDate(t *testing.T) {
	facts := []domain.SalesFact{
		fact(t, "2024-01-05", "X", 1),
		fact(t, "2024-01-20", "X", 2),
		fact(t, "2024-01-11", "Y", 3),
	}

	w, err := ComputeWindows(facts, 10, 4)
	require.NoError(t, err)

	assert.Equal(t, day(t, "2024-01-20"), w.Anchor)
	assert.Equal(t, DateRange{From: day(t, "2024-01-20"), To: day(t, "2024-01-20")}, w.Yesterday)
	assert.Equal(t, DateRange{From: day(t, "2024-01-14"), To: day(t, "2024-01-20")}, w.Last7)
	assert.Equal(t, DateRange{From: day(t, "2024-01-07"), To: day(t, "2024-01-20")}, w.Last14)
	assert.Equal(t, DateRange{From: day(t, "2023-12-22"), To: day(t, "2024-01-20")}, w.Last30)
	assert.Equal(t, DateRange{From: day(t, "2023-11-22"), To: day(t, "2023-12-21")}, w.Prev30)
	assert.Equal(t, 14, w.CoverDays)
}

func TestComputeWindowsNoFacts(t *testing.T) {
	_, err := ComputeWindows(nil, 10, 4)
	assert.ErrorIs(t, err, ErrNoAnchorDate)
}

func TestWindowsCrossMonthAndYearBoundaries(t *testing.T) {
	w := WindowsAt(day(t, "2024-01-03"), 0, 0)
	assert.Equal(t, day(t, "2023-12-28"), w.Last7.From)
	assert.Equal(t, day(t, "2023-12-05"), w.Last30.From)
}

func TestDateRangeContainsIsInclusive(t *testing.T) {
	r := DateRange{From: day(t, "2024-01-10"), To: day(t, "2024-01-16")}
	assert.True(t, r.Contains(day(t, "2024-01-10")))
	assert.True(t, r.Contains(day(t, "2024-01-16")))
	assert.False(t, r.Contains(day(t, "2024-01-09")))
	assert.False(t, r.Contains(day(t, "2024-01-17")))
}

func TestDateArithmeticIgnoresLocalTime(t *testing.T) {
	// A late-evening KST instant and the same instant in UTC must land on
	// their own calendar days, untouched by conversion.
	kst := time.FixedZone("KST", 9*3600)
	late := time.Date(2024, 3, 1, 23, 30, 0, 0, kst)
	assert.Equal(t, "2024-03-01", domain.DateOf(late).String())
	assert.Equal(t, "2024-03-01", domain.DateOf(late.UTC()).String())
	assert.Equal(t, "2024-03-02", domain.DateOf(late).AddDays(1).String())
}
