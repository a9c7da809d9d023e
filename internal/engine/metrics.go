package engine

import (
	"math"

	"github.com/jaego-dev/jaegoboard/internal/domain"
)

// DaysOfInventorySentinel stands in for "effectively infinite" cover when a
// SKU has no trailing sales. Keeps the division guard out of every consumer.
const DaysOfInventorySentinel = 999

// Params are the tunable day counts sizing the reorder recommendation.
type Params struct {
	LeadTimeDays     int
	SafetyBufferDays int
}

// CoverDays is the total demand window a reorder must cover.
func (p Params) CoverDays() int {
	return p.LeadTimeDays + p.SafetyBufferDays
}

// trendRule is one entry of the ordered trend decision table. Rules are
// evaluated top to bottom; the first match wins, so hot/cold always run
// before the plain up/down/flat fallback.
type trendRule struct {
	label domain.Trend
	match func(last7, prev7 int) bool
}

var trendRules = []trendRule{
	{domain.TrendHot, func(last7, prev7 int) bool {
		// prev7 == 0 can never trigger hot through the growth ratio.
		return last7 >= 10 && prev7 > 0 && float64(last7-prev7)/float64(prev7) >= 0.5
	}},
	{domain.TrendCold, func(last7, prev7 int) bool {
		return prev7 >= 10 && float64(last7-prev7)/float64(prev7) <= -0.5
	}},
	{domain.TrendUp, func(last7, prev7 int) bool { return last7 > prev7 }},
	{domain.TrendDown, func(last7, prev7 int) bool { return last7 < prev7 }},
	{domain.TrendFlat, func(last7, prev7 int) bool { return true }},
}

// ClassifyTrend labels the week-over-week movement of last7 against prev7.
func ClassifyTrend(last7, prev7 int) domain.Trend {
	for _, rule := range trendRules {
		if rule.match(last7, prev7) {
			return rule.label
		}
	}
	return domain.TrendFlat
}

// statusRule is one entry of the ordered stock condition table. Out-of-stock
// outranks the day-count thresholds even when zero sales would otherwise
// report an infinite cover.
type statusRule struct {
	label domain.Status
	match func(stock int, daysOfInventory float64) bool
}

var statusRules = []statusRule{
	{domain.StatusOutOfStock, func(stock int, _ float64) bool { return stock == 0 }},
	{domain.StatusCritical, func(_ int, doi float64) bool { return doi < 7 }},
	{domain.StatusLow, func(_ int, doi float64) bool { return doi < 14 }},
	{domain.StatusHealthy, func(int, float64) bool { return true }},
}

// ClassifyStatus labels the stock condition for color coding.
func ClassifyStatus(stock int, daysOfInventory float64) domain.Status {
	for _, rule := range statusRules {
		if rule.match(stock, daysOfInventory) {
			return rule.label
		}
	}
	return domain.StatusHealthy
}

// ComputeSKUMetrics combines aggregated sales, reconciled stock and the
// registry entry into one derived SkuMetrics. ABC grade is filled in later by
// ClassifyABC over the whole SKU set.
func ComputeSKUMetrics(entry domain.ProductRegistryEntry, sales *SKUSales, coupangStock int, p Params) domain.SkuMetrics {
	if sales == nil {
		sales = &SKUSales{Daily: map[string]int{}}
	}

	// Always divide by 7 calendar days, zero-sales days included.
	avgDaily := float64(sales.Last7) / 7

	daysOfInventory := float64(DaysOfInventorySentinel)
	if avgDaily > 0 {
		daysOfInventory = float64(coupangStock) / avgDaily
	}

	prev7 := sales.Last14 - sales.Last7

	shortage := int(math.Round(avgDaily*7)) - coupangStock
	if shortage < 0 {
		shortage = 0
	}

	// Net units to cover the lead-time-plus-buffer window after stock on
	// hand and in transit.
	recommendation := int(math.Ceil(avgDaily*float64(p.CoverDays()))) - (coupangStock + entry.IncomingStock)
	if recommendation < 0 {
		recommendation = 0
	}

	return domain.SkuMetrics{
		SKUID:           entry.SKUID,
		ProductName:     entry.ProductName,
		Option:          entry.Option,
		Season:          entry.Season,
		ImageURL:        entry.ImageURL,
		CoupangStock:    coupangStock,
		HQStock:         entry.HQStock,
		IncomingStock:   entry.IncomingStock,
		TotalSales:      sales.Total,
		Sales7d:         sales.Last7,
		Sales14d:        sales.Last14,
		Sales30d:        sales.Last30,
		PrevSales7d:     prev7,
		SalesYesterday:  sales.Yesterday,
		AvgDailySales:   avgDaily,
		DaysOfInventory: daysOfInventory,
		DailySales:      sales.Daily,
		Trend:           ClassifyTrend(sales.Last7, prev7),
		Status:          ClassifyStatus(coupangStock, daysOfInventory),
		Shortage:        shortage,
		Recommendation:  recommendation,
	}
}
