package domain

// Warehouse identifies where a sales extract row was observed.
type Warehouse string

const (
	WarehousePrimary   Warehouse = "PRIMARY"
	WarehouseSecondary Warehouse = "SECONDARY"
)

// SalesFact is one immutable per-day, per-SKU, per-warehouse sales quantity.
// Multiple facts may share the same (date, sku, warehouse) key and are summed,
// never overwritten, when merged.
type SalesFact struct {
	Date      Date      `json:"date" db:"sale_date"`
	SKUID     string    `json:"sku_id" db:"sku_id"`
	Warehouse Warehouse `json:"warehouse" db:"warehouse"`
	Quantity  int       `json:"quantity" db:"quantity"`
}

// StockSnapshot is the stock level co-reported with a sales extract row for
// one warehouse on one day.
type StockSnapshot struct {
	Date          Date      `json:"date" db:"snapshot_date"`
	SKUID         string    `json:"sku_id" db:"sku_id"`
	Warehouse     Warehouse `json:"warehouse" db:"warehouse"`
	ObservedStock int       `json:"observed_stock" db:"observed_stock"`
}

// ProductRegistryEntry is reference data for one SKU, owned by the registry
// collaborator. ProductName is the grouping key: distinct SKUs sharing a
// product name are options of one product.
type ProductRegistryEntry struct {
	SKUID         string `json:"sku_id" db:"sku_id"`
	ProductName   string `json:"product_name" db:"product_name"`
	Option        string `json:"option" db:"option_name"`
	Season        string `json:"season" db:"season"`
	ImageURL      string `json:"image_url" db:"image_url"`
	HQStock       int    `json:"hq_stock" db:"hq_stock"`
	IncomingStock int    `json:"incoming_stock" db:"incoming_stock"`
	SafetyStock   int    `json:"safety_stock" db:"safety_stock"`
}

// Grade is the Pareto/ABC classification of a SKU by trailing 7-day sales.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
)

// BetterThan reports whether g outranks other in A < B < C < D ordering.
func (g Grade) BetterThan(other Grade) bool {
	return g != "" && (other == "" || g < other)
}

// Trend is the week-over-week sales movement label.
type Trend string

const (
	TrendHot  Trend = "hot"
	TrendCold Trend = "cold"
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

// Status is the stock condition label driving dashboard color coding.
type Status string

const (
	StatusOutOfStock Status = "품절"
	StatusCritical   Status = "위험"
	StatusLow        Status = "부족"
	StatusHealthy    Status = "양호"
)

// SkuMetrics is the derived per-SKU analytics record. It is recomputed from
// facts on every run and never persisted.
type SkuMetrics struct {
	SKUID           string         `json:"sku_id"`
	ProductName     string         `json:"product_name"`
	Option          string         `json:"option"`
	Season          string         `json:"season"`
	ImageURL        string         `json:"image_url"`
	CoupangStock    int            `json:"coupang_stock"`
	HQStock         int            `json:"hq_stock"`
	IncomingStock   int            `json:"incoming_stock"`
	TotalSales      int            `json:"total_sales"`
	Sales7d         int            `json:"sales_7d"`
	Sales14d        int            `json:"sales_14d"`
	Sales30d        int            `json:"sales_30d"`
	PrevSales7d     int            `json:"prev_sales_7d"`
	SalesYesterday  int            `json:"sales_yesterday"`
	AvgDailySales   float64        `json:"avg_daily_sales"`
	DaysOfInventory float64        `json:"days_of_inventory"`
	DailySales      map[string]int `json:"daily_sales"`
	ABCGrade        Grade          `json:"abc_grade"`
	Trend           Trend          `json:"trend"`
	Status          Status         `json:"status"`
	Shortage        int            `json:"shortage"`
	Recommendation  int            `json:"recommendation"`
	Unregistered    bool           `json:"unregistered"`
}

// ProductGroup rolls SkuMetrics up to product level. Stock and sales fields
// are sums over children; DaysOfInventory is the minimum across children so a
// badly stocked option is never masked by healthy siblings.
type ProductGroup struct {
	ProductName     string       `json:"product_name"`
	Children        []SkuMetrics `json:"children"`
	CoupangStock    int          `json:"coupang_stock"`
	HQStock         int          `json:"hq_stock"`
	IncomingStock   int          `json:"incoming_stock"`
	TotalSales      int          `json:"total_sales"`
	Sales7d         int          `json:"sales_7d"`
	Sales30d        int          `json:"sales_30d"`
	AvgDailySales   float64      `json:"avg_daily_sales"`
	DaysOfInventory float64      `json:"days_of_inventory"`
	Shortage        int          `json:"shortage"`
	Recommendation  int          `json:"recommendation"`
	ABCGrade        Grade        `json:"abc_grade"`
	IsUrgent        bool         `json:"is_urgent"`
}

// StatusSummary counts SKUs per stock condition for the dashboard header.
type StatusSummary struct {
	Status Status `json:"status"`
	Count  int    `json:"count"`
}
