package storage

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/jaego-dev/jaegoboard/internal/domain"
	"github.com/jaego-dev/jaegoboard/internal/engine"
)

// ReportExporter renders screener output as CSV and uploads it under a
// per-anchor-date prefix, so each dataset state keeps its own report set.
type ReportExporter struct {
	store ObjectStorage
}

func NewReportExporter(store ObjectStorage) *ReportExporter {
	return &ReportExporter{store: store}
}

// Export uploads the stock-out risk and dead stock reports for one result.
// It returns the object keys written.
func (e *ReportExporter) Export(ctx context.Context, result *engine.Result) ([]string, error) {
	reports := []struct {
		name   string
		groups []domain.ProductGroup
	}{
		{"stock_out_risks", result.Risks},
		{"dead_stock", result.DeadStock},
	}

	keys := make([]string, 0, len(reports))
	for _, r := range reports {
		key := fmt.Sprintf("reports/%s/%s.csv", result.Anchor, r.name)
		payload, err := renderGroupsCSV(r.groups)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", r.name, err)
		}
		if err := e.store.UploadObject(ctx, key, "text/csv", payload); err != nil {
			return nil, err
		}
		log.Info().Str("key", key).Int("groups", len(r.groups)).Msg("report exported")
		keys = append(keys, key)
	}
	return keys, nil
}

func renderGroupsCSV(groups []domain.ProductGroup) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"product_name", "abc_grade", "coupang_stock", "hq_stock", "incoming_stock",
		"sales_7d", "sales_30d", "avg_daily_sales", "days_of_inventory",
		"shortage", "recommendation", "is_urgent",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, g := range groups {
		row := []string{
			g.ProductName,
			string(g.ABCGrade),
			strconv.Itoa(g.CoupangStock),
			strconv.Itoa(g.HQStock),
			strconv.Itoa(g.IncomingStock),
			strconv.Itoa(g.Sales7d),
			strconv.Itoa(g.Sales30d),
			strconv.FormatFloat(g.AvgDailySales, 'f', 2, 64),
			strconv.FormatFloat(g.DaysOfInventory, 'f', 1, 64),
			strconv.Itoa(g.Shortage),
			strconv.Itoa(g.Recommendation),
			strconv.FormatBool(g.IsUrgent),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}
