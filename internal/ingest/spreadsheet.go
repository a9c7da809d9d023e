package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jaego-dev/jaegoboard/internal/domain"
)

// Sales extracts and registry sheets arrive as operator-maintained
// spreadsheets. Columns are matched by header name, not position, so the
// sheets can carry extra columns in any order.

// ReadRows loads all rows from a spreadsheet file. XLSX files are read from
// the first sheet; anything else is treated as CSV.
func ReadRows(path string) ([][]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return readXLSXRows(path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	return readCSVRows(file)
}

func readXLSXRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx file %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx file %s has no sheets", path)
	}

	iter, err := f.Rows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from sheet %s: %w", sheets[0], err)
	}
	defer iter.Close()

	var rows [][]string
	for iter.Next() {
		record, err := iter.Columns()
		if err != nil {
			return nil, fmt.Errorf("failed to read row from %s: %w", path, err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}

func readCSVRows(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}

type rowReader struct {
	colMap map[string]int
	record []string
}

func newColMap(header []string, required []string) (map[string]int, error) {
	colMap := make(map[string]int, len(header))
	for i, col := range header {
		colMap[strings.TrimSpace(strings.ToLower(col))] = i
	}
	for _, col := range required {
		if _, ok := colMap[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}
	return colMap, nil
}

func (r rowReader) value(colName string) string {
	if idx, ok := r.colMap[colName]; ok && idx < len(r.record) {
		return strings.TrimSpace(r.record[idx])
	}
	return ""
}

// intValue tolerates float strings like "3.0", which spreadsheet exports
// produce for integer columns.
func (r rowReader) intValue(colName string) int {
	val := r.value(colName)
	if val == "" {
		return 0
	}
	f, _ := strconv.ParseFloat(strings.ReplaceAll(val, ",", ""), 64)
	return int(f)
}

// ParseSalesRows turns sales extract rows into sales facts and the stock
// snapshots co-reported on the same rows. A row without an observed stock
// value yields a fact only, never a zero snapshot.
func ParseSalesRows(rows [][]string) ([]domain.SalesFact, []domain.StockSnapshot, error) {
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("sales extract is empty")
	}

	colMap, err := newColMap(rows[0], []string{"date", "sku_id", "warehouse", "quantity"})
	if err != nil {
		return nil, nil, err
	}

	var (
		facts     []domain.SalesFact
		snapshots []domain.StockSnapshot
	)
	for i, record := range rows[1:] {
		row := rowReader{colMap: colMap, record: record}
		if len(record) == 0 || row.value("sku_id") == "" {
			continue
		}

		date, err := domain.ParseDate(row.value("date"))
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: %w", i+2, err)
		}

		warehouse, err := parseWarehouse(row.value("warehouse"))
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: %w", i+2, err)
		}

		facts = append(facts, domain.SalesFact{
			Date:      date,
			SKUID:     row.value("sku_id"),
			Warehouse: warehouse,
			Quantity:  row.intValue("quantity"),
		})

		if row.value("observed_stock") != "" {
			snapshots = append(snapshots, domain.StockSnapshot{
				Date:          date,
				SKUID:         row.value("sku_id"),
				Warehouse:     warehouse,
				ObservedStock: row.intValue("observed_stock"),
			})
		}
	}
	return facts, snapshots, nil
}

// ParseRegistryRows turns a registry sheet into product reference entries.
func ParseRegistryRows(rows [][]string) ([]domain.ProductRegistryEntry, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("registry sheet is empty")
	}

	colMap, err := newColMap(rows[0], []string{"sku_id", "product_name"})
	if err != nil {
		return nil, err
	}

	var entries []domain.ProductRegistryEntry
	for _, record := range rows[1:] {
		row := rowReader{colMap: colMap, record: record}
		if len(record) == 0 || row.value("sku_id") == "" {
			continue
		}

		entries = append(entries, domain.ProductRegistryEntry{
			SKUID:         row.value("sku_id"),
			ProductName:   row.value("product_name"),
			Option:        row.value("option"),
			Season:        row.value("season"),
			ImageURL:      row.value("image_url"),
			HQStock:       row.intValue("hq_stock"),
			IncomingStock: row.intValue("incoming_stock"),
			SafetyStock:   row.intValue("safety_stock"),
		})
	}
	return entries, nil
}

func parseWarehouse(s string) (domain.Warehouse, error) {
	switch strings.ToUpper(s) {
	case string(domain.WarehousePrimary):
		return domain.WarehousePrimary, nil
	case string(domain.WarehouseSecondary):
		return domain.WarehouseSecondary, nil
	default:
		return "", fmt.Errorf("unknown warehouse %q", s)
	}
}

// LoadSalesFile reads and parses a sales extract spreadsheet.
func LoadSalesFile(path string) ([]domain.SalesFact, []domain.StockSnapshot, error) {
	rows, err := ReadRows(path)
	if err != nil {
		return nil, nil, err
	}
	return ParseSalesRows(rows)
}

// LoadRegistryFile reads and parses a product registry spreadsheet.
func LoadRegistryFile(path string) ([]domain.ProductRegistryEntry, error) {
	rows, err := ReadRows(path)
	if err != nil {
		return nil, err
	}
	return ParseRegistryRows(rows)
}
