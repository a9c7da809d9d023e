package engine

import "github.com/jaego-dev/jaegoboard/internal/domain"

// SKUSales holds one SKU's windowed totals and its sparse daily series.
// Days without sales are absent from Daily, not zero-filled.
type SKUSales struct {
	Total     int            `json:"total"`
	Last7     int            `json:"last_7"`
	Last14    int            `json:"last_14"`
	Last30    int            `json:"last_30"`
	Prev30    int            `json:"prev_30"`
	Yesterday int            `json:"yesterday"`
	Daily     map[string]int `json:"daily"`
}

// AggregateSales folds the full fact history into per-SKU totals in a single
// linear pass. Windowed totals fall out of the same pass; no per-window
// queries. Folding is additive, so fact ordering does not matter.
func AggregateSales(facts []domain.SalesFact, w Windows) map[string]*SKUSales {
	bySKU := make(map[string]*SKUSales)
	for _, f := range facts {
		s, ok := bySKU[f.SKUID]
		if !ok {
			s = &SKUSales{Daily: make(map[string]int)}
			bySKU[f.SKUID] = s
		}

		s.Total += f.Quantity
		s.Daily[f.Date.String()] += f.Quantity

		if w.Last7.Contains(f.Date) {
			s.Last7 += f.Quantity
		}
		if w.Last14.Contains(f.Date) {
			s.Last14 += f.Quantity
		}
		if w.Last30.Contains(f.Date) {
			s.Last30 += f.Quantity
		}
		if w.Prev30.Contains(f.Date) {
			s.Prev30 += f.Quantity
		}
		if w.Yesterday.Contains(f.Date) {
			s.Yesterday += f.Quantity
		}
	}
	return bySKU
}
