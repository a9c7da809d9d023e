package engine

import "github.com/jaego-dev/jaegoboard/internal/domain"

// Ledger holds the reconciled current stock per (SKU, warehouse). Build one
// with ReconcileFull over the complete snapshot history, or start empty and
// feed incremental upload batches through Apply.
type Ledger struct {
	entries map[ledgerKey]ledgerEntry
}

type ledgerKey struct {
	SKUID     string
	Warehouse domain.Warehouse
}

type ledgerEntry struct {
	Date  domain.Date
	Stock int

	// Carried marks a value kept from an earlier run because the newest
	// reading was a suspect zero. Audit only; callers still see the value.
	Carried bool
}

// reading is one batch's reduced value for a ledger key: the stock summed
// over all rows at that key's latest date within the batch.
type reading struct {
	Date  domain.Date
	Stock int
}

// reduceBatch collapses a snapshot batch to one reading per (SKU, warehouse):
// latest date wins, and rows sharing that latest date are summed. Snapshots
// from different dates are never summed together.
func reduceBatch(snapshots []domain.StockSnapshot) map[ledgerKey]reading {
	out := make(map[ledgerKey]reading)
	for _, s := range snapshots {
		key := ledgerKey{SKUID: s.SKUID, Warehouse: s.Warehouse}
		cur, ok := out[key]
		switch {
		case !ok || s.Date.After(cur.Date):
			out[key] = reading{Date: s.Date, Stock: s.ObservedStock}
		case s.Date.Equal(cur.Date):
			cur.Stock += s.ObservedStock
			out[key] = cur
		}
	}
	return out
}

// NewLedger returns an empty ledger for incremental reconciliation.
func NewLedger() *Ledger {
	return &Ledger{entries: make(map[ledgerKey]ledgerEntry)}
}

// ReconcileFull reconciles the complete snapshot history in one pass. The
// latest date's value is always trusted, including an explicit zero.
func ReconcileFull(snapshots []domain.StockSnapshot) *Ledger {
	l := NewLedger()
	for key, r := range reduceBatch(snapshots) {
		l.entries[key] = ledgerEntry{Date: r.Date, Stock: r.Stock}
	}
	return l
}

// Apply merges an incremental upload batch into the ledger.
//
// Carry-forward rule: a zero reading on the newest date is treated as a
// possible missing-data artifact. When the ledger already holds a non-zero
// value for that exact warehouse, the stale non-zero value is preferred. A
// zero is accepted when it is the only reading ever seen for the warehouse,
// or when the previous reading was itself zero.
func (l *Ledger) Apply(snapshots []domain.StockSnapshot) {
	for key, r := range reduceBatch(snapshots) {
		cur, seen := l.entries[key]
		switch {
		case !seen:
			l.entries[key] = ledgerEntry{Date: r.Date, Stock: r.Stock}
		case r.Date.After(cur.Date):
			if r.Stock == 0 && cur.Stock > 0 {
				cur.Carried = true
				l.entries[key] = cur
				continue
			}
			l.entries[key] = ledgerEntry{Date: r.Date, Stock: r.Stock}
		case r.Date.Equal(cur.Date):
			// Same-day rows split across pages of one upload.
			cur.Stock += r.Stock
			l.entries[key] = cur
		}
	}
}

// TotalStock sums the reconciled stock across all warehouses for a SKU. A SKU
// with no snapshots at all yields 0, same as an explicitly observed zero.
func (l *Ledger) TotalStock(skuID string) int {
	total := 0
	for key, e := range l.entries {
		if key.SKUID == skuID {
			total += e.Stock
		}
	}
	return total
}

// WarehouseStock returns the per-warehouse reconciled values for a SKU.
func (l *Ledger) WarehouseStock(skuID string) map[domain.Warehouse]int {
	out := make(map[domain.Warehouse]int)
	for key, e := range l.entries {
		if key.SKUID == skuID {
			out[key.Warehouse] = e.Stock
		}
	}
	return out
}

// Observed distinguishes "no snapshot ever seen" from "stock observed as 0"
// for audit purposes. Both surface as 0 through TotalStock.
func (l *Ledger) Observed(skuID string) bool {
	for key := range l.entries {
		if key.SKUID == skuID {
			return true
		}
	}
	return false
}

// SKUIDs lists every SKU present in the ledger.
func (l *Ledger) SKUIDs() []string {
	seen := make(map[string]struct{})
	var out []string
	for key := range l.entries {
		if _, ok := seen[key.SKUID]; ok {
			continue
		}
		seen[key.SKUID] = struct{}{}
		out = append(out, key.SKUID)
	}
	return out
}
