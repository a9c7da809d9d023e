package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/jaego-dev/jaegoboard/internal/domain"
)

// Result is the complete analytics output of one engine run. It is an
// ephemeral snapshot: consumers treat it as read-only, and it is rebuilt from
// facts (never patched) whenever the underlying data changes.
type Result struct {
	Anchor     domain.Date            `json:"anchor"`
	ComputedAt time.Time              `json:"computed_at"`
	Windows    Windows                `json:"windows"`
	Skus       []domain.SkuMetrics    `json:"skus"`
	Groups     []domain.ProductGroup  `json:"groups"`
	Risks      []domain.ProductGroup  `json:"risks"`
	DeadStock  []domain.ProductGroup  `json:"dead_stock"`
	Summary    []domain.StatusSummary `json:"summary"`
}

// Run executes the full analytics pass over an immutable in-memory batch:
// aggregate sales, reconcile stock, derive per-SKU metrics, grade, group and
// screen. Pure computation, single-threaded, no I/O.
//
// SKUs selling without a registry entry get a placeholder flagged
// Unregistered; they stay in Skus (raw totals) but are excluded from the
// registered-only groups and screeners.
func Run(facts []domain.SalesFact, snapshots []domain.StockSnapshot, registry []domain.ProductRegistryEntry, p Params) (*Result, error) {
	if err := validateFacts(facts, snapshots); err != nil {
		return nil, err
	}

	windows, err := ComputeWindows(facts, p.LeadTimeDays, p.SafetyBufferDays)
	if err != nil {
		return nil, err
	}

	sales := AggregateSales(facts, windows)
	ledger := ReconcileFull(snapshots)

	registered := make(map[string]struct{}, len(registry))
	metrics := make([]domain.SkuMetrics, 0, len(registry))
	for _, entry := range registry {
		registered[entry.SKUID] = struct{}{}
		metrics = append(metrics, ComputeSKUMetrics(entry, sales[entry.SKUID], ledger.TotalStock(entry.SKUID), p))
	}

	// Placeholder entries for SKUs that sold but were never registered.
	var orphans []string
	for skuID := range sales {
		if _, ok := registered[skuID]; !ok {
			orphans = append(orphans, skuID)
		}
	}
	sort.Strings(orphans)
	for _, skuID := range orphans {
		placeholder := domain.ProductRegistryEntry{SKUID: skuID, ProductName: skuID}
		m := ComputeSKUMetrics(placeholder, sales[skuID], ledger.TotalStock(skuID), p)
		m.Unregistered = true
		metrics = append(metrics, m)
	}

	refs := make([]*domain.SkuMetrics, len(metrics))
	for i := range metrics {
		refs[i] = &metrics[i]
	}
	ClassifyABC(refs)

	registeredMetrics := make([]domain.SkuMetrics, 0, len(metrics))
	for _, m := range metrics {
		if !m.Unregistered {
			registeredMetrics = append(registeredMetrics, m)
		}
	}

	groups := GroupByProduct(registeredMetrics, p.LeadTimeDays)

	return &Result{
		Anchor:     windows.Anchor,
		ComputedAt: time.Now(),
		Windows:    windows,
		Skus:       metrics,
		Groups:     groups,
		Risks:      StockOutRisks(groups),
		DeadStock:  DeadStock(registeredMetrics, p.LeadTimeDays),
		Summary:    summarizeStatus(registeredMetrics),
	}, nil
}

// validateFacts fails fast on malformed input. Ingestion owns validation;
// garbage reaching the folds would silently corrupt every aggregate.
func validateFacts(facts []domain.SalesFact, snapshots []domain.StockSnapshot) error {
	for _, f := range facts {
		if f.Quantity < 0 {
			return fmt.Errorf("sales fact %s/%s on %s: negative quantity %d", f.SKUID, f.Warehouse, f.Date, f.Quantity)
		}
		if f.Date.IsZero() {
			return fmt.Errorf("sales fact %s/%s: missing date", f.SKUID, f.Warehouse)
		}
	}
	for _, s := range snapshots {
		if s.ObservedStock < 0 {
			return fmt.Errorf("stock snapshot %s/%s on %s: negative stock %d", s.SKUID, s.Warehouse, s.Date, s.ObservedStock)
		}
		if s.Date.IsZero() {
			return fmt.Errorf("stock snapshot %s/%s: missing date", s.SKUID, s.Warehouse)
		}
	}
	return nil
}

func summarizeStatus(metrics []domain.SkuMetrics) []domain.StatusSummary {
	order := []domain.Status{domain.StatusOutOfStock, domain.StatusCritical, domain.StatusLow, domain.StatusHealthy}
	counts := make(map[domain.Status]int)
	for _, m := range metrics {
		counts[m.Status]++
	}
	out := make([]domain.StatusSummary, 0, len(order))
	for _, s := range order {
		out = append(out, domain.StatusSummary{Status: s, Count: counts[s]})
	}
	return out
}
