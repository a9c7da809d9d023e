package repository

import (
	"context"

	"github.com/jaego-dev/jaegoboard/internal/domain"
)

// FactRepository is the persistence collaborator for sales facts and stock
// snapshots. Reads are paginated and callers must loop until a short page:
// the engine always consumes the complete history, never a single bounded
// page.
type FactRepository interface {
	ListSalesFacts(ctx context.Context, limit, offset int) ([]domain.SalesFact, error)
	ListStockSnapshots(ctx context.Context, limit, offset int) ([]domain.StockSnapshot, error)

	// InsertSalesFacts merges a batch: quantities on an existing
	// (date, sku, warehouse) key are added, never overwritten.
	InsertSalesFacts(ctx context.Context, facts []domain.SalesFact) error
	InsertStockSnapshots(ctx context.Context, snapshots []domain.StockSnapshot) error

	// DataRevision identifies the current dataset state. It changes on
	// every write, so it doubles as the analytics cache key.
	DataRevision(ctx context.Context) (string, error)
}

// RegistryRepository reads and writes product reference data.
type RegistryRepository interface {
	ListRegistryEntries(ctx context.Context, limit, offset int) ([]domain.ProductRegistryEntry, error)
	UpsertRegistryEntries(ctx context.Context, entries []domain.ProductRegistryEntry) error
}
