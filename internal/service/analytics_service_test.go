package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaego-dev/jaegoboard/internal/config"
	"github.com/jaego-dev/jaegoboard/internal/domain"
)

type fakeFactRepo struct {
	facts     []domain.SalesFact
	snapshots []domain.StockSnapshot
	revision  int
	listCalls int
}

func (f *fakeFactRepo) ListSalesFacts(ctx context.Context, limit, offset int) ([]domain.SalesFact, error) {
	f.listCalls++
	return page(f.facts, limit, offset), nil
}

func (f *fakeFactRepo) ListStockSnapshots(ctx context.Context, limit, offset int) ([]domain.StockSnapshot, error) {
	return page(f.snapshots, limit, offset), nil
}

func (f *fakeFactRepo) InsertSalesFacts(ctx context.Context, facts []domain.SalesFact) error {
	f.facts = append(f.facts, facts...)
	f.revision++
	return nil
}

func (f *fakeFactRepo) InsertStockSnapshots(ctx context.Context, snapshots []domain.StockSnapshot) error {
	f.snapshots = append(f.snapshots, snapshots...)
	f.revision++
	return nil
}

func (f *fakeFactRepo) DataRevision(ctx context.Context) (string, error) {
	return fmt.Sprintf("rev-%d", f.revision), nil
}

type fakeRegistryRepo struct {
	entries []domain.ProductRegistryEntry
}

func (r *fakeRegistryRepo) ListRegistryEntries(ctx context.Context, limit, offset int) ([]domain.ProductRegistryEntry, error) {
	return page(r.entries, limit, offset), nil
}

func (r *fakeRegistryRepo) UpsertRegistryEntries(ctx context.Context, entries []domain.ProductRegistryEntry) error {
	r.entries = append(r.entries, entries...)
	return nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func day(t *testing.T, s string) domain.Date {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}

func testService(t *testing.T) (*AnalyticsService, *fakeFactRepo, *fakeRegistryRepo) {
	t.Helper()

	facts := &fakeFactRepo{
		facts: []domain.SalesFact{
			{Date: day(t, "2024-05-10"), SKUID: "SKU-1", Warehouse: domain.WarehousePrimary, Quantity: 4},
			{Date: day(t, "2024-05-11"), SKUID: "SKU-1", Warehouse: domain.WarehousePrimary, Quantity: 3},
			{Date: day(t, "2024-05-11"), SKUID: "SKU-2", Warehouse: domain.WarehouseSecondary, Quantity: 1},
			{Date: day(t, "2024-05-11"), SKUID: "SKU-GHOST", Warehouse: domain.WarehousePrimary, Quantity: 2},
		},
		snapshots: []domain.StockSnapshot{
			{Date: day(t, "2024-05-11"), SKUID: "SKU-1", Warehouse: domain.WarehousePrimary, ObservedStock: 20},
			{Date: day(t, "2024-05-11"), SKUID: "SKU-2", Warehouse: domain.WarehouseSecondary, ObservedStock: 5},
		},
	}
	registry := &fakeRegistryRepo{
		entries: []domain.ProductRegistryEntry{
			{SKUID: "SKU-1", ProductName: "Linen Shirt", Option: "M", HQStock: 10},
			{SKUID: "SKU-2", ProductName: "Linen Shirt", Option: "L", HQStock: 2},
		},
	}

	cfg := &config.Config{}
	cfg.Analytics.LeadTimeDays = 10
	cfg.Analytics.SafetyBufferDays = 4
	cfg.Database.PageSize = 2 // small pages so tests exercise the paging loop

	return NewAnalyticsService(facts, registry, nil, cfg), facts, registry
}

func TestResultDrainsAllPages(t *testing.T) {
	svc, _, _ := testService(t)

	result, err := svc.Result(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2024-05-11", result.Anchor.String())
	// 2 registered SKUs plus the unregistered seller.
	require.Len(t, result.Skus, 3)

	bySku := map[string]domain.SkuMetrics{}
	for _, m := range result.Skus {
		bySku[m.SKUID] = m
	}
	assert.Equal(t, 7, bySku["SKU-1"].TotalSales, "both pages of sales facts must be read")
	assert.True(t, bySku["SKU-GHOST"].Unregistered)
}

func TestResultIsMemoizedPerRevision(t *testing.T) {
	svc, facts, _ := testService(t)
	ctx := context.Background()

	first, err := svc.Result(ctx)
	require.NoError(t, err)
	callsAfterFirst := facts.listCalls

	second, err := svc.Result(ctx)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, callsAfterFirst, facts.listCalls, "an unchanged revision must not refetch")
}

func TestIngestInvalidatesMemo(t *testing.T) {
	svc, _, _ := testService(t)
	ctx := context.Background()

	first, err := svc.Result(ctx)
	require.NoError(t, err)

	err = svc.IngestSalesFacts(ctx, []domain.SalesFact{
		{Date: day(t, "2024-05-12"), SKUID: "SKU-1", Warehouse: domain.WarehousePrimary, Quantity: 6},
	})
	require.NoError(t, err)

	second, err := svc.Result(ctx)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, "2024-05-12", second.Anchor.String(), "new facts must move the anchor")
}

func TestSkusFiltersUnregisteredByDefault(t *testing.T) {
	svc, _, _ := testService(t)
	ctx := context.Background()

	registeredOnly, err := svc.Skus(ctx, false)
	require.NoError(t, err)
	require.Len(t, registeredOnly, 2)
	for _, m := range registeredOnly {
		assert.False(t, m.Unregistered)
	}

	all, err := svc.Skus(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestDashboardCondensesResult(t *testing.T) {
	svc, _, _ := testService(t)

	dash, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2024-05-11", dash.Anchor.String())
	assert.Equal(t, 3, dash.TotalSkus)
	assert.Equal(t, 1, dash.UnregisteredSkus)

	total := 0
	for _, s := range dash.Summary {
		total += s.Count
	}
	assert.Equal(t, 2, total, "summary counts registered SKUs only")
}
