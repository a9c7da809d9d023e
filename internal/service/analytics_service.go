package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/jaego-dev/jaegoboard/internal/cache"
	"github.com/jaego-dev/jaegoboard/internal/config"
	"github.com/jaego-dev/jaegoboard/internal/domain"
	"github.com/jaego-dev/jaegoboard/internal/engine"
	"github.com/jaego-dev/jaegoboard/internal/repository"
)

const dashboardScreenerHead = 5

// AnalyticsService turns the persisted fact history into the derived
// analytics views. Results are computed per dataset revision and reused until
// a write bumps the revision; nothing is ever patched in place.
type AnalyticsService struct {
	facts    repository.FactRepository
	registry repository.RegistryRepository
	cache    cache.AnalyticsCache
	params   engine.Params
	pageSize int

	mu           sync.Mutex
	memoRevision string
	memoResult   *engine.Result
}

func NewAnalyticsService(facts repository.FactRepository, registry repository.RegistryRepository, cacheImpl cache.AnalyticsCache, cfg *config.Config) *AnalyticsService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopAnalyticsCache()
	}
	return &AnalyticsService{
		facts:    facts,
		registry: registry,
		cache:    cacheImpl,
		params: engine.Params{
			LeadTimeDays:     cfg.Analytics.LeadTimeDays,
			SafetyBufferDays: cfg.Analytics.SafetyBufferDays,
		},
		pageSize: cfg.Database.PageSize,
	}
}

// Result returns the analytics output for the current dataset revision,
// computing it if neither the in-process memo nor the shared cache has it.
func (s *AnalyticsService) Result(ctx context.Context) (*engine.Result, error) {
	revision, err := s.facts.DataRevision(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.memoResult != nil && s.memoRevision == revision {
		return s.memoResult, nil
	}

	if result, ok, err := s.cache.Get(ctx, revision); err != nil {
		log.Warn().Err(err).Msg("analytics: cache get failed")
	} else if ok {
		s.memoRevision = revision
		s.memoResult = result
		return result, nil
	}

	result, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	s.memoRevision = revision
	s.memoResult = result

	if err := s.cache.Set(ctx, revision, result); err != nil {
		log.Warn().Err(err).Msg("analytics: cache set failed")
	}

	return result, nil
}

func (s *AnalyticsService) compute(ctx context.Context) (*engine.Result, error) {
	var (
		facts     []domain.SalesFact
		snapshots []domain.StockSnapshot
		entries   []domain.ProductRegistryEntry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		facts, err = fetchAll(gctx, s.pageSize, s.facts.ListSalesFacts)
		return err
	})
	g.Go(func() error {
		var err error
		snapshots, err = fetchAll(gctx, s.pageSize, s.facts.ListStockSnapshots)
		return err
	})
	g.Go(func() error {
		var err error
		entries, err = fetchAll(gctx, s.pageSize, s.registry.ListRegistryEntries)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Info().
		Int("sales_facts", len(facts)).
		Int("stock_snapshots", len(snapshots)).
		Int("registry_entries", len(entries)).
		Msg("analytics: computing result")

	return engine.Run(facts, snapshots, entries, s.params)
}

// fetchAll drains a paginated listing; a short page marks the end.
func fetchAll[T any](ctx context.Context, pageSize int, list func(ctx context.Context, limit, offset int) ([]T, error)) ([]T, error) {
	var out []T
	for offset := 0; ; offset += pageSize {
		page, err := list(ctx, pageSize, offset)
		if err != nil {
			return nil, err
		}
		out = append(out, page...)
		if len(page) < pageSize {
			return out, nil
		}
	}
}

// Dashboard condenses the current result into the overview payload.
func (s *AnalyticsService) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	result, err := s.Result(ctx)
	if err != nil {
		return nil, err
	}

	unregistered := 0
	for _, m := range result.Skus {
		if m.Unregistered {
			unregistered++
		}
	}
	urgent := 0
	for _, g := range result.Groups {
		if g.IsUrgent {
			urgent++
		}
	}

	return &domain.Dashboard{
		Anchor:           result.Anchor,
		ComputedAt:       result.ComputedAt,
		TotalSkus:        len(result.Skus),
		UnregisteredSkus: unregistered,
		UrgentGroups:     urgent,
		Summary:          result.Summary,
		TopRisks:         head(result.Risks, dashboardScreenerHead),
		TopDeadStock:     head(result.DeadStock, dashboardScreenerHead),
	}, nil
}

func head(groups []domain.ProductGroup, n int) []domain.ProductGroup {
	if len(groups) <= n {
		return groups
	}
	return groups[:n]
}

// Skus lists the per-SKU metrics. Unregistered placeholders are included only
// on request; they carry raw sales totals but no registry fields.
func (s *AnalyticsService) Skus(ctx context.Context, includeUnregistered bool) ([]domain.SkuMetrics, error) {
	result, err := s.Result(ctx)
	if err != nil {
		return nil, err
	}
	if includeUnregistered {
		return result.Skus, nil
	}

	out := make([]domain.SkuMetrics, 0, len(result.Skus))
	for _, m := range result.Skus {
		if !m.Unregistered {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *AnalyticsService) Groups(ctx context.Context) ([]domain.ProductGroup, error) {
	result, err := s.Result(ctx)
	if err != nil {
		return nil, err
	}
	return result.Groups, nil
}

func (s *AnalyticsService) StockOutRisks(ctx context.Context) ([]domain.ProductGroup, error) {
	result, err := s.Result(ctx)
	if err != nil {
		return nil, err
	}
	return result.Risks, nil
}

func (s *AnalyticsService) DeadStock(ctx context.Context) ([]domain.ProductGroup, error) {
	result, err := s.Result(ctx)
	if err != nil {
		return nil, err
	}
	return result.DeadStock, nil
}

func (s *AnalyticsService) Anchor(ctx context.Context) (domain.Date, error) {
	result, err := s.Result(ctx)
	if err != nil {
		return domain.Date{}, err
	}
	return result.Anchor, nil
}

// Recompute drops every cached result and rebuilds from the fact store.
func (s *AnalyticsService) Recompute(ctx context.Context) (*engine.Result, error) {
	if err := s.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("analytics: cache invalidate failed")
	}
	return s.Result(ctx)
}

// Invalidate clears the in-process memo and the shared cache.
func (s *AnalyticsService) Invalidate(ctx context.Context) error {
	s.mu.Lock()
	s.memoRevision = ""
	s.memoResult = nil
	s.mu.Unlock()

	return s.cache.Invalidate(ctx)
}

// IngestSalesFacts merges a batch of sales rows and invalidates derived data.
func (s *AnalyticsService) IngestSalesFacts(ctx context.Context, facts []domain.SalesFact) error {
	if err := s.facts.InsertSalesFacts(ctx, facts); err != nil {
		return err
	}
	if err := s.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("analytics: cache invalidate after sales ingest failed")
	}
	log.Info().Int("rows", len(facts)).Msg("analytics: sales facts ingested")
	return nil
}

// IngestStockSnapshots appends stock observations and invalidates derived data.
func (s *AnalyticsService) IngestStockSnapshots(ctx context.Context, snapshots []domain.StockSnapshot) error {
	if err := s.facts.InsertStockSnapshots(ctx, snapshots); err != nil {
		return err
	}
	if err := s.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("analytics: cache invalidate after snapshot ingest failed")
	}
	log.Info().Int("rows", len(snapshots)).Msg("analytics: stock snapshots ingested")
	return nil
}

// UpsertRegistry replaces or inserts product reference rows and invalidates
// derived data.
func (s *AnalyticsService) UpsertRegistry(ctx context.Context, entries []domain.ProductRegistryEntry) error {
	if err := s.registry.UpsertRegistryEntries(ctx, entries); err != nil {
		return err
	}
	if err := s.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("analytics: cache invalidate after registry upsert failed")
	}
	log.Info().Int("rows", len(entries)).Msg("analytics: registry entries upserted")
	return nil
}
