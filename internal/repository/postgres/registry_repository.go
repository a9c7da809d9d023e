package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jaego-dev/jaegoboard/internal/domain"
	"github.com/jaego-dev/jaegoboard/internal/repository"
)

type registryRepository struct {
	db *DB
}

// NewRegistryRepository builds the Postgres-backed product registry.
func NewRegistryRepository(db *DB) repository.RegistryRepository {
	return &registryRepository{db: db}
}

func (r *registryRepository) ListRegistryEntries(ctx context.Context, limit, offset int) ([]domain.ProductRegistryEntry, error) {
	query := `
        SELECT sku_id, product_name, option_name, season, image_url,
               hq_stock, incoming_stock, safety_stock
        FROM product_registry
        ORDER BY product_name, sku_id
        LIMIT $1 OFFSET $2
    `

	var entries []domain.ProductRegistryEntry
	if err := r.db.SelectContext(ctx, &entries, query, limit, offset); err != nil {
		return nil, fmt.Errorf("error listing registry entries: %w", err)
	}
	return entries, nil
}

func (r *registryRepository) UpsertRegistryEntries(ctx context.Context, entries []domain.ProductRegistryEntry) error {
	if len(entries) == 0 {
		return nil
	}

	query := `
        INSERT INTO product_registry (
            sku_id, product_name, option_name, season, image_url,
            hq_stock, incoming_stock, safety_stock, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
        ON CONFLICT (sku_id)
        DO UPDATE SET
            product_name = EXCLUDED.product_name,
            option_name = EXCLUDED.option_name,
            season = EXCLUDED.season,
            image_url = EXCLUDED.image_url,
            hq_stock = EXCLUDED.hq_stock,
            incoming_stock = EXCLUDED.incoming_stock,
            safety_stock = EXCLUDED.safety_stock,
            updated_at = NOW()
    `

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		for _, e := range entries {
			if _, err := stmt.ExecContext(ctx,
				e.SKUID, e.ProductName, e.Option, e.Season, e.ImageURL,
				e.HQStock, e.IncomingStock, e.SafetyStock,
			); err != nil {
				return fmt.Errorf("failed to upsert registry entry %s: %w", e.SKUID, err)
			}
		}
		return nil
	})
}
