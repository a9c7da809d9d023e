package postgres

import (
	"context"
	"crypto/sha1"
	"database/sql"
	"encoding/hex"
	"fmt"

	"github.com/jaego-dev/jaegoboard/internal/domain"
	"github.com/jaego-dev/jaegoboard/internal/repository"
)

type factRepository struct {
	db *DB
}

// NewFactRepository builds the Postgres-backed fact store.
func NewFactRepository(db *DB) repository.FactRepository {
	return &factRepository{db: db}
}

func (r *factRepository) ListSalesFacts(ctx context.Context, limit, offset int) ([]domain.SalesFact, error) {
	query := `
        SELECT sale_date, sku_id, warehouse, quantity
        FROM sales_facts
        ORDER BY sale_date, sku_id, warehouse
        LIMIT $1 OFFSET $2
    `

	var facts []domain.SalesFact
	if err := r.db.SelectContext(ctx, &facts, query, limit, offset); err != nil {
		return nil, fmt.Errorf("error listing sales facts: %w", err)
	}
	return facts, nil
}

func (r *factRepository) ListStockSnapshots(ctx context.Context, limit, offset int) ([]domain.StockSnapshot, error) {
	query := `
        SELECT snapshot_date, sku_id, warehouse, observed_stock
        FROM stock_snapshots
        ORDER BY snapshot_date, sku_id, warehouse
        LIMIT $1 OFFSET $2
    `

	var snapshots []domain.StockSnapshot
	if err := r.db.SelectContext(ctx, &snapshots, query, limit, offset); err != nil {
		return nil, fmt.Errorf("error listing stock snapshots: %w", err)
	}
	return snapshots, nil
}

func (r *factRepository) InsertSalesFacts(ctx context.Context, facts []domain.SalesFact) error {
	if len(facts) == 0 {
		return nil
	}

	for _, f := range facts {
		if f.Quantity < 0 {
			return fmt.Errorf("sales fact %s/%s on %s: negative quantity rejected", f.SKUID, f.Warehouse, f.Date)
		}
	}

	// Same-key rows add up; a merge never overwrites an earlier quantity.
	query := `
        INSERT INTO sales_facts (sale_date, sku_id, warehouse, quantity, updated_at)
        VALUES ($1, $2, $3, $4, NOW())
        ON CONFLICT (sale_date, sku_id, warehouse)
        DO UPDATE SET
            quantity = sales_facts.quantity + EXCLUDED.quantity,
            updated_at = NOW()
    `

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		for _, f := range facts {
			if _, err := stmt.ExecContext(ctx, f.Date, f.SKUID, f.Warehouse, f.Quantity); err != nil {
				return fmt.Errorf("failed to insert sales fact: %w", err)
			}
		}
		return nil
	})
}

func (r *factRepository) InsertStockSnapshots(ctx context.Context, snapshots []domain.StockSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	for _, s := range snapshots {
		if s.ObservedStock < 0 {
			return fmt.Errorf("stock snapshot %s/%s on %s: negative stock rejected", s.SKUID, s.Warehouse, s.Date)
		}
	}

	query := `
        INSERT INTO stock_snapshots (snapshot_date, sku_id, warehouse, observed_stock, updated_at)
        VALUES ($1, $2, $3, $4, NOW())
    `

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		for _, s := range snapshots {
			if _, err := stmt.ExecContext(ctx, s.Date, s.SKUID, s.Warehouse, s.ObservedStock); err != nil {
				return fmt.Errorf("failed to insert stock snapshot: %w", err)
			}
		}
		return nil
	})
}

func (r *factRepository) DataRevision(ctx context.Context) (string, error) {
	query := `
        SELECT
            (SELECT COUNT(*) FROM sales_facts),
            (SELECT COALESCE(MAX(updated_at)::text, '') FROM sales_facts),
            (SELECT COUNT(*) FROM stock_snapshots),
            (SELECT COALESCE(MAX(updated_at)::text, '') FROM stock_snapshots),
            (SELECT COUNT(*) FROM product_registry),
            (SELECT COALESCE(MAX(updated_at)::text, '') FROM product_registry)
    `

	var (
		factCount, snapCount, regCount       int64
		factUpdated, snapUpdated, regUpdated string
	)
	row := r.db.QueryRowxContext(ctx, query)
	if err := row.Scan(&factCount, &factUpdated, &snapCount, &snapUpdated, &regCount, &regUpdated); err != nil {
		return "", fmt.Errorf("error reading data revision: %w", err)
	}

	raw := fmt.Sprintf("f:%d@%s|s:%d@%s|r:%d@%s", factCount, factUpdated, snapCount, snapUpdated, regCount, regUpdated)
	sum := sha1.Sum([]byte(raw))
	return hex.EncodeToString(sum[:]), nil
}
