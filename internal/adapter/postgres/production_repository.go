package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/danielsutton1/Jewelia-sub026/internal/domain"
)

// productionColumns must match the Scan order in scanRecord.
const productionColumns = `id, tenant_id, order_id, stage, notes, created_at, updated_at`

// ProductionRepo implements domain.ProductionRepository backed by PostgreSQL.
type ProductionRepo struct {
	pool *pgxpool.Pool
}

func NewProductionRepo(pool *pgxpool.Pool) *ProductionRepo {
	return &ProductionRepo{pool: pool}
}

func scanRecord(row pgx.Row) (*domain.ProductionRecord, error) {
	var p domain.ProductionRecord
	err := row.Scan(&p.ID, &p.TenantID, &p.OrderID, &p.Stage, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductionRepo) Create(ctx context.Context, record *domain.ProductionRecord) error {
	query := `INSERT INTO production_records (id, tenant_id, order_id, stage, notes)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		record.ID, record.TenantID, record.OrderID, record.Stage, record.Notes,
	).Scan(&record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create production record: %w", err)
	}
	return nil
}

func (r *ProductionRepo) ListByOrder(ctx context.Context, tenantID string, orderID uuid.UUID) ([]domain.ProductionRecord, error) {
	query := `SELECT ` + productionColumns + ` FROM production_records
	          WHERE tenant_id = $1 AND order_id = $2
	          ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, tenantID, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list production records: %w", err)
	}
	defer rows.Close()

	var records []domain.ProductionRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan production record: %w", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read production records: %w", err)
	}
	return records, nil
}

// AdvanceStage updates the latest production record for an order to the given
// stage. Returns domain.ErrProductionNotFound if the order has no record.
func (r *ProductionRepo) AdvanceStage(ctx context.Context, tenantID string, orderID uuid.UUID, stage domain.ProductionStage) (*domain.ProductionRecord, error) {
	query := `UPDATE production_records SET stage = $3, updated_at = now()
	          WHERE id = (
	              SELECT id FROM production_records
	              WHERE tenant_id = $1 AND order_id = $2
	              ORDER BY created_at DESC
	              LIMIT 1
	          )
	          RETURNING ` + productionColumns
	record, err := scanRecord(r.pool.QueryRow(ctx, query, tenantID, orderID, stage))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrProductionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to advance production stage: %w", err)
	}
	return record, nil
}
