package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/astromicai/astromic-app-sub000/internal/core/domain"
)

// ChartRepo implements ports.ChartRepository. The request and the computed
// chart are stored as JSONB; a few fields are copied into columns for
// filtering.
type ChartRepo struct {
	db *DB
}

func NewChartRepo(db *DB) *ChartRepo {
	return &ChartRepo{db: db}
}

func (r *ChartRepo) Insert(ctx context.Context, rec *domain.ChartRecord) error {
	if _, err := uuid.Parse(rec.ID); err != nil {
		return fmt.Errorf("chart id: %w", err)
	}
	req, err := json.Marshal(rec.Request)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	chart, err := json.Marshal(rec.Chart)
	if err != nil {
		return fmt.Errorf("encode chart: %w", err)
	}

	_, err = r.db.Pool.Exec(ctx, `
		INSERT INTO charts (id, request, chart, birth_instant, ascendant_sign, degraded, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, rec.ID, req, chart, rec.Chart.Instant, rec.Chart.Ascendant.Sign.String(), rec.Chart.Degraded(), rec.CreatedAt)
	return err
}

func (r *ChartRepo) GetByID(ctx context.Context, id string) (*domain.ChartRecord, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrChartNotFound
	}

	row := r.db.Pool.QueryRow(ctx, `
		SELECT id::text, request, chart, created_at
		FROM charts WHERE id = $1
	`, id)
	rec, err := scanChart(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrChartNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *ChartRepo) List(ctx context.Context, offset, limit int) ([]domain.ChartRecord, int, error) {
	var total int
	if err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM charts`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Pool.Query(ctx, `
		SELECT id::text, request, chart, created_at
		FROM charts
		ORDER BY created_at DESC, id
		OFFSET $1 LIMIT $2
	`, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var charts []domain.ChartRecord
	for rows.Next() {
		rec, err := scanChart(rows)
		if err != nil {
			return nil, 0, err
		}
		charts = append(charts, *rec)
	}
	return charts, total, rows.Err()
}

func scanChart(row pgx.Row) (*domain.ChartRecord, error) {
	var (
		req, chart []byte
		rec        domain.ChartRecord
	)
	if err := row.Scan(&rec.ID, &req, &chart, &rec.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(req, &rec.Request); err != nil {
		return nil, fmt.Errorf("decode request: %w", err)
	}
	if err := json.Unmarshal(chart, &rec.Chart); err != nil {
		return nil, fmt.Errorf("decode chart: %w", err)
	}
	return &rec, nil
}
