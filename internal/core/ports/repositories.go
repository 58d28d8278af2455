package ports

import (
	"context"

	"github.com/astromicai/astromic-app-sub000/internal/core/domain"
)

// ChartRepository persists computed charts.
type ChartRepository interface {
	Insert(ctx context.Context, rec *domain.ChartRecord) error
	// GetByID returns domain.ErrChartNotFound when no chart has the id.
	GetByID(ctx context.Context, id string) (*domain.ChartRecord, error)
	// List returns a page of charts, newest first, and the total count.
	List(ctx context.Context, offset, limit int) ([]domain.ChartRecord, int, error)
}
