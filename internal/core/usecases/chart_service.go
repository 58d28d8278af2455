package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/astromicai/astromic-app-sub000/internal/core/domain"
	"github.com/astromicai/astromic-app-sub000/internal/core/ports"
	"github.com/astromicai/astromic-app-sub000/internal/pkg/metrics"
)

var tracer = otel.Tracer("github.com/astromicai/astromic-app-sub000/internal/core/usecases")

// ChartService wraps the chart engine with storage, events and telemetry.
// The repository and publisher are optional.
type ChartService struct {
	engine *Engine
	charts ports.ChartRepository
	events ports.EventPublisher
	now    func() time.Time
	newID  func() string
}

// NewChartService creates a new ChartService.
func NewChartService(engine *Engine, charts ports.ChartRepository, events ports.EventPublisher) *ChartService {
	return &ChartService{
		engine: engine,
		charts: charts,
		events: events,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Compute builds a chart without storing it.
func (s *ChartService) Compute(ctx context.Context, req domain.ChartRequest) (*domain.ChartResult, error) {
	_, span := tracer.Start(ctx, "ChartService.Compute")
	defer span.End()
	span.SetAttributes(
		attribute.String("chart.date", req.Date),
		attribute.String("chart.zone", req.Zone),
	)

	start := time.Now()
	chart, err := s.engine.BuildChart(req)
	metrics.ChartBuildDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ChartsComputed.WithLabelValues("rejected").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	missing := chart.Missing()
	for _, b := range missing {
		metrics.BodyErrors.WithLabelValues(b.String()).Inc()
	}

	outcome := "ok"
	switch {
	case chart.Degraded():
		outcome = "degraded"
		metrics.ChartFallbacks.Inc()
	case len(missing) > 0:
		outcome = "partial"
		slog.WarnContext(ctx, "chart computed with missing bodies", "missing", missing)
	}
	metrics.ChartsComputed.WithLabelValues(outcome).Inc()

	span.SetAttributes(
		attribute.Bool("chart.degraded", chart.Degraded()),
		attribute.Int("chart.missing_bodies", len(missing)),
	)
	return chart, nil
}

// Create computes a chart, stores it when a repository is configured and
// announces it. Publishing is best effort.
func (s *ChartService) Create(ctx context.Context, req domain.ChartRequest) (*domain.ChartRecord, error) {
	ctx, span := tracer.Start(ctx, "ChartService.Create")
	defer span.End()

	chart, err := s.Compute(ctx, req)
	if err != nil {
		return nil, err
	}

	rec := &domain.ChartRecord{
		ID:        s.newID(),
		Request:   req,
		Chart:     *chart,
		CreatedAt: s.now().UTC(),
	}
	span.SetAttributes(attribute.String("chart.id", rec.ID))

	if s.charts != nil {
		if err := s.charts.Insert(ctx, rec); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "store chart")
			return nil, fmt.Errorf("store chart: %w", err)
		}
	}

	if s.events != nil {
		if err := s.events.PublishChartComputed(ctx, rec); err != nil {
			slog.WarnContext(ctx, "publish chart event failed", "chart_id", rec.ID, "error", err)
		}
	}

	return rec, nil
}

// Get returns a stored chart.
func (s *ChartService) Get(ctx context.Context, id string) (*domain.ChartRecord, error) {
	if s.charts == nil {
		return nil, domain.ErrStorageUnavailable
	}
	if id == "" {
		return nil, domain.ErrChartNotFound
	}
	return s.charts.GetByID(ctx, id)
}

// List returns stored charts, newest first, with the total count.
func (s *ChartService) List(ctx context.Context, offset, limit int) ([]domain.ChartRecord, int, error) {
	if s.charts == nil {
		return nil, 0, domain.ErrStorageUnavailable
	}
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.charts.List(ctx, offset, limit)
}
