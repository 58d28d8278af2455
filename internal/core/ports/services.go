package ports

import (
	"context"

	"github.com/astromicai/astromic-app-sub000/internal/core/domain"
)

// EventPublisher publishes chart events to a message broker for downstream
// consumers such as the interpretation service.
type EventPublisher interface {
	PublishChartComputed(ctx context.Context, rec *domain.ChartRecord) error
}

// EventSubscriber consumes chart events from a message broker.
type EventSubscriber interface {
	SubscribeChartComputed(ctx context.Context, handler func(ctx context.Context, rec *domain.ChartRecord) error) error
}
