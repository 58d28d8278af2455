package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/astromicai/astromic-app-sub000/internal/core/domain"
	"github.com/astromicai/astromic-app-sub000/internal/pkg/metrics"
)

// Subjects carrying chart events.
const (
	SubjectChartComputed = "natal.chart.computed"
	SubjectChartAll      = "natal.chart.>"
)

// StreamCharts is the JetStream stream holding chart events.
var StreamCharts = nats.StreamConfig{
	Name:      "CHARTS",
	Subjects:  []string{SubjectChartAll},
	Retention: nats.LimitsPolicy,
	MaxAge:    7 * 24 * time.Hour,
	Storage:   nats.FileStorage,
}

// Publisher implements ports.EventPublisher using NATS JetStream.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewPublisher connects to NATS and enables JetStream.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := RawConn(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}
	if err := ensureStream(js, StreamCharts); err != nil {
		conn.Close()
		return nil, err
	}

	return &Publisher{conn: conn, js: js}, nil
}

func ensureStream(js nats.JetStreamContext, cfg nats.StreamConfig) error {
	if _, err := js.AddStream(&cfg); err != nil {
		// Stream may already exist, try update
		if _, err := js.UpdateStream(&cfg); err != nil {
			return fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
		}
	}
	return nil
}

// PublishChartComputed publishes rec on natal.chart.computed.<id>.
func (p *Publisher) PublishChartComputed(ctx context.Context, rec *domain.ChartRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	_, err = p.js.Publish(SubjectChartComputed+"."+rec.ID, data, nats.Context(ctx), nats.MsgId(rec.ID))
	if err != nil {
		metrics.ChartEventsPublished.WithLabelValues("error").Inc()
		return err
	}
	metrics.ChartEventsPublished.WithLabelValues("ok").Inc()
	return nil
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// RawConn creates a plain NATS connection for subscribing (e.g. WebSocket relay).
func RawConn(url string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.Name("astromic"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
}
