package http

import (
	"github.com/nats-io/nats.go"

	"github.com/astromicai/astromic-app-sub000/internal/adapters/postgres"
	"github.com/astromicai/astromic-app-sub000/internal/adapters/valkey"
	"github.com/astromicai/astromic-app-sub000/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers. Everything but
// Charts is optional.
type Dependencies struct {
	Charts *usecases.ChartService
	NATS   *nats.Conn
	DB     *postgres.DB
	Cache  *valkey.Store
}
