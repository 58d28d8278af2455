package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/astromicai/astromic-app-sub000/internal/adapters/ephemeris"
	"github.com/astromicai/astromic-app-sub000/internal/adapters/http"
	natsadapter "github.com/astromicai/astromic-app-sub000/internal/adapters/nats"
	"github.com/astromicai/astromic-app-sub000/internal/adapters/postgres"
	"github.com/astromicai/astromic-app-sub000/internal/adapters/valkey"
	"github.com/astromicai/astromic-app-sub000/internal/core/ports"
	"github.com/astromicai/astromic-app-sub000/internal/core/usecases"
	"github.com/astromicai/astromic-app-sub000/internal/pkg/config"
	"github.com/astromicai/astromic-app-sub000/internal/pkg/logging"
	"github.com/astromicai/astromic-app-sub000/internal/pkg/telemetry"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg, err := config.Load("astromic-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Chart engine
	var engineOpts []usecases.EngineOption
	if cfg.Chart.DefaultZone != "" {
		loc, err := usecases.ParseZone(cfg.Chart.DefaultZone)
		if err != nil {
			log.Fatalf("chart.default_zone: %v", err)
		}
		engineOpts = append(engineOpts, usecases.WithDefaultZone(loc))
	}
	engine := usecases.NewEngine(ephemeris.New(), engineOpts...)

	deps := &http.Dependencies{}

	// Database
	var charts ports.ChartRepository
	if cfg.Chart.Persist {
		db, err := postgres.New(ctx, cfg.Database.DSN())
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer db.Close()
		deps.DB = db
		charts = postgres.NewChartRepo(db)
	}

	// Valkey backs the shared rate limiter
	store, err := valkey.New(cfg.Valkey.Addr, "astromic:limiter:")
	if err != nil {
		slog.Warn("valkey unavailable", "error", err)
	} else {
		defer store.Close()
		deps.Cache = store
	}

	// NATS
	var events ports.EventPublisher
	if cfg.Chart.Publish {
		pub, err := natsadapter.NewPublisher(cfg.NATS.URL)
		if err != nil {
			slog.Warn("nats unavailable, chart events disabled", "error", err)
		} else {
			defer pub.Close()
			events = pub
		}
	}

	// Raw NATS connection for WebSocket relay
	natsConn, err := natsadapter.RawConn(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats ws conn unavailable", "error", err)
	} else {
		defer natsConn.Close()
		deps.NATS = natsConn
	}

	deps.Charts = usecases.NewChartService(engine, charts, events)

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    64 * 1024,
		AppName:      "Astromic Natal Chart API",
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000, http://localhost:5173",
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders:    http.HeaderChartDegraded + ", Location, ETag, Link",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr, "persist", charts != nil, "publish", events != nil)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
