package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/samirrijal/propertymap/internal/adapters/googlemaps"
	"github.com/samirrijal/propertymap/internal/adapters/http"
	natsadapter "github.com/samirrijal/propertymap/internal/adapters/nats"
	"github.com/samirrijal/propertymap/internal/adapters/postgres"
	"github.com/samirrijal/propertymap/internal/adapters/valkey"
	"github.com/samirrijal/propertymap/internal/core/ports"
	"github.com/samirrijal/propertymap/internal/core/usecases"
	"github.com/samirrijal/propertymap/internal/pkg/config"
	"github.com/samirrijal/propertymap/internal/pkg/logging"
	"github.com/samirrijal/propertymap/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("propertymap-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer func() {
				sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer scancel()
				_ = shutdown(sctx)
			}()
		}
	}

	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()
	go db.ReportPoolStats(ctx, 15*time.Second)

	// A typed nil must not reach the interface
	var cacheSvc ports.CacheService
	cache, err := valkey.New(cfg.Valkey.Addr)
	if err != nil {
		slog.Warn("valkey unavailable", "error", err)
	} else {
		defer cache.Close()
		cacheSvc = cache
	}

	svc := usecases.MapServices{
		Geolocator: http.DeviceGeolocator{},
		Drawings:   postgres.NewDrawingRepo(db),
		Layouts:    postgres.NewLayoutRepo(db),
	}

	pub, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable, drawer events disabled", "error", err)
	} else {
		defer pub.Close()
		svc.Listener = pub
	}

	// Raw NATS connection for WebSocket relay
	natsConn, err := natsadapter.RawConn(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats ws conn unavailable", "error", err)
	} else {
		defer natsConn.Close()
	}

	if cfg.Maps.APIKey != "" {
		maps := googlemaps.New(cfg.Maps.BaseURL, cfg.Maps.APIKey, cfg.Maps.Timeout)
		svc.Directions = maps
		svc.Places = maps
		svc.StreetView = maps
	} else {
		slog.Warn("maps api key not set, directions, places and street view disabled")
	}

	projectSvc := usecases.NewProjectService(postgres.NewProjectRepo(db), cacheSvc)
	sessionSvc := usecases.NewSessionService(projectSvc, svc)
	go sessionSvc.Run(ctx, cfg.Sessions.SweepInterval, cfg.Sessions.IdleTTL)

	deps := &http.Dependencies{
		Projects: projectSvc,
		Sessions: sessionSvc,
		NATS:     natsConn,
		DB:       db,
		Cache:    cache,
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    1024 * 1024, // imported drawings stay well below 1 MB
		AppName:      "Property Map API",
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000, http://localhost:5173",
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, If-None-Match",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	go func() {
		addr := cfg.Server.Addr()
		slog.Info("API server starting", "addr", addr, "maps", cfg.Maps.APIKey != "")
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

	slog.Info("server stopped", "sessions", sessionSvc.Count())
}
