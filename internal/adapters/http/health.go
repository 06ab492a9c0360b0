package http

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
)

const readyTimeout = 3 * time.Second

// HealthHandler is the liveness probe. It reports the number of live map
// sessions alongside uptime.
func HealthHandler(deps *Dependencies) fiber.Handler {
	startedAt := time.Now()

	return func(c *fiber.Ctx) error {
		body := fiber.Map{
			"status":  "healthy",
			"uptime":  time.Since(startedAt).Round(time.Second).String(),
			"version": "dev",
		}
		if deps.Sessions != nil {
			body["sessions"] = deps.Sessions.Count()
		}
		return c.JSON(body)
	}
}

// probe is one readiness check. A required probe that fails marks the
// service not ready; an optional one only reports its state.
type probe struct {
	name     string
	required bool
	check    func(context.Context) error
}

var errNotConfigured = errors.New("not configured")

// readinessProbes lists the backing services. Only the database is
// required; NATS and the cache degrade gracefully.
func readinessProbes(deps *Dependencies) []probe {
	return []probe{
		{name: "database", required: true, check: func(ctx context.Context) error {
			if deps.DB == nil {
				return errNotConfigured
			}
			return deps.DB.Ping(ctx)
		}},
		{name: "nats", check: func(context.Context) error {
			if deps.NATS == nil {
				return errNotConfigured
			}
			if !deps.NATS.IsConnected() {
				return errors.New("disconnected")
			}
			return nil
		}},
		{name: "cache", check: func(ctx context.Context) error {
			if deps.Cache == nil {
				return errNotConfigured
			}
			return deps.Cache.Ping(ctx)
		}},
	}
}

// ReadyHandler runs every probe concurrently and answers 503 when a
// required one fails.
func ReadyHandler(deps *Dependencies) fiber.Handler {
	probes := readinessProbes(deps)

	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), readyTimeout)
		defer cancel()

		var (
			mu     sync.Mutex
			checks = make(map[string]string, len(probes))
			ready  = true
			g      errgroup.Group
		)
		for _, p := range probes {
			g.Go(func() error {
				state := "ok"
				err := p.check(ctx)
				switch {
				case errors.Is(err, errNotConfigured):
					state = err.Error()
				case err != nil:
					state = "error: " + err.Error()
				}

				mu.Lock()
				defer mu.Unlock()
				checks[p.name] = state
				if err != nil && (p.required || !errors.Is(err, errNotConfigured)) {
					ready = false
				}
				return nil
			})
		}
		_ = g.Wait()

		status, code := "ready", fiber.StatusOK
		if !ready {
			status, code = "not ready", fiber.StatusServiceUnavailable
		}
		return c.Status(code).JSON(fiber.Map{"status": status, "checks": checks})
	}
}
