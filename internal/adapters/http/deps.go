package http

import (
	"github.com/nats-io/nats.go"

	"github.com/samirrijal/propertymap/internal/adapters/postgres"
	"github.com/samirrijal/propertymap/internal/adapters/valkey"
	"github.com/samirrijal/propertymap/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Projects *usecases.ProjectService
	Sessions *usecases.SessionService
	NATS     *nats.Conn
	DB       *postgres.DB
	Cache    *valkey.Cache
}
