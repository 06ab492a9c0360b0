package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"github.com/gofiber/websocket/v2"

	"github.com/samirrijal/propertymap/internal/pkg/metrics"
)

const requestTimeout = 15 * time.Second

// SetupRoutes registers all REST, GraphQL, and WebSocket routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	app.Use(requestid.New())
	app.Use(RequestIDLogMiddleware())
	app.Use(AccessLogMiddleware())

	// Map sessions poll and edit at a much higher rate than plain reads
	app.Use(limiter.New(limiter.Config{
		Max:        600,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return newError(c, fiber.StatusTooManyRequests, "rate_limited", "too many requests, please try again later")
		},
	}))

	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("X-API-Version", "1.0.0")
		return c.Next()
	})

	app.Use(ETagMiddleware())
	app.Use(CachingMiddleware())

	app.Get("/v1/health", HealthHandler(deps))
	app.Get("/v1/ready", ReadyHandler(deps))

	v1 := app.Group("/v1")
	t := func(h fiber.Handler) fiber.Handler {
		return timeout.NewWithContext(h, requestTimeout)
	}

	v1.Get("/projects", t(ListProjectsHandler(deps)))
	v1.Get("/projects/in-bounds", t(ProjectsInBoundsHandler(deps)))
	v1.Get("/projects/:id", t(GetProjectHandler(deps)))

	v1.Post("/sessions", t(CreateSessionHandler(deps)))
	v1.Get("/sessions/:id", t(GetSessionHandler(deps)))
	v1.Delete("/sessions/:id", t(DeleteSessionHandler(deps)))

	s := v1.Group("/sessions/:id")
	s.Post("/attach", t(AttachHandler(deps)))
	s.Post("/idle", t(IdleHandler(deps)))
	s.Get("/projects", t(VisibleProjectsHandler(deps)))
	s.Post("/projects/:project/select", t(SelectProjectHandler(deps)))
	s.Put("/drawer", t(DrawerHandler(deps)))

	s.Get("/search/autocomplete", t(AutocompleteHandler(deps)))
	s.Post("/search/select", t(SelectPlaceHandler(deps)))
	s.Post("/search/apply", t(ApplySearchHandler(deps)))

	s.Post("/directions", t(DirectionsHandler(deps)))
	s.Post("/street-view", t(StreetViewHandler(deps)))
	s.Post("/view/:mode", t(MapViewHandler(deps)))
	s.Post("/neighborhood/view", t(NeighborhoodViewHandler(deps)))
	s.Put("/neighborhood/filter", t(NeighborhoodFilterHandler(deps)))
	s.Delete("/neighborhood", t(ClearNeighborhoodHandler(deps)))

	d := s.Group("/drawing")
	d.Post("/start", t(StartDrawingHandler(deps)))
	d.Post("/overlays", t(CompleteOverlayHandler(deps)))
	d.Put("/overlays/:overlay", t(ReshapeOverlayHandler(deps)))
	d.Post("/overlays/:overlay/select", t(SelectOverlayHandler(deps)))
	d.Delete("/overlays", t(ClearAllHandler(deps)))
	d.Delete("/selection", t(ClearSelectionHandler(deps)))
	d.Delete("/selected", t(DeleteSelectedHandler(deps)))
	d.Get("/serialize", t(SerializeHandler(deps)))
	d.Post("/restore", t(RestoreHandler(deps)))
	d.Get("/export", t(ExportHandler(deps)))
	d.Post("/import", t(ImportHandler(deps)))
	d.Post("/save", t(SaveDrawingHandler(deps)))
	d.Post("/load", t(LoadDrawingHandler(deps)))
	d.Post("/undo", t(UndoHandler(deps)))
	d.Post("/redo", t(RedoHandler(deps)))

	l := s.Group("/layout")
	l.Post("/boundary", t(SaveBoundaryHandler(deps)))
	l.Post("/boundary/edit", t(EditBoundaryHandler(deps)))
	l.Post("/lock", t(LockHandler(deps)))
	l.Post("/unlock", t(UnlockHandler(deps)))
	l.Get("/plots/:overlay", t(GetPlotHandler(deps)))
	l.Patch("/plots/:overlay", t(UpdatePlotHandler(deps)))
	l.Post("/plots/:overlay/confirm", t(ConfirmPlotHandler(deps)))
	l.Post("/landmarks/fetch", t(FetchLandmarksHandler(deps)))
	l.Get("/landmarks", t(ListLandmarksHandler(deps)))
	l.Get("/landmarks/selected", t(SelectedLandmarksHandler(deps)))
	l.Post("/landmarks/:place/toggle", t(ToggleLandmarkHandler(deps)))
	l.Post("/landmarks/save", t(SaveLandmarksHandler(deps)))

	app.Post("/graphql", GraphQLHandler(deps))

	SetupDocs(app, openAPIPath)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(WebSocketHandler(deps)))
}
