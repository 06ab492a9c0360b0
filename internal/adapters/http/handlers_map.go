package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/propertymap/internal/core/domain"
	"github.com/samirrijal/propertymap/internal/core/usecases"
)

// DirectionsHandler draws a driving route from the device to the target.
// The body carries the device position.
func DirectionsHandler(deps *Dependencies) fiber.Handler {
	return sessionHandler(deps, func(c *fiber.Ctx, s *usecases.MapSession) error {
		ctx, err := deviceContext(c)
		if err != nil {
			return writeError(c, err)
		}
		return respond(c, s, s.GetDirections(ctx))
	})
}

// StreetViewHandler toggles street-level imagery at the target.
func StreetViewHandler(deps *Dependencies) fiber.Handler {
	return sessionHandler(deps, func(c *fiber.Ctx, s *usecases.MapSession) error {
		return respond(c, s, s.ToggleStreetView(c.UserContext()))
	})
}

// MapViewHandler switches the base map between road, satellite and tilted.
func MapViewHandler(deps *Dependencies) fiber.Handler {
	return sessionHandler(deps, func(c *fiber.Ctx, s *usecases.MapSession) error {
		switch c.Params("mode") {
		case "map":
			s.SetMapView()
		case "satellite":
			s.SetSatelliteView()
		case "3d":
			s.Set3DView()
		default:
			return errBadRequest(c, "view must be map, satellite or 3d")
		}
		return respond(c, s, nil)
	})
}

// NeighborhoodViewHandler draws the route plus every amenity category.
func NeighborhoodViewHandler(deps *Dependencies) fiber.Handler {
	return sessionHandler(deps, func(c *fiber.Ctx, s *usecases.MapSession) error {
		ctx, err := deviceContext(c)
		if err != nil {
			return writeError(c, err)
		}
		return respond(c, s, s.SetNeighborhoodView(ctx))
	})
}

// NeighborhoodFilterHandler shows one amenity category around the target.
func NeighborhoodFilterHandler(deps *Dependencies) fiber.Handler {
	return sessionHandler(deps, func(c *fiber.Ctx, s *usecases.MapSession) error {
		var in struct {
			Category domain.Category `json:"category"`
		}
		if err := decodeBody(c, &in); err != nil {
			return writeError(c, err)
		}
		if err := s.SetNeighborhoodFilter(c.UserContext(), in.Category); err != nil {
			return writeError(c, err)
		}
		return respond(c, s, nil)
	})
}

// ClearNeighborhoodHandler removes the amenity overlay.
func ClearNeighborhoodHandler(deps *Dependencies) fiber.Handler {
	return sessionHandler(deps, func(c *fiber.Ctx, s *usecases.MapSession) error {
		s.ClearNeighborhood()
		return respond(c, s, nil)
	})
}
