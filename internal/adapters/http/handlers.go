package http

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/propertymap/internal/core/domain"
	"github.com/samirrijal/propertymap/internal/core/usecases"
)

// opResponse is returned by every session operation: the user-facing
// alert, if one was raised, and the session state after the call.
type opResponse struct {
	Alert   *domain.Alert     `json:"alert,omitempty"`
	Session usecases.Snapshot `json:"session"`
}

func respond(c *fiber.Ctx, s *usecases.MapSession, alert *domain.Alert) error {
	return c.JSON(opResponse{Alert: alert, Session: s.Snapshot()})
}

// decodeBody unmarshals an optional JSON body into v.
func decodeBody(c *fiber.Ctx, v any) error {
	body := c.Body()
	if len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}
	return nil
}

// sessionHandler resolves the :id session before calling fn.
func sessionHandler(deps *Dependencies, fn func(c *fiber.Ctx, s *usecases.MapSession) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := deps.Sessions.Get(c.Params("id"))
		if err != nil {
			return writeError(c, err)
		}
		return fn(c, s)
	}
}

// deviceContext attaches the device position carried in the body to the
// request context.
func deviceContext(c *fiber.Ctx) (context.Context, error) {
	var dp devicePosition
	if err := decodeBody(c, &dp); err != nil {
		return nil, err
	}
	return withDevicePosition(c.UserContext(), dp), nil
}

// ListProjectsHandler returns all projects with offset/limit pagination.
func ListProjectsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		projects, err := deps.Projects.List(c.UserContext())
		if err != nil {
			return writeError(c, err)
		}

		pg := pageParams(c)
		items := page(projects, &pg)
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: items, Pagination: pg})
	}
}

// GetProjectHandler returns a project by id or slug.
func GetProjectHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := deps.Projects.GetByID(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(p)
	}
}

// ProjectsInBoundsHandler returns the projects inside south/west/north/east.
func ProjectsInBoundsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		b := domain.Bounds{
			South: c.QueryFloat("south", 0),
			West:  c.QueryFloat("west", 0),
			North: c.QueryFloat("north", 0),
			East:  c.QueryFloat("east", 0),
		}
		if c.Query("south") == "" || c.Query("west") == "" || c.Query("north") == "" || c.Query("east") == "" {
			return errBadRequest(c, "south, west, north and east are required")
		}
		projects, err := deps.Projects.InBounds(c.UserContext(), b)
		if err != nil {
			return writeError(c, err)
		}
		if projects == nil {
			projects = []domain.Project{}
		}
		return c.JSON(projects)
	}
}

// CreateSessionHandler opens a map session, optionally focused on one project.
func CreateSessionHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in usecases.CreateSessionInput
		if err := decodeBody(c, &in); err != nil {
			return writeError(c, err)
		}
		s, err := deps.Sessions.Create(c.UserContext(), in)
		if err != nil {
			return writeError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(s.Snapshot())
	}
}

// GetSessionHandler returns the current session snapshot.
func GetSessionHandler(deps *Dependencies) fiber.Handler {
	return sessionHandler(deps, func(c *fiber.Ctx, s *usecases.MapSession) error {
		return c.JSON(s.Snapshot())
	})
}

// DeleteSessionHandler ends a session.
func DeleteSessionHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := deps.Sessions.Delete(c.Params("id")); err != nil {
			return writeError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// AttachHandler creates the map canvas once the client has laid it out.
func AttachHandler(deps *Dependencies) fiber.Handler {
	return sessionHandler(deps, func(c *fiber.Ctx, s *usecases.MapSession) error {
		var in struct {
			Viewport domain.Viewport `json:"viewport"`
			Bounds   *domain.Bounds  `json:"bounds"`
		}
		if err := decodeBody(c, &in); err != nil {
			return writeError(c, err)
		}
		if in.Bounds != nil && !in.Bounds.Valid() {
			return errBadRequest(c, "bounds out of range")
		}
		s.Attach(c.UserContext(), in.Viewport, in.Bounds)
		return respond(c, s, nil)
	})
}

// IdleHandler reports the viewport the client settled on.
func IdleHandler(deps *Dependencies) fiber.Handler {
	return sessionHandler(deps, func(c *fiber.Ctx, s *usecases.MapSession) error {
		var in struct {
			Bounds domain.Bounds `json:"bounds"`
		}
		if err := decodeBody(c, &in); err != nil {
			return writeError(c, err)
		}
		changed, err := s.Idle(c.UserContext(), in.Bounds)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(fiber.Map{"changed": changed, "session": s.Snapshot()})
	})
}

// VisibleProjectsHandler returns the projects inside the current viewport.
func VisibleProjectsHandler(deps *Dependencies) fiber.Handler {
	return sessionHandler(deps, func(c *fiber.Ctx, s *usecases.MapSession) error {
		return c.JSON(s.Visible())
	})
}

// SelectProjectHandler handles a marker click.
func SelectProjectHandler(deps *Dependencies) fiber.Handler {
	return sessionHandler(deps, func(c *fiber.Ctx, s *usecases.MapSession) error {
		if err := s.SelectProject(c.UserContext(), c.Params("project")); err != nil {
			return writeError(c, err)
		}
		return respond(c, s, nil)
	})
}

// DrawerHandler opens or closes the project drawer.
func DrawerHandler(deps *Dependencies) fiber.Handler {
	return sessionHandler(deps, func(c *fiber.Ctx, s *usecases.MapSession) error {
		var in struct {
			Open *bool `json:"open"`
		}
		if err := decodeBody(c, &in); err != nil {
			return writeError(c, err)
		}
		if in.Open == nil {
			return errBadRequest(c, "open is required")
		}
		s.SetDrawerOpen(c.UserContext(), *in.Open)
		return respond(c, s, nil)
	})
}

// AutocompleteHandler returns place predictions for ?input=.
func AutocompleteHandler(deps *Dependencies) fiber.Handler {
	return sessionHandler(deps, func(c *fiber.Ctx, s *usecases.MapSession) error {
		input := c.Query("input")
		if len(input) > 200 {
			return errBadRequest(c, "input too long (max 200 characters)")
		}
		preds, err := s.Autocomplete(c.UserContext(), input)
		if err != nil {
			return writeError(c, err)
		}
		if preds == nil {
			preds = []domain.PlacePrediction{}
		}
		return c.JSON(preds)
	})
}

// SelectPlaceHandler resolves a prediction and holds it as the pending place.
func SelectPlaceHandler(deps *Dependencies) fiber.Handler {
	return sessionHandler(deps, func(c *fiber.Ctx, s *usecases.MapSession) error {
		var in struct {
			PlaceID string `json:"place_id"`
		}
		if err := decodeBody(c, &in); err != nil {
			return writeError(c, err)
		}
		if in.PlaceID == "" {
			return errBadRequest(c, "place_id is required")
		}
		place, err := s.SelectPlace(c.UserContext(), in.PlaceID)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(fiber.Map{"place": place, "session": s.Snapshot()})
	})
}

// ApplySearchHandler moves the map to the pending place.
func ApplySearchHandler(deps *Dependencies) fiber.Handler {
	return sessionHandler(deps, func(c *fiber.Ctx, s *usecases.MapSession) error {
		applied := s.ApplySearch(c.UserContext())
		return c.JSON(fiber.Map{"applied": applied, "session": s.Snapshot()})
	})
}
