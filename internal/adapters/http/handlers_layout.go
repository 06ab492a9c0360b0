package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/propertymap/internal/core/domain"
	"github.com/samirrijal/propertymap/internal/core/usecases"
)

// SaveBoundaryHandler persists the drawn parcel outline.
func SaveBoundaryHandler(deps *Dependencies) fiber.Handler {
	return sessionHandler(deps, func(c *fiber.Ctx, s *usecases.MapSession) error {
		return respond(c, s, s.SaveBoundary(c.UserContext()))
	})
}

// EditBoundaryHandler makes the saved boundary editable again.
func EditBoundaryHandler(deps *Dependencies) fiber.Handler {
	return sessionHandler(deps, func(c *fiber.Ctx, s *usecases.MapSession) error {
		if err := s.EditBoundary(); err != nil {
			return writeError(c, err)
		}
		return respond(c, s, nil)
	})
}

// LockHandler restricts the camera and new plots to the boundary.
func LockHandler(deps *Dependencies) fiber.Handler {
	return sessionHandler(deps, func(c *fiber.Ctx, s *usecases.MapSession) error {
		if err := s.LockToBoundary(); err != nil {
			return writeError(c, err)
		}
		return respond(c, s, nil)
	})
}

// UnlockHandler lifts the boundary restriction.
func UnlockHandler(deps *Dependencies) fiber.Handler {
	return sessionHandler(deps, func(c *fiber.Ctx, s *usecases.MapSession) error {
		s.UnlockCanvas()
		return respond(c, s, nil)
	})
}

// GetPlotHandler returns one plot's attributes.
func GetPlotHandler(deps *Dependencies) fiber.Handler {
	return sessionHandler(deps, func(c *fiber.Ctx, s *usecases.MapSession) error {
		p, err := s.GetPlot(c.Params("overlay"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(p)
	})
}

// UpdatePlotHandler changes one attribute of a plot.
func UpdatePlotHandler(deps *Dependencies) fiber.Handler {
	return sessionHandler(deps, func(c *fiber.Ctx, s *usecases.MapSession) error {
		var in struct {
			Field domain.PlotField `json:"field"`
			Value string           `json:"value"`
		}
		if err := decodeBody(c, &in); err != nil {
			return writeError(c, err)
		}
		if err := s.UpdatePlotField(c.Params("overlay"), in.Field, in.Value); err != nil {
			return writeError(c, err)
		}
		p, err := s.GetPlot(c.Params("overlay"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(p)
	})
}

// ConfirmPlotHandler saves a plot's attributes.
func ConfirmPlotHandler(deps *Dependencies) fiber.Handler {
	return sessionHandler(deps, func(c *fiber.Ctx, s *usecases.MapSession) error {
		alert, err := s.ConfirmPlot(c.UserContext(), c.Params("overlay"))
		if err != nil {
			return writeError(c, err)
		}
		return respond(c, s, alert)
	})
}

// FetchLandmarksHandler searches for landmarks around the project.
func FetchLandmarksHandler(deps *Dependencies) fiber.Handler {
	return sessionHandler(deps, func(c *fiber.Ctx, s *usecases.MapSession) error {
		alert := s.FetchLandmarks(c.UserContext())
		return c.JSON(fiber.Map{"alert": alert, "landmarks": nonNil(s.GetAvailableLandmarks())})
	})
}

// ListLandmarksHandler returns every known landmark.
func ListLandmarksHandler(deps *Dependencies) fiber.Handler {
	return sessionHandler(deps, func(c *fiber.Ctx, s *usecases.MapSession) error {
		return c.JSON(nonNil(s.GetAvailableLandmarks()))
	})
}

// SelectedLandmarksHandler returns the landmarks picked for the project.
func SelectedLandmarksHandler(deps *Dependencies) fiber.Handler {
	return sessionHandler(deps, func(c *fiber.Ctx, s *usecases.MapSession) error {
		return c.JSON(nonNil(s.GetSelectedLandmarks()))
	})
}

// ToggleLandmarkHandler flips a landmark's selection.
func ToggleLandmarkHandler(deps *Dependencies) fiber.Handler {
	return sessionHandler(deps, func(c *fiber.Ctx, s *usecases.MapSession) error {
		if err := s.ToggleLandmarkSelection(c.Params("place")); err != nil {
			return writeError(c, err)
		}
		return c.JSON(nonNil(s.GetSelectedLandmarks()))
	})
}

// SaveLandmarksHandler persists the selected landmarks.
func SaveLandmarksHandler(deps *Dependencies) fiber.Handler {
	return sessionHandler(deps, func(c *fiber.Ctx, s *usecases.MapSession) error {
		return respond(c, s, s.SaveLandmarks(c.UserContext()))
	})
}

func nonNil(l []domain.Landmark) []domain.Landmark {
	if l == nil {
		return []domain.Landmark{}
	}
	return l
}
