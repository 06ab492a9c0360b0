package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/propertymap/internal/core/domain"
	"github.com/samirrijal/propertymap/internal/core/usecases"
)

func decodeShape(c *fiber.Ctx) (domain.Shape, error) {
	var rec domain.OverlayRecord
	if err := decodeBody(c, &rec); err != nil {
		return nil, err
	}
	return rec.Shape()
}

// StartDrawingHandler arms a drawing tool.
func StartDrawingHandler(deps *Dependencies) fiber.Handler {
	return sessionHandler(deps, func(c *fiber.Ctx, s *usecases.MapSession) error {
		var in struct {
			Kind domain.OverlayKind `json:"kind"`
		}
		if err := decodeBody(c, &in); err != nil {
			return writeError(c, err)
		}
		if err := s.StartDrawing(in.Kind); err != nil {
			return writeError(c, err)
		}
		return respond(c, s, nil)
	})
}

// CompleteOverlayHandler finishes the shape the armed tool drew.
func CompleteOverlayHandler(deps *Dependencies) fiber.Handler {
	return sessionHandler(deps, func(c *fiber.Ctx, s *usecases.MapSession) error {
		shape, err := decodeShape(c)
		if err != nil {
			return writeError(c, err)
		}
		ov, err := s.CompleteOverlay(shape)
		if err != nil {
			return writeError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"overlay": usecases.OverlayView{ID: ov.ID, Editable: ov.Editable, Clickable: ov.Clickable, OverlayRecord: ov.Record()},
			"session": s.Snapshot(),
		})
	})
}

// ReshapeOverlayHandler replaces an overlay's geometry after a vertex edit.
func ReshapeOverlayHandler(deps *Dependencies) fiber.Handler {
	return sessionHandler(deps, func(c *fiber.Ctx, s *usecases.MapSession) error {
		shape, err := decodeShape(c)
		if err != nil {
			return writeError(c, err)
		}
		if err := s.ReshapeOverlay(c.Params("overlay"), shape); err != nil {
			return writeError(c, err)
		}
		return respond(c, s, nil)
	})
}

// SelectOverlayHandler makes one overlay the editable selection.
func SelectOverlayHandler(deps *Dependencies) fiber.Handler {
	return sessionHandler(deps, func(c *fiber.Ctx, s *usecases.MapSession) error {
		if err := s.SelectOverlay(c.Params("overlay")); err != nil {
			return writeError(c, err)
		}
		return respond(c, s, nil)
	})
}

// ClearSelectionHandler deselects the current overlay.
func ClearSelectionHandler(deps *Dependencies) fiber.Handler {
	return sessionHandler(deps, func(c *fiber.Ctx, s *usecases.MapSession) error {
		s.ClearSelection()
		return respond(c, s, nil)
	})
}

// DeleteSelectedHandler removes the selected overlay.
func DeleteSelectedHandler(deps *Dependencies) fiber.Handler {
	return sessionHandler(deps, func(c *fiber.Ctx, s *usecases.MapSession) error {
		deleted := s.DeleteSelected()
		return c.JSON(fiber.Map{"deleted": deleted, "session": s.Snapshot()})
	})
}

// ClearAllHandler removes every overlay.
func ClearAllHandler(deps *Dependencies) fiber.Handler {
	return sessionHandler(deps, func(c *fiber.Ctx, s *usecases.MapSession) error {
		s.ClearAll()
		return respond(c, s, nil)
	})
}

// SerializeHandler returns the overlays in their persisted form.
func SerializeHandler(deps *Dependencies) fiber.Handler {
	return sessionHandler(deps, func(c *fiber.Ctx, s *usecases.MapSession) error {
		records := s.Serialize()
		if records == nil {
			records = []domain.OverlayRecord{}
		}
		return c.JSON(records)
	})
}

// RestoreHandler replaces the overlays with the records in the body.
func RestoreHandler(deps *Dependencies) fiber.Handler {
	return sessionHandler(deps, func(c *fiber.Ctx, s *usecases.MapSession) error {
		var records []domain.OverlayRecord
		if err := decodeBody(c, &records); err != nil {
			return writeError(c, err)
		}
		restored, skipped := s.Restore(records)
		return c.JSON(fiber.Map{"restored": restored, "skipped": skipped, "session": s.Snapshot()})
	})
}

// ExportHandler returns the drawing as text (default) or ?format=geojson.
func ExportHandler(deps *Dependencies) fiber.Handler {
	return sessionHandler(deps, func(c *fiber.Ctx, s *usecases.MapSession) error {
		switch c.Query("format", "text") {
		case "geojson":
			c.Set(fiber.HeaderContentType, "application/geo+json")
			return c.JSON(s.ExportGeoJSON())
		case "text":
			text, err := s.ExportText()
			if err != nil {
				return writeError(c, err)
			}
			return c.JSON(fiber.Map{"text": text})
		default:
			return errBadRequest(c, "format must be text or geojson")
		}
	})
}

// ImportHandler restores overlays from previously exported text.
func ImportHandler(deps *Dependencies) fiber.Handler {
	return sessionHandler(deps, func(c *fiber.Ctx, s *usecases.MapSession) error {
		var in struct {
			Text string `json:"text"`
		}
		if err := decodeBody(c, &in); err != nil {
			return writeError(c, err)
		}
		restored, skipped, err := s.ImportText(in.Text)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(fiber.Map{"restored": restored, "skipped": skipped, "session": s.Snapshot()})
	})
}

type drawingKeyInput struct {
	Key string `json:"key"`
}

// SaveDrawingHandler stores the overlays under a key.
func SaveDrawingHandler(deps *Dependencies) fiber.Handler {
	return sessionHandler(deps, func(c *fiber.Ctx, s *usecases.MapSession) error {
		var in drawingKeyInput
		if err := decodeBody(c, &in); err != nil {
			return writeError(c, err)
		}
		key, n, err := s.SaveDrawing(c.UserContext(), in.Key)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(fiber.Map{"key": key, "saved": n})
	})
}

// LoadDrawingHandler restores the overlays stored under a key.
func LoadDrawingHandler(deps *Dependencies) fiber.Handler {
	return sessionHandler(deps, func(c *fiber.Ctx, s *usecases.MapSession) error {
		var in drawingKeyInput
		if err := decodeBody(c, &in); err != nil {
			return writeError(c, err)
		}
		restored, skipped, err := s.LoadDrawing(c.UserContext(), in.Key)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(fiber.Map{"restored": restored, "skipped": skipped, "session": s.Snapshot()})
	})
}

// UndoHandler removes the most recent overlay.
func UndoHandler(deps *Dependencies) fiber.Handler {
	return sessionHandler(deps, func(c *fiber.Ctx, s *usecases.MapSession) error {
		changed := s.UndoLastDrawing()
		return c.JSON(fiber.Map{"changed": changed, "session": s.Snapshot()})
	})
}

// RedoHandler brings back the most recently undone overlay.
func RedoHandler(deps *Dependencies) fiber.Handler {
	return sessionHandler(deps, func(c *fiber.Ctx, s *usecases.MapSession) error {
		changed := s.Redo()
		return c.JSON(fiber.Map{"changed": changed, "session": s.Snapshot()})
	})
}
