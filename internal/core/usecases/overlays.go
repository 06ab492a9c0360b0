package usecases

import (
	"fmt"

	"github.com/samirrijal/propertymap/internal/core/domain"
)

// StartDrawing arms the drawing tool for one shape of kind.
func (s *MapSession) StartDrawing(kind domain.OverlayKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drawing.StartDrawing(kind)
}

// CompleteOverlay adds a finished shape. While the canvas is locked to a
// boundary the shape must fit inside it and is recorded as a plot.
func (s *MapSession) CompleteOverlay(shape domain.Shape) (*domain.Overlay, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.layout.locked {
		if err := s.insideBoundary(shape); err != nil {
			s.drawing.disarm()
			return nil, err
		}
	}
	ov, err := s.drawing.Complete(shape)
	if err != nil {
		return nil, err
	}
	if s.layout.locked {
		s.addPlot(ov)
	}
	cp := *ov
	return &cp, nil
}

func (s *MapSession) insideBoundary(shape domain.Shape) error {
	if !s.layout.boundary.Shape.Bounds().ContainsBounds(shape.Bounds()) {
		return fmt.Errorf("%w: plot must lie inside the project boundary", domain.ErrInvalidInput)
	}
	return nil
}

// SelectOverlay makes one overlay editable.
func (s *MapSession) SelectOverlay(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drawing.Select(id)
}

// ClearSelection deselects the editable overlay.
func (s *MapSession) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawing.ClearSelection()
}

// ReshapeOverlay stores an edited geometry for the selected overlay.
func (s *MapSession) ReshapeOverlay(id string, shape domain.Shape) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.layout.locked && s.layout.plots[id] != nil {
		if err := s.insideBoundary(shape); err != nil {
			return err
		}
	}
	return s.drawing.Reshape(id, shape)
}

// DeleteSelected removes the selected overlay. Deleting a plot drops its
// record; deleting the boundary unlocks the canvas.
func (s *MapSession) DeleteSelected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ov := s.drawing.DeleteSelected()
	if ov == nil {
		return false
	}
	delete(s.layout.plots, ov.ID)
	if s.layout.isBoundary(ov) {
		s.releaseBoundary()
	}
	return true
}

// ClearAll removes every overlay, plot and the boundary.
func (s *MapSession) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawing.ClearAll()
	s.resetLayout()
}

func (s *MapSession) resetLayout() {
	s.layout.clear()
	if s.canvas != nil {
		s.canvas.camera.Restriction = nil
	}
}

// Serialize returns the persisted form of every overlay.
func (s *MapSession) Serialize() []domain.OverlayRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drawing.Serialize()
}

// Restore replaces all overlays with records, skipping malformed ones.
func (s *MapSession) Restore(records []domain.OverlayRecord) (restored, skipped int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.restore(records)
}

func (s *MapSession) restore(records []domain.OverlayRecord) (restored, skipped int) {
	if s.canvas == nil {
		return 0, 0
	}
	restored, skipped = s.drawing.Restore(records)
	s.resetLayout()
	return restored, skipped
}
