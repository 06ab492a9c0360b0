package usecases

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/samirrijal/propertymap/internal/core/domain"
)

// DrawingSession tracks user-drawn overlays on one map. At most one
// overlay is selected (editable) at a time. It is not safe for concurrent
// use; MapSession serializes access.
type DrawingSession struct {
	canvas   *Canvas
	overlays []*domain.Overlay
	selected *domain.Overlay
	armed    domain.OverlayKind
	redo     []*domain.Overlay
	newID    func() string
}

// NewDrawingSession returns a session with no map attached.
func NewDrawingSession() *DrawingSession {
	return &DrawingSession{newID: uuid.NewString}
}

func (d *DrawingSession) attach(c *Canvas) {
	d.canvas = c
}

// StartDrawing arms the next completed shape to be of the given kind.
func (d *DrawingSession) StartDrawing(kind domain.OverlayKind) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: unknown overlay kind %q", domain.ErrInvalidInput, kind)
	}
	if d.canvas == nil {
		return domain.ErrMapNotReady
	}
	d.armed = kind
	return nil
}

// Armed returns the kind the next shape will be, or "" when disarmed.
func (d *DrawingSession) Armed() domain.OverlayKind {
	return d.armed
}

func (d *DrawingSession) disarm() {
	d.armed = ""
}

// Complete adds a finished shape as a new, selected overlay and disarms
// drawing mode. The shape must match the armed kind.
func (d *DrawingSession) Complete(shape domain.Shape) (*domain.Overlay, error) {
	if d.canvas == nil {
		return nil, domain.ErrMapNotReady
	}
	if d.armed == "" {
		return nil, fmt.Errorf("%w: drawing mode is not armed", domain.ErrInvalidInput)
	}
	if shape.Kind() != d.armed {
		armed := d.armed
		d.disarm()
		return nil, fmt.Errorf("%w: armed for %s, got %s", domain.ErrInvalidInput, armed, shape.Kind())
	}
	d.disarm()

	ov := &domain.Overlay{ID: d.newID(), Shape: shape, Clickable: true}
	d.overlays = append(d.overlays, ov)
	d.redo = nil
	d.selectOverlay(ov)
	return ov, nil
}

// Select makes the overlay with id the editable one, deselecting any other.
func (d *DrawingSession) Select(id string) error {
	ov := d.Get(id)
	if ov == nil {
		return fmt.Errorf("overlay %s: %w", id, domain.ErrNotFound)
	}
	if !ov.Clickable {
		return fmt.Errorf("%w: overlay %s is locked", domain.ErrInvalidInput, id)
	}
	d.selectOverlay(ov)
	return nil
}

func (d *DrawingSession) selectOverlay(ov *domain.Overlay) {
	if d.selected != nil && d.selected != ov {
		d.selected.Editable = false
	}
	d.selected = ov
	ov.Editable = true
}

// ClearSelection deselects the editable overlay, if any.
func (d *DrawingSession) ClearSelection() {
	if d.selected != nil {
		d.selected.Editable = false
		d.selected = nil
	}
}

// Selected returns the editable overlay or nil.
func (d *DrawingSession) Selected() *domain.Overlay {
	return d.selected
}

// Reshape replaces the geometry of the selected overlay after the user
// edited it. Kind is fixed for the overlay's lifetime.
func (d *DrawingSession) Reshape(id string, shape domain.Shape) error {
	if d.selected == nil || d.selected.ID != id {
		return fmt.Errorf("%w: overlay %s is not being edited", domain.ErrInvalidInput, id)
	}
	if shape.Kind() != d.selected.Kind() {
		return fmt.Errorf("%w: cannot turn a %s into a %s", domain.ErrInvalidInput, d.selected.Kind(), shape.Kind())
	}
	d.selected.Shape = shape
	return nil
}

// DeleteSelected removes the selected overlay and returns it. It is a
// no-op returning nil when nothing is selected.
func (d *DrawingSession) DeleteSelected() *domain.Overlay {
	ov := d.selected
	if ov == nil {
		return nil
	}
	d.remove(ov)
	d.selected = nil
	ov.Editable = false
	return ov
}

// ClearAll removes every overlay and resets selection and history.
func (d *DrawingSession) ClearAll() {
	for _, ov := range d.overlays {
		ov.Editable = false
	}
	d.overlays = nil
	d.selected = nil
	d.redo = nil
}

// Undo removes the most recently drawn overlay onto the redo stack.
func (d *DrawingSession) Undo() *domain.Overlay {
	if len(d.overlays) == 0 {
		return nil
	}
	ov := d.overlays[len(d.overlays)-1]
	d.overlays = d.overlays[:len(d.overlays)-1]
	if d.selected == ov {
		d.selected = nil
		ov.Editable = false
	}
	d.redo = append(d.redo, ov)
	return ov
}

// Redo puts back the most recently undone overlay.
func (d *DrawingSession) Redo() *domain.Overlay {
	if len(d.redo) == 0 {
		return nil
	}
	ov := d.redo[len(d.redo)-1]
	d.redo = d.redo[:len(d.redo)-1]
	d.overlays = append(d.overlays, ov)
	return ov
}

// CanUndo and CanRedo report whether history is available.
func (d *DrawingSession) CanUndo() bool { return len(d.overlays) > 0 }
func (d *DrawingSession) CanRedo() bool { return len(d.redo) > 0 }

// Get returns the overlay with id, or nil.
func (d *DrawingSession) Get(id string) *domain.Overlay {
	for _, ov := range d.overlays {
		if ov.ID == id {
			return ov
		}
	}
	return nil
}

// Overlays returns the overlays in draw order.
func (d *DrawingSession) Overlays() []*domain.Overlay {
	return append([]*domain.Overlay(nil), d.overlays...)
}

// Serialize returns one record per overlay in draw order. With no map
// attached it returns nil.
func (d *DrawingSession) Serialize() []domain.OverlayRecord {
	if d.canvas == nil {
		return nil
	}
	out := make([]domain.OverlayRecord, 0, len(d.overlays))
	for _, ov := range d.overlays {
		out = append(out, ov.Record())
	}
	return out
}

// Restore replaces every overlay with those described by records.
// Malformed entries are skipped. With no map attached it does nothing.
func (d *DrawingSession) Restore(records []domain.OverlayRecord) (restored, skipped int) {
	if d.canvas == nil {
		return 0, 0
	}
	d.ClearAll()
	d.disarm()
	for _, rec := range records {
		shape, err := rec.Shape()
		if err != nil {
			skipped++
			continue
		}
		d.overlays = append(d.overlays, &domain.Overlay{ID: d.newID(), Shape: shape, Clickable: true})
		restored++
	}
	return restored, skipped
}

func (d *DrawingSession) remove(ov *domain.Overlay) {
	for i, o := range d.overlays {
		if o == ov {
			d.overlays = append(d.overlays[:i], d.overlays[i+1:]...)
			return
		}
	}
}
