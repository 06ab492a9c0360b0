package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/samirrijal/propertymap/internal/core/domain"
)

// Autocomplete returns place predictions for partial input.
func (s *MapSession) Autocomplete(ctx context.Context, input string) ([]domain.PlacePrediction, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("%w: empty search input", domain.ErrInvalidInput)
	}
	if s.svc.Places == nil {
		return nil, nil
	}
	return s.svc.Places.Autocomplete(ctx, input)
}

// SelectPlace resolves a prediction and holds it until ApplySearch. The
// camera does not move.
func (s *MapSession) SelectPlace(ctx context.Context, placeID string) (*domain.Place, error) {
	if placeID == "" {
		return nil, fmt.Errorf("%w: place id is required", domain.ErrInvalidInput)
	}
	if s.svc.Places == nil {
		return nil, fmt.Errorf("place %s: %w", placeID, domain.ErrNotFound)
	}
	place, err := s.svc.Places.Details(ctx, placeID)
	if err != nil {
		return nil, fmt.Errorf("place details: %w", err)
	}
	s.SetPendingPlace(place)
	return place, nil
}

// SetPendingPlace stores place as the search selection.
func (s *MapSession) SetPendingPlace(place *domain.Place) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if place == nil {
		s.pendingPlace = nil
		return
	}
	p := *place
	s.pendingPlace = &p
}

// ApplySearch moves the camera to the pending place and refilters the
// projects right away. It leaves focus mode. With no pending place it does
// nothing and reports false.
func (s *MapSession) ApplySearch(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	place := s.pendingPlace
	if place == nil {
		return false
	}
	if s.canvas == nil {
		s.canvas = newCanvas(domain.Viewport{})
		s.drawing.attach(s.canvas)
	}

	s.focusMode = false
	s.focused = nil
	s.selectedID = ""

	if place.Viewport != nil && place.Viewport.Valid() {
		s.canvas.fitBounds(*place.Viewport)
	} else {
		s.canvas.centerOn(place.Location, searchPointZoom)
	}
	s.refreshVisible(*s.canvas.camera.Bounds)

	if len(s.visible) == 0 {
		s.filterPanelOpen = true
		s.noResults = true
		s.drawerOpen = false
	} else {
		s.filterPanelOpen = false
		s.noResults = false
		s.drawerOpen = true
	}
	s.publishDrawer(ctx)
	s.pendingPlace = nil
	return true
}
