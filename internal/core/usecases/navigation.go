package usecases

import (
	"context"
	"errors"

	"github.com/samirrijal/propertymap/internal/core/domain"
	"github.com/samirrijal/propertymap/internal/pkg/metrics"
)

// Alert codes raised by fail-soft operations.
const (
	AlertGeolocationUnsupported = "geolocation_unsupported"
	AlertStreetViewUnavailable  = "street_view_unavailable"
	AlertBoundaryMissing        = "boundary_missing"
	AlertBoundarySaveFailed     = "boundary_save_failed"
	AlertLandmarkSaveFailed     = "landmark_save_failed"
	AlertPlotSaveFailed         = "plot_save_failed"
	AlertProjectRequired        = "project_required"
)

func raise(code, message string) *domain.Alert {
	metrics.AlertsRaised.WithLabelValues(code).Inc()
	return &domain.Alert{Code: code, Message: message}
}

// GetDirections draws a driving route from the visitor's position to the
// target. The previous scene is cleared immediately. A denied geolocation
// draws nothing and raises nothing.
func (s *MapSession) GetDirections(ctx context.Context) *domain.Alert {
	s.mu.Lock()
	gen := s.scenes.begin(domain.SceneNavigation)
	dest, name, ok := s.target()
	s.mu.Unlock()
	if !ok {
		s.log.DebugContext(ctx, "directions skipped, no target")
		return nil
	}

	origin, alert := s.locate(ctx)
	if origin == nil {
		return alert
	}

	dir, err := s.route(ctx, *origin, dest)
	if err != nil {
		s.log.WarnContext(ctx, "directions request failed", "error", err)
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.scenes.live(gen, domain.SceneNavigation) {
		return nil
	}
	s.scenes.commit(&domain.Scene{
		Generation:  gen,
		Kind:        domain.SceneNavigation,
		Origin:      &domain.Marker{Role: domain.RoleOrigin, Position: *origin, Title: "Your location"},
		Destination: &domain.Marker{Role: domain.RoleDestination, Position: dest, Title: name},
		Route:       routeLine(dir, false),
	})
	if s.canvas != nil {
		s.canvas.fitBounds(domain.BoundsOf(*origin, dest))
	}
	return nil
}

// locate asks the geolocator for the visitor's position. A nil position
// with a nil alert means geolocation was denied or failed silently.
func (s *MapSession) locate(ctx context.Context) (*domain.LatLng, *domain.Alert) {
	if s.svc.Geolocator == nil {
		return nil, raise(AlertGeolocationUnsupported, "Geolocation is not supported by this browser.")
	}
	pos, err := s.svc.Geolocator.CurrentPosition(ctx)
	switch {
	case err == nil:
		return &pos, nil
	case errors.Is(err, domain.ErrGeolocationUnsupported):
		return nil, raise(AlertGeolocationUnsupported, "Geolocation is not supported by this browser.")
	case errors.Is(err, domain.ErrGeolocationDenied):
		s.log.DebugContext(ctx, "geolocation denied")
		return nil, nil
	default:
		s.log.WarnContext(ctx, "geolocation failed", "error", err)
		return nil, nil
	}
}

func (s *MapSession) route(ctx context.Context, origin, dest domain.LatLng) (*domain.Directions, error) {
	if s.svc.Directions == nil {
		return nil, errors.New("no directions service configured")
	}
	return s.svc.Directions.Route(ctx, origin, dest, domain.TravelModeDriving)
}

func routeLine(d *domain.Directions, arrows bool) *domain.RouteLine {
	return &domain.RouteLine{
		Path:     append([]domain.LatLng(nil), d.Path...),
		Arrows:   arrows,
		Distance: d.Distance,
		Duration: d.Duration,
	}
}
