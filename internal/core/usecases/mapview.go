package usecases

import (
	"context"

	"github.com/samirrijal/propertymap/internal/core/domain"
)

const (
	streetViewRadius = 100.0

	tiltedZoom = 18
	tiltedTilt = 45
	flatZoom   = 16
)

// SetMapView switches the base layer to roadmap.
func (s *MapSession) SetMapView() {
	s.setMapType(domain.MapTypeRoadmap)
}

// SetSatelliteView switches the base layer to satellite imagery.
func (s *MapSession) SetSatelliteView() {
	s.setMapType(domain.MapTypeSatellite)
}

func (s *MapSession) setMapType(t domain.MapType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.canvas != nil {
		s.canvas.camera.MapType = t
	}
}

// Set3DView toggles a tilted satellite view of the target. A second call
// returns to a flat roadmap.
func (s *MapSession) Set3DView() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.canvas == nil {
		return
	}

	s.is3D = !s.is3D
	zoom, tilt, mapType := flatZoom, 0, domain.MapTypeRoadmap
	if s.is3D {
		zoom, tilt, mapType = tiltedZoom, tiltedTilt, domain.MapTypeSatellite
	}

	center := s.canvas.camera.Center
	if loc, _, ok := s.target(); ok {
		center = loc
	}
	s.canvas.centerOn(center, zoom)
	s.canvas.camera.Tilt = tilt
	s.canvas.camera.MapType = mapType
}

// ToggleStreetView hides the panorama when visible, otherwise shows the
// nearest one within 100 m of the target.
func (s *MapSession) ToggleStreetView(ctx context.Context) *domain.Alert {
	s.mu.Lock()
	if s.canvas == nil {
		s.mu.Unlock()
		return nil
	}
	if s.canvas.streetView.Visible {
		s.canvas.streetView = domain.StreetView{}
		s.mu.Unlock()
		return nil
	}
	loc, _, ok := s.target()
	s.mu.Unlock()
	if !ok {
		return streetViewUnavailable()
	}

	if s.svc.StreetView == nil {
		return streetViewUnavailable()
	}
	pano, err := s.svc.StreetView.Nearest(ctx, loc, streetViewRadius)
	if err != nil {
		s.log.DebugContext(ctx, "street view lookup failed", "error", err)
		return streetViewUnavailable()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.canvas.streetView = domain.StreetView{Visible: true, PanoID: pano.PanoID, Position: pano.Location}
	return nil
}

func streetViewUnavailable() *domain.Alert {
	return raise(AlertStreetViewUnavailable, "Street View is not available at this location.")
}
