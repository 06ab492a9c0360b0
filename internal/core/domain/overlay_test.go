package domain_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/samirrijal/propertymap/internal/core/domain"
)

func TestOverlayRecord_ShapeRejectsMalformed(t *testing.T) {
	radius := 120.0
	zero := 0.0
	cases := []struct {
		name string
		rec  domain.OverlayRecord
	}{
		{"unknown kind", domain.OverlayRecord{Type: "hexagon"}},
		{"circle without center", domain.OverlayRecord{Type: domain.KindCircle, Radius: &radius}},
		{"circle zero radius", domain.OverlayRecord{Type: domain.KindCircle, Center: &domain.LatLng{Lat: 1, Lng: 1}, Radius: &zero}},
		{"rectangle without bounds", domain.OverlayRecord{Type: domain.KindRectangle}},
		{"polygon with two points", domain.OverlayRecord{Type: domain.KindPolygon, Path: []domain.LatLng{{Lat: 1, Lng: 1}, {Lat: 2, Lng: 2}}}},
		{"polyline out of range", domain.OverlayRecord{Type: domain.KindPolyline, Path: []domain.LatLng{{Lat: 91, Lng: 1}, {Lat: 2, Lng: 2}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.rec.Shape()
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestOverlayRecord_JSONShape(t *testing.T) {
	ov := &domain.Overlay{ID: "o1", Shape: domain.Circle{Center: domain.LatLng{Lat: 18.5, Lng: 73.8}, Radius: 250}}
	data, err := json.Marshal(ov.Record())
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if raw["type"] != "circle" {
		t.Errorf("expected type circle, got %v", raw["type"])
	}
	if _, ok := raw["path"]; ok {
		t.Error("circle record should not carry a path")
	}
	if _, ok := raw["bounds"]; ok {
		t.Error("circle record should not carry bounds")
	}
}

func TestFeatureCollection(t *testing.T) {
	radius := 300.0
	records := []domain.OverlayRecord{
		{Type: domain.KindCircle, Center: &domain.LatLng{Lat: 18.5, Lng: 73.8}, Radius: &radius},
		{Type: domain.KindRectangle, Bounds: &domain.Bounds{South: 18.4, West: 73.7, North: 18.6, East: 73.9}},
		{Type: domain.KindPolygon, Path: []domain.LatLng{{Lat: 18.5, Lng: 73.8}, {Lat: 18.6, Lng: 73.8}, {Lat: 18.6, Lng: 73.9}}},
		{Type: domain.KindPolyline, Path: []domain.LatLng{{Lat: 18.5, Lng: 73.8}, {Lat: 18.6, Lng: 73.9}}},
		{Type: "bogus"},
	}

	fc := domain.FeatureCollection(records)
	if len(fc.Features) != 4 {
		t.Fatalf("expected 4 features (bogus skipped), got %d", len(fc.Features))
	}

	wantGeom := []string{"Point", "Polygon", "Polygon", "LineString"}
	for i, f := range fc.Features {
		if got := f.Geometry.GeoJSONType(); got != wantGeom[i] {
			t.Errorf("feature %d: geometry %s, want %s", i, got, wantGeom[i])
		}
	}
	if fc.Features[0].Properties["radius"] != 300.0 {
		t.Errorf("expected circle radius property, got %v", fc.Features[0].Properties["radius"])
	}
	if fc.Features[1].Properties["kind"] != "rectangle" {
		t.Errorf("expected rectangle kind, got %v", fc.Features[1].Properties["kind"])
	}
}
