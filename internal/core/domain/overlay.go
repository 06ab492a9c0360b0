package domain

import (
	"fmt"
	"math"

	"github.com/samirrijal/propertymap/internal/pkg/geospatial"
)

// OverlayKind tags the variant of a drawn shape.
type OverlayKind string

const (
	KindPolygon   OverlayKind = "polygon"
	KindRectangle OverlayKind = "rectangle"
	KindCircle    OverlayKind = "circle"
	KindPolyline  OverlayKind = "polyline"
)

// Valid reports whether k names a known overlay kind.
func (k OverlayKind) Valid() bool {
	switch k {
	case KindPolygon, KindRectangle, KindCircle, KindPolyline:
		return true
	}
	return false
}

// Shape is the geometry of a drawn overlay. The set of implementations is
// closed: Circle, Rectangle, Polygon and Polyline.
type Shape interface {
	Kind() OverlayKind
	Bounds() Bounds
	record() OverlayRecord
}

// Circle is a center and a radius in meters.
type Circle struct {
	Center LatLng  `json:"center"`
	Radius float64 `json:"radius"`
}

func (Circle) Kind() OverlayKind { return KindCircle }

// Bounds approximates the circle's box on a spherical earth.
func (c Circle) Bounds() Bounds {
	s, w, n, e := geospatial.BoundingBox(c.Center.Lat, c.Center.Lng, c.Radius)
	return Bounds{South: s, West: w, North: n, East: e}
}

func (c Circle) record() OverlayRecord {
	center, radius := c.Center, c.Radius
	return OverlayRecord{Type: KindCircle, Center: &center, Radius: &radius}
}

// Rectangle is an axis-aligned box.
type Rectangle struct {
	Box Bounds `json:"bounds"`
}

func (Rectangle) Kind() OverlayKind { return KindRectangle }
func (r Rectangle) Bounds() Bounds  { return r.Box }

func (r Rectangle) record() OverlayRecord {
	box := r.Box
	return OverlayRecord{Type: KindRectangle, Bounds: &box}
}

// Polygon is a closed ring; the closing point is implicit.
type Polygon struct {
	Path []LatLng `json:"path"`
}

func (Polygon) Kind() OverlayKind { return KindPolygon }
func (p Polygon) Bounds() Bounds  { return BoundsOf(p.Path...) }

func (p Polygon) record() OverlayRecord {
	return OverlayRecord{Type: KindPolygon, Path: append([]LatLng(nil), p.Path...)}
}

// Polyline is an open path.
type Polyline struct {
	Path []LatLng `json:"path"`
}

func (Polyline) Kind() OverlayKind { return KindPolyline }
func (p Polyline) Bounds() Bounds  { return BoundsOf(p.Path...) }

func (p Polyline) record() OverlayRecord {
	return OverlayRecord{Type: KindPolyline, Path: append([]LatLng(nil), p.Path...)}
}

// Overlay is a drawn shape placed on the map.
type Overlay struct {
	ID        string `json:"id"`
	Shape     Shape  `json:"-"`
	Editable  bool   `json:"editable"`
	Clickable bool   `json:"clickable"`
}

// Kind returns the variant tag of the overlay's shape.
func (o *Overlay) Kind() OverlayKind {
	return o.Shape.Kind()
}

// Record returns the persisted form of the overlay.
func (o *Overlay) Record() OverlayRecord {
	return o.Shape.record()
}

// OverlayRecord is the flat, persisted form of an overlay: a kind tag plus
// only the geometry needed to rebuild it.
type OverlayRecord struct {
	Type   OverlayKind `json:"type"`
	Center *LatLng     `json:"center,omitempty"`
	Radius *float64    `json:"radius,omitempty"`
	Bounds *Bounds     `json:"bounds,omitempty"`
	Path   []LatLng    `json:"path,omitempty"`
}

// Shape rebuilds the geometry described by the record.
func (r OverlayRecord) Shape() (Shape, error) {
	switch r.Type {
	case KindCircle:
		if r.Center == nil || r.Radius == nil {
			return nil, fmt.Errorf("%w: circle needs center and radius", ErrInvalidInput)
		}
		if !r.Center.Valid() || *r.Radius <= 0 || math.IsNaN(*r.Radius) {
			return nil, fmt.Errorf("%w: circle geometry out of range", ErrInvalidInput)
		}
		return Circle{Center: *r.Center, Radius: *r.Radius}, nil
	case KindRectangle:
		if r.Bounds == nil || !r.Bounds.Valid() {
			return nil, fmt.Errorf("%w: rectangle needs valid bounds", ErrInvalidInput)
		}
		return Rectangle{Box: *r.Bounds}, nil
	case KindPolygon:
		if err := validPath(r.Path, 3); err != nil {
			return nil, fmt.Errorf("polygon: %w", err)
		}
		return Polygon{Path: append([]LatLng(nil), r.Path...)}, nil
	case KindPolyline:
		if err := validPath(r.Path, 2); err != nil {
			return nil, fmt.Errorf("polyline: %w", err)
		}
		return Polyline{Path: append([]LatLng(nil), r.Path...)}, nil
	default:
		return nil, fmt.Errorf("%w: unknown overlay type %q", ErrInvalidInput, r.Type)
	}
}

func validPath(path []LatLng, minPoints int) error {
	if len(path) < minPoints {
		return fmt.Errorf("%w: need at least %d points, got %d", ErrInvalidInput, minPoints, len(path))
	}
	for _, p := range path {
		if !p.Valid() {
			return fmt.Errorf("%w: point %v out of range", ErrInvalidInput, p)
		}
	}
	return nil
}
