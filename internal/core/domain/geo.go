package domain

import (
	"math"

	"github.com/paulmach/orb"
)

// LatLng is a geographic coordinate (WGS 84).
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the coordinate is within WGS 84 ranges.
func (p LatLng) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180 &&
		!math.IsNaN(p.Lat) && !math.IsNaN(p.Lng)
}

func (p LatLng) point() orb.Point {
	return orb.Point{p.Lng, p.Lat}
}

// Bounds is a geographic bounding box. West > East means the box crosses
// the antimeridian.
type Bounds struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

// BoundsOf returns the smallest box containing all points.
func BoundsOf(points ...LatLng) Bounds {
	if len(points) == 0 {
		return Bounds{}
	}
	b := orb.Bound{Min: points[0].point(), Max: points[0].point()}
	for _, p := range points[1:] {
		b = b.Extend(p.point())
	}
	return Bounds{South: b.Min.Lat(), West: b.Min.Lon(), North: b.Max.Lat(), East: b.Max.Lon()}
}

// Valid reports whether the box has sane latitude ordering and ranges.
func (b Bounds) Valid() bool {
	return b.South <= b.North &&
		LatLng{Lat: b.South, Lng: b.West}.Valid() &&
		LatLng{Lat: b.North, Lng: b.East}.Valid()
}

// CrossesAntimeridian reports whether the box wraps past 180°.
func (b Bounds) CrossesAntimeridian() bool {
	return b.West > b.East
}

// Contains reports whether p lies inside the box, edges included.
func (b Bounds) Contains(p LatLng) bool {
	if !b.CrossesAntimeridian() {
		return b.orb().Contains(p.point())
	}
	east := orb.Bound{Min: orb.Point{b.West, b.South}, Max: orb.Point{180, b.North}}
	west := orb.Bound{Min: orb.Point{-180, b.South}, Max: orb.Point{b.East, b.North}}
	return east.Contains(p.point()) || west.Contains(p.point())
}

// ContainsBounds reports whether o lies entirely inside b. A box crossing
// the antimeridian never fits inside one that does not.
func (b Bounds) ContainsBounds(o Bounds) bool {
	if o.South < b.South || o.North > b.North {
		return false
	}
	switch {
	case b.CrossesAntimeridian() == o.CrossesAntimeridian():
		return o.West >= b.West && o.East <= b.East
	case b.CrossesAntimeridian():
		// o sits wholly on one side of the antimeridian
		return o.West >= b.West || o.East <= b.East
	default:
		return false
	}
}

// Extend grows the box to include p.
func (b Bounds) Extend(p LatLng) Bounds {
	e := b.orb().Extend(p.point())
	return Bounds{South: e.Min.Lat(), West: e.Min.Lon(), North: e.Max.Lat(), East: e.Max.Lon()}
}

// Center returns the midpoint of the box.
func (b Bounds) Center() LatLng {
	lng := (b.West + b.East) / 2
	if b.CrossesAntimeridian() {
		lng = (b.West + b.East + 360) / 2
		if lng > 180 {
			lng -= 360
		}
	}
	return LatLng{Lat: (b.South + b.North) / 2, Lng: lng}
}

func (b Bounds) orb() orb.Bound {
	return orb.Bound{Min: orb.Point{b.West, b.South}, Max: orb.Point{b.East, b.North}}
}
