package domain

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// FeatureCollection renders records as GeoJSON. Circles become a Point
// with a "radius" property in meters; rectangles become a closed polygon
// tagged with their kind so a reader can tell them apart.
func FeatureCollection(records []OverlayRecord) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, r := range records {
		shape, err := r.Shape()
		if err != nil {
			continue
		}
		var f *geojson.Feature
		switch s := shape.(type) {
		case Circle:
			f = geojson.NewFeature(s.Center.point())
			f.Properties["radius"] = s.Radius
		case Rectangle:
			b := s.Box
			f = geojson.NewFeature(orb.Polygon{orb.Ring{
				{b.West, b.South}, {b.East, b.South}, {b.East, b.North},
				{b.West, b.North}, {b.West, b.South},
			}})
		case Polygon:
			ring := make(orb.Ring, 0, len(s.Path)+1)
			for _, p := range s.Path {
				ring = append(ring, p.point())
			}
			ring = append(ring, s.Path[0].point())
			f = geojson.NewFeature(orb.Polygon{ring})
		case Polyline:
			line := make(orb.LineString, 0, len(s.Path))
			for _, p := range s.Path {
				line = append(line, p.point())
			}
			f = geojson.NewFeature(line)
		}
		f.Properties["kind"] = string(shape.Kind())
		fc.Append(f)
	}
	return fc
}
