package geospatial

import "math"

const (
	tileSize = 256.0
	// MaxZoom is the deepest zoom level the base map serves.
	MaxZoom = 21
	// metersPerPixelZ0 is the ground resolution at the equator at zoom 0.
	metersPerPixelZ0 = 156543.03392
)

// ZoomForBounds returns the largest integer zoom at which the box fits a
// width x height pixel viewport in Web Mercator.
func ZoomForBounds(south, west, north, east float64, width, height int) int {
	if width <= 0 || height <= 0 {
		return 0
	}

	latFraction := (mercatorLat(north) - mercatorLat(south)) / math.Pi
	lngDiff := east - west
	if lngDiff < 0 {
		lngDiff += 360
	}
	lngFraction := lngDiff / 360

	zoom := MaxZoom
	if z := zoomFor(float64(height), latFraction); z < zoom {
		zoom = z
	}
	if z := zoomFor(float64(width), lngFraction); z < zoom {
		zoom = z
	}
	if zoom < 0 {
		return 0
	}
	return zoom
}

// ViewportBounds returns the region visible in a width x height viewport
// centered on (lat, lon) at zoom.
func ViewportBounds(lat, lon float64, zoom, width, height int) (minLat, minLon, maxLat, maxLon float64) {
	mpp := metersPerPixelZ0 * math.Cos(toRad(lat)) / math.Pow(2, float64(zoom))
	halfW := float64(width) / 2 * mpp
	halfH := float64(height) / 2 * mpp

	latDelta := halfH / metersPerDegreeLat
	lonDelta := halfW / (metersPerDegreeLat * math.Cos(toRad(lat)))

	minLat, maxLat = math.Max(lat-latDelta, -85.05112878), math.Min(lat+latDelta, 85.05112878)
	minLon, maxLon = lon-lonDelta, lon+lonDelta
	if lonDelta >= 180 {
		minLon, maxLon = -180, 180
	}
	return minLat, wrapLon(minLon), maxLat, wrapLon(maxLon)
}

func mercatorLat(lat float64) float64 {
	sin := math.Sin(toRad(lat))
	radX2 := math.Log((1+sin)/(1-sin)) / 2
	return math.Max(math.Min(radX2, math.Pi), -math.Pi) / 2
}

func zoomFor(px, fraction float64) int {
	if fraction <= 0 {
		return MaxZoom
	}
	return int(math.Floor(math.Log(px/tileSize/fraction) / math.Ln2))
}

func wrapLon(lon float64) float64 {
	for lon > 180 {
		lon -= 360
	}
	for lon < -180 {
		lon += 360
	}
	return lon
}
