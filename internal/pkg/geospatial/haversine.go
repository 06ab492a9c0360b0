package geospatial

import "math"

// earthRadiusM is the mean Earth radius in meters.
const earthRadiusM = 6371008.8

// metersPerDegreeLat is the length of one degree of latitude.
const metersPerDegreeLat = 111320.0

// Haversine returns the great-circle distance in meters between two points.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	sinLat := math.Sin(toRad(lat2-lat1) / 2)
	sinLng := math.Sin(toRad(lng2-lng1) / 2)
	h := sinLat*sinLat + math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*sinLng*sinLng
	return 2 * earthRadiusM * math.Asin(math.Min(1, math.Sqrt(h)))
}

// BoundingBox returns the box enclosing a circle of radiusMeters around a
// point. Latitudes are clamped at the poles; near a pole the box spans all
// longitudes.
func BoundingBox(lat, lng, radiusMeters float64) (south, west, north, east float64) {
	latDelta := radiusMeters / metersPerDegreeLat
	south = math.Max(-90, lat-latDelta)
	north = math.Min(90, lat+latDelta)

	cos := math.Cos(toRad(lat))
	if cos < 1e-9 || radiusMeters/(metersPerDegreeLat*cos) >= 180 {
		return south, -180, north, 180
	}
	lngDelta := radiusMeters / (metersPerDegreeLat * cos)
	return south, lng - lngDelta, north, lng + lngDelta
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
