package domain

// MapType is the base layer.
type MapType string

const (
	MapTypeRoadmap   MapType = "roadmap"
	MapTypeSatellite MapType = "satellite"
)

// Viewport is the rendered map size in CSS pixels.
type Viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Camera is the live camera of a map.
type Camera struct {
	Center  LatLng  `json:"center"`
	Zoom    int     `json:"zoom"`
	Tilt    int     `json:"tilt"`
	MapType MapType `json:"map_type"`
	// Bounds is the last visible region reported by the client or fitted
	// by the service.
	Bounds *Bounds `json:"bounds,omitempty"`
	// Restriction keeps panning inside a region (layout editor lock).
	Restriction *Bounds `json:"restriction,omitempty"`
}

// StreetView is the street-level panorama state.
type StreetView struct {
	Visible  bool   `json:"visible"`
	PanoID   string `json:"pano_id,omitempty"`
	Position LatLng `json:"position"`
}
