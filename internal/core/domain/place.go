package domain

// Place is a point of interest resolved by the mapping service.
type Place struct {
	PlaceID  string   `json:"place_id"`
	Name     string   `json:"name"`
	Address  string   `json:"address,omitempty"`
	Location LatLng   `json:"location"`
	Viewport *Bounds  `json:"viewport,omitempty"`
	Types    []string `json:"types,omitempty"`
}

// PlacePrediction is one autocomplete suggestion.
type PlacePrediction struct {
	PlaceID     string `json:"place_id"`
	Description string `json:"description"`
}

// NearbyQuery searches by place type around a point.
type NearbyQuery struct {
	Location LatLng
	Radius   float64 // meters
	Type     string
}

// TextQuery searches by free-form text around a point.
type TextQuery struct {
	Query    string
	Location LatLng
	Radius   float64 // meters
}

// TravelMode selects the routing profile.
type TravelMode string

const TravelModeDriving TravelMode = "driving"

// Directions is a computed route.
type Directions struct {
	Path     []LatLng `json:"path"`
	Bounds   Bounds   `json:"bounds"`
	Distance int      `json:"distance_meters"`
	Duration int      `json:"duration_seconds"`
}

// Panorama is a street-level imagery location.
type Panorama struct {
	PanoID   string `json:"pano_id"`
	Location LatLng `json:"location"`
}
