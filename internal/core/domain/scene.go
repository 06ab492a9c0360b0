package domain

// SceneKind names the operation that produced a scene.
type SceneKind string

const (
	SceneNavigation       SceneKind = "navigation"
	SceneNeighborhood     SceneKind = "neighborhood"
	SceneNeighborhoodView SceneKind = "neighborhood_view"
)

// MarkerRole distinguishes scene markers.
type MarkerRole string

const (
	RoleOrigin      MarkerRole = "origin"
	RoleDestination MarkerRole = "destination"
	RolePlace       MarkerRole = "place"
)

// Marker is a pin placed on the map by a scene.
type Marker struct {
	Role     MarkerRole `json:"role"`
	Position LatLng     `json:"position"`
	Title    string     `json:"title,omitempty"`
	Icon     string     `json:"icon,omitempty"`
	Category string     `json:"category,omitempty"`
	PlaceID  string     `json:"place_id,omitempty"`
	// Info is the info-window content shown when the marker is clicked.
	Info string `json:"info,omitempty"`
}

// RouteLine is a rendered route polyline.
type RouteLine struct {
	Path     []LatLng `json:"path"`
	Arrows   bool     `json:"arrows"`
	Distance int      `json:"distance_meters"`
	Duration int      `json:"duration_seconds"`
}

// Scene is the set of markers and route belonging to one navigation or
// neighborhood operation. Only one scene is ever live on a map.
type Scene struct {
	Generation  uint64     `json:"generation"`
	Kind        SceneKind  `json:"kind"`
	Category    Category   `json:"category,omitempty"`
	Origin      *Marker    `json:"origin,omitempty"`
	Destination *Marker    `json:"destination,omitempty"`
	Route       *RouteLine `json:"route,omitempty"`
	Places      []Marker   `json:"places,omitempty"`
}

// Markers returns every marker the scene owns.
func (s *Scene) Markers() []Marker {
	if s == nil {
		return nil
	}
	var out []Marker
	if s.Origin != nil {
		out = append(out, *s.Origin)
	}
	if s.Destination != nil {
		out = append(out, *s.Destination)
	}
	return append(out, s.Places...)
}
