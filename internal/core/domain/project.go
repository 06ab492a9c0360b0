package domain

import "time"

// Project is a property listing as the map sees it.
type Project struct {
	ID            string    `json:"id"`
	Slug          string    `json:"slug,omitempty"`
	Name          string    `json:"name"`
	Address       string    `json:"address,omitempty"`
	CoverImageURL string    `json:"cover_image_url,omitempty"`
	Latitude      *float64  `json:"latitude,omitempty"`
	Longitude     *float64  `json:"longitude,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Location returns the project's coordinate. ok is false when either
// latitude or longitude is missing or out of range.
func (p Project) Location() (LatLng, bool) {
	if p.Latitude == nil || p.Longitude == nil {
		return LatLng{}, false
	}
	loc := LatLng{Lat: *p.Latitude, Lng: *p.Longitude}
	return loc, loc.Valid()
}

// DrawerData is what the project drawer renders: the visible projects,
// the highlighted one, and whether the drawer is open.
type DrawerData struct {
	Projects   []Project `json:"projects"`
	SelectedID string    `json:"selected_id,omitempty"`
	Open       bool      `json:"open"`
}
