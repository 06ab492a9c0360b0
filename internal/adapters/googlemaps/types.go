package googlemaps

import "github.com/samirrijal/propertymap/internal/core/domain"

// Wire types for the Maps Web Service JSON responses. Only the fields the
// map uses are decoded.

type latLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (l latLng) domain() domain.LatLng {
	return domain.LatLng{Lat: l.Lat, Lng: l.Lng}
}

type viewport struct {
	Northeast latLng `json:"northeast"`
	Southwest latLng `json:"southwest"`
}

func (v *viewport) bounds() *domain.Bounds {
	if v == nil {
		return nil
	}
	return &domain.Bounds{South: v.Southwest.Lat, West: v.Southwest.Lng, North: v.Northeast.Lat, East: v.Northeast.Lng}
}

type geometry struct {
	Location latLng    `json:"location"`
	Viewport *viewport `json:"viewport,omitempty"`
}

type placeResult struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	FormattedAddress string   `json:"formatted_address,omitempty"`
	Vicinity         string   `json:"vicinity,omitempty"`
	Geometry         geometry `json:"geometry"`
	Types            []string `json:"types"`
}

func (r placeResult) domain() domain.Place {
	addr := r.FormattedAddress
	if addr == "" {
		addr = r.Vicinity
	}
	return domain.Place{
		PlaceID:  r.PlaceID,
		Name:     r.Name,
		Address:  addr,
		Location: r.Geometry.Location.domain(),
		Viewport: r.Geometry.Viewport.bounds(),
		Types:    r.Types,
	}
}

type placesResponse struct {
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message,omitempty"`
	Results      []placeResult `json:"results"`
}

type detailsResponse struct {
	Status       string      `json:"status"`
	ErrorMessage string      `json:"error_message,omitempty"`
	Result       placeResult `json:"result"`
}

type autocompleteResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
	Predictions  []struct {
		PlaceID     string `json:"place_id"`
		Description string `json:"description"`
	} `json:"predictions"`
}

type directionsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
	Routes       []struct {
		Bounds           viewport `json:"bounds"`
		OverviewPolyline struct {
			Points string `json:"points"`
		} `json:"overview_polyline"`
		Legs []struct {
			Distance struct {
				Value int `json:"value"`
			} `json:"distance"`
			Duration struct {
				Value int `json:"value"`
			} `json:"duration"`
		} `json:"legs"`
	} `json:"routes"`
}

type streetViewMetadata struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
	PanoID       string `json:"pano_id"`
	Location     latLng `json:"location"`
}
