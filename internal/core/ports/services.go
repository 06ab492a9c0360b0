package ports

import (
	"context"

	"github.com/samirrijal/propertymap/internal/core/domain"
)

// Geolocator resolves the visitor's current device position. It returns
// domain.ErrGeolocationDenied or domain.ErrGeolocationUnsupported when no
// position can be had.
type Geolocator interface {
	CurrentPosition(ctx context.Context) (domain.LatLng, error)
}

// DirectionsService computes routes.
type DirectionsService interface {
	Route(ctx context.Context, origin, destination domain.LatLng, mode domain.TravelMode) (*domain.Directions, error)
}

// PlacesService wraps place autocomplete, details and searches. Searches
// return domain.ErrZeroResults (or an empty slice) when nothing matched.
type PlacesService interface {
	Autocomplete(ctx context.Context, input string) ([]domain.PlacePrediction, error)
	Details(ctx context.Context, placeID string) (*domain.Place, error)
	NearbySearch(ctx context.Context, q domain.NearbyQuery) ([]domain.Place, error)
	TextSearch(ctx context.Context, q domain.TextQuery) ([]domain.Place, error)
}

// StreetViewService finds street-level panoramas. It returns
// domain.ErrNoPanorama when none exists within radius meters.
type StreetViewService interface {
	Nearest(ctx context.Context, location domain.LatLng, radius float64) (*domain.Panorama, error)
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}

// DrawerListener receives the outbound callbacks of a map session. Calls
// happen while the session is locked; implementations must not call back
// into the session.
type DrawerListener interface {
	DrawerChanged(ctx context.Context, sessionID string, data domain.DrawerData)
	MarkerClicked(ctx context.Context, sessionID, projectID string)
}
