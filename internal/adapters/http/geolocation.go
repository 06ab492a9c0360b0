package http

import (
	"context"
	"fmt"

	"github.com/samirrijal/propertymap/internal/core/domain"
	"github.com/samirrijal/propertymap/internal/core/ports"
)

var _ ports.Geolocator = DeviceGeolocator{}

// devicePosition is what the browser reported alongside a request: either
// a position or the reason it could not get one.
type devicePosition struct {
	Position *domain.LatLng `json:"position,omitempty"`
	Error    string         `json:"geolocation_error,omitempty"`
}

type deviceKey struct{}

func withDevicePosition(ctx context.Context, dp devicePosition) context.Context {
	return context.WithValue(ctx, deviceKey{}, dp)
}

// DeviceGeolocator answers with the position the client attached to the
// current request. A request without one counts as a browser that has no
// geolocation.
type DeviceGeolocator struct{}

// CurrentPosition implements ports.Geolocator.
func (DeviceGeolocator) CurrentPosition(ctx context.Context) (domain.LatLng, error) {
	dp, _ := ctx.Value(deviceKey{}).(devicePosition)
	switch {
	case dp.Position != nil:
		if !dp.Position.Valid() {
			return domain.LatLng{}, fmt.Errorf("%w: device position out of range", domain.ErrInvalidInput)
		}
		return *dp.Position, nil
	case dp.Error == "denied":
		return domain.LatLng{}, domain.ErrGeolocationDenied
	case dp.Error == "" || dp.Error == "unsupported":
		return domain.LatLng{}, domain.ErrGeolocationUnsupported
	default:
		return domain.LatLng{}, fmt.Errorf("geolocation: %s", dp.Error)
	}
}
