package googlemaps

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/samirrijal/propertymap/internal/core/domain"
	"github.com/samirrijal/propertymap/internal/pkg/telemetry"
)

// Nearest looks up the closest outdoor panorama within radius meters.
func (c *Client) Nearest(ctx context.Context, location domain.LatLng, radius float64) (*domain.Panorama, error) {
	q := url.Values{}
	q.Set("location", latLngParam(location))
	q.Set("radius", radiusParam(radius))
	q.Set("source", "outdoor")

	var resp streetViewMetadata
	if err := c.get(ctx, telemetry.SpanStreetView, "/maps/api/streetview/metadata", q, &resp); err != nil {
		var se *StatusError
		if errors.Is(err, domain.ErrZeroResults) || (errors.As(err, &se) && se.Status == statusNotFound) {
			return nil, fmt.Errorf("%v: %w", location, domain.ErrNoPanorama)
		}
		return nil, err
	}
	return &domain.Panorama{PanoID: resp.PanoID, Location: resp.Location.domain()}, nil
}
