package googlemaps

import (
	"context"
	"fmt"
	"net/url"

	"github.com/twpayne/go-polyline"

	"github.com/samirrijal/propertymap/internal/core/domain"
	"github.com/samirrijal/propertymap/internal/pkg/telemetry"
)

// Route computes a route and decodes its overview polyline.
func (c *Client) Route(ctx context.Context, origin, destination domain.LatLng, mode domain.TravelMode) (*domain.Directions, error) {
	q := url.Values{}
	q.Set("origin", latLngParam(origin))
	q.Set("destination", latLngParam(destination))
	q.Set("mode", string(mode))

	var resp directionsResponse
	if err := c.get(ctx, telemetry.SpanDirections, "/maps/api/directions/json", q, &resp); err != nil {
		return nil, err
	}
	if len(resp.Routes) == 0 {
		return nil, domain.ErrZeroResults
	}
	r := resp.Routes[0]

	coords, _, err := polyline.DecodeCoords([]byte(r.OverviewPolyline.Points))
	if err != nil {
		return nil, fmt.Errorf("decode route polyline: %w", err)
	}
	path := make([]domain.LatLng, 0, len(coords))
	for _, pt := range coords {
		path = append(path, domain.LatLng{Lat: pt[0], Lng: pt[1]})
	}

	d := &domain.Directions{Path: path, Bounds: *r.Bounds.bounds()}
	for _, leg := range r.Legs {
		d.Distance += leg.Distance.Value
		d.Duration += leg.Duration.Value
	}
	return d, nil
}
