package googlemaps

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/samirrijal/propertymap/internal/core/domain"
	"github.com/samirrijal/propertymap/internal/pkg/telemetry"
)

const detailsFields = "place_id,name,formatted_address,geometry,types"

// Autocomplete returns predictions for partial input. No match is an
// empty result, not an error.
func (c *Client) Autocomplete(ctx context.Context, input string) ([]domain.PlacePrediction, error) {
	q := url.Values{}
	q.Set("input", input)

	var resp autocompleteResponse
	if err := c.get(ctx, telemetry.SpanAutocomplete, "/maps/api/place/autocomplete/json", q, &resp); err != nil {
		if errors.Is(err, domain.ErrZeroResults) {
			return []domain.PlacePrediction{}, nil
		}
		return nil, err
	}
	out := make([]domain.PlacePrediction, 0, len(resp.Predictions))
	for _, p := range resp.Predictions {
		out = append(out, domain.PlacePrediction{PlaceID: p.PlaceID, Description: p.Description})
	}
	return out, nil
}

// Details resolves a place id.
func (c *Client) Details(ctx context.Context, placeID string) (*domain.Place, error) {
	q := url.Values{}
	q.Set("place_id", placeID)
	q.Set("fields", detailsFields)

	var resp detailsResponse
	if err := c.get(ctx, telemetry.SpanDetails, "/maps/api/place/details/json", q, &resp); err != nil {
		var se *StatusError
		if errors.As(err, &se) && (se.Status == statusNotFound || se.Status == "INVALID_REQUEST") {
			return nil, fmt.Errorf("place %s: %w", placeID, domain.ErrNotFound)
		}
		if errors.Is(err, domain.ErrZeroResults) {
			return nil, fmt.Errorf("place %s: %w", placeID, domain.ErrNotFound)
		}
		return nil, err
	}
	p := resp.Result.domain()
	return &p, nil
}

// NearbySearch finds places of a type around a point.
func (c *Client) NearbySearch(ctx context.Context, nq domain.NearbyQuery) ([]domain.Place, error) {
	q := url.Values{}
	q.Set("location", latLngParam(nq.Location))
	q.Set("radius", radiusParam(nq.Radius))
	if nq.Type != "" {
		q.Set("type", nq.Type)
	}

	var resp placesResponse
	if err := c.get(ctx, telemetry.SpanNearby, "/maps/api/place/nearbysearch/json", q, &resp); err != nil {
		return nil, err
	}
	return places(resp.Results), nil
}

// TextSearch finds places matching free text around a point.
func (c *Client) TextSearch(ctx context.Context, tq domain.TextQuery) ([]domain.Place, error) {
	q := url.Values{}
	q.Set("query", tq.Query)
	q.Set("location", latLngParam(tq.Location))
	q.Set("radius", radiusParam(tq.Radius))

	var resp placesResponse
	if err := c.get(ctx, telemetry.SpanTextSearch, "/maps/api/place/textsearch/json", q, &resp); err != nil {
		return nil, err
	}
	return places(resp.Results), nil
}

func places(results []placeResult) []domain.Place {
	out := make([]domain.Place, 0, len(results))
	for _, r := range results {
		out = append(out, r.domain())
	}
	return out
}
