// Package googlemaps calls the Google Maps Web Services for routing,
// places and street view metadata.
package googlemaps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/samirrijal/propertymap/internal/core/domain"
	"github.com/samirrijal/propertymap/internal/core/ports"
	"github.com/samirrijal/propertymap/internal/pkg/metrics"
	"github.com/samirrijal/propertymap/internal/pkg/telemetry"
)

var (
	_ ports.DirectionsService = (*Client)(nil)
	_ ports.PlacesService     = (*Client)(nil)
	_ ports.StreetViewService = (*Client)(nil)
)

const (
	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
	statusNotFound    = "NOT_FOUND"
)

// Client is a Maps Web Service client.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	tracer  trace.Tracer
}

// New creates a client. baseURL is normally https://maps.googleapis.com.
func New(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
		tracer:  telemetry.Tracer("propertymap/googlemaps"),
	}
}

// apiStatus is implemented by every response envelope.
type apiStatus interface {
	status() (string, string)
}

func (r *placesResponse) status() (string, string)       { return r.Status, r.ErrorMessage }
func (r *detailsResponse) status() (string, string)      { return r.Status, r.ErrorMessage }
func (r *autocompleteResponse) status() (string, string) { return r.Status, r.ErrorMessage }
func (r *directionsResponse) status() (string, string)   { return r.Status, r.ErrorMessage }
func (r *streetViewMetadata) status() (string, string)   { return r.Status, r.ErrorMessage }

// StatusError is a non-OK API status.
type StatusError struct {
	Status  string
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return "maps api status " + e.Status
	}
	return fmt.Sprintf("maps api status %s: %s", e.Status, e.Message)
}

// get issues one GET against path and decodes the response into out. The
// returned error is nil only for status OK; ZERO_RESULTS maps to
// domain.ErrZeroResults.
func (c *Client) get(ctx context.Context, span, path string, q url.Values, out apiStatus) error {
	ctx, sp := c.tracer.Start(ctx, span)
	defer sp.End()
	started := time.Now()

	q.Set("key", c.apiKey)
	u := c.baseURL + path + "?" + q.Encode()

	status, err := c.do(ctx, u, out)
	metrics.ObserveMapsCall(span, strings.ToLower(status), started)
	sp.SetAttributes(attribute.String("maps.status", status))
	if err != nil {
		sp.RecordError(err)
		sp.SetStatus(codes.Error, status)
	}
	return err
}

func (c *Client) do(ctx context.Context, u string, out apiStatus) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "transport_error", fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		// the url carries the api key
		if ue, ok := err.(*url.Error); ok {
			err = ue.Err
		}
		return "transport_error", fmt.Errorf("maps request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "http_" + strconv.Itoa(resp.StatusCode), fmt.Errorf("maps request: HTTP %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return "decode_error", fmt.Errorf("decode maps response: %w", err)
	}

	status, msg := out.status()
	switch status {
	case statusOK:
		return status, nil
	case statusZeroResults:
		return status, domain.ErrZeroResults
	default:
		return status, &StatusError{Status: status, Message: msg}
	}
}

func latLngParam(p domain.LatLng) string {
	return strconv.FormatFloat(p.Lat, 'f', 6, 64) + "," + strconv.FormatFloat(p.Lng, 'f', 6, 64)
}

func radiusParam(m float64) string {
	return strconv.FormatFloat(m, 'f', 0, 64)
}
