package googlemaps_test

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/samirrijal/propertymap/internal/adapters/googlemaps"
	"github.com/samirrijal/propertymap/internal/core/domain"
)

func newServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *googlemaps.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(handler))
	t.Cleanup(srv.Close)
	return googlemaps.New(srv.URL, "test-key", 5*time.Second)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestRoute_DecodesPolylineAndSumsLegs(t *testing.T) {
	var gotQuery map[string]string
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/maps/api/directions/json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotQuery = map[string]string{
			"origin":      r.URL.Query().Get("origin"),
			"destination": r.URL.Query().Get("destination"),
			"mode":        r.URL.Query().Get("mode"),
			"key":         r.URL.Query().Get("key"),
		}
		writeJSON(w, map[string]any{
			"status": "OK",
			"routes": []any{map[string]any{
				"bounds": map[string]any{
					"northeast": map[string]float64{"lat": 43.252, "lng": -120.2},
					"southwest": map[string]float64{"lat": 38.5, "lng": -126.453},
				},
				"overview_polyline": map[string]string{"points": "_p~iF~ps|U_ulLnnqC_mqNvxq`@"},
				"legs": []any{
					map[string]any{"distance": map[string]int{"value": 1000}, "duration": map[string]int{"value": 60}},
					map[string]any{"distance": map[string]int{"value": 500}, "duration": map[string]int{"value": 30}},
				},
			}},
		})
	})

	d, err := c.Route(context.Background(), domain.LatLng{Lat: 38.5, Lng: -120.2}, domain.LatLng{Lat: 43.252, Lng: -126.453}, domain.TravelModeDriving)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery["mode"] != "driving" || gotQuery["key"] != "test-key" || gotQuery["origin"] != "38.500000,-120.200000" {
		t.Errorf("unexpected query %v", gotQuery)
	}
	want := []domain.LatLng{{Lat: 38.5, Lng: -120.2}, {Lat: 40.7, Lng: -120.95}, {Lat: 43.252, Lng: -126.453}}
	if len(d.Path) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(d.Path))
	}
	for i, p := range want {
		if math.Abs(d.Path[i].Lat-p.Lat) > 1e-5 || math.Abs(d.Path[i].Lng-p.Lng) > 1e-5 {
			t.Errorf("point %d: expected %v, got %v", i, p, d.Path[i])
		}
	}
	if d.Distance != 1500 || d.Duration != 90 {
		t.Errorf("expected 1500 m / 90 s, got %d / %d", d.Distance, d.Duration)
	}
}

func TestRoute_ZeroResults(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"status": "ZERO_RESULTS", "routes": []any{}})
	})
	_, err := c.Route(context.Background(), domain.LatLng{}, domain.LatLng{Lat: 1, Lng: 1}, domain.TravelModeDriving)
	if !errors.Is(err, domain.ErrZeroResults) {
		t.Errorf("expected ErrZeroResults, got %v", err)
	}
}

func TestRoute_DeniedStatus(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"status": "REQUEST_DENIED", "error_message": "bad key"})
	})
	_, err := c.Route(context.Background(), domain.LatLng{}, domain.LatLng{Lat: 1, Lng: 1}, domain.TravelModeDriving)
	var se *googlemaps.StatusError
	if !errors.As(err, &se) || se.Status != "REQUEST_DENIED" || se.Message != "bad key" {
		t.Errorf("expected REQUEST_DENIED status error, got %v", err)
	}
}

func TestRoute_HTTPError(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	if _, err := c.Route(context.Background(), domain.LatLng{}, domain.LatLng{}, domain.TravelModeDriving); err == nil {
		t.Fatal("expected error")
	}
}

func TestNearbySearch(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("type") != "hospital" || q.Get("radius") != "2500" {
			t.Errorf("unexpected query %v", q)
		}
		writeJSON(w, map[string]any{
			"status": "OK",
			"results": []any{map[string]any{
				"place_id": "h1",
				"name":     "Ruby Hall Clinic",
				"vicinity": "Sassoon Road",
				"geometry": map[string]any{"location": map[string]float64{"lat": 18.53, "lng": 73.87}},
				"types":    []string{"hospital"},
			}},
		})
	})

	places, err := c.NearbySearch(context.Background(), domain.NearbyQuery{
		Location: domain.LatLng{Lat: 18.52, Lng: 73.85}, Radius: 2500, Type: "hospital",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(places) != 1 || places[0].PlaceID != "h1" || places[0].Address != "Sassoon Road" {
		t.Errorf("unexpected places %+v", places)
	}
	if places[0].Location != (domain.LatLng{Lat: 18.53, Lng: 73.87}) {
		t.Errorf("unexpected location %+v", places[0].Location)
	}
}

func TestTextSearch_ZeroResults(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("query") != "metro station" {
			t.Errorf("unexpected query %q", r.URL.Query().Get("query"))
		}
		writeJSON(w, map[string]any{"status": "ZERO_RESULTS", "results": []any{}})
	})
	_, err := c.TextSearch(context.Background(), domain.TextQuery{Query: "metro station", Radius: 5000})
	if !errors.Is(err, domain.ErrZeroResults) {
		t.Errorf("expected ErrZeroResults, got %v", err)
	}
}

func TestAutocomplete(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"status":      "OK",
			"predictions": []any{map[string]string{"place_id": "p1", "description": "Pune, Maharashtra, India"}},
		})
	})
	preds, err := c.Autocomplete(context.Background(), "pun")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(preds) != 1 || preds[0].PlaceID != "p1" {
		t.Errorf("unexpected predictions %+v", preds)
	}
}

func TestDetails_ViewportAndNotFound(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("place_id") == "missing" {
			writeJSON(w, map[string]any{"status": "NOT_FOUND"})
			return
		}
		writeJSON(w, map[string]any{
			"status": "OK",
			"result": map[string]any{
				"place_id":          "pune",
				"name":              "Pune",
				"formatted_address": "Pune, Maharashtra, India",
				"geometry": map[string]any{
					"location": map[string]float64{"lat": 18.52, "lng": 73.85},
					"viewport": map[string]any{
						"northeast": map[string]float64{"lat": 18.65, "lng": 74.0},
						"southwest": map[string]float64{"lat": 18.4, "lng": 73.7},
					},
				},
			},
		})
	})

	p, err := c.Details(context.Background(), "pune")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := domain.Bounds{South: 18.4, West: 73.7, North: 18.65, East: 74.0}
	if p.Viewport == nil || *p.Viewport != want {
		t.Errorf("expected viewport %+v, got %+v", want, p.Viewport)
	}

	if _, err := c.Details(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStreetView(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("radius") != "100" {
			t.Errorf("expected radius 100, got %s", r.URL.Query().Get("radius"))
		}
		if r.URL.Query().Get("location") == "0.000000,0.000000" {
			writeJSON(w, map[string]any{"status": "ZERO_RESULTS"})
			return
		}
		writeJSON(w, map[string]any{
			"status":   "OK",
			"pano_id":  "abc",
			"location": map[string]float64{"lat": 18.5201, "lng": 73.8502},
		})
	})

	pano, err := c.Nearest(context.Background(), domain.LatLng{Lat: 18.52, Lng: 73.85}, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pano.PanoID != "abc" {
		t.Errorf("expected pano abc, got %+v", pano)
	}

	if _, err := c.Nearest(context.Background(), domain.LatLng{}, 100); !errors.Is(err, domain.ErrNoPanorama) {
		t.Errorf("expected ErrNoPanorama, got %v", err)
	}
}
