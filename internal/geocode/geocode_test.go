package geocode_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"wanderlust/internal/geocode"
)

func newMapbox(serverURL string) *geocode.Mapbox {
	m := geocode.NewMapbox("test-token", nil)
	m.BaseURL = serverURL
	return m
}

func TestForward(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = map[string]string{
			"access_token": r.URL.Query().Get("access_token"),
			"limit":        r.URL.Query().Get("limit"),
			"country":      r.URL.Query().Get("country"),
		}
		fmt.Fprint(w, `{
			"features": [
				{
					"place_name": "Manali, Himachal Pradesh, India",
					"geometry": {"type": "Point", "coordinates": [77.1892, 32.2432]}
				}
			]
		}`)
	}))
	defer server.Close()

	result, err := newMapbox(server.URL).Forward(context.Background(), "Manali, India", "IN")
	if err != nil {
		t.Fatalf("Forward failed: %v", err)
	}

	if !strings.HasPrefix(gotPath, "/geocoding/v5/mapbox.places/") {
		t.Errorf("unexpected request path: %s", gotPath)
	}
	if gotQuery["access_token"] != "test-token" || gotQuery["limit"] != "1" || gotQuery["country"] != "in" {
		t.Errorf("unexpected query parameters: %v", gotQuery)
	}

	if result.Geometry.Type != "Point" {
		t.Errorf("expected a Point geometry, got %q", result.Geometry.Type)
	}
	if len(result.Geometry.Coordinates) != 2 || result.Geometry.Coordinates[0] != 77.1892 {
		t.Errorf("unexpected coordinates: %v", result.Geometry.Coordinates)
	}
	if result.PlaceName != "Manali, Himachal Pradesh, India" {
		t.Errorf("unexpected place name: %q", result.PlaceName)
	}
}

func TestForwardNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"features": []}`)
	}))
	defer server.Close()

	_, err := newMapbox(server.URL).Forward(context.Background(), "nowhere at all", "IN")
	if !errors.Is(err, geocode.ErrNoResults) {
		t.Fatalf("expected ErrNoResults, got %v", err)
	}
}

func TestForwardServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := newMapbox(server.URL).Forward(context.Background(), "Manali", "IN")
	if err == nil {
		t.Fatal("expected an error for a non-200 response")
	}
	if errors.Is(err, geocode.ErrNoResults) {
		t.Fatal("provider failure must not look like an empty result")
	}
}
