package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"wanderlust/internal/models"
)

// ErrNoResults is returned when the provider recognizes the query but
// finds no place for it. Callers surface it as a user-facing validation
// failure rather than a server error.
var ErrNoResults = errors.New("geocode: no results")

// Result is a resolved place.
type Result struct {
	PlaceName string
	Geometry  models.GeoPoint
}

// Geocoder resolves a human-readable place description to coordinates.
type Geocoder interface {
	Forward(ctx context.Context, query, country string) (Result, error)
}

const cacheTTL = 24 * time.Hour

// Mapbox calls the Mapbox forward-geocoding API. Successful lookups are
// cached in Redis when a client is configured.
type Mapbox struct {
	Token   string
	BaseURL string
	Client  *http.Client
	Cache   *redis.Client
}

func NewMapbox(token string, cache *redis.Client) *Mapbox {
	return &Mapbox{
		Token:   token,
		BaseURL: "https://api.mapbox.com",
		Client:  &http.Client{Timeout: 10 * time.Second},
		Cache:   cache,
	}
}

type mapboxResponse struct {
	Features []struct {
		PlaceName string          `json:"place_name"`
		Geometry  models.GeoPoint `json:"geometry"`
	} `json:"features"`
}

func (m *Mapbox) Forward(ctx context.Context, query, country string) (Result, error) {
	cacheKey := fmt.Sprintf("geocode:%s:%s", strings.ToLower(country), strings.ToLower(query))
	if m.Cache != nil {
		if cached, err := m.Cache.Get(ctx, cacheKey).Result(); err == nil {
			var result Result
			if err := json.Unmarshal([]byte(cached), &result); err == nil {
				return result, nil
			}
		}
	}

	endpoint := fmt.Sprintf("%s/geocoding/v5/mapbox.places/%s.json", m.BaseURL, url.PathEscape(query))
	params := url.Values{}
	params.Set("access_token", m.Token)
	params.Set("limit", "1")
	params.Set("language", "en")
	if country != "" {
		params.Set("country", strings.ToLower(country))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return Result{}, err
	}

	resp, err := m.Client.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("geocoding API returned status %d", resp.StatusCode)
	}

	var body mapboxResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Result{}, err
	}
	if len(body.Features) == 0 {
		return Result{}, ErrNoResults
	}

	result := Result{
		PlaceName: body.Features[0].PlaceName,
		Geometry:  body.Features[0].Geometry,
	}

	if m.Cache != nil {
		if data, err := json.Marshal(result); err == nil {
			if err := m.Cache.Set(ctx, cacheKey, data, cacheTTL).Err(); err != nil {
				logrus.WithError(err).Warn("failed to cache geocode result")
			}
		}
	}

	return result, nil
}
