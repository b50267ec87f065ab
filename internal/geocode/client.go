package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"halalbites/internal/cache"
	"halalbites/internal/httperr"
)

// Client queries the Nominatim (OpenStreetMap) geocoding API. The service is
// free and rate-limited by provider policy, so results are cached and the
// worker keeps its request volume low.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *cache.Client
}

func NewClient(cache *cache.Client) *Client {
	base := os.Getenv("NOMINATIM_BASE_URL")
	if base == "" {
		base = "https://nominatim.openstreetmap.org"
	}
	return &Client{
		baseURL: base,
		http:    &http.Client{Timeout: 10 * time.Second},
		cache:   cache,
	}
}

// NewClientWith is used by tests to point at a stub server.
func NewClientWith(baseURL string, c *cache.Client) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		cache:   c,
	}
}

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Search geocodes an address. found=false with a nil error means the provider
// returned zero results; callers proceed with lat=0,lng=0 flagged for
// follow-up instead of failing.
func (c *Client) Search(ctx context.Context, address string) (float64, float64, bool, error) {
	if address == "" {
		return 0, 0, false, nil
	}

	cacheKey := "geocode:search:" + address
	if raw := c.cache.Get(ctx, cacheKey); raw != nil {
		var cached struct {
			Lat, Lng float64
			Found    bool
		}
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached.Lat, cached.Lng, cached.Found, nil
		}
	}

	endpoint := fmt.Sprintf(
		"%s/search?format=json&q=%s&limit=1",
		c.baseURL,
		url.QueryEscape(address),
	)

	results, err := c.fetch(ctx, endpoint)
	if err != nil {
		return 0, 0, false, err
	}

	lat, lng, found := 0.0, 0.0, false
	if len(results) > 0 {
		plat, errLat := strconv.ParseFloat(results[0].Lat, 64)
		plng, errLng := strconv.ParseFloat(results[0].Lon, 64)
		if errLat == nil && errLng == nil {
			lat, lng, found = plat, plng, true
		}
	}

	if raw, err := json.Marshal(struct {
		Lat, Lng float64
		Found    bool
	}{lat, lng, found}); err == nil {
		c.cache.Set(ctx, cacheKey, raw, 7*24*time.Hour)
	}
	return lat, lng, found, nil
}

// Reverse resolves coordinates to a display address.
func (c *Client) Reverse(ctx context.Context, lat, lng float64) (string, error) {
	endpoint := fmt.Sprintf(
		"%s/reverse?format=json&lat=%f&lon=%f",
		c.baseURL, lat, lng,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", httperr.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: reverse status %d", httperr.ErrUpstream, resp.StatusCode)
	}

	var result searchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: %v", httperr.ErrUpstream, err)
	}
	return result.DisplayName, nil
}

// Nominatim usage policy requires an identifying User-Agent.
const userAgent = "halalbites/1.0"

func (c *Client) fetch(ctx context.Context, endpoint string) ([]searchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", httperr.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: geocode status %d", httperr.ErrUpstream, resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("%w: %v", httperr.ErrUpstream, err)
	}
	return results, nil
}
