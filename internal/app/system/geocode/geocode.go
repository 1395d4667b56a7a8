// Package geocode resolves pickup addresses to coordinates using the
// OpenStreetMap Nominatim search API.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/makanenak/makanenak/internal/domain/models"
)

const DefaultBaseURL = "https://nominatim.openstreetmap.org"

// Client queries a Nominatim-compatible endpoint. A zero-lookup result
// is not an error: callers fall back to the default city center so a
// donation is never rejected for an unresolvable address.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

func New(baseURL string, log *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Lookup returns the coordinates of the first match for address, or
// (DefaultLat, DefaultLng, false) when the address cannot be resolved.
// Network and decode failures are logged, not surfaced.
func (c *Client) Lookup(ctx context.Context, address string) (lat, lng float64, found bool) {
	lat, lng = models.DefaultLat, models.DefaultLng
	if address == "" {
		return lat, lng, false
	}

	q := url.Values{}
	q.Set("format", "json")
	q.Set("limit", "1")
	q.Set("q", address)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		c.log.Warn("geocode request build failed", zap.Error(err))
		return lat, lng, false
	}
	req.Header.Set("User-Agent", "makanenak/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("geocode request failed", zap.String("address", address), zap.Error(err))
		return lat, lng, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn("geocode non-200 response", zap.Int("status", resp.StatusCode))
		return lat, lng, false
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		c.log.Warn("geocode decode failed", zap.Error(err))
		return lat, lng, false
	}
	if len(results) == 0 {
		return lat, lng, false
	}

	pLat, errLat := strconv.ParseFloat(results[0].Lat, 64)
	pLng, errLng := strconv.ParseFloat(results[0].Lon, 64)
	if errLat != nil || errLng != nil {
		c.log.Warn("geocode bad coordinates",
			zap.String("lat", results[0].Lat), zap.String("lon", results[0].Lon))
		return lat, lng, false
	}
	return pLat, pLng, true
}

type reverseResult struct {
	DisplayName string `json:"display_name"`
}

// Reverse returns the display address for a coordinate, or ("", false)
// when it cannot be resolved. Best-effort like Lookup: failures are
// logged, not surfaced.
func (c *Client) Reverse(ctx context.Context, lat, lng float64) (address string, found bool) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		c.log.Warn("reverse geocode request build failed", zap.Error(err))
		return "", false
	}
	req.Header.Set("User-Agent", "makanenak/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("reverse geocode request failed", zap.Error(err))
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn("reverse geocode non-200 response", zap.Int("status", resp.StatusCode))
		return "", false
	}

	var result reverseResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.log.Warn("reverse geocode decode failed", zap.Error(err))
		return "", false
	}
	if result.DisplayName == "" {
		return "", false
	}
	return result.DisplayName, true
}

// DirectionsURL builds a Google Maps directions link to the given point.
func DirectionsURL(lat, lng float64) string {
	return fmt.Sprintf("https://www.google.com/maps/dir/?api=1&destination=%g,%g", lat, lng)
}
