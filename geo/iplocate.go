package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// IPLocator resolves approximate coordinates from the caller's IP via a
// public JSON endpoint. Different providers name the fields differently, so
// decoding accepts the common variants.
type IPLocator struct {
	endpoint   string
	httpClient *http.Client
}

var _ Locator = (*IPLocator)(nil)

// NewIPLocator builds a locator for one provider endpoint.
func NewIPLocator(endpoint string, timeout time.Duration) *IPLocator {
	return &IPLocator{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (l *IPLocator) Name() string { return l.endpoint }

func (l *IPLocator) Locate(ctx context.Context) (Coordinates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.endpoint, nil)
	if err != nil {
		return Coordinates{}, fmt.Errorf("ip locate: %w", err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return Coordinates{}, fmt.Errorf("ip locate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Coordinates{}, fmt.Errorf("ip locate: status %d", resp.StatusCode)
	}

	var out struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Lat       float64 `json:"lat"`
		Lon       float64 `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Coordinates{}, fmt.Errorf("ip locate: %w", err)
	}

	coords := Coordinates{Latitude: out.Latitude, Longitude: out.Longitude}
	if coords.IsZero() {
		coords = Coordinates{Latitude: out.Lat, Longitude: out.Lon}
	}
	if coords.IsZero() {
		return Coordinates{}, fmt.Errorf("ip locate: no coordinates in response")
	}
	return coords, nil
}
