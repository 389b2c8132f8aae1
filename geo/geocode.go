package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// HTTPGeocoder reverse-geocodes through a public JSON endpoint. The decode
// accepts both nominatim-style and bigdatacloud-style response shapes.
type HTTPGeocoder struct {
	endpoint   string
	httpClient *http.Client
}

var _ Geocoder = (*HTTPGeocoder)(nil)

// NewHTTPGeocoder builds a geocoder for one provider endpoint.
func NewHTTPGeocoder(endpoint string, timeout time.Duration) *HTTPGeocoder {
	return &HTTPGeocoder{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (g *HTTPGeocoder) Name() string { return g.endpoint }

func (g *HTTPGeocoder) Reverse(ctx context.Context, coords Coordinates) (Place, error) {
	query := url.Values{}
	query.Set("lat", fmt.Sprintf("%f", coords.Latitude))
	query.Set("lon", fmt.Sprintf("%f", coords.Longitude))
	query.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return Place{}, fmt.Errorf("reverse geocode: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return Place{}, fmt.Errorf("reverse geocode: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Place{}, fmt.Errorf("reverse geocode: status %d", resp.StatusCode)
	}

	var out struct {
		DisplayName string `json:"display_name"`
		Address     struct {
			City string `json:"city"`
			Town string `json:"town"`
		} `json:"address"`
		City     string `json:"city"`
		Locality string `json:"locality"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Place{}, fmt.Errorf("reverse geocode: %w", err)
	}

	place := Place{Address: out.DisplayName}
	switch {
	case out.Address.City != "":
		place.City = out.Address.City
	case out.Address.Town != "":
		place.City = out.Address.Town
	case out.City != "":
		place.City = out.City
	case out.Locality != "":
		place.City = out.Locality
	}

	if place.Address == "" && place.City == "" {
		return Place{}, fmt.Errorf("reverse geocode: empty result")
	}
	return place, nil
}
