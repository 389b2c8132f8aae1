// Package geo acquires a best-effort location for profile and registration
// forms. Providers are ordered lists of independently fallible attempts,
// short-circuiting on first success; failure at any stage degrades to manual
// address entry and never blocks a flow.
package geo

import "context"

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// IsZero reports whether no coordinates were obtained.
func (c Coordinates) IsZero() bool {
	return c.Latitude == 0 && c.Longitude == 0
}

// Place is a resolved location. Address and City may be empty when only
// coordinates could be obtained.
type Place struct {
	Address     string
	City        string
	Coordinates Coordinates
}

// Locator produces coordinates from some source (device fix relayed by the
// browser, IP lookup, ...).
type Locator interface {
	Name() string
	Locate(ctx context.Context) (Coordinates, error)
}

// Geocoder turns coordinates back into an address.
type Geocoder interface {
	Name() string
	Reverse(ctx context.Context, coords Coordinates) (Place, error)
}
