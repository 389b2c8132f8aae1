package geo_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lifelinkhq/donor-portal/geo"
	apperrors "github.com/lifelinkhq/donor-portal/internal/errors"
)

var testCoords = geo.Coordinates{Latitude: 53.8, Longitude: -1.55}

// fakeLocator is a scripted Locator that counts its calls.
type fakeLocator struct {
	name   string
	coords geo.Coordinates
	err    error
	calls  int
}

func (f *fakeLocator) Name() string { return f.name }

func (f *fakeLocator) Locate(context.Context) (geo.Coordinates, error) {
	f.calls++
	return f.coords, f.err
}

// fakeGeocoder is a scripted Geocoder.
type fakeGeocoder struct {
	name  string
	place geo.Place
	err   error
	calls int
}

func (f *fakeGeocoder) Name() string { return f.name }

func (f *fakeGeocoder) Reverse(context.Context, geo.Coordinates) (geo.Place, error) {
	f.calls++
	return f.place, f.err
}

func TestFirstLocation(t *testing.T) {
	t.Run("first success short-circuits the chain", func(t *testing.T) {
		first := &fakeLocator{name: "first", coords: testCoords}
		second := &fakeLocator{name: "second", coords: geo.Coordinates{Latitude: 1, Longitude: 1}}

		coords, err := geo.FirstLocation(context.Background(), first, second)
		require.NoError(t, err)
		require.Equal(t, testCoords, coords)
		require.Zero(t, second.calls)
	})

	t.Run("failures fall through in order", func(t *testing.T) {
		first := &fakeLocator{name: "first", err: fmt.Errorf("timeout")}
		second := &fakeLocator{name: "second"} // zero coords count as no result
		third := &fakeLocator{name: "third", coords: testCoords}

		coords, err := geo.FirstLocation(context.Background(), first, second, third)
		require.NoError(t, err)
		require.Equal(t, testCoords, coords)
		require.Equal(t, 1, first.calls)
		require.Equal(t, 1, second.calls)
	})

	t.Run("all providers failing yields ErrNoLocation", func(t *testing.T) {
		first := &fakeLocator{name: "first", err: fmt.Errorf("down")}
		second := &fakeLocator{name: "second", err: fmt.Errorf("down")}

		_, err := geo.FirstLocation(context.Background(), first, second)
		require.ErrorIs(t, err, apperrors.ErrNoLocation)
	})

	t.Run("no providers yields ErrNoLocation", func(t *testing.T) {
		_, err := geo.FirstLocation(context.Background())
		require.ErrorIs(t, err, apperrors.ErrNoLocation)
	})
}

func TestResolve(t *testing.T) {
	t.Run("coordinates plus address when everything works", func(t *testing.T) {
		locator := &fakeLocator{name: "ip", coords: testCoords}
		geocoder := &fakeGeocoder{name: "reverse", place: geo.Place{Address: "1 High Street", City: "Leeds"}}
		resolver := geo.NewResolver([]geo.Locator{locator}, []geo.Geocoder{geocoder})

		place := resolver.Resolve(context.Background())
		require.Equal(t, "Leeds", place.City)
		require.Equal(t, testCoords, place.Coordinates)
	})

	t.Run("coordinates only when every geocoder fails", func(t *testing.T) {
		locator := &fakeLocator{name: "ip", coords: testCoords}
		bad := &fakeGeocoder{name: "reverse", err: fmt.Errorf("rate limited")}
		resolver := geo.NewResolver([]geo.Locator{locator}, []geo.Geocoder{bad})

		place := resolver.Resolve(context.Background())
		require.Empty(t, place.Address)
		require.Empty(t, place.City)
		require.Equal(t, testCoords, place.Coordinates)
	})

	t.Run("geocoder fallback runs in order", func(t *testing.T) {
		locator := &fakeLocator{name: "ip", coords: testCoords}
		bad := &fakeGeocoder{name: "primary", err: fmt.Errorf("down")}
		good := &fakeGeocoder{name: "secondary", place: geo.Place{City: "Leeds"}}
		resolver := geo.NewResolver([]geo.Locator{locator}, []geo.Geocoder{bad, good})

		place := resolver.Resolve(context.Background())
		require.Equal(t, "Leeds", place.City)
		require.Equal(t, 1, bad.calls)
	})

	t.Run("zero place means manual entry", func(t *testing.T) {
		bad := &fakeLocator{name: "ip", err: fmt.Errorf("down")}
		resolver := geo.NewResolver([]geo.Locator{bad}, nil)

		place := resolver.Resolve(context.Background())
		require.Equal(t, geo.Place{}, place)
	})
}

func TestResolveFrom(t *testing.T) {
	t.Run("a device fix bypasses the locator chain", func(t *testing.T) {
		locator := &fakeLocator{name: "ip", coords: geo.Coordinates{Latitude: 9, Longitude: 9}}
		geocoder := &fakeGeocoder{name: "reverse", place: geo.Place{City: "Leeds"}}
		resolver := geo.NewResolver([]geo.Locator{locator}, []geo.Geocoder{geocoder})

		place := resolver.ResolveFrom(context.Background(), testCoords)
		require.Equal(t, testCoords, place.Coordinates)
		require.Zero(t, locator.calls)
	})

	t.Run("a zero fix falls back to the full chain", func(t *testing.T) {
		locator := &fakeLocator{name: "ip", coords: testCoords}
		resolver := geo.NewResolver([]geo.Locator{locator}, nil)

		place := resolver.ResolveFrom(context.Background(), geo.Coordinates{})
		require.Equal(t, testCoords, place.Coordinates)
		require.Equal(t, 1, locator.calls)
	})
}

func TestIPLocator(t *testing.T) {
	t.Run("decodes latitude and longitude fields", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"latitude":53.8,"longitude":-1.55}`))
		}))
		t.Cleanup(server.Close)

		coords, err := geo.NewIPLocator(server.URL, time.Second).Locate(context.Background())
		require.NoError(t, err)
		require.Equal(t, testCoords, coords)
	})

	t.Run("accepts the lat lon field variant", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"lat":53.8,"lon":-1.55}`))
		}))
		t.Cleanup(server.Close)

		coords, err := geo.NewIPLocator(server.URL, time.Second).Locate(context.Background())
		require.NoError(t, err)
		require.Equal(t, testCoords, coords)
	})

	t.Run("a body without coordinates is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"ip":"10.0.0.1"}`))
		}))
		t.Cleanup(server.Close)

		_, err := geo.NewIPLocator(server.URL, time.Second).Locate(context.Background())
		require.Error(t, err)
	})
}

func TestHTTPGeocoder(t *testing.T) {
	t.Run("decodes a nominatim-style response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NotEmpty(t, r.URL.Query().Get("lat"))
			require.NotEmpty(t, r.URL.Query().Get("lon"))
			_, _ = w.Write([]byte(`{"display_name":"1 High Street, Leeds","address":{"city":"Leeds"}}`))
		}))
		t.Cleanup(server.Close)

		place, err := geo.NewHTTPGeocoder(server.URL, time.Second).Reverse(context.Background(), testCoords)
		require.NoError(t, err)
		require.Equal(t, "1 High Street, Leeds", place.Address)
		require.Equal(t, "Leeds", place.City)
	})

	t.Run("decodes a bigdatacloud-style response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"city":"Leeds","locality":"Headingley"}`))
		}))
		t.Cleanup(server.Close)

		place, err := geo.NewHTTPGeocoder(server.URL, time.Second).Reverse(context.Background(), testCoords)
		require.NoError(t, err)
		require.Equal(t, "Leeds", place.City)
	})

	t.Run("an empty result is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		t.Cleanup(server.Close)

		_, err := geo.NewHTTPGeocoder(server.URL, time.Second).Reverse(context.Background(), testCoords)
		require.Error(t, err)
	})
}
