package geo

import (
	"context"

	"github.com/rs/zerolog/log"

	apperrors "github.com/lifelinkhq/donor-portal/internal/errors"
)

// FirstLocation tries each locator in order and returns the first set of
// coordinates obtained. When every provider fails it returns ErrNoLocation.
func FirstLocation(ctx context.Context, locators ...Locator) (Coordinates, error) {
	for _, locator := range locators {
		coords, err := locator.Locate(ctx)
		if err != nil {
			log.Debug().Str("provider", locator.Name()).Err(err).Msg("location provider failed")
			continue
		}
		if coords.IsZero() {
			log.Debug().Str("provider", locator.Name()).Msg("location provider returned no coordinates")
			continue
		}
		return coords, nil
	}
	return Coordinates{}, apperrors.ErrNoLocation
}

// Resolver runs the full acquisition chain: locators in order, then
// geocoders in order over the winning coordinates.
type Resolver struct {
	locators  []Locator
	geocoders []Geocoder
}

// NewResolver builds a resolver over ordered provider lists. Either list may
// be empty; resolution then degrades accordingly.
func NewResolver(locators []Locator, geocoders []Geocoder) *Resolver {
	return &Resolver{locators: locators, geocoders: geocoders}
}

// Resolve returns the best place obtainable. A zero Place means nothing
// could be acquired and the user fills the address manually; a Place with
// only coordinates means every geocoder failed.
func (r *Resolver) Resolve(ctx context.Context) Place {
	coords, err := FirstLocation(ctx, r.locators...)
	if err != nil {
		return Place{}
	}

	for _, geocoder := range r.geocoders {
		place, err := geocoder.Reverse(ctx, coords)
		if err != nil {
			log.Debug().Str("provider", geocoder.Name()).Err(err).Msg("reverse geocode failed")
			continue
		}
		place.Coordinates = coords
		return place
	}

	// Coordinates only; address stays manual.
	return Place{Coordinates: coords}
}

// ResolveFrom is Resolve with a caller-supplied fix (the browser's device
// geolocation) taking precedence over the locator chain.
func (r *Resolver) ResolveFrom(ctx context.Context, coords Coordinates) Place {
	if coords.IsZero() {
		return r.Resolve(ctx)
	}
	for _, geocoder := range r.geocoders {
		place, err := geocoder.Reverse(ctx, coords)
		if err != nil {
			log.Debug().Str("provider", geocoder.Name()).Err(err).Msg("reverse geocode failed")
			continue
		}
		place.Coordinates = coords
		return place
	}
	return Place{Coordinates: coords}
}
