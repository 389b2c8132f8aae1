// Package token turns the backend's opaque auth token into role and expiry
// claims. Decoding is structural only - the portal never verifies a
// signature. The backend re-verifies the token on every API call, so this
// package gates UI navigation and nothing else.
package token

import (
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	apperrors "github.com/lifelinkhq/donor-portal/internal/errors"
)

// Claims are the fields extracted from a decoded token. They are derived,
// never stored: callers re-decode on every authorization check.
type Claims struct {
	Role      Role      // Mapped role claim; RoleUnknown when missing/unrecognised
	ExpiresAt time.Time // Zero when the token carries no exp claim
}

// Decode extracts claims from a raw token without verifying its signature.
// It fails with ErrMalformedToken when the token is not the expected
// three-segment structure or its payload is not valid claims data.
func Decode(rawToken string) (Claims, error) {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return Claims{}, apperrors.ErrMalformedToken
	}

	unverified, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return Claims{}, errors.Wrap(apperrors.ErrMalformedToken, err.Error())
	}

	mapClaims, ok := unverified.Claims.(jwtlib.MapClaims)
	if !ok {
		return Claims{}, errors.Wrap(apperrors.ErrMalformedToken, "error extracting claims")
	}

	claims := Claims{}

	roleClaim, _ := mapClaims["role"].(string)
	claims.Role = ParseRole(roleClaim)

	if exp, ok := mapClaims["exp"].(float64); ok {
		claims.ExpiresAt = time.Unix(int64(exp), 0)
	}

	return claims, nil
}

// IsExpired reports whether the claims carry an expiry strictly before now.
// A token without an exp claim never expires client-side.
func IsExpired(claims Claims, now time.Time) bool {
	if claims.ExpiresAt.IsZero() {
		return false
	}
	return claims.ExpiresAt.Before(now)
}
