package errors

import (
	"errors"
	"fmt"
)

// Common error types for the donor portal. These cover the failure taxonomy of
// the auth and registration flows: token errors, transport errors, and
// server-reported errors. Local validation failures are carried as per-field
// messages, not as error values.
var (
	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotFound      = errors.New("email not recognised")

	// Token errors
	ErrMalformedToken = errors.New("malformed token")
	ErrTokenExpired   = errors.New("token expired")

	// Session errors
	ErrNoSession = errors.New("no session")

	// Backend errors
	ErrNetwork = errors.New("network error")
	ErrServer  = errors.New("server error")

	// Geolocation errors
	ErrNoLocation = errors.New("location unavailable")

	// General errors
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
