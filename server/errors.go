package server

import (
	"github.com/pkg/errors"

	"github.com/lifelinkhq/donor-portal/api"
	apperrors "github.com/lifelinkhq/donor-portal/internal/errors"
)

// inlineMessage maps a flow error onto the message shown next to the form.
// Validation messages pass through as-is; transport failures collapse to a
// generic connection hint; server messages are surfaced when present.
func inlineMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, apperrors.ErrInvalidCredentials) {
		return "Invalid email or password"
	}
	if errors.Is(err, apperrors.ErrNetwork) {
		return "Could not reach the server. Please check your connection and try again."
	}
	var serverErr *api.ServerError
	if errors.As(err, &serverErr) {
		return serverErr.Message
	}
	return errors.Cause(err).Error()
}
