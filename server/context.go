package server

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/lifelinkhq/donor-portal/token"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyRole stores the decoded role for the request
	ContextKeyRole ContextKey = "role"
)

// roleFromContext returns the role the route guard decoded for this request.
// RoleUnknown means the request did not pass through a guarded route.
func roleFromContext(ctx context.Context) token.Role {
	role, _ := ctx.Value(ContextKeyRole).(token.Role)
	return role
}

// contextID returns the browser-context identifier from the sid cookie,
// minting a fresh one when the browser has none yet. The cookie identifies a
// browser context, not a login: it exists before and after authentication.
func (s *Server) contextID(w http.ResponseWriter, r *http.Request) string {
	name := s.config.Session.CookieName
	if cookie, err := r.Cookie(name); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(time.Duration(s.config.Session.RememberedDays) * 24 * time.Hour),
	})
	return id
}
