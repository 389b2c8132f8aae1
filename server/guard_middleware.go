package server

import (
	"context"
	"net/http"
	"time"

	"github.com/lifelinkhq/donor-portal/guard"
	"github.com/lifelinkhq/donor-portal/token"
)

// RequireRoles is middleware that gates a protected view behind the route
// guard. An empty role list admits any authenticated role. The three
// negative outcomes are terminal redirects; nothing is surfaced to the user
// beyond landing on the login or unauthorized page.
func (s *Server) RequireRoles(allowed ...token.Role) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			contextID := s.contextID(w, r)

			decision, claims := guard.Evaluate(s.sessions, contextID, allowed, time.Now())
			switch decision {
			case guard.RedirectLogin:
				http.Redirect(w, r, RouteLogin+"?error=Please+sign+in", http.StatusSeeOther)
				return
			case guard.RedirectUnauthorized:
				http.Redirect(w, r, RouteUnauthorized, http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyRole, claims.Role)
			next(w, r.WithContext(ctx))
		}
	}
}
