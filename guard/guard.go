// Package guard decides whether a navigation to a protected view is allowed.
// The decision is a pure function of the stored session, the decoded token,
// and the route's allowed-role set; it is evaluated fresh on every request.
package guard

import (
	"time"

	"github.com/lifelinkhq/donor-portal/session"
	"github.com/lifelinkhq/donor-portal/token"
)

// Decision is the outcome of evaluating a protected navigation.
type Decision string

const (
	Allow                Decision = "allow"
	RedirectLogin        Decision = "redirect_login"
	RedirectUnauthorized Decision = "redirect_unauthorized"
)

// SessionStore is the slice of the session store the guard consults.
type SessionStore interface {
	Load(contextID string) (session.Session, session.Scope, error)
	Clear(contextID string) error
}

// Evaluate runs the authorization check for one navigation. An empty
// allowedRoles set means "any authenticated role". Expiry is checked before
// role membership: an expired token is unusable whatever its role, so it
// always lands back on the login page. Role mismatch only matters for tokens
// that could otherwise be used.
//
// Decode failures and expiry clear the session as a side effect - the stored
// token is unusable either way. No error escapes: every failure maps to a
// redirect decision.
func Evaluate(store SessionStore, contextID string, allowedRoles []token.Role, now time.Time) (Decision, token.Claims) {
	sess, _, err := store.Load(contextID)
	if err != nil || sess.Token == "" {
		return RedirectLogin, token.Claims{}
	}

	claims, err := token.Decode(sess.Token)
	if err != nil {
		_ = store.Clear(contextID)
		return RedirectLogin, token.Claims{}
	}

	if token.IsExpired(claims, now) {
		_ = store.Clear(contextID)
		return RedirectLogin, token.Claims{}
	}

	if len(allowedRoles) > 0 && !claims.Role.In(allowedRoles) {
		return RedirectUnauthorized, claims
	}

	return Allow, claims
}
