// Package auth orchestrates the portal's login, logout, and password-reset
// flows. It owns every session mutation: handlers never write to the session
// store directly.
package auth

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/lifelinkhq/donor-portal/api"
	"github.com/lifelinkhq/donor-portal/session"
	"github.com/lifelinkhq/donor-portal/token"
)

// Backend is the slice of the API client the auth flows need.
type Backend interface {
	Login(ctx context.Context, email, password string, rememberMe bool) (api.LoginResponse, error)
	ForgotPassword(ctx context.Context, email string) (api.ForgotPasswordResponse, error)
	ResetPassword(ctx context.Context, email, newPassword string) error
}

// SessionStore is the slice of the session store the auth flows mutate.
type SessionStore interface {
	Save(contextID string, sess session.Session, scope session.Scope) error
	Load(contextID string) (session.Session, session.Scope, error)
	Clear(contextID string) error
	ClearToken(contextID string) error
	Update(contextID string, partial session.User) error
}

// Service implements the auth flows over a backend client and session store.
type Service struct {
	backend  Backend
	sessions SessionStore
	nowTime  func() time.Time // injectable for testing
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

// NewService initializes a new auth Service with required dependencies.
func NewService(backend Backend, sessions SessionStore, options ...ServiceOption) (*Service, error) {
	if backend == nil {
		return nil, errors.New("[NewService] backend is required")
	}
	if sessions == nil {
		return nil, errors.New("[NewService] session store is required")
	}

	service := &Service{
		backend:  backend,
		sessions: sessions,
		nowTime:  time.Now,
	}
	for _, opt := range options {
		opt(service)
	}
	return service, nil
}

// Login checks credentials against the backend and, on success, replaces any
// prior session in both scopes with a fresh one in the scope chosen by
// rememberMe. The returned path is the role's dashboard. On failure no
// session mutation occurs and the error carries the inline message.
func (s *Service) Login(ctx context.Context, contextID, email, password string, rememberMe bool) (string, error) {
	if err := ValidateCredentials(email, password); err != nil {
		return "", err
	}

	resp, err := s.backend.Login(ctx, email, password, rememberMe)
	if err != nil {
		return "", errors.Wrap(err, "[Service.Login] backend login")
	}

	if err := s.sessions.Clear(contextID); err != nil {
		return "", errors.Wrap(err, "[Service.Login] clear prior session")
	}

	scope := session.ScopeEphemeral
	if rememberMe {
		scope = session.ScopeRemembered
	}
	if err := s.sessions.Save(contextID, session.Session{Token: resp.Token, User: resp.User}, scope); err != nil {
		return "", errors.Wrap(err, "[Service.Login] save session")
	}

	return Destination(s.declaredRole(resp)), nil
}

// declaredRole prefers the role the backend declared on the user snapshot,
// falling back to the token's decoded role claim.
func (s *Service) declaredRole(resp api.LoginResponse) token.Role {
	if role := token.ParseRole(resp.User.Role); role != token.RoleUnknown {
		return role
	}
	claims, err := token.Decode(resp.Token)
	if err != nil {
		return token.RoleUnknown
	}
	return claims.Role
}

// Logout drops the auth token and navigates the caller back to login. The
// remembered user snapshot is kept for login-form prefill; see
// session.Store.ClearToken for the asymmetry this creates.
func (s *Service) Logout(contextID string) error {
	if err := s.sessions.ClearToken(contextID); err != nil {
		return errors.Wrap(err, "[Service.Logout] clear token")
	}
	return nil
}

// ForgotPassword is step one of the reset flow: it reports whether the email
// is recognised without changing anything server-side. Local validation runs
// first so malformed input never costs a round-trip.
func (s *Service) ForgotPassword(ctx context.Context, email string) (bool, error) {
	if err := ValidateEmail(email); err != nil {
		return false, err
	}

	resp, err := s.backend.ForgotPassword(ctx, email)
	if err != nil {
		return false, errors.Wrap(err, "[Service.ForgotPassword] backend check")
	}
	return resp.EmailExists, nil
}

// ResetPassword is step two, reachable only after step one reported the
// email exists. Password shape is validated locally before the network call.
func (s *Service) ResetPassword(ctx context.Context, email, newPassword, confirmPassword string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if err := ValidateNewPassword(newPassword, confirmPassword); err != nil {
		return err
	}

	if err := s.backend.ResetPassword(ctx, email, newPassword); err != nil {
		return errors.Wrap(err, "[Service.ResetPassword] backend reset")
	}
	return nil
}

// UpdateSnapshot merges edited profile fields into the cached session user so
// dashboards reflect the change immediately, without a re-fetch.
func (s *Service) UpdateSnapshot(contextID string, partial session.User) error {
	if err := s.sessions.Update(contextID, partial); err != nil {
		return errors.Wrap(err, "[Service.UpdateSnapshot] update session")
	}
	return nil
}

// PrefillEmail returns the remembered snapshot's email for the login form,
// or "" when the context has no stored session.
func (s *Service) PrefillEmail(contextID string) string {
	sess, _, err := s.sessions.Load(contextID)
	if err != nil {
		return ""
	}
	return sess.User.Email
}
