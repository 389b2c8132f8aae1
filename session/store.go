package session

import (
	"encoding/json"
	"fmt"

	apperrors "github.com/lifelinkhq/donor-portal/internal/errors"
)

// Store keeps at most one authoritative session per browser context, spread
// over the two scopes. All operations are synchronous and local; nothing in
// here touches the network.
type Store struct {
	remembered KV
	ephemeral  KV
}

// NewStore builds a Store over the two scope backends.
func NewStore(remembered, ephemeral KV) (*Store, error) {
	if remembered == nil {
		return nil, fmt.Errorf("[NewStore] remembered KV is required")
	}
	if ephemeral == nil {
		return nil, fmt.Errorf("[NewStore] ephemeral KV is required")
	}
	return &Store{remembered: remembered, ephemeral: ephemeral}, nil
}

func (s *Store) scope(scope Scope) (KV, KV, error) {
	switch scope {
	case ScopeRemembered:
		return s.remembered, s.ephemeral, nil
	case ScopeEphemeral:
		return s.ephemeral, s.remembered, nil
	}
	return nil, nil, fmt.Errorf("[Store] unknown scope %q", scope)
}

// Save writes the session into the given scope and removes any copy from the
// other scope, so exactly one copy exists at a time.
func (s *Store) Save(contextID string, sess Session, scope Scope) error {
	if contextID == "" {
		return fmt.Errorf("[Store.Save] contextID is required")
	}

	target, other, err := s.scope(scope)
	if err != nil {
		return err
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("[Store.Save] marshal session: %w", err)
	}
	if err := target.Put(contextID, data); err != nil {
		return fmt.Errorf("[Store.Save] put: %w", err)
	}
	if err := other.Delete(contextID); err != nil {
		return fmt.Errorf("[Store.Save] clear other scope: %w", err)
	}
	return nil
}

// Load returns the session for the context, preferring the remembered scope.
// The precedence lets a remember-me login survive restarts without an
// ephemeral login in another context silently overriding it.
func (s *Store) Load(contextID string) (Session, Scope, error) {
	if contextID == "" {
		return Session{}, "", apperrors.ErrNoSession
	}

	for _, candidate := range []struct {
		kv    KV
		scope Scope
	}{
		{s.remembered, ScopeRemembered},
		{s.ephemeral, ScopeEphemeral},
	} {
		data, err := candidate.kv.Get(contextID)
		if err != nil {
			if apperrors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return Session{}, "", fmt.Errorf("[Store.Load] get: %w", err)
		}
		var sess Session
		if err := json.Unmarshal(data, &sess); err != nil {
			return Session{}, "", fmt.Errorf("[Store.Load] unmarshal session: %w", err)
		}
		return sess, candidate.scope, nil
	}

	return Session{}, "", apperrors.ErrNoSession
}

// Clear removes the session from both scopes unconditionally. Used by logout
// cleanup and by expired-token detection.
func (s *Store) Clear(contextID string) error {
	if contextID == "" {
		return nil
	}
	if err := s.remembered.Delete(contextID); err != nil {
		return fmt.Errorf("[Store.Clear] remembered: %w", err)
	}
	if err := s.ephemeral.Delete(contextID); err != nil {
		return fmt.Errorf("[Store.Clear] ephemeral: %w", err)
	}
	return nil
}

// ClearToken drops the auth token while keeping a remembered user snapshot in
// place for login-form prefill. Ephemeral sessions are removed outright.
// Note the asymmetry: a "logged out" remembered context still discloses the
// last user's name and email to the login page (see DESIGN.md).
func (s *Store) ClearToken(contextID string) error {
	if contextID == "" {
		return nil
	}

	if err := s.ephemeral.Delete(contextID); err != nil {
		return fmt.Errorf("[Store.ClearToken] ephemeral: %w", err)
	}

	data, err := s.remembered.Get(contextID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("[Store.ClearToken] get remembered: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return fmt.Errorf("[Store.ClearToken] unmarshal session: %w", err)
	}
	if sess.Token == "" {
		return nil
	}
	sess.Token = ""
	updated, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("[Store.ClearToken] marshal session: %w", err)
	}
	if err := s.remembered.Put(contextID, updated); err != nil {
		return fmt.Errorf("[Store.ClearToken] put remembered: %w", err)
	}
	return nil
}

// Update merges fields into the cached user snapshot in whichever scope holds
// the session, preserving the token unchanged. Used after profile edits so
// dashboards reflect changes without a re-fetch.
func (s *Store) Update(contextID string, partial User) error {
	sess, scope, err := s.Load(contextID)
	if err != nil {
		return err
	}

	sess.User = sess.User.merge(partial)

	target, _, err := s.scope(scope)
	if err != nil {
		return err
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("[Store.Update] marshal session: %w", err)
	}
	if err := target.Put(contextID, data); err != nil {
		return fmt.Errorf("[Store.Update] put: %w", err)
	}
	return nil
}
