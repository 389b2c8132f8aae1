// Package session is the single source of truth for "is someone logged in,
// and as whom". A session pairs the backend's auth token with a cached user
// snapshot and lives in exactly one of two persistence scopes: Remembered
// (survives restarts) or Ephemeral (does not).
package session

// Scope names a session persistence lifetime.
type Scope string

const (
	// ScopeRemembered survives a process restart (remember-me logins).
	ScopeRemembered Scope = "remembered"
	// ScopeEphemeral lasts for the current run only.
	ScopeEphemeral Scope = "ephemeral"
)

// User is the cached profile snapshot stored alongside the token. It exists
// so dashboards can render identity fields without a round-trip; the backend
// remains authoritative.
type User struct {
	Email        string `json:"email,omitempty"`
	Name         string `json:"name,omitempty"`
	Role         string `json:"role,omitempty"`
	Phone        string `json:"phone,omitempty"`
	BloodType    string `json:"bloodType,omitempty"`
	City         string `json:"city,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// Session is an auth token plus the user snapshot it was issued for.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// merge overlays the non-empty fields of partial onto u.
func (u User) merge(partial User) User {
	if partial.Email != "" {
		u.Email = partial.Email
	}
	if partial.Name != "" {
		u.Name = partial.Name
	}
	if partial.Role != "" {
		u.Role = partial.Role
	}
	if partial.Phone != "" {
		u.Phone = partial.Phone
	}
	if partial.BloodType != "" {
		u.BloodType = partial.BloodType
	}
	if partial.City != "" {
		u.City = partial.City
	}
	if partial.ProfileImage != "" {
		u.ProfileImage = partial.ProfileImage
	}
	return u
}
