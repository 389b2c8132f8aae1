package auth

import (
	"fmt"
	"strings"
)

// minPasswordLength is the portal-side password rule. The backend enforces
// its own policy on top; this only exists to avoid round-trips for input
// that can never succeed.
const minPasswordLength = 8

// ValidateEmail checks the email's shape before any network call.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email is required")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return fmt.Errorf("invalid email format")
	}
	if !strings.Contains(email[at:], ".") {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidateCredentials validates login input locally.
func ValidateCredentials(email, password string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// ValidateNewPassword checks a replacement password and its confirmation.
func ValidateNewPassword(newPassword, confirmPassword string) error {
	if len(newPassword) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	if newPassword != confirmPassword {
		return fmt.Errorf("passwords do not match")
	}
	return nil
}
