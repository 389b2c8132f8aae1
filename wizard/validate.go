package wizard

import (
	"strings"
	"time"
	"unicode"

	"github.com/lifelinkhq/donor-portal/auth"
)

var validBloodTypes = map[string]bool{
	"A+": true, "A-": true,
	"B+": true, "B-": true,
	"AB+": true, "AB-": true,
	"O+": true, "O-": true,
}

const dateLayout = "2006-01-02"

func requireField(errs FieldErrors, field, value, message string) {
	if strings.TrimSpace(value) == "" {
		errs[field] = message
	}
}

func validateEmailField(errs FieldErrors, field, email string) {
	if err := auth.ValidateEmail(email); err != nil {
		errs[field] = err.Error()
	}
}

func validatePhoneField(errs FieldErrors, field, phone string) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		errs[field] = "phone number is required"
		return
	}
	digits := 0
	for _, r := range phone {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	if digits < 7 {
		errs[field] = "invalid phone number"
	}
}

func validateDateOfBirthField(errs FieldErrors, field, dob string, now time.Time) {
	if strings.TrimSpace(dob) == "" {
		errs[field] = "date of birth is required"
		return
	}
	parsed, err := time.Parse(dateLayout, dob)
	if err != nil {
		errs[field] = "invalid date of birth"
		return
	}
	if !parsed.Before(now) {
		errs[field] = "date of birth must be in the past"
	}
}

func validateBloodTypeField(errs FieldErrors, field, bloodType string) {
	if !validBloodTypes[strings.ToUpper(strings.TrimSpace(bloodType))] {
		errs[field] = "select a valid blood type"
	}
}

func validatePasswordFields(errs FieldErrors, password, confirm string) {
	if err := auth.ValidateNewPassword(password, confirm); err != nil {
		errs["password"] = err.Error()
	}
}
