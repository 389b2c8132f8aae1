package api

import "github.com/lifelinkhq/donor-portal/session"

// LoginResponse is the body of a successful POST /auth/login.
type LoginResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	User    session.User `json:"user"`
}

// ForgotPasswordResponse reports whether an email is known to the backend.
type ForgotPasswordResponse struct {
	EmailExists bool   `json:"emailExists"`
	Message     string `json:"message,omitempty"`
}

// DonorRegistration is the serialized registration draft sent on final
// submit. Optional sections are pointers so an unscheduled appointment is
// omitted from the payload entirely.
type DonorRegistration struct {
	Name               string  `json:"name"`
	Email              string  `json:"email"`
	Phone              string  `json:"phone"`
	DateOfBirth        string  `json:"dateOfBirth"`
	BloodType          string  `json:"bloodType"`
	Gender             string  `json:"gender"`
	Address            string  `json:"address"`
	City               string  `json:"city"`
	Latitude           float64 `json:"latitude,omitempty"`
	Longitude          float64 `json:"longitude,omitempty"`
	Password           string  `json:"password"`
	NotificationsOptIn bool    `json:"notificationsOptIn"`
	AcceptedTerms      bool    `json:"acceptedTerms"`
	ProfileImageBase64 *string `json:"profileImageBase64,omitempty"`

	Appointment *AppointmentRequest `json:"appointment,omitempty"`
}

// AppointmentRequest is the optional scheduling sub-section of a donor
// registration.
type AppointmentRequest struct {
	HospitalID    string `json:"hospitalId"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Notes         string `json:"notes,omitempty"`
	ArmPreference string `json:"armPreference,omitempty"`
	Accessibility string `json:"accessibility,omitempty"`
}

// HospitalRegistration is the hospital sign-up payload.
type HospitalRegistration struct {
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	LicenseNumber string  `json:"licenseNumber"`
	Address       string  `json:"address"`
	City          string  `json:"city"`
	Latitude      float64 `json:"latitude,omitempty"`
	Longitude     float64 `json:"longitude,omitempty"`
	Password      string  `json:"password"`
	AcceptedTerms bool    `json:"acceptedTerms"`
}

// RegistrationResponse is the backend's acknowledgement of a registration.
type RegistrationResponse struct {
	Message string `json:"message"`
}

// Appointment is a scheduled or past donation appointment.
type Appointment struct {
	ID           string `json:"id"`
	HospitalName string `json:"hospitalName"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Status       string `json:"status"`
	Notes        string `json:"notes,omitempty"`
}

// Notification is a role-scoped notification entry.
type Notification struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt"`
	Read      bool   `json:"read"`
}

// Hospital is a nearby-hospital lookup result.
type Hospital struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	City      string  `json:"city"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Distance  float64 `json:"distance,omitempty"`
}
