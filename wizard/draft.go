package wizard

// Draft is the registration record accumulated across the donor wizard's
// steps. It is created empty when the wizard mounts, mutated field by field
// by user input, and discarded on successful submission or navigation away.
// Fields are validated only when their step is submitted or advanced.
type Draft struct {
	// Personal (step 1)
	Name        string
	Email       string
	Phone       string
	DateOfBirth string // YYYY-MM-DD
	BloodType   string
	Gender      string
	// ProfileImage is the optional raw image; encoded to base64 on submit.
	ProfileImage     []byte
	ProfileImageName string

	// Location (step 2)
	Address   string
	City      string
	Latitude  float64
	Longitude float64

	// Appointment (step 3, optional)
	ScheduleAppointment bool
	HospitalID          string
	AppointmentDate     string
	AppointmentTime     string
	Notes               string
	ArmPreference       string
	Accessibility       string

	// Security (step 4)
	Password        string
	ConfirmPassword string

	// Preferences
	NotificationsOptIn bool
	AcceptedTerms      bool
}

// HospitalDraft is the hospital registration form, collected on a single
// screen with the same validate-then-submit discipline as the donor wizard.
type HospitalDraft struct {
	Name            string
	Email           string
	Phone           string
	LicenseNumber   string
	Address         string
	City            string
	Latitude        float64
	Longitude       float64
	Password        string
	ConfirmPassword string
	AcceptedTerms   bool
}
