package wizard_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lifelinkhq/donor-portal/wizard"
)

// validDraft fills every step of the donor wizard with acceptable input.
func validDraft() *wizard.Draft {
	return &wizard.Draft{
		Name:            "Jane Doe",
		Email:           "jane@example.com",
		Phone:           "07123456789",
		DateOfBirth:     "1990-04-12",
		BloodType:       "O-",
		Gender:          "female",
		Address:         "1 High Street",
		City:            "Leeds",
		Password:        "password123",
		ConfirmPassword: "password123",
		AcceptedTerms:   true,
	}
}

func advanceToLastStep(t *testing.T, m *wizard.Machine) {
	t.Helper()
	for !m.OnLastStep() {
		require.True(t, m.Next(), "step %s failed: %v", m.StepName(), m.Errors())
	}
}

func TestDonorWizardSteps(t *testing.T) {
	t.Run("walks all four steps with valid input", func(t *testing.T) {
		draft := validDraft()
		m, err := wizard.NewDonorWizard(draft)
		require.NoError(t, err)

		require.Equal(t, 4, m.StepCount())
		require.Equal(t, wizard.StepPersonal, m.StepName())
		advanceToLastStep(t, m)
		require.Equal(t, wizard.StepSecurity, m.StepName())
		require.Nil(t, m.Submit())
	})

	t.Run("personal step blocks on a bad blood type", func(t *testing.T) {
		draft := validDraft()
		draft.BloodType = "Q+"
		m, err := wizard.NewDonorWizard(draft)
		require.NoError(t, err)

		require.False(t, m.Next())
		require.Contains(t, m.Errors(), "bloodType")
	})

	t.Run("personal step blocks on a future date of birth", func(t *testing.T) {
		draft := validDraft()
		draft.DateOfBirth = "2990-01-01"
		m, err := wizard.NewDonorWizard(draft)
		require.NoError(t, err)

		require.False(t, m.Next())
		require.Contains(t, m.Errors(), "dateOfBirth")
	})

	t.Run("location step requires address and city", func(t *testing.T) {
		draft := validDraft()
		draft.Address = ""
		draft.City = ""
		m, err := wizard.NewDonorWizard(draft)
		require.NoError(t, err)

		require.True(t, m.Next())
		require.False(t, m.Next())
		require.Contains(t, m.Errors(), "address")
		require.Contains(t, m.Errors(), "city")
	})

	t.Run("coordinates are never required", func(t *testing.T) {
		draft := validDraft()
		m, err := wizard.NewDonorWizard(draft)
		require.NoError(t, err)

		require.True(t, m.Next())
		require.True(t, m.Next())
	})
}

func TestDonorWizardAppointmentRule(t *testing.T) {
	t.Run("appointment fields are optional when not scheduling", func(t *testing.T) {
		draft := validDraft()
		m, err := wizard.NewDonorWizard(draft)
		require.NoError(t, err)

		advanceToLastStep(t, m)
		require.Nil(t, m.Submit())
	})

	t.Run("scheduling makes hospital, date, and time required", func(t *testing.T) {
		draft := validDraft()
		draft.ScheduleAppointment = true
		m, err := wizard.NewDonorWizard(draft)
		require.NoError(t, err)

		require.True(t, m.Next())
		require.True(t, m.Next())
		require.False(t, m.Next(), "appointment step must block")
		require.Contains(t, m.Errors(), "hospitalId")
		require.Contains(t, m.Errors(), "appointmentDate")
		require.Contains(t, m.Errors(), "appointmentTime")
	})

	t.Run("submit re-checks the rule even after the step passed", func(t *testing.T) {
		draft := validDraft()
		m, err := wizard.NewDonorWizard(draft)
		require.NoError(t, err)
		advanceToLastStep(t, m)

		// Opting in after the appointment step was already passed.
		draft.ScheduleAppointment = true
		errs := m.Submit()
		require.True(t, errs.Any())
		require.Contains(t, errs, "hospitalId")
		require.True(t, m.OnLastStep())
	})

	t.Run("scheduling with full details passes", func(t *testing.T) {
		draft := validDraft()
		draft.ScheduleAppointment = true
		draft.HospitalID = "hosp-9"
		draft.AppointmentDate = "2026-10-01"
		draft.AppointmentTime = "10:30"
		m, err := wizard.NewDonorWizard(draft)
		require.NoError(t, err)

		advanceToLastStep(t, m)
		require.Nil(t, m.Submit())
	})
}

func TestDonorWizardSecurityStep(t *testing.T) {
	t.Run("seven character password blocks submission", func(t *testing.T) {
		draft := validDraft()
		draft.Password = "abcdefg"
		draft.ConfirmPassword = "abcdefg"
		m, err := wizard.NewDonorWizard(draft)
		require.NoError(t, err)

		advanceToLastStep(t, m)
		errs := m.Submit()
		require.Contains(t, errs, "password")
	})

	t.Run("mismatched confirmation blocks submission", func(t *testing.T) {
		draft := validDraft()
		draft.ConfirmPassword = "password124"
		m, err := wizard.NewDonorWizard(draft)
		require.NoError(t, err)

		advanceToLastStep(t, m)
		require.Contains(t, m.Submit(), "password")
	})

	t.Run("terms must be accepted", func(t *testing.T) {
		draft := validDraft()
		draft.AcceptedTerms = false
		m, err := wizard.NewDonorWizard(draft)
		require.NoError(t, err)

		advanceToLastStep(t, m)
		require.Contains(t, m.Submit(), "terms")
	})
}

func TestDonorPayload(t *testing.T) {
	t.Run("omits the appointment when not scheduling", func(t *testing.T) {
		reg := wizard.DonorPayload(validDraft())
		require.Nil(t, reg.Appointment)
		require.Nil(t, reg.ProfileImageBase64)
		require.Equal(t, "jane@example.com", reg.Email)
	})

	t.Run("carries the appointment when scheduling", func(t *testing.T) {
		draft := validDraft()
		draft.ScheduleAppointment = true
		draft.HospitalID = "hosp-9"
		draft.AppointmentDate = "2026-10-01"
		draft.AppointmentTime = "10:30"

		reg := wizard.DonorPayload(draft)
		require.NotNil(t, reg.Appointment)
		require.Equal(t, "hosp-9", reg.Appointment.HospitalID)
		require.Equal(t, "2026-10-01", reg.Appointment.Date)
	})

	t.Run("encodes the profile image", func(t *testing.T) {
		draft := validDraft()
		draft.ProfileImage = []byte{0x01, 0x02, 0x03}

		reg := wizard.DonorPayload(draft)
		require.NotNil(t, reg.ProfileImageBase64)
		require.Equal(t, base64.StdEncoding.EncodeToString(draft.ProfileImage), *reg.ProfileImageBase64)
	})
}

func TestHospitalWizard(t *testing.T) {
	valid := func() *wizard.HospitalDraft {
		return &wizard.HospitalDraft{
			Name:            "St Mary's",
			Email:           "admin@stmarys.example.com",
			Phone:           "01130000000",
			LicenseNumber:   "LIC-442",
			Address:         "2 Hospital Road",
			City:            "Leeds",
			Password:        "password123",
			ConfirmPassword: "password123",
			AcceptedTerms:   true,
		}
	}

	t.Run("valid form submits", func(t *testing.T) {
		m, err := wizard.NewHospitalWizard(valid())
		require.NoError(t, err)
		require.Equal(t, 1, m.StepCount())
		require.Nil(t, m.Submit())
	})

	t.Run("missing license number blocks", func(t *testing.T) {
		draft := valid()
		draft.LicenseNumber = ""
		m, err := wizard.NewHospitalWizard(draft)
		require.NoError(t, err)
		require.Contains(t, m.Submit(), "licenseNumber")
	})
}
