package wizard

import (
	"encoding/base64"
	"time"

	"github.com/lifelinkhq/donor-portal/api"
	"github.com/lifelinkhq/donor-portal/internal/utils"
)

// Donor wizard steps: Personal, Location, Appointment, Security.
const (
	StepPersonal    = "personal"
	StepLocation    = "location"
	StepAppointment = "appointment"
	StepSecurity    = "security"
)

// NewDonorWizard builds the four-step donor registration machine over the
// given draft. The appointment fields are conditional-required: they only
// validate when scheduling was opted into, both when the step advances and
// again on final submit.
func NewDonorWizard(draft *Draft) (*Machine, error) {
	return NewMachine(
		[]Step{
			{Name: StepPersonal, Validate: func() FieldErrors {
				errs := FieldErrors{}
				requireField(errs, "name", draft.Name, "full name is required")
				validateEmailField(errs, "email", draft.Email)
				validatePhoneField(errs, "phone", draft.Phone)
				validateDateOfBirthField(errs, "dateOfBirth", draft.DateOfBirth, time.Now())
				validateBloodTypeField(errs, "bloodType", draft.BloodType)
				requireField(errs, "gender", draft.Gender, "gender is required")
				return errs
			}},
			{Name: StepLocation, Validate: func() FieldErrors {
				// Coordinates are best-effort output of the geolocation chain
				// and never required; address fields can always be typed in.
				errs := FieldErrors{}
				requireField(errs, "address", draft.Address, "address is required")
				requireField(errs, "city", draft.City, "city is required")
				return errs
			}},
			{Name: StepAppointment, Validate: func() FieldErrors {
				return appointmentErrors(draft)
			}},
			{Name: StepSecurity, Validate: func() FieldErrors {
				errs := FieldErrors{}
				validatePasswordFields(errs, draft.Password, draft.ConfirmPassword)
				if !draft.AcceptedTerms {
					errs["terms"] = "you must accept the terms to register"
				}
				return errs
			}},
		},
		WithSubmitRule(func() FieldErrors {
			return appointmentErrors(draft)
		}),
	)
}

// appointmentErrors enforces the conditional-required rule: hospital, date,
// and time become required only when the donor opted in to scheduling.
func appointmentErrors(draft *Draft) FieldErrors {
	errs := FieldErrors{}
	if !draft.ScheduleAppointment {
		return errs
	}
	requireField(errs, "hospitalId", draft.HospitalID, "choose a hospital")
	requireField(errs, "appointmentDate", draft.AppointmentDate, "choose an appointment date")
	requireField(errs, "appointmentTime", draft.AppointmentTime, "choose an appointment time")
	return errs
}

// DonorPayload serializes the full draft for the single backend registration
// call, converting any selected image to its transportable encoded form.
func DonorPayload(draft *Draft) api.DonorRegistration {
	reg := api.DonorRegistration{
		Name:               draft.Name,
		Email:              draft.Email,
		Phone:              draft.Phone,
		DateOfBirth:        draft.DateOfBirth,
		BloodType:          draft.BloodType,
		Gender:             draft.Gender,
		Address:            draft.Address,
		City:               draft.City,
		Latitude:           draft.Latitude,
		Longitude:          draft.Longitude,
		Password:           draft.Password,
		NotificationsOptIn: draft.NotificationsOptIn,
		AcceptedTerms:      draft.AcceptedTerms,
	}

	if len(draft.ProfileImage) > 0 {
		reg.ProfileImageBase64 = utils.Ptr(base64.StdEncoding.EncodeToString(draft.ProfileImage))
	}

	if draft.ScheduleAppointment {
		reg.Appointment = &api.AppointmentRequest{
			HospitalID:    draft.HospitalID,
			Date:          draft.AppointmentDate,
			Time:          draft.AppointmentTime,
			Notes:         draft.Notes,
			ArmPreference: draft.ArmPreference,
			Accessibility: draft.Accessibility,
		}
	}

	return reg
}
