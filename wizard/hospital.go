package wizard

import "github.com/lifelinkhq/donor-portal/api"

// NewHospitalWizard builds the single-step hospital registration machine.
// One long form, same validate-then-submit discipline as the donor wizard.
func NewHospitalWizard(draft *HospitalDraft) (*Machine, error) {
	return NewMachine([]Step{
		{Name: "hospital", Validate: func() FieldErrors {
			errs := FieldErrors{}
			requireField(errs, "name", draft.Name, "hospital name is required")
			validateEmailField(errs, "email", draft.Email)
			validatePhoneField(errs, "phone", draft.Phone)
			requireField(errs, "licenseNumber", draft.LicenseNumber, "license number is required")
			requireField(errs, "address", draft.Address, "address is required")
			requireField(errs, "city", draft.City, "city is required")
			validatePasswordFields(errs, draft.Password, draft.ConfirmPassword)
			if !draft.AcceptedTerms {
				errs["terms"] = "you must accept the terms to register"
			}
			return errs
		}},
	})
}

// HospitalPayload serializes the hospital form for the backend call.
func HospitalPayload(draft *HospitalDraft) api.HospitalRegistration {
	return api.HospitalRegistration{
		Name:          draft.Name,
		Email:         draft.Email,
		Phone:         draft.Phone,
		LicenseNumber: draft.LicenseNumber,
		Address:       draft.Address,
		City:          draft.City,
		Latitude:      draft.Latitude,
		Longitude:     draft.Longitude,
		Password:      draft.Password,
		AcceptedTerms: draft.AcceptedTerms,
	}
}
