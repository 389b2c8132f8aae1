package server

import (
	"context"
	"html/template"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/lifelinkhq/donor-portal/api"
	"github.com/lifelinkhq/donor-portal/geo"
	"github.com/lifelinkhq/donor-portal/wizard"
)

const maxProfileImageBytes = 5 << 20

// DonorWizardData is the template model for the donor registration wizard
type DonorWizardData struct {
	AppName     string
	Step        int
	StepCount   int
	StepName    string
	Draft       *wizard.Draft
	Errors      wizard.FieldErrors
	ServerError string
	Hospitals   []api.Hospital
}

func (s *Server) newDonorFlow(contextID string) (*donorFlow, error) {
	draft := &wizard.Draft{}
	machine, err := wizard.NewDonorWizard(draft)
	if err != nil {
		return nil, err
	}
	flow := &donorFlow{draft: draft, machine: machine}
	s.donorFlows.Put(contextID, flow)
	return flow, nil
}

// DonorRegisterPageHandler mounts a fresh wizard with an empty draft.
// Revisiting the page abandons any in-progress draft, mirroring
// navigate-away semantics.
func (s *Server) DonorRegisterPageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("donor_register.html")
	if err != nil {
		panic("Failed to parse donor register template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		contextID := s.contextID(w, r)
		flow, err := s.newDonorFlow(contextID)
		if err != nil {
			http.Error(w, "Failed to start registration", http.StatusInternalServerError)
			return
		}

		s.renderDonorStep(r.Context(), w, tmpl, flow, "")
	}
}

// DonorRegisterSubmissionHandler advances, rewinds, or submits the wizard
// depending on the posted action.
func (s *Server) DonorRegisterSubmissionHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("donor_register.html")
	if err != nil {
		panic("Failed to parse donor register template: " + err.Error())
	}
	successTmpl, err := ParseTemplate("register_success.html")
	if err != nil {
		panic("Failed to parse register success template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		contextID := s.contextID(w, r)

		flow, ok := s.donorFlows.Get(contextID)
		if !ok {
			var err error
			if flow, err = s.newDonorFlow(contextID); err != nil {
				http.Error(w, "Failed to start registration", http.StatusInternalServerError)
				return
			}
		}

		if err := parseWizardForm(r); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		s.applyDonorStepInput(flow, r)

		switch r.FormValue("action") {
		case "back":
			flow.machine.Back()
			s.renderDonorStep(r.Context(), w, tmpl, flow, "")

		case "locate":
			// Best-effort: a failed chain just leaves the address fields for
			// manual entry.
			place := s.resolvePlace(r)
			if place.Address != "" {
				flow.draft.Address = place.Address
			}
			if place.City != "" {
				flow.draft.City = place.City
			}
			if !place.Coordinates.IsZero() {
				flow.draft.Latitude = place.Coordinates.Latitude
				flow.draft.Longitude = place.Coordinates.Longitude
			}
			s.renderDonorStep(r.Context(), w, tmpl, flow, "")

		case "submit":
			if errs := flow.machine.Submit(); errs.Any() {
				s.renderDonorStep(r.Context(), w, tmpl, flow, "")
				return
			}
			if _, err := s.backend.RegisterDonor(r.Context(), wizard.DonorPayload(flow.draft)); err != nil {
				// Remain on the final step with the server's message.
				s.renderDonorStep(r.Context(), w, tmpl, flow, inlineMessage(err))
				return
			}
			s.donorFlows.Delete(contextID)
			w.Header().Set("Content-Type", contentTypeHTML)
			if err := successTmpl.Execute(w, PageData{AppName: s.config.AppName}); err != nil {
				log.Err(err).Msg("Failed to render register success template")
			}

		default: // "next"
			flow.machine.Next()
			s.renderDonorStep(r.Context(), w, tmpl, flow, "")
		}
	}
}

func (s *Server) renderDonorStep(ctx context.Context, w http.ResponseWriter, tmpl *template.Template, flow *donorFlow, serverError string) {
	data := DonorWizardData{
		AppName:     s.config.AppName,
		Step:        flow.machine.Current(),
		StepCount:   flow.machine.StepCount(),
		StepName:    flow.machine.StepName(),
		Draft:       flow.draft,
		Errors:      flow.machine.Errors(),
		ServerError: serverError,
	}

	if data.StepName == wizard.StepAppointment && flow.draft.Latitude != 0 {
		// Nearby hospitals are a convenience; lookup failure leaves the
		// dropdown empty without blocking the step.
		hospitals, err := s.backend.NearbyHospitals(ctx, flow.draft.Latitude, flow.draft.Longitude)
		if err != nil {
			log.Debug().Err(err).Msg("nearby hospital lookup failed")
		} else {
			data.Hospitals = hospitals
		}
	}

	w.Header().Set("Content-Type", contentTypeHTML)
	if err := tmpl.Execute(w, data); err != nil {
		log.Err(err).Msg("Failed to render donor register template")
	}
}

// applyDonorStepInput copies the active step's posted fields into the draft.
// Only the active step's fields travel in the form, so later steps keep
// whatever was already entered.
func (s *Server) applyDonorStepInput(flow *donorFlow, r *http.Request) {
	draft := flow.draft

	switch flow.machine.StepName() {
	case wizard.StepPersonal:
		draft.Name = r.FormValue("name")
		draft.Email = r.FormValue("email")
		draft.Phone = r.FormValue("phone")
		draft.DateOfBirth = r.FormValue("date_of_birth")
		draft.BloodType = r.FormValue("blood_type")
		draft.Gender = r.FormValue("gender")
		if file, header, err := r.FormFile("profile_image"); err == nil {
			defer file.Close()
			if data, readErr := io.ReadAll(io.LimitReader(file, maxProfileImageBytes)); readErr == nil && len(data) > 0 {
				draft.ProfileImage = data
				draft.ProfileImageName = header.Filename
			}
		}

	case wizard.StepLocation:
		draft.Address = r.FormValue("address")
		draft.City = r.FormValue("city")
		draft.Latitude = parseCoordinate(r.FormValue("latitude"))
		draft.Longitude = parseCoordinate(r.FormValue("longitude"))

	case wizard.StepAppointment:
		draft.ScheduleAppointment = r.FormValue("schedule_appointment") == "on"
		draft.HospitalID = r.FormValue("hospital_id")
		draft.AppointmentDate = r.FormValue("appointment_date")
		draft.AppointmentTime = r.FormValue("appointment_time")
		draft.Notes = r.FormValue("notes")
		draft.ArmPreference = r.FormValue("arm_preference")
		draft.Accessibility = r.FormValue("accessibility")

	case wizard.StepSecurity:
		draft.Password = r.FormValue("password")
		draft.ConfirmPassword = r.FormValue("confirm_password")
		draft.NotificationsOptIn = r.FormValue("notifications_opt_in") == "on"
		draft.AcceptedTerms = r.FormValue("accept_terms") == "on"
	}
}

// resolvePlace runs the geolocation chain, preferring a device fix relayed
// by the browser in the form.
func (s *Server) resolvePlace(r *http.Request) geo.Place {
	if s.geo == nil {
		return geo.Place{}
	}
	coords := geo.Coordinates{
		Latitude:  parseCoordinate(r.FormValue("device_latitude")),
		Longitude: parseCoordinate(r.FormValue("device_longitude")),
	}
	return s.geo.ResolveFrom(r.Context(), coords)
}

func parseWizardForm(r *http.Request) error {
	if err := r.ParseMultipartForm(maxProfileImageBytes); err == nil || err == http.ErrNotMultipart {
		return nil
	}
	return r.ParseForm()
}

func parseCoordinate(raw string) float64 {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return value
}
