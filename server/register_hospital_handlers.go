package server

import (
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/lifelinkhq/donor-portal/wizard"
)

// HospitalFormData is the template model for the hospital registration form
type HospitalFormData struct {
	AppName     string
	Draft       *wizard.HospitalDraft
	Errors      wizard.FieldErrors
	ServerError string
}

func (s *Server) newHospitalFlow(contextID string) (*hospitalFlow, error) {
	draft := &wizard.HospitalDraft{}
	machine, err := wizard.NewHospitalWizard(draft)
	if err != nil {
		return nil, err
	}
	flow := &hospitalFlow{draft: draft, machine: machine}
	s.hospitalFlows.Put(contextID, flow)
	return flow, nil
}

// HospitalRegisterPageHandler serves a fresh hospital registration form.
func (s *Server) HospitalRegisterPageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("hospital_register.html")
	if err != nil {
		panic("Failed to parse hospital register template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		contextID := s.contextID(w, r)
		flow, err := s.newHospitalFlow(contextID)
		if err != nil {
			http.Error(w, "Failed to start registration", http.StatusInternalServerError)
			return
		}

		s.renderHospitalForm(w, tmpl, flow, "")
	}
}

// HospitalRegisterSubmissionHandler validates the single form and registers
// the hospital with the backend.
func (s *Server) HospitalRegisterSubmissionHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("hospital_register.html")
	if err != nil {
		panic("Failed to parse hospital register template: " + err.Error())
	}
	successTmpl, err := ParseTemplate("register_success.html")
	if err != nil {
		panic("Failed to parse register success template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		contextID := s.contextID(w, r)

		flow, ok := s.hospitalFlows.Get(contextID)
		if !ok {
			var err error
			if flow, err = s.newHospitalFlow(contextID); err != nil {
				http.Error(w, "Failed to start registration", http.StatusInternalServerError)
				return
			}
		}

		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		s.applyHospitalInput(flow, r)

		if errs := flow.machine.Submit(); errs.Any() {
			s.renderHospitalForm(w, tmpl, flow, "")
			return
		}
		if _, err := s.backend.RegisterHospital(r.Context(), wizard.HospitalPayload(flow.draft)); err != nil {
			s.renderHospitalForm(w, tmpl, flow, inlineMessage(err))
			return
		}
		s.hospitalFlows.Delete(contextID)
		w.Header().Set("Content-Type", contentTypeHTML)
		if err := successTmpl.Execute(w, PageData{AppName: s.config.AppName}); err != nil {
			log.Err(err).Msg("Failed to render register success template")
		}
	}
}

func (s *Server) renderHospitalForm(w http.ResponseWriter, tmpl *template.Template, flow *hospitalFlow, serverError string) {
	data := HospitalFormData{
		AppName:     s.config.AppName,
		Draft:       flow.draft,
		Errors:      flow.machine.Errors(),
		ServerError: serverError,
	}

	w.Header().Set("Content-Type", contentTypeHTML)
	if err := tmpl.Execute(w, data); err != nil {
		log.Err(err).Msg("Failed to render hospital register template")
	}
}

func (s *Server) applyHospitalInput(flow *hospitalFlow, r *http.Request) {
	draft := flow.draft
	draft.Name = r.FormValue("name")
	draft.Email = r.FormValue("email")
	draft.Phone = r.FormValue("phone")
	draft.LicenseNumber = r.FormValue("license_number")
	draft.Address = r.FormValue("address")
	draft.City = r.FormValue("city")
	draft.Latitude = parseCoordinate(r.FormValue("latitude"))
	draft.Longitude = parseCoordinate(r.FormValue("longitude"))
	draft.Password = r.FormValue("password")
	draft.ConfirmPassword = r.FormValue("confirm_password")
	draft.AcceptedTerms = r.FormValue("accept_terms") == "on"
}
