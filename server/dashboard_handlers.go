package server

import (
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/lifelinkhq/donor-portal/api"
	"github.com/lifelinkhq/donor-portal/session"
	"github.com/lifelinkhq/donor-portal/token"
)

// DashboardData is the template model shared by the role dashboards. Role is
// the token role the route guard decoded for this request, which is the
// authoritative one; User.Role is only the snapshot the backend declared at
// login.
type DashboardData struct {
	AppName       string
	Role          token.Role
	User          session.User
	Appointments  []api.Appointment
	Notifications []api.Notification
	Notice        string
}

// DonorDashboardHandler renders the donor's home screen: profile, upcoming
// appointments, and notifications.
func (s *Server) DonorDashboardHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("dashboard_donor.html")
	if err != nil {
		panic("Failed to parse donor dashboard template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := s.sessionFor(w, r)
		if !ok {
			return
		}

		data := DashboardData{AppName: s.config.AppName, Role: roleFromContext(r.Context()), User: sess.User}

		// The stored snapshot renders immediately; a fresher profile replaces
		// it when the backend answers.
		if profile, err := s.backend.Profile(r.Context(), sess.Token); err != nil {
			log.Debug().Err(err).Msg("profile refresh failed")
		} else {
			data.User = profile
			if err := s.auth.UpdateSnapshot(s.contextID(w, r), profile); err != nil {
				log.Debug().Err(err).Msg("session snapshot update failed")
			}
		}

		if appointments, err := s.backend.Appointments(r.Context(), sess.Token); err != nil {
			log.Debug().Err(err).Msg("appointments lookup failed")
		} else {
			data.Appointments = appointments
		}
		if notifications, err := s.backend.Notifications(r.Context(), sess.Token); err != nil {
			log.Debug().Err(err).Msg("notifications lookup failed")
		} else {
			data.Notifications = notifications
		}

		s.renderDashboard(w, tmpl, data)
	}
}

// HospitalDashboardHandler renders the hospital's schedule of incoming
// donation appointments.
func (s *Server) HospitalDashboardHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("dashboard_hospital.html")
	if err != nil {
		panic("Failed to parse hospital dashboard template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := s.sessionFor(w, r)
		if !ok {
			return
		}

		data := DashboardData{AppName: s.config.AppName, Role: roleFromContext(r.Context()), User: sess.User}
		if appointments, err := s.backend.Appointments(r.Context(), sess.Token); err != nil {
			log.Debug().Err(err).Msg("appointments lookup failed")
		} else {
			data.Appointments = appointments
		}
		if notifications, err := s.backend.Notifications(r.Context(), sess.Token); err != nil {
			log.Debug().Err(err).Msg("notifications lookup failed")
		} else {
			data.Notifications = notifications
		}

		s.renderDashboard(w, tmpl, data)
	}
}

// AdminDashboardHandler renders the administration landing page.
func (s *Server) AdminDashboardHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("dashboard_admin.html")
	if err != nil {
		panic("Failed to parse admin dashboard template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := s.sessionFor(w, r)
		if !ok {
			return
		}

		data := DashboardData{AppName: s.config.AppName, Role: roleFromContext(r.Context()), User: sess.User}
		if notifications, err := s.backend.Notifications(r.Context(), sess.Token); err != nil {
			log.Debug().Err(err).Msg("notifications lookup failed")
		} else {
			data.Notifications = notifications
		}

		s.renderDashboard(w, tmpl, data)
	}
}

// sessionFor loads the caller's session. Route middleware has already
// admitted the request, so a missing session here means it was cleared
// between checks; bounce back to login.
func (s *Server) sessionFor(w http.ResponseWriter, r *http.Request) (session.Session, bool) {
	sess, _, err := s.sessions.Load(s.contextID(w, r))
	if err != nil || sess.Token == "" {
		http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
		return session.Session{}, false
	}
	return sess, true
}

func (s *Server) renderDashboard(w http.ResponseWriter, tmpl *template.Template, data DashboardData) {
	w.Header().Set("Content-Type", contentTypeHTML)
	if err := tmpl.Execute(w, data); err != nil {
		log.Err(err).Msg("Failed to render dashboard template")
	}
}
