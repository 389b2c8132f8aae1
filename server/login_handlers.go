package server

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

// LoginPageData contains data for rendering the login page
type LoginPageData struct {
	AppName string
	Error   string
	Notice  string
	Email   string // Prefilled from the remembered snapshot, or preserved on error
}

// LoginPageHandler displays the login page (GET /login)
func (s *Server) LoginPageHandler() http.HandlerFunc {
	loginTmpl, err := ParseTemplate("login.html")
	if err != nil {
		panic("Failed to parse login template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		contextID := s.contextID(w, r)

		email := r.URL.Query().Get("email")
		if email == "" {
			// A remembered context keeps the last user's email for prefill
			// even after logout.
			email = s.auth.PrefillEmail(contextID)
		}

		data := LoginPageData{
			AppName: s.config.AppName,
			Error:   r.URL.Query().Get("error"),
			Notice:  r.URL.Query().Get("notice"),
			Email:   email,
		}
		w.Header().Set("Content-Type", contentTypeHTML)
		if err := loginTmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render login template")
			http.Error(w, "Failed to render login page", http.StatusInternalServerError)
		}
	}
}

// LoginSubmissionHandler processes the login form submission
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	loginTmpl, err := ParseTemplate("login.html")
	if err != nil {
		panic("Failed to parse login template: " + err.Error())
	}

	renderError := func(w http.ResponseWriter, message, email string) {
		data := LoginPageData{
			AppName: s.config.AppName,
			Error:   message,
			Email:   email,
		}
		w.Header().Set("Content-Type", contentTypeHTML)
		if err := loginTmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render login template")
		}
	}

	return func(w http.ResponseWriter, r *http.Request) {
		contextID := s.contextID(w, r)

		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		email := r.FormValue("email")
		password := r.FormValue("password")
		rememberMe := r.FormValue("remember_me") == "on"

		destination, err := s.auth.Login(r.Context(), contextID, email, password, rememberMe)
		if err != nil {
			renderError(w, inlineMessage(err), email)
			return
		}

		http.Redirect(w, r, destination, http.StatusSeeOther)
	}
}

// LogoutHandler drops the token and returns to the login page
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contextID := s.contextID(w, r)
		if err := s.auth.Logout(contextID); err != nil {
			log.Err(err).Msg("Failed to clear session on logout")
		}
		http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
	}
}
