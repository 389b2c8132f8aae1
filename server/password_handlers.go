package server

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

// PasswordPageData carries both steps of the forgot/reset flow. Step 2 is
// only ever rendered after step 1 confirmed the email exists.
type PasswordPageData struct {
	AppName string
	Email   string
	Error   string
}

// ForgotPasswordPageHandler renders step 1: the email check form
func (s *Server) ForgotPasswordPageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("forgot_password.html")
	if err != nil {
		panic("Failed to parse forgot password template: " + err.Error())
	}
	return func(w http.ResponseWriter, r *http.Request) {
		data := PasswordPageData{
			AppName: s.config.AppName,
			Email:   r.URL.Query().Get("email"),
			Error:   r.URL.Query().Get("error"),
		}
		w.Header().Set("Content-Type", contentTypeHTML)
		if err := tmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render forgot password template")
		}
	}
}

// ForgotPasswordSubmissionHandler processes step 1. Unknown emails stay on
// step 1 with an inline error; known emails advance to the reset form.
func (s *Server) ForgotPasswordSubmissionHandler() http.HandlerFunc {
	step1Tmpl, err := ParseTemplate("forgot_password.html")
	if err != nil {
		panic("Failed to parse forgot password template: " + err.Error())
	}
	step2Tmpl, err := ParseTemplate("reset_password.html")
	if err != nil {
		panic("Failed to parse reset password template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		email := r.FormValue("email")

		renderStep1 := func(message string) {
			w.Header().Set("Content-Type", contentTypeHTML)
			if err := step1Tmpl.Execute(w, PasswordPageData{AppName: s.config.AppName, Email: email, Error: message}); err != nil {
				log.Err(err).Msg("Failed to render forgot password template")
			}
		}

		exists, err := s.auth.ForgotPassword(r.Context(), email)
		if err != nil {
			renderStep1(inlineMessage(err))
			return
		}
		if !exists {
			renderStep1("No account was found for that email address")
			return
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := step2Tmpl.Execute(w, PasswordPageData{AppName: s.config.AppName, Email: email}); err != nil {
			log.Err(err).Msg("Failed to render reset password template")
		}
	}
}

// ResetPasswordSubmissionHandler processes step 2: the new password
func (s *Server) ResetPasswordSubmissionHandler() http.HandlerFunc {
	step2Tmpl, err := ParseTemplate("reset_password.html")
	if err != nil {
		panic("Failed to parse reset password template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		email := r.FormValue("email")
		newPassword := r.FormValue("new_password")
		confirmPassword := r.FormValue("confirm_password")

		if err := s.auth.ResetPassword(r.Context(), email, newPassword, confirmPassword); err != nil {
			w.Header().Set("Content-Type", contentTypeHTML)
			if renderErr := step2Tmpl.Execute(w, PasswordPageData{AppName: s.config.AppName, Email: email, Error: inlineMessage(err)}); renderErr != nil {
				log.Err(renderErr).Msg("Failed to render reset password template")
			}
			return
		}

		http.Redirect(w, r, RouteLogin+"?notice=Password+updated.+Please+sign+in.", http.StatusSeeOther)
	}
}
