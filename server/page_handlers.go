package server

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

const contentTypeHTML = "text/html; charset=utf-8"

// PageData is a minimal template model for static pages
type PageData struct {
	AppName string
	Error   string
	Notice  string
}

func (s *Server) staticPageHandler(templateName string) http.HandlerFunc {
	tmpl, err := ParseTemplate(templateName)
	if err != nil {
		panic("Failed to parse template " + templateName + ": " + err.Error())
	}
	return func(w http.ResponseWriter, r *http.Request) {
		data := PageData{
			AppName: s.config.AppName,
			Error:   r.URL.Query().Get("error"),
			Notice:  r.URL.Query().Get("notice"),
		}
		w.Header().Set("Content-Type", contentTypeHTML)
		if err := tmpl.Execute(w, data); err != nil {
			log.Err(err).Str("template", templateName).Msg("Failed to render page")
		}
	}
}

// HomePageHandler renders the public landing page
func (s *Server) HomePageHandler() http.HandlerFunc {
	return s.staticPageHandler("home.html")
}

// AboutPageHandler renders the about page
func (s *Server) AboutPageHandler() http.HandlerFunc {
	return s.staticPageHandler("about.html")
}

// ContactPageHandler renders the contact page
func (s *Server) ContactPageHandler() http.HandlerFunc {
	return s.staticPageHandler("contact.html")
}

// UnauthorizedPageHandler renders the terminal unauthorized page
func (s *Server) UnauthorizedPageHandler() http.HandlerFunc {
	return s.staticPageHandler("unauthorized.html")
}
