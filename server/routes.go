package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/lifelinkhq/donor-portal/token"
)

func (s *Server) initRoutes() {
	// Public pages
	s.RegisterRouteFunc("GET "+RouteHome, s.HomePageHandler())
	s.RegisterRouteFunc("GET "+RouteAbout, s.AboutPageHandler())
	s.RegisterRouteFunc("GET "+RouteContact, s.ContactPageHandler())
	s.RegisterRouteFunc("GET "+RouteUnauthorized, s.UnauthorizedPageHandler())

	// LOGIN / LOGOUT
	s.RegisterRouteFunc("GET "+RouteLogin, s.LoginPageHandler())
	s.RegisterRouteFunc("POST "+RouteLogin, s.LoginSubmissionHandler())
	s.RegisterRouteFunc("GET "+RouteLogout, s.LogoutHandler())

	// Password reset (two steps)
	s.RegisterRouteFunc("GET "+RouteForgotPassword, s.ForgotPasswordPageHandler())
	s.RegisterRouteFunc("POST "+RouteForgotPassword, s.ForgotPasswordSubmissionHandler())
	s.RegisterRouteFunc("POST "+RouteResetPassword, s.ResetPasswordSubmissionHandler())

	// Registration
	s.RegisterRouteFunc("GET "+RouteDonorRegister, s.DonorRegisterPageHandler())
	s.RegisterRouteFunc("POST "+RouteDonorRegister, s.DonorRegisterSubmissionHandler())
	s.RegisterRouteFunc("GET "+RouteHospitalRegister, s.HospitalRegisterPageHandler())
	s.RegisterRouteFunc("POST "+RouteHospitalRegister, s.HospitalRegisterSubmissionHandler())

	// Role-gated dashboards
	s.RegisterRouteHandler("GET "+RouteDonorDashboard,
		ChainMiddleware(s.DonorDashboardHandler(), s.HTMLMiddleware(s.RequireRoles(token.RoleDonor))...))
	s.RegisterRouteHandler("GET "+RouteHospitalDashboard,
		ChainMiddleware(s.HospitalDashboardHandler(), s.HTMLMiddleware(s.RequireRoles(token.RoleHospital))...))
	s.RegisterRouteHandler("GET "+RouteAdminDashboard,
		ChainMiddleware(s.AdminDashboardHandler(), s.HTMLMiddleware(s.RequireRoles(token.RoleAdmin, token.RoleSuperAdmin))...))

	// Static assets
	s.RegisterRouteHandler("GET "+RouteStaticCSS, ChainMiddleware(s.serveFileHandler(), s.HTMLMiddleware()...))
}

func (s *Server) serveFileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filePath := strings.TrimPrefix(r.URL.Path, "/")
		if filePath == "" {
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
		if err := StreamFile(w, r, filePath); err != nil {
			logError("GET", filePath, err.Error())
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
	}
}

func logError(method, path, error string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	errorString := Red + error + ResetColor
	log.Printf("[%-19s] %s %s\n", displayMethod, path, errorString)
}
