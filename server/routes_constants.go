package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Public pages
	RouteHome    = "/"
	RouteAbout   = "/about"
	RouteContact = "/contact"

	// Auth Routes - Login & Logout
	RouteLogin  = "/login"
	RouteLogout = "/logout"

	// Auth Routes - Password Management
	RouteForgotPassword = "/forgot-password"
	RouteResetPassword  = "/reset-password"

	// Registration Routes
	RouteDonorRegister    = "/donor-register"
	RouteHospitalRegister = "/hospital-register"

	// Role-gated dashboards
	RouteDonorDashboard    = "/donor/dashboard"
	RouteHospitalDashboard = "/hospital/dashboard"
	RouteAdminDashboard    = "/admin/dashboard"

	// Terminal pages
	RouteUnauthorized = "/unauthorized"

	// Static Asset Routes (patterns)
	RouteStaticCSS = "/css/{file}"
)
