package auth

import "github.com/lifelinkhq/donor-portal/token"

// Role dashboard destinations. These are the client-facing route surface and
// must match the paths registered by the server package.
const (
	DestinationHome     = "/"
	DestinationDonor    = "/donor/dashboard"
	DestinationHospital = "/hospital/dashboard"
	DestinationAdmin    = "/admin/dashboard"
)

// Destination maps a login role onto its dashboard. Unrecognised roles land
// on the public home page.
func Destination(role token.Role) string {
	switch {
	case role.IsAdmin():
		return DestinationAdmin
	case role == token.RoleHospital:
		return DestinationHospital
	case role == token.RoleDonor:
		return DestinationDonor
	}
	return DestinationHome
}
