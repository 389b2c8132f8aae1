package api

import (
	"context"
	"fmt"

	"github.com/lifelinkhq/donor-portal/session"
)

// Profile fetches the authoritative profile for the token's user.
func (c *Client) Profile(ctx context.Context, bearer string) (session.User, error) {
	var out session.User
	if err := c.getJSON(ctx, "/auth/profile", &out, bearer); err != nil {
		return session.User{}, err
	}
	return out, nil
}

// Appointments lists the token's role-scoped appointments.
func (c *Client) Appointments(ctx context.Context, bearer string) ([]Appointment, error) {
	var out []Appointment
	if err := c.getJSON(ctx, "/auth/appointments", &out, bearer); err != nil {
		return nil, err
	}
	return out, nil
}

// Notifications lists the token's role-scoped notifications.
func (c *Client) Notifications(ctx context.Context, bearer string) ([]Notification, error) {
	var out []Notification
	if err := c.getJSON(ctx, "/auth/notifications", &out, bearer); err != nil {
		return nil, err
	}
	return out, nil
}

// NearbyHospitals looks up hospitals close to the given coordinates. Used by
// the wizard's appointment step; callers treat failures as best-effort.
func (c *Client) NearbyHospitals(ctx context.Context, latitude, longitude float64) ([]Hospital, error) {
	path := fmt.Sprintf("/hospitals/nearby?lat=%f&lng=%f", latitude, longitude)
	var out []Hospital
	if err := c.getJSON(ctx, path, &out, ""); err != nil {
		return nil, err
	}
	return out, nil
}
