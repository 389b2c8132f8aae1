package api

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	apperrors "github.com/lifelinkhq/donor-portal/internal/errors"
)

// Login exchanges credentials for a token and user snapshot. Rejected
// credentials surface as ErrInvalidCredentials carrying the backend's
// message; transport failures as ErrNetwork; anything else as a ServerError.
func (c *Client) Login(ctx context.Context, email, password string, rememberMe bool) (LoginResponse, error) {
	body := struct {
		Email      string `json:"email"`
		Password   string `json:"password"`
		RememberMe bool   `json:"rememberMe"`
	}{Email: email, Password: password, RememberMe: rememberMe}

	var out LoginResponse
	if err := c.postJSON(ctx, "/auth/login", body, &out, ""); err != nil {
		var serverErr *ServerError
		if errors.As(err, &serverErr) && (serverErr.StatusCode == http.StatusBadRequest || serverErr.StatusCode == http.StatusUnauthorized || serverErr.StatusCode == http.StatusNotFound) {
			return LoginResponse{}, errors.Wrap(apperrors.ErrInvalidCredentials, serverErr.Message)
		}
		return LoginResponse{}, err
	}
	if !out.Success || out.Token == "" {
		return LoginResponse{}, apperrors.ErrInvalidCredentials
	}
	return out, nil
}

// ForgotPassword asks the backend whether the email is recognised. Nothing
// changes server-side; this is step one of the two-step reset flow.
func (c *Client) ForgotPassword(ctx context.Context, email string) (ForgotPasswordResponse, error) {
	body := struct {
		Email string `json:"email"`
	}{Email: email}

	var out ForgotPasswordResponse
	if err := c.postJSON(ctx, "/auth/forgot-password", body, &out, ""); err != nil {
		return ForgotPasswordResponse{}, err
	}
	return out, nil
}

// ResetPassword submits the replacement password collected in step two.
func (c *Client) ResetPassword(ctx context.Context, email, newPassword string) error {
	body := struct {
		Email       string `json:"email"`
		NewPassword string `json:"newPassword"`
	}{Email: email, NewPassword: newPassword}

	return c.postJSON(ctx, "/auth/reset-password", body, nil, "")
}

// RegisterDonor performs the single registration call at the end of the
// donor wizard. The returned message is the backend's acknowledgement.
func (c *Client) RegisterDonor(ctx context.Context, reg DonorRegistration) (string, error) {
	var out RegistrationResponse
	if err := c.postJSON(ctx, "/auth/register-donor", reg, &out, ""); err != nil {
		return "", err
	}
	return out.Message, nil
}

// RegisterHospital submits a hospital sign-up.
func (c *Client) RegisterHospital(ctx context.Context, reg HospitalRegistration) (string, error) {
	var out RegistrationResponse
	if err := c.postJSON(ctx, "/auth/register-hospital", reg, &out, ""); err != nil {
		return "", err
	}
	return out.Message, nil
}
