package auth_test

import (
	"context"
	"testing"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/lifelinkhq/donor-portal/api"
	"github.com/lifelinkhq/donor-portal/auth"
	apperrors "github.com/lifelinkhq/donor-portal/internal/errors"
	"github.com/lifelinkhq/donor-portal/session"
	memorykv "github.com/lifelinkhq/donor-portal/session/kv/memory"
)

const (
	testContextID = "ctx-1"
	testEmail     = "jane@example.com"
	testPassword  = "password123"
)

// fakeBackend is a scripted stand-in for the API client.
type fakeBackend struct {
	loginResp       api.LoginResponse
	loginErr        error
	loginCalls      int
	forgotResp      api.ForgotPasswordResponse
	forgotErr       error
	resetErr        error
	resetCalls      int
	lastNewPassword string
}

func (f *fakeBackend) Login(_ context.Context, _, _ string, _ bool) (api.LoginResponse, error) {
	f.loginCalls++
	return f.loginResp, f.loginErr
}

func (f *fakeBackend) ForgotPassword(_ context.Context, _ string) (api.ForgotPasswordResponse, error) {
	return f.forgotResp, f.forgotErr
}

func (f *fakeBackend) ResetPassword(_ context.Context, _, newPassword string) error {
	f.resetCalls++
	f.lastNewPassword = newPassword
	return f.resetErr
}

// testFixture holds the service under test and its collaborators.
type testFixture struct {
	backend  *fakeBackend
	sessions *session.Store
	service  *auth.Service
}

func setupTestFixture(t *testing.T, backend *fakeBackend) *testFixture {
	t.Helper()

	sessions, err := session.NewStore(memorykv.NewKV(), memorykv.NewKV())
	require.NoError(t, err)

	service, err := auth.NewService(backend, sessions)
	require.NoError(t, err)

	return &testFixture{backend: backend, sessions: sessions, service: service}
}

func donorToken(t *testing.T, role string) string {
	t.Helper()
	raw, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{"role": role}).SignedString([]byte("any-key"))
	require.NoError(t, err)
	return raw
}

func TestLogin(t *testing.T) {
	t.Run("remember-me login lands in the remembered scope", func(t *testing.T) {
		f := setupTestFixture(t, &fakeBackend{loginResp: api.LoginResponse{
			Success: true,
			Token:   donorToken(t, "Donor"),
			User:    session.User{Email: testEmail, Role: "Donor"},
		}})

		destination, err := f.service.Login(context.Background(), testContextID, testEmail, testPassword, true)
		require.NoError(t, err)
		require.Equal(t, auth.DestinationDonor, destination)

		sess, scope, err := f.sessions.Load(testContextID)
		require.NoError(t, err)
		require.Equal(t, session.ScopeRemembered, scope)
		require.NotEmpty(t, sess.Token)
		require.Equal(t, testEmail, sess.User.Email)
	})

	t.Run("plain login lands in the ephemeral scope", func(t *testing.T) {
		f := setupTestFixture(t, &fakeBackend{loginResp: api.LoginResponse{
			Success: true,
			Token:   donorToken(t, "Donor"),
			User:    session.User{Email: testEmail, Role: "Donor"},
		}})

		_, err := f.service.Login(context.Background(), testContextID, testEmail, testPassword, false)
		require.NoError(t, err)

		_, scope, err := f.sessions.Load(testContextID)
		require.NoError(t, err)
		require.Equal(t, session.ScopeEphemeral, scope)
	})

	t.Run("destination follows the declared role", func(t *testing.T) {
		for role, want := range map[string]string{
			"Admin":      auth.DestinationAdmin,
			"SuperAdmin": auth.DestinationAdmin,
			"Hospital":   auth.DestinationHospital,
			"Donor":      auth.DestinationDonor,
			"Courier":    auth.DestinationHome,
		} {
			f := setupTestFixture(t, &fakeBackend{loginResp: api.LoginResponse{
				Success: true,
				Token:   donorToken(t, role),
				User:    session.User{Email: testEmail, Role: role},
			}})

			destination, err := f.service.Login(context.Background(), testContextID, testEmail, testPassword, false)
			require.NoError(t, err)
			require.Equal(t, want, destination, "role %s", role)
		}
	})

	t.Run("token role claim fills in a missing declared role", func(t *testing.T) {
		f := setupTestFixture(t, &fakeBackend{loginResp: api.LoginResponse{
			Success: true,
			Token:   donorToken(t, "Hospital"),
			User:    session.User{Email: testEmail},
		}})

		destination, err := f.service.Login(context.Background(), testContextID, testEmail, testPassword, false)
		require.NoError(t, err)
		require.Equal(t, auth.DestinationHospital, destination)
	})

	t.Run("backend failure leaves the session untouched", func(t *testing.T) {
		backend := &fakeBackend{loginErr: apperrors.ErrInvalidCredentials}
		f := setupTestFixture(t, backend)
		require.NoError(t, f.sessions.Save(testContextID, session.Session{Token: "old"}, session.ScopeRemembered))

		_, err := f.service.Login(context.Background(), testContextID, testEmail, "wrongpass", false)
		require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

		sess, _, err := f.sessions.Load(testContextID)
		require.NoError(t, err)
		require.Equal(t, "old", sess.Token)
	})

	t.Run("invalid local input never reaches the backend", func(t *testing.T) {
		backend := &fakeBackend{}
		f := setupTestFixture(t, backend)

		_, err := f.service.Login(context.Background(), testContextID, "not-an-email", testPassword, false)
		require.Error(t, err)
		require.Zero(t, backend.loginCalls)

		_, err = f.service.Login(context.Background(), testContextID, testEmail, "", false)
		require.Error(t, err)
		require.Zero(t, backend.loginCalls)
	})

	t.Run("a fresh login replaces any prior session", func(t *testing.T) {
		f := setupTestFixture(t, &fakeBackend{loginResp: api.LoginResponse{
			Success: true,
			Token:   donorToken(t, "Donor"),
			User:    session.User{Email: testEmail, Role: "Donor"},
		}})
		require.NoError(t, f.sessions.Save(testContextID, session.Session{Token: "stale"}, session.ScopeRemembered))

		_, err := f.service.Login(context.Background(), testContextID, testEmail, testPassword, false)
		require.NoError(t, err)

		sess, scope, err := f.sessions.Load(testContextID)
		require.NoError(t, err)
		require.Equal(t, session.ScopeEphemeral, scope)
		require.NotEqual(t, "stale", sess.Token)
	})
}

func TestLogout(t *testing.T) {
	t.Run("remembered login keeps the email for prefill", func(t *testing.T) {
		f := setupTestFixture(t, &fakeBackend{loginResp: api.LoginResponse{
			Success: true,
			Token:   donorToken(t, "Donor"),
			User:    session.User{Email: testEmail, Role: "Donor"},
		}})

		_, err := f.service.Login(context.Background(), testContextID, testEmail, testPassword, true)
		require.NoError(t, err)
		require.NoError(t, f.service.Logout(testContextID))

		sess, _, err := f.sessions.Load(testContextID)
		require.NoError(t, err)
		require.Empty(t, sess.Token)
		require.Equal(t, testEmail, f.service.PrefillEmail(testContextID))
	})

	t.Run("ephemeral login leaves nothing behind", func(t *testing.T) {
		f := setupTestFixture(t, &fakeBackend{loginResp: api.LoginResponse{
			Success: true,
			Token:   donorToken(t, "Donor"),
			User:    session.User{Email: testEmail, Role: "Donor"},
		}})

		_, err := f.service.Login(context.Background(), testContextID, testEmail, testPassword, false)
		require.NoError(t, err)
		require.NoError(t, f.service.Logout(testContextID))

		_, _, err = f.sessions.Load(testContextID)
		require.ErrorIs(t, err, apperrors.ErrNoSession)
		require.Empty(t, f.service.PrefillEmail(testContextID))
	})
}

func TestForgotPassword(t *testing.T) {
	t.Run("reports recognised email", func(t *testing.T) {
		f := setupTestFixture(t, &fakeBackend{forgotResp: api.ForgotPasswordResponse{EmailExists: true}})
		exists, err := f.service.ForgotPassword(context.Background(), testEmail)
		require.NoError(t, err)
		require.True(t, exists)
	})

	t.Run("reports unrecognised email without error", func(t *testing.T) {
		f := setupTestFixture(t, &fakeBackend{forgotResp: api.ForgotPasswordResponse{EmailExists: false}})
		exists, err := f.service.ForgotPassword(context.Background(), testEmail)
		require.NoError(t, err)
		require.False(t, exists)
	})

	t.Run("rejects malformed email locally", func(t *testing.T) {
		f := setupTestFixture(t, &fakeBackend{})
		_, err := f.service.ForgotPassword(context.Background(), "nope")
		require.Error(t, err)
	})
}

func TestResetPassword(t *testing.T) {
	t.Run("sends the new password to the backend", func(t *testing.T) {
		backend := &fakeBackend{}
		f := setupTestFixture(t, backend)

		require.NoError(t, f.service.ResetPassword(context.Background(), testEmail, "newpassword1", "newpassword1"))
		require.Equal(t, 1, backend.resetCalls)
		require.Equal(t, "newpassword1", backend.lastNewPassword)
	})

	t.Run("short password never reaches the backend", func(t *testing.T) {
		backend := &fakeBackend{}
		f := setupTestFixture(t, backend)

		err := f.service.ResetPassword(context.Background(), testEmail, "short7c", "short7c")
		require.Error(t, err)
		require.Zero(t, backend.resetCalls)
	})

	t.Run("mismatched confirmation never reaches the backend", func(t *testing.T) {
		backend := &fakeBackend{}
		f := setupTestFixture(t, backend)

		err := f.service.ResetPassword(context.Background(), testEmail, "newpassword1", "newpassword2")
		require.Error(t, err)
		require.Zero(t, backend.resetCalls)
	})
}

func TestUpdateSnapshot(t *testing.T) {
	f := setupTestFixture(t, &fakeBackend{loginResp: api.LoginResponse{
		Success: true,
		Token:   donorToken(t, "Donor"),
		User:    session.User{Email: testEmail, Role: "Donor"},
	}})

	_, err := f.service.Login(context.Background(), testContextID, testEmail, testPassword, true)
	require.NoError(t, err)

	require.NoError(t, f.service.UpdateSnapshot(testContextID, session.User{City: "Leeds"}))

	sess, _, err := f.sessions.Load(testContextID)
	require.NoError(t, err)
	require.Equal(t, "Leeds", sess.User.City)
	require.NotEmpty(t, sess.Token)
}
