package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifeos/internal/apiclient"
	apperrors "lifeos/internal/errors"
	"lifeos/internal/models"
	"lifeos/internal/session"
	"lifeos/internal/testutil/apitest"
)

func newService(t *testing.T) (*Service, *session.Session) {
	t.Helper()
	srv := apitest.NewServer(t)
	sess := session.New(session.NewMemoryStorage())
	return NewService(apiclient.New(srv.APIURL(), sess, nil), sess), sess
}

func register(t *testing.T, svc *Service, email, password string) uint {
	t.Helper()
	resp, err := svc.Register(context.Background(), models.RegisterRequest{
		Email: email, Password: password, ConfirmPassword: password,
	})
	require.NoError(t, err)
	return resp.UserID
}

func TestRegisterLoginFetchProfile(t *testing.T) {
	svc, sess := newService(t)
	ctx := context.Background()

	userID := register(t, svc, "a@b.com", "x")
	assert.NotZero(t, userID)
	assert.False(t, sess.Authenticated(), "register must not log in")

	require.NoError(t, svc.Login(ctx, "a@b.com", "x"))
	assert.True(t, sess.Authenticated())
	assert.Nil(t, sess.User(), "login alone caches no profile")

	user, err := svc.FetchProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "a@b.com", user.Email)
	assert.False(t, user.SetupComplete)

	cached := sess.User()
	require.NotNil(t, cached)
	assert.Equal(t, userID, cached.ID)
}

func TestRegister(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	register(t, svc, "taken@b.com", "x")

	tests := []struct {
		name    string
		req     models.RegisterRequest
		code    *apperrors.AppError
		message string
	}{
		{
			name: "password mismatch carries the server message",
			req:  models.RegisterRequest{Email: "new@b.com", Password: "x", ConfirmPassword: "y"},
			code: apperrors.ErrPasswordMismatch, message: "Passwords do not match",
		},
		{
			name: "duplicate email carries the server message",
			req:  models.RegisterRequest{Email: "taken@b.com", Password: "x", ConfirmPassword: "x"},
			code: apperrors.ErrDuplicateEmail, message: "User already exists",
		},
		{
			name: "missing email fails before any call",
			req:  models.RegisterRequest{Password: "x", ConfirmPassword: "x"},
			code: apperrors.ErrInvalidInput, message: "email is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.code)
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	svc, sess := newService(t)
	register(t, svc, "a@b.com", "right")

	err := svc.Login(context.Background(), "a@b.com", "wrong")

	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	assert.Equal(t, "Invalid email or password", err.Error())
	assert.False(t, sess.Authenticated())
}

func TestLogin_MissingPassword(t *testing.T) {
	svc, _ := newService(t)

	err := svc.Login(context.Background(), "a@b.com", "")

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestFetchProfile_InvalidToken(t *testing.T) {
	svc, sess := newService(t)
	require.NoError(t, sess.SaveToken("not-a-jwt"))
	require.NoError(t, sess.SaveUser(&models.User{Email: "stale@b.com", SetupComplete: true}))

	user, err := svc.FetchProfile(context.Background())

	assert.Nil(t, user)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.Nil(t, sess.User(), "no profile may stay cached after a failed fetch")
}

func TestFetchProfile_NoToken(t *testing.T) {
	svc, sess := newService(t)

	_, err := svc.FetchProfile(context.Background())

	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.Nil(t, sess.User())
}

func TestChangePassword(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	register(t, svc, "a@b.com", "old")
	require.NoError(t, svc.Login(ctx, "a@b.com", "old"))

	err := svc.ChangePassword(ctx, "bad", "new")
	assert.ErrorIs(t, err, apperrors.ErrWrongPassword)

	require.NoError(t, svc.ChangePassword(ctx, "old", "new"))
	require.NoError(t, svc.Logout())

	assert.ErrorIs(t, svc.Login(ctx, "a@b.com", "old"), apperrors.ErrInvalidCredentials)
	assert.NoError(t, svc.Login(ctx, "a@b.com", "new"))
}

func TestDeleteAccount(t *testing.T) {
	svc, sess := newService(t)
	ctx := context.Background()
	register(t, svc, "a@b.com", "x")
	require.NoError(t, svc.Login(ctx, "a@b.com", "x"))
	_, err := svc.FetchProfile(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAccount(ctx))

	assert.False(t, sess.Authenticated())
	assert.Nil(t, sess.User())
	assert.ErrorIs(t, svc.Login(ctx, "a@b.com", "x"), apperrors.ErrInvalidCredentials)
}

func TestDeleteAccount_FailureKeepsSession(t *testing.T) {
	svc, sess := newService(t)
	require.NoError(t, sess.SaveToken("not-a-jwt"))

	err := svc.DeleteAccount(context.Background())

	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.True(t, sess.Authenticated())
}

func TestLogout(t *testing.T) {
	svc, sess := newService(t)
	require.NoError(t, sess.SaveToken("t"))
	require.NoError(t, sess.SaveUser(&models.User{Email: "a@b.com"}))

	require.NoError(t, svc.Logout())

	assert.False(t, sess.Authenticated())
	assert.Nil(t, sess.User())
}
