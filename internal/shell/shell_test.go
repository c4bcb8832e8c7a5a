package shell

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifeos/internal/apiclient"
	"lifeos/internal/auth"
	apperrors "lifeos/internal/errors"
	"lifeos/internal/guard"
	"lifeos/internal/models"
	"lifeos/internal/pages"
	"lifeos/internal/session"
	"lifeos/internal/testutil/apitest"
)

type fixture struct {
	shell  *Shell
	sess   *session.Session
	client *apiclient.Client
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	srv := apitest.NewServer(t)
	sess := session.New(session.NewMemoryStorage())
	client := apiclient.New(srv.APIURL(), sess, nil)
	return &fixture{shell: New(auth.NewService(client, sess)), sess: sess, client: client}
}

func annCredentials() Credentials {
	return Credentials{Email: "ann@b.com", Password: "x", ConfirmPassword: "x"}
}

func (f *fixture) completeSetup(t *testing.T) {
	t.Helper()
	w := pages.NewSetupWizard(f.client, f.sess)
	require.NoError(t, w.SetName("Ann", ""))
	require.NoError(t, w.SetIncome(models.FixedIncome(1000)))
	require.NoError(t, w.SetExpenses(nil))
	require.NoError(t, w.SetPreferences("USD", false, ""))
	screen, err := f.shell.CompleteSetup(context.Background(), w)
	require.NoError(t, err)
	require.Equal(t, ScreenApp, screen)
}

func TestStart_WithoutToken(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, ScreenAuth, f.shell.Start(context.Background()))
	assert.Nil(t, f.shell.User())
}

func TestStart_InvalidTokenClearsSession(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.sess.SaveToken("expired-or-forged"))
	require.NoError(t, f.sess.SaveUser(&models.User{Email: "stale@b.com", SetupComplete: true}))

	screen := f.shell.Start(context.Background())

	assert.Equal(t, ScreenAuth, screen)
	assert.False(t, f.sess.Authenticated())
	assert.Nil(t, f.sess.User())
	assert.Nil(t, f.shell.User())
}

func TestRegisterThenLoginLandsOnSetup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	screen, err := f.shell.Authenticate(ctx, ModeRegister, annCredentials())

	require.NoError(t, err)
	assert.Equal(t, ScreenSetup, screen)
	require.NotNil(t, f.shell.User())
	assert.False(t, f.shell.User().SetupComplete)
	assert.True(t, f.sess.Authenticated())

	d := f.shell.Navigate(guard.RouteTasks)
	assert.Equal(t, guard.RouteSetup, d.Route)
	assert.True(t, d.Redirected)
	assert.Equal(t, ScreenSetup, f.shell.Screen())

	f.completeSetup(t)
	d = f.shell.Navigate(guard.RouteTasks)
	assert.False(t, d.Redirected)
	assert.Equal(t, ScreenApp, f.shell.Screen())
}

func TestStart_RestoresSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.shell.Authenticate(ctx, ModeRegister, annCredentials())
	require.NoError(t, err)
	f.completeSetup(t)

	// A new shell over the same session is a reload.
	reloaded := New(auth.NewService(f.client, f.sess))
	assert.Equal(t, ScreenApp, reloaded.Start(ctx))
	assert.Equal(t, "Ann", reloaded.User().FirstName)
}

func TestAuthenticate_Failures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.shell.Authenticate(ctx, ModeRegister, annCredentials())
	require.NoError(t, err)
	require.NoError(t, f.shell.Logout())

	t.Run("mismatched confirmation never reaches the server", func(t *testing.T) {
		_, err := f.shell.Authenticate(ctx, ModeRegister, Credentials{Email: "new@b.com", Password: "x", ConfirmPassword: "y"})
		assert.ErrorIs(t, err, apperrors.ErrPasswordMismatch)
		assert.EqualError(t, err, "Passwords do not match")
	})

	t.Run("duplicate registration", func(t *testing.T) {
		_, err := f.shell.Authenticate(ctx, ModeRegister, annCredentials())
		assert.EqualError(t, err, "Registration failed: User already exists")
		assert.ErrorIs(t, err, apperrors.ErrDuplicateEmail)
	})

	t.Run("wrong password", func(t *testing.T) {
		screen, err := f.shell.Authenticate(ctx, ModeLogin, Credentials{Email: "ann@b.com", Password: "nope"})
		assert.EqualError(t, err, "Login failed: Invalid email or password")
		assert.Equal(t, ScreenAuth, screen)
		assert.False(t, f.sess.Authenticated())
	})

	t.Run("correct password", func(t *testing.T) {
		screen, err := f.shell.Authenticate(ctx, ModeLogin, Credentials{Email: "ann@b.com", Password: "x"})
		require.NoError(t, err)
		assert.Equal(t, ScreenSetup, screen)
	})
}

func TestDeleteAccount_RedirectsToAuth(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.shell.Authenticate(ctx, ModeRegister, annCredentials())
	require.NoError(t, err)
	f.completeSetup(t)

	require.NoError(t, f.shell.DeleteAccount(ctx))

	assert.False(t, f.sess.Authenticated())
	assert.Equal(t, ScreenAuth, f.shell.Screen())
	for _, route := range guard.ProtectedRoutes {
		d := f.shell.Navigate(route)
		assert.Equal(t, guard.RouteAuth, d.Route, "route %s", route)
	}
	assert.Equal(t, guard.RouteAuth, f.shell.Navigate(guard.RouteSetup).Route)
}

func TestLogout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.shell.Authenticate(ctx, ModeRegister, annCredentials())
	require.NoError(t, err)

	require.NoError(t, f.shell.Logout())

	assert.Equal(t, ScreenAuth, f.shell.Screen())
	assert.Nil(t, f.shell.User())
	assert.Equal(t, ScreenAuth, f.shell.Start(ctx))
}

func TestNavigate_UnknownRoute(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.shell.Authenticate(ctx, ModeRegister, annCredentials())
	require.NoError(t, err)
	f.completeSetup(t)

	d := f.shell.Navigate("/does-not-exist")

	assert.Equal(t, guard.RouteHome, d.Route)
	assert.True(t, d.Redirected)
}
