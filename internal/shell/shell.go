// Package shell is the root of the client. It keeps the logged-in user in
// memory and decides between the auth screen, the setup screen and the
// routed application.
package shell

import (
	"context"
	"sync"

	"lifeos/internal/auth"
	apperrors "lifeos/internal/errors"
	"lifeos/internal/guard"
	"lifeos/internal/logger"
	"lifeos/internal/models"
	"lifeos/internal/pages"
	"lifeos/internal/session"
)

// Screen is the top-level view.
type Screen string

const (
	ScreenAuth  Screen = "auth"
	ScreenSetup Screen = "setup"
	ScreenApp   Screen = "app"
)

// Mode selects what the auth screen does with the credentials.
type Mode string

const (
	ModeLogin    Mode = "login"
	ModeRegister Mode = "register"
)

// Credentials is the auth form.
type Credentials struct {
	Email           string
	Password        string
	ConfirmPassword string
	FirstName       string
	LastName        string
}

// Shell owns the in-memory user and the current screen.
type Shell struct {
	auth *auth.Service
	sess *session.Session

	mu     sync.Mutex
	user   *models.User
	screen Screen
}

// New creates a shell showing the auth screen until Start runs.
func New(authService *auth.Service) *Shell {
	return &Shell{auth: authService, sess: authService.Session(), screen: ScreenAuth}
}

// Start restores the session. A stored token is only trusted once the
// profile fetch succeeds; otherwise the session is cleared.
func (s *Shell) Start(ctx context.Context) Screen {
	if !s.sess.Authenticated() {
		return s.set(nil, ScreenAuth)
	}

	user, err := s.auth.FetchProfile(ctx)
	if err != nil {
		logger.Get().Infow("stored session rejected", "error", err)
		if clearErr := s.sess.Clear(); clearErr != nil {
			logger.Get().Warnw("clearing session failed", "error", clearErr)
		}
		return s.set(nil, ScreenAuth)
	}
	return s.set(user, screenFor(user))
}

// Authenticate registers (in register mode), logs in and loads the profile.
// Failures read "<Login|Registration> failed: <server message>".
func (s *Shell) Authenticate(ctx context.Context, mode Mode, creds Credentials) (Screen, error) {
	label := "Login"
	if mode == ModeRegister {
		label = "Registration"
		if creds.Password != creds.ConfirmPassword {
			return s.Screen(), apperrors.ErrPasswordMismatch
		}
		_, err := s.auth.Register(ctx, models.RegisterRequest{
			Email:           creds.Email,
			Password:        creds.Password,
			ConfirmPassword: creds.ConfirmPassword,
			FirstName:       creds.FirstName,
			LastName:        creds.LastName,
		})
		if err != nil {
			return s.Screen(), authFailure(label, err)
		}
	}

	if err := s.auth.Login(ctx, creds.Email, creds.Password); err != nil {
		return s.Screen(), authFailure(label, err)
	}
	user, err := s.auth.FetchProfile(ctx)
	if err != nil {
		_ = s.sess.Clear()
		return s.set(nil, ScreenAuth), authFailure(label, err)
	}
	return s.set(user, screenFor(user)), nil
}

// CompleteSetup submits the wizard and enters the application.
func (s *Shell) CompleteSetup(ctx context.Context, wizard *pages.SetupWizard) (Screen, error) {
	user, err := wizard.Submit(ctx)
	if err != nil {
		return s.Screen(), err
	}
	return s.set(user, screenFor(user)), nil
}

// Logout ends the session locally.
func (s *Shell) Logout() error {
	if err := s.auth.Logout(); err != nil {
		return err
	}
	s.set(nil, ScreenAuth)
	return nil
}

// DeleteAccount deletes the account and returns to the auth screen.
func (s *Shell) DeleteAccount(ctx context.Context) error {
	if err := s.auth.DeleteAccount(ctx); err != nil {
		return &pages.Failure{Message: "Failed to delete account.", Err: err}
	}
	s.set(nil, ScreenAuth)
	return nil
}

// Navigate runs the route guard against the current session and switches to
// the screen of the decided route.
func (s *Shell) Navigate(route string) guard.Decision {
	st := guard.FromSession(s.sess)
	d := guard.Decide(route, st)

	switch d.Route {
	case guard.RouteAuth:
		s.set(nil, ScreenAuth)
	case guard.RouteSetup:
		s.set(st.User, ScreenSetup)
	default:
		s.set(st.User, ScreenApp)
	}
	return d
}

// User returns the logged-in user, or nil.
func (s *Shell) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Screen returns the current screen.
func (s *Shell) Screen() Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen
}

func (s *Shell) set(user *models.User, screen Screen) Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user, s.screen = user, screen
	return screen
}

func screenFor(user *models.User) Screen {
	if user == nil || !user.SetupComplete {
		return ScreenSetup
	}
	return ScreenApp
}

func authFailure(label string, err error) error {
	return &pages.Failure{Message: label + " failed: " + err.Error(), Err: err}
}
