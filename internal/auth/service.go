// Package auth is the client side of authentication: it exchanges
// credentials for a token through the API client and keeps the session in
// step with the outcome.
package auth

import (
	"context"
	"net/url"

	"lifeos/internal/apiclient"
	"lifeos/internal/models"
	"lifeos/internal/session"
	"lifeos/internal/validator"
)

// Service registers, logs in and fetches the profile of the session's user.
type Service struct {
	client  *apiclient.Client
	session *session.Session
}

// NewService creates a Service. client should read its token from sess.
func NewService(client *apiclient.Client, sess *session.Session) *Service {
	return &Service{client: client, session: sess}
}

// Session returns the session the service writes to.
func (s *Service) Session() *session.Session {
	return s.session
}

// Register creates an account. The session is not touched; callers log in
// afterwards.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}
	var resp models.RegisterResponse
	if err := s.client.PostJSON(ctx, "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login exchanges credentials for a bearer token and stores it. The cached
// profile is left alone; FetchProfile refreshes it.
func (s *Service) Login(ctx context.Context, email, password string) error {
	form := models.LoginForm{Username: email, Password: password}
	if err := validator.Check(form); err != nil {
		return err
	}

	values := url.Values{"username": {form.Username}, "password": {form.Password}}
	var resp models.TokenResponse
	if err := s.client.PostForm(ctx, "/auth/login", values, &resp); err != nil {
		return err
	}
	return s.session.SaveToken(resp.AccessToken)
}

// FetchProfile loads the profile of the token holder and caches it. On
// failure the cached profile is dropped so a stale one cannot pass the guard.
func (s *Service) FetchProfile(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := s.client.GetJSON(ctx, "/auth/me", &user); err != nil {
		_ = s.session.ClearUser()
		return nil, err
	}
	if err := s.session.SaveUser(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword replaces the password of the logged-in user.
func (s *Service) ChangePassword(ctx context.Context, current, next string) error {
	req := models.ChangePasswordRequest{CurrentPassword: current, NewPassword: next}
	if err := validator.Check(req); err != nil {
		return err
	}
	return s.client.PostJSON(ctx, "/auth/change-password", req, nil)
}

// DeleteAccount deletes the logged-in user and then the session.
func (s *Service) DeleteAccount(ctx context.Context) error {
	if err := s.client.Delete(ctx, "/auth/delete"); err != nil {
		return err
	}
	return s.session.Clear()
}

// Logout forgets the token and the cached profile. The server keeps no
// session, so nothing is sent.
func (s *Service) Logout() error {
	return s.session.Clear()
}
