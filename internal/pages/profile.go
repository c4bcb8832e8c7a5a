package pages

import (
	"context"

	"lifeos/internal/auth"
	"lifeos/internal/models"
)

// Profile shows the account and offers password change, logout and
// deletion.
type Profile struct {
	auth *auth.Service
}

// NewProfile creates the profile screen.
func NewProfile(authService *auth.Service) *Profile {
	return &Profile{auth: authService}
}

// Load fetches the profile from the server.
func (p *Profile) Load(ctx context.Context) (*models.User, error) {
	user, err := p.auth.FetchProfile(ctx)
	if err != nil {
		return nil, fail("Failed to load profile.", err)
	}
	return user, nil
}

// ChangePassword replaces the password.
func (p *Profile) ChangePassword(ctx context.Context, current, next string) error {
	return fail("Failed to change password.", p.auth.ChangePassword(ctx, current, next))
}

// Logout ends the local session.
func (p *Profile) Logout() error {
	return p.auth.Logout()
}

// DeleteAccount deletes the account and ends the session.
func (p *Profile) DeleteAccount(ctx context.Context) error {
	return fail("Failed to delete account.", p.auth.DeleteAccount(ctx))
}
