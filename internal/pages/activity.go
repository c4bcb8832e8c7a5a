package pages

import (
	"context"
	"strings"

	"lifeos/internal/apiclient"
	"lifeos/internal/models"
	"lifeos/internal/session"
)

// ActivityLogger logs a single finance entry without showing a list.
type ActivityLogger struct {
	client *apiclient.Client
	sess   *session.Session
}

// NewActivityLogger creates the quick-log screen.
func NewActivityLogger(client *apiclient.Client, sess *session.Session) *ActivityLogger {
	return &ActivityLogger{client: client, sess: sess}
}

// Log records form. Category and amount must both be filled in; the type
// defaults to expense.
func (a *ActivityLogger) Log(ctx context.Context, form FinanceForm) (*models.FinanceEntry, error) {
	if strings.TrimSpace(form.Category) == "" || strings.TrimSpace(form.Amount) == "" {
		return nil, missing("Please fill in category and amount.")
	}
	user := a.sess.User()
	if !a.sess.Authenticated() || user == nil {
		return nil, fail("Failed to log activity.", errNoUser)
	}
	if form.Type == "" {
		form.Type = models.FinanceTypeExpense
	}

	req, err := form.entry(user.ID)
	if err != nil {
		return nil, err
	}
	entry, err := a.client.CreateFinance(ctx, req)
	if err != nil {
		return nil, fail("Failed to log activity.", err)
	}
	return entry, nil
}
