package pages

import (
	"context"

	"lifeos/internal/apiclient"
	"lifeos/internal/models"
	"lifeos/internal/session"
	"lifeos/internal/validator"
)

// BudgetEditor edits income, currency, dark mode and fixed expenses.
type BudgetEditor struct {
	client *apiclient.Client
	sess   *session.Session
}

// NewBudgetEditor creates the budget editor.
func NewBudgetEditor(client *apiclient.Client, sess *session.Session) *BudgetEditor {
	return &BudgetEditor{client: client, sess: sess}
}

// Current returns the editable fields of the cached profile.
func (b *BudgetEditor) Current() (models.ProfileUpdate, bool) {
	user := b.sess.User()
	if user == nil {
		return models.ProfileUpdate{}, false
	}
	currency := user.Currency
	if currency == "" {
		currency = models.DefaultCurrency
	}
	return models.ProfileUpdate{
		MonthlyIncome: user.MonthlyIncome,
		Currency:      currency,
		DarkMode:      user.DarkMode,
		FixedExpenses: user.FixedExpenses,
	}, true
}

// Save sends update and replaces the cached profile with the response.
func (b *BudgetEditor) Save(ctx context.Context, update models.ProfileUpdate) (*models.User, error) {
	user := b.sess.User()
	if !b.sess.Authenticated() || user == nil {
		return nil, fail("Failed to update user.", errNoUser)
	}
	if update.FixedExpenses == nil {
		update.FixedExpenses = models.FixedExpenses{}
	}
	if err := validator.Check(update); err != nil {
		return nil, err
	}

	updated, err := b.client.UpdateUser(ctx, user.ID, update)
	if err != nil {
		return nil, fail("Failed to update user.", err)
	}
	if err := b.sess.SaveUser(updated); err != nil {
		return nil, fail("Failed to update user.", err)
	}
	return updated, nil
}
