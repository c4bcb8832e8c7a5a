package pages

import (
	"context"
	"math"
	"strconv"
	"strings"

	"lifeos/internal/apiclient"
	"lifeos/internal/models"
	"lifeos/internal/session"
)

// CategoryOther selects the free-text category of a FinanceForm.
const CategoryOther = "other"

// CategoryOption is one choice of the category picker.
type CategoryOption struct {
	Label string
	Value string
}

// CategoryOptions lists the picker choices per entry type.
var CategoryOptions = map[models.FinanceType][]CategoryOption{
	models.FinanceTypeIncome: {
		{Label: "Salary", Value: "salary"},
		{Label: "Rent", Value: "rent"},
		{Label: "Investments", Value: "investments"},
		{Label: "Gift", Value: "gift"},
		{Label: "Other", Value: CategoryOther},
	},
	models.FinanceTypeExpense: {
		{Label: "Food", Value: "food"},
		{Label: "Rent", Value: "rent"},
		{Label: "Transport", Value: "transport"},
		{Label: "Entertainment", Value: "entertainment"},
		{Label: "Other", Value: CategoryOther},
	},
}

// FinanceForm is the input of a new entry as typed by the user.
type FinanceForm struct {
	Type           models.FinanceType
	Amount         string
	Category       string
	CustomCategory string
	Note           string
}

// parseAmount reads a finite, non-negative amount.
func parseAmount(text string) (float64, bool) {
	amount, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return 0, false
	}
	return amount, true
}

// entry turns the form into a create request. The amount must be present
// and numeric; choosing "other" uses the custom category.
func (f FinanceForm) entry(userID uint) (models.FinanceCreate, error) {
	amountText := strings.TrimSpace(f.Amount)
	if amountText == "" {
		return models.FinanceCreate{}, missing("Amount is required")
	}
	amount, ok := parseAmount(amountText)
	if !ok {
		return models.FinanceCreate{}, missing("Amount must be a non-negative number")
	}

	entryType := f.Type
	if entryType == "" {
		entryType = models.FinanceTypeIncome
	}
	if !entryType.Valid() {
		return models.FinanceCreate{}, missing("Type must be income or expense")
	}

	category := f.Category
	if category == CategoryOther {
		category = f.CustomCategory
	}

	return models.FinanceCreate{
		UserID:   userID,
		Type:     entryType,
		Category: strings.TrimSpace(category),
		Amount:   amount,
		Note:     f.Note,
	}, nil
}

// Finances is the income and expense ledger screen.
type Finances struct {
	*Page[models.FinanceEntry]
	client *apiclient.Client
}

// NewFinances creates the ledger screen.
func NewFinances(client *apiclient.Client, sess *session.Session) *Finances {
	return &Finances{Page: NewPage(sess, client.ListFinances), client: client}
}

// Mount loads the user's entries.
func (f *Finances) Mount() error {
	return fail("Failed to load finances.", f.Page.Mount())
}

// Add logs an entry from form.
func (f *Finances) Add(form FinanceForm) error {
	user := f.User()
	if user == nil {
		return fail("Failed to add entry.", errNoUser)
	}
	req, err := form.entry(user.ID)
	if err != nil {
		return err
	}

	err = f.Mutate(func(ctx context.Context, _ uint) error {
		_, err := f.client.CreateFinance(ctx, req)
		return err
	})
	return fail("Failed to add entry.", err)
}

// Delete removes an entry.
func (f *Finances) Delete(id uint) error {
	err := f.Mutate(func(ctx context.Context, _ uint) error {
		return f.client.DeleteFinance(ctx, id)
	})
	return fail("Failed to delete entry.", err)
}

// Incomes returns the income entries.
func (f *Finances) Incomes() []models.FinanceEntry {
	return filterEntries(f.Items(), models.FinanceTypeIncome)
}

// Expenses returns the expense entries.
func (f *Finances) Expenses() []models.FinanceEntry {
	return filterEntries(f.Items(), models.FinanceTypeExpense)
}

func filterEntries(entries []models.FinanceEntry, t models.FinanceType) []models.FinanceEntry {
	out := make([]models.FinanceEntry, 0, len(entries))
	for _, e := range entries {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}
