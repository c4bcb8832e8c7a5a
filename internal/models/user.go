package models

import "sort"

// DefaultCurrency is assigned to new profiles.
const DefaultCurrency = "USD"

// FixedExpenses maps a recurring expense name to its monthly amount.
type FixedExpenses map[string]float64

// Expense is a named amount, used for breakdowns and rankings.
type Expense struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// Total sums all fixed expenses.
func (f FixedExpenses) Total() float64 {
	var total float64
	for _, amount := range f {
		total += amount
	}
	return total
}

// Items returns the expenses sorted by name.
func (f FixedExpenses) Items() []Expense {
	items := make([]Expense, 0, len(f))
	for name, amount := range f {
		items = append(items, Expense{Name: name, Amount: amount})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items
}

// User represents the user and its profile
type User struct {
	Base
	Email         string        `gorm:"uniqueIndex;not null" json:"email"`
	Password      string        `gorm:"not null" json:"-"`
	FirstName     string        `json:"first_name"`
	LastName      string        `json:"last_name"`
	MonthlyIncome Income        `json:"monthly_income"`
	Currency      string        `gorm:"default:USD" json:"currency"`
	DarkMode      bool          `json:"dark_mode"`
	FixedExpenses FixedExpenses `gorm:"serializer:json" json:"fixed_expenses"`
	Goal          string        `json:"goal,omitempty"`
	SetupComplete bool          `json:"setup_complete"`
}

// DisplayName is the name used in greetings: the first name when known,
// otherwise the local part of the email.
func (u *User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	for i := 0; i < len(u.Email); i++ {
		if u.Email[i] == '@' {
			return u.Email[:i]
		}
	}
	return u.Email
}
