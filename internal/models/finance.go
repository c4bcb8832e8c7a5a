package models

// FinanceType represents the direction of a finance entry
type FinanceType string

const (
	FinanceTypeIncome  FinanceType = "income"
	FinanceTypeExpense FinanceType = "expense"
)

// Valid reports whether t is a known finance type.
func (t FinanceType) Valid() bool {
	return t == FinanceTypeIncome || t == FinanceTypeExpense
}

// FinanceEntry is a single logged income or expense. Entries are created and
// deleted, never edited.
type FinanceEntry struct {
	Base
	UserID   uint        `gorm:"index;not null" json:"user_id"`
	Type     FinanceType `gorm:"not null" json:"type"`
	Category string      `json:"category"`
	Amount   float64     `gorm:"not null" json:"amount"`
	Note     string      `json:"note,omitempty"`
}

// TableName keeps the table name of the original API.
func (FinanceEntry) TableName() string {
	return "finances"
}

// SumAmounts adds up the amounts of entries of the given type.
func SumAmounts(entries []FinanceEntry, t FinanceType) float64 {
	var total float64
	for _, e := range entries {
		if e.Type == t {
			total += e.Amount
		}
	}
	return total
}
