// Package budget summarizes a month: income against fixed and variable
// expenses.
package budget

import (
	"math"
	"sort"

	"lifeos/internal/models"
)

// LowThreshold is the remaining percentage under which a budget is low.
const LowThreshold = 20

// TopExpenseCount is how many expenses a summary ranks.
const TopExpenseCount = 3

// Slice names.
const (
	SliceFixed    = "Fixed Expenses"
	SliceVariable = "Variable Expenses"
	SliceSavings  = "Savings"
)

// Slice is one segment of the budget chart.
type Slice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Summary is the computed view of one month.
type Summary struct {
	Income           []models.IncomeSource `json:"income"`
	TotalIncome      float64               `json:"total_income"`
	TotalFixed       float64               `json:"total_fixed"`
	TotalVariable    float64               `json:"total_variable"`
	TotalExpenses    float64               `json:"total_expenses"`
	Savings          float64               `json:"savings"`
	RemainingPercent int                   `json:"remaining_percent"`
	Low              bool                  `json:"low"`
	Slices           []Slice               `json:"slices"`
	TopExpenses      []models.Expense      `json:"top_expenses"`
}

// Summarize computes the summary for an income, the recurring fixed expenses
// and the month's logged expenses. Only expense entries of variable count.
func Summarize(income models.Income, fixed models.FixedExpenses, variable []models.FinanceEntry) Summary {
	s := Summary{
		Income:      income.Lines(),
		TotalIncome: income.Total(),
		TotalFixed:  fixed.Total(),
	}

	ranked := fixed.Items()
	for _, e := range variable {
		if e.Type != "" && e.Type != models.FinanceTypeExpense {
			continue
		}
		s.TotalVariable += e.Amount
		ranked = append(ranked, models.Expense{Name: e.Category, Amount: e.Amount})
	}

	s.TotalExpenses = s.TotalFixed + s.TotalVariable
	s.Savings = s.TotalIncome - s.TotalExpenses
	if s.TotalIncome != 0 {
		s.RemainingPercent = int(math.Round(s.Savings / s.TotalIncome * 100))
	}
	s.Low = s.RemainingPercent < LowThreshold

	s.Slices = []Slice{
		{Name: SliceFixed, Value: s.TotalFixed},
		{Name: SliceVariable, Value: s.TotalVariable},
		{Name: SliceSavings, Value: math.Max(s.Savings, 0)},
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Amount > ranked[j].Amount })
	if len(ranked) > TopExpenseCount {
		ranked = ranked[:TopExpenseCount]
	}
	s.TopExpenses = ranked

	return s
}
