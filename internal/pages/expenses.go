package pages

import (
	"fmt"
	"strconv"
	"strings"

	"lifeos/internal/models"
)

// ExpenseLine is one row of a fixed expense editor.
type ExpenseLine struct {
	Name   string
	Amount string
}

// FixedExpenses keeps the rows that have both a name and an amount. A filled
// amount that is not a non-negative number is an error.
func FixedExpenses(lines []ExpenseLine) (models.FixedExpenses, error) {
	out := models.FixedExpenses{}
	for _, line := range lines {
		name, amountText := strings.TrimSpace(line.Name), strings.TrimSpace(line.Amount)
		if name == "" || amountText == "" {
			continue
		}
		amount, ok := parseAmount(amountText)
		if !ok {
			return nil, missing(fmt.Sprintf("Amount of %q must be a non-negative number", name))
		}
		out[name] = amount
	}
	return out, nil
}

// ExpenseLines renders fixed expenses as editor rows, sorted by name.
func ExpenseLines(fixed models.FixedExpenses) []ExpenseLine {
	items := fixed.Items()
	lines := make([]ExpenseLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, ExpenseLine{Name: item.Name, Amount: strconv.FormatFloat(item.Amount, 'f', -1, 64)})
	}
	return lines
}
