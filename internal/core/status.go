package core

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AlertLevel is the tier a budget falls into for the current month.
type AlertLevel int

const (
	LevelNone AlertLevel = iota
	LevelWarning
	LevelAlert
)

var (
	hundred          = decimal.NewFromInt(100)
	warningThreshold = decimal.NewFromInt(80)
)

func (l AlertLevel) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelAlert:
		return "alert"
	default:
		return "none"
	}
}

// Percent returns part/whole*100. whole must be positive.
func Percent(part, whole Money) decimal.Decimal {
	return decimal.NewFromInt(part.Cents).Mul(hundred).Div(decimal.NewFromInt(whole.Cents))
}

// ClassifyBudget maps spent against limit to an alert tier and its message.
// 100% exactly is alert-tier; limits that are not positive never alert.
func ClassifyBudget(category string, spent, limit Money) (AlertLevel, string) {
	if limit.Cents <= 0 {
		return LevelNone, ""
	}
	pct := Percent(spent, limit)
	switch {
	case pct.GreaterThan(hundred):
		return LevelAlert, fmt.Sprintf("Alert: You've exceeded your '%s' budget!", category)
	case pct.Equal(hundred):
		return LevelAlert, fmt.Sprintf("Alert: You've spent %s%% of your '%s' budget.", pct.StringFixed(1), category)
	case pct.GreaterThanOrEqual(warningThreshold):
		return LevelWarning, fmt.Sprintf("Warning: You've spent %s%% of your '%s' budget.", pct.StringFixed(1), category)
	default:
		return LevelNone, ""
	}
}

// SpentByCategory sums expense amounts per category for expenses dated on or
// after since.
func SpentByCategory(expenses []Expense, since Date) map[string]Money {
	totals := make(map[string]Money)
	for _, e := range expenses {
		if e.Date.Before(since) {
			continue
		}
		totals[e.Category] = totals[e.Category].Add(e.Amount)
	}
	return totals
}

// BudgetStatus returns one message per budget that is at warning or alert
// tier, in budget order. The result is never nil.
func BudgetStatus(budgets []Budget, expenses []Expense, since Date) []string {
	spent := SpentByCategory(expenses, since)
	messages := make([]string, 0, len(budgets))
	for _, b := range budgets {
		if level, msg := ClassifyBudget(b.Category, spent[b.Category], b.Limit); level != LevelNone {
			messages = append(messages, msg)
		}
	}
	return messages
}
