package core

import (
	"encoding/json"
	"sort"

	"github.com/shopspring/decimal"
)

// CategoryTotal is an amount aggregated by category name.
type CategoryTotal struct {
	Category string
	Total    Money
}

// PaymentTotal is an amount aggregated by payment method.
type PaymentTotal struct {
	Method string
	Total  Money
}

// DailyTotal is an amount aggregated by calendar day.
type DailyTotal struct {
	Date  Date
	Total Money
}

// PercentUsed is the share of the monthly budget already spent. It has no
// value when no budget is set.
type PercentUsed struct {
	value decimal.Decimal
	valid bool
}

func NewPercentUsed(v decimal.Decimal) PercentUsed {
	return PercentUsed{value: v, valid: true}
}

func (p PercentUsed) Valid() bool { return p.valid }

// String formats the percentage with one decimal, or "0" when unset.
func (p PercentUsed) String() string {
	if !p.valid {
		return "0"
	}
	return p.value.StringFixed(1)
}

// MarshalJSON writes a one-decimal string such as "50.0", or the number 0
// when there is no budget to compare against.
func (p PercentUsed) MarshalJSON() ([]byte, error) {
	if !p.valid {
		return []byte("0"), nil
	}
	return json.Marshal(p.value.StringFixed(1))
}

// Dashboard is the month-to-date overview for one user.
type Dashboard struct {
	TotalSpent    Money
	TopCategory   string
	TopPayments   []PaymentTotal
	PieChart      []CategoryTotal
	LineChart     []DailyTotal
	MonthlyBudget Money
	PercentUsed   PercentUsed
}

const topPaymentsLimit = 3

// Summarize reduces the current month's expenses and the full budget list into
// a Dashboard. Category and payment ordering follows first appearance in date
// order; the daily series is ascending by date.
func Summarize(expenses []Expense, budgets []Budget) Dashboard {
	ordered := make([]Expense, len(expenses))
	copy(ordered, expenses)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	d := Dashboard{
		TopPayments: []PaymentTotal{},
		PieChart:    []CategoryTotal{},
		LineChart:   []DailyTotal{},
	}

	catIdx := map[string]int{}
	payIdx := map[string]int{}
	dayIdx := map[string]int{}
	for _, e := range ordered {
		d.TotalSpent = d.TotalSpent.Add(e.Amount)

		if i, ok := catIdx[e.Category]; ok {
			d.PieChart[i].Total = d.PieChart[i].Total.Add(e.Amount)
		} else {
			catIdx[e.Category] = len(d.PieChart)
			d.PieChart = append(d.PieChart, CategoryTotal{Category: e.Category, Total: e.Amount})
		}

		if i, ok := payIdx[e.PaymentMethod]; ok {
			d.TopPayments[i].Total = d.TopPayments[i].Total.Add(e.Amount)
		} else {
			payIdx[e.PaymentMethod] = len(d.TopPayments)
			d.TopPayments = append(d.TopPayments, PaymentTotal{Method: e.PaymentMethod, Total: e.Amount})
		}

		if i, ok := dayIdx[e.Date.String()]; ok {
			d.LineChart[i].Total = d.LineChart[i].Total.Add(e.Amount)
		} else {
			dayIdx[e.Date.String()] = len(d.LineChart)
			d.LineChart = append(d.LineChart, DailyTotal{Date: e.Date, Total: e.Amount})
		}
	}

	var top Money
	for _, c := range d.PieChart {
		if d.TopCategory == "" || c.Total.Cents > top.Cents {
			d.TopCategory, top = c.Category, c.Total
		}
	}

	sort.SliceStable(d.TopPayments, func(i, j int) bool {
		return d.TopPayments[i].Total.Cents > d.TopPayments[j].Total.Cents
	})
	if len(d.TopPayments) > topPaymentsLimit {
		d.TopPayments = d.TopPayments[:topPaymentsLimit]
	}

	for _, b := range budgets {
		d.MonthlyBudget = d.MonthlyBudget.Add(b.Limit)
	}
	if d.MonthlyBudget.Cents > 0 {
		d.PercentUsed = NewPercentUsed(Percent(d.TotalSpent, d.MonthlyBudget))
	}
	return d
}
