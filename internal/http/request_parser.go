package http

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"fintrack/internal/core"
	authmw "fintrack/internal/middleware/auth"
	"fintrack/internal/services"
)

// ParseExpenseFilter reads category, paymentMethod, fromDate and toDate from
// the query string. Empty values are ignored; dates accept YYYY-MM-DD or
// RFC 3339.
func ParseExpenseFilter(q url.Values) (core.ExpenseFilter, error) {
	f := core.ExpenseFilter{
		Category:      strings.TrimSpace(q.Get("category")),
		PaymentMethod: strings.TrimSpace(q.Get("paymentMethod")),
	}
	for _, p := range []struct {
		key string
		dst **core.Date
	}{{"fromDate", &f.From}, {"toDate", &f.To}} {
		v := strings.TrimSpace(q.Get(p.key))
		if v == "" {
			continue
		}
		d, err := core.ParseDate(v)
		if err != nil {
			return core.ExpenseFilter{}, fmt.Errorf("%s: %w", p.key, err)
		}
		*p.dst = &d
	}
	return f, nil
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type budgetRequest struct {
	Category string      `json:"category"`
	Limit    *core.Money `json:"limit"`
}

type expenseRequest struct {
	Amount        *core.Money `json:"amount"`
	Category      *string     `json:"category"`
	Date          *core.Date  `json:"date"`
	PaymentMethod *string     `json:"paymentMethod"`
	Notes         *string     `json:"notes"`
}

func (b budgetRequest) limit() core.Money {
	if b.Limit == nil {
		return core.Money{}
	}
	return *b.Limit
}

func (b budgetRequest) patch() services.BudgetPatch {
	return services.BudgetPatch{Category: b.Category, Limit: b.Limit}
}

// input converts a create request; missing fields become zero values and
// fail validation in the service.
func (e expenseRequest) input() services.ExpenseInput {
	var in services.ExpenseInput
	if e.Amount != nil {
		in.Amount = *e.Amount
	}
	if e.Category != nil {
		in.Category = *e.Category
	}
	if e.Date != nil {
		in.Date = *e.Date
	}
	if e.PaymentMethod != nil {
		in.PaymentMethod = *e.PaymentMethod
	}
	if e.Notes != nil {
		in.Notes = *e.Notes
	}
	return in
}

func (e expenseRequest) patch() services.ExpensePatch {
	return services.ExpensePatch{
		Amount:        e.Amount,
		Category:      e.Category,
		Date:          e.Date,
		PaymentMethod: e.PaymentMethod,
		Notes:         e.Notes,
	}
}

// userID is set by the auth middleware on every protected route.
func userID(r *http.Request) string {
	return authmw.UserID(r.Context())
}
