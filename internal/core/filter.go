package core

// ExpenseFilter narrows an expense listing. Zero fields match everything;
// set fields are combined with AND. Date bounds are inclusive.
type ExpenseFilter struct {
	Category      string
	PaymentMethod string
	From          *Date
	To            *Date
}

// Matches reports whether e satisfies every set predicate.
func (f ExpenseFilter) Matches(e Expense) bool {
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	if f.PaymentMethod != "" && e.PaymentMethod != f.PaymentMethod {
		return false
	}
	if f.From != nil && e.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && e.Date.After(*f.To) {
		return false
	}
	return true
}

// Since returns a filter matching expenses dated on or after d.
func Since(d Date) ExpenseFilter {
	return ExpenseFilter{From: &d}
}
