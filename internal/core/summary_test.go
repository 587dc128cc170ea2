package core

import (
	"encoding/json"
	"testing"
)

func exp(cat, method string, cents int64, day int) Expense {
	return Expense{Category: cat, PaymentMethod: method, Amount: Money{Cents: cents}, Date: NewDate(2025, 3, day)}
}

func TestSummarizeTwoFoodExpenses(t *testing.T) {
	d := Summarize(
		[]Expense{exp("Food", "Card", 20000, 2), exp("Food", "Card", 30000, 5)},
		[]Budget{{Category: "Food", Limit: Money{Cents: 100000}}},
	)
	if d.TotalSpent.Cents != 50000 {
		t.Fatalf("expected total 500.00, got %s", d.TotalSpent)
	}
	if d.PercentUsed.String() != "50.0" {
		t.Fatalf("expected 50.0, got %s", d.PercentUsed)
	}
	if len(d.PieChart) != 1 || d.PieChart[0].Category != "Food" || d.PieChart[0].Total.Cents != 50000 {
		t.Fatalf("unexpected pie chart %+v", d.PieChart)
	}
	if d.TopCategory != "Food" {
		t.Fatalf("expected top category Food, got %q", d.TopCategory)
	}
	if d.MonthlyBudget.Cents != 100000 {
		t.Fatalf("expected monthly budget 1000, got %s", d.MonthlyBudget)
	}
}

func TestSummarizeOrdering(t *testing.T) {
	// Input deliberately out of date order.
	d := Summarize([]Expense{
		exp("Rent", "Transfer", 10000, 9),
		exp("Food", "Cash", 4000, 1),
		exp("Food", "Card", 6000, 3),
		exp("Fun", "Paypal", 500, 3),
		exp("Travel", "Crypto", 100, 4),
	}, nil)

	if d.TopCategory != "Food" {
		t.Fatalf("tie should resolve to first category in date order, got %q", d.TopCategory)
	}

	wantPie := []string{"Food", "Fun", "Travel", "Rent"}
	for i, c := range d.PieChart {
		if c.Category != wantPie[i] {
			t.Fatalf("pie[%d] expected %s, got %s", i, wantPie[i], c.Category)
		}
	}

	wantPay := []string{"Transfer", "Card", "Cash"}
	if len(d.TopPayments) != 3 {
		t.Fatalf("expected 3 top payments, got %d", len(d.TopPayments))
	}
	for i, p := range d.TopPayments {
		if p.Method != wantPay[i] {
			t.Fatalf("payments[%d] expected %s, got %s", i, wantPay[i], p.Method)
		}
	}

	wantDays := []string{"2025-03-01", "2025-03-03", "2025-03-04", "2025-03-09"}
	if len(d.LineChart) != len(wantDays) {
		t.Fatalf("expected %d days, got %d", len(wantDays), len(d.LineChart))
	}
	for i, p := range d.LineChart {
		if p.Date.String() != wantDays[i] {
			t.Fatalf("line[%d] expected %s, got %s", i, wantDays[i], p.Date)
		}
	}
	if d.LineChart[1].Total.Cents != 6500 {
		t.Fatalf("expected 65.00 on 2025-03-03, got %s", d.LineChart[1].Total)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	d := Summarize(nil, nil)
	if d.TopCategory != "" || d.TotalSpent.Cents != 0 {
		t.Fatalf("unexpected dashboard %+v", d)
	}
	if d.PercentUsed.Valid() {
		t.Fatalf("percent should be unset without budgets")
	}
	b, err := json.Marshal(d.PercentUsed)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "0" {
		t.Fatalf("expected sentinel 0, got %s", b)
	}
	if d.PieChart == nil || d.TopPayments == nil || d.LineChart == nil {
		t.Fatalf("series must be empty, not nil")
	}
}

func TestPercentUsedJSON(t *testing.T) {
	d := Summarize([]Expense{exp("Food", "Card", 3333, 1)}, []Budget{{Category: "Food", Limit: Money{Cents: 10000}}})
	b, err := json.Marshal(d.PercentUsed)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"33.3"` {
		t.Fatalf(`expected "33.3", got %s`, b)
	}
}
