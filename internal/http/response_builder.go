package http

import (
	"fintrack/internal/core"
)

// Response documents keep the field names the browser client reads.

type expenseResponse struct {
	ID            string     `json:"_id"`
	UserID        string     `json:"userId"`
	Amount        core.Money `json:"amount"`
	Category      string     `json:"category"`
	Date          core.Date  `json:"date"`
	PaymentMethod string     `json:"paymentMethod"`
	Notes         string     `json:"notes,omitempty"`
}

type budgetResponse struct {
	ID       string     `json:"_id"`
	UserID   string     `json:"userId"`
	Category string     `json:"category"`
	Limit    core.Money `json:"limit"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type paymentTotalResponse struct {
	Method string     `json:"method"`
	Total  core.Money `json:"total"`
}

type categoryTotalResponse struct {
	Category string     `json:"category"`
	Total    core.Money `json:"total"`
}

type dailyTotalResponse struct {
	Date  string     `json:"date"`
	Total core.Money `json:"total"`
}

type dashboardResponse struct {
	TotalSpent    core.Money              `json:"totalSpent"`
	TopCategory   string                  `json:"topCategory"`
	TopPayments   []paymentTotalResponse  `json:"topPayments"`
	PieChart      []categoryTotalResponse `json:"pieChart"`
	LineChartData []dailyTotalResponse    `json:"lineChartData"`
	MonthlyBudget core.Money              `json:"monthlyBudget"`
	PercentUsed   core.PercentUsed        `json:"percentUsed"`
}

func newExpenseResponse(e core.Expense) expenseResponse {
	return expenseResponse{
		ID:            e.ID,
		UserID:        e.Owner,
		Amount:        e.Amount,
		Category:      e.Category,
		Date:          e.Date,
		PaymentMethod: e.PaymentMethod,
		Notes:         e.Notes,
	}
}

func newExpenseList(expenses []core.Expense) []expenseResponse {
	out := make([]expenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, newExpenseResponse(e))
	}
	return out
}

func newBudgetResponse(b core.Budget) budgetResponse {
	return budgetResponse{ID: b.ID, UserID: b.Owner, Category: b.Category, Limit: b.Limit}
}

func newBudgetList(budgets []core.Budget) []budgetResponse {
	out := make([]budgetResponse, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, newBudgetResponse(b))
	}
	return out
}

func newDashboardResponse(d core.Dashboard) dashboardResponse {
	resp := dashboardResponse{
		TotalSpent:    d.TotalSpent,
		TopCategory:   d.TopCategory,
		TopPayments:   make([]paymentTotalResponse, 0, len(d.TopPayments)),
		PieChart:      make([]categoryTotalResponse, 0, len(d.PieChart)),
		LineChartData: make([]dailyTotalResponse, 0, len(d.LineChart)),
		MonthlyBudget: d.MonthlyBudget,
		PercentUsed:   d.PercentUsed,
	}
	for _, p := range d.TopPayments {
		resp.TopPayments = append(resp.TopPayments, paymentTotalResponse{Method: p.Method, Total: p.Total})
	}
	for _, c := range d.PieChart {
		resp.PieChart = append(resp.PieChart, categoryTotalResponse{Category: c.Category, Total: c.Total})
	}
	for _, day := range d.LineChart {
		resp.LineChartData = append(resp.LineChartData, dailyTotalResponse{Date: day.Date.String(), Total: day.Total})
	}
	return resp
}
