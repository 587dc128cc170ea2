package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/core"
	"fintrack/internal/store"
)

// DashboardService builds the month-to-date overview. Nothing is cached; every
// call reads the live records.
type DashboardService struct {
	clock
	expenses store.ExpenseStore
	budgets  store.BudgetStore
}

func NewDashboardService(expenses store.ExpenseStore, budgets store.BudgetStore) *DashboardService {
	return &DashboardService{
		clock:    clock{now: time.Now},
		expenses: expenses,
		budgets:  budgets,
	}
}

// Get loads the current month's expenses and all budgets concurrently and
// reduces them with core.Summarize.
func (s *DashboardService) Get(ctx context.Context, owner string) (core.Dashboard, error) {
	var (
		expenses []core.Expense
		budgets  []core.Budget
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expenses, err = s.expenses.ListExpenses(gctx, owner, core.Since(s.monthStart()))
		if err != nil {
			return fmt.Errorf("list month expenses: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		budgets, err = s.budgets.ListBudgets(gctx, owner)
		if err != nil {
			return fmt.Errorf("list budgets: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return core.Dashboard{}, err
	}
	return core.Summarize(expenses, budgets), nil
}
