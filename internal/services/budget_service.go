package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/store"
)

// BudgetService manages per-category monthly budgets.
type BudgetService struct {
	clock
	budgets  store.BudgetStore
	expenses store.ExpenseStore
}

func NewBudgetService(budgets store.BudgetStore, expenses store.ExpenseStore) *BudgetService {
	return &BudgetService{
		clock:    clock{now: time.Now},
		budgets:  budgets,
		expenses: expenses,
	}
}

// BudgetPatch lists the fields Update may change. An empty category or a nil
// or zero limit leaves the field as it is.
type BudgetPatch struct {
	Category string
	Limit    *core.Money
}

// Set creates the budget for (owner, category) or overwrites its limit.
func (s *BudgetService) Set(ctx context.Context, owner, category string, limit core.Money) (core.Budget, error) {
	b := core.Budget{
		ID:       newID(),
		Owner:    owner,
		Category: strings.TrimSpace(category),
		Limit:    limit,
	}
	if err := b.Validate(); err != nil {
		return core.Budget{}, fmt.Errorf("validate budget: %w", err)
	}
	stored, err := s.budgets.UpsertBudget(ctx, b)
	if err != nil {
		return core.Budget{}, fmt.Errorf("set budget: %w", err)
	}
	slog.InfoContext(ctx, "Budget set", log.NewFields().
		WithComponent(log.ComponentBudget).
		WithOperation(log.OpUpsert).
		WithUser(owner).
		WithBudget(stored.ID, stored.Category, stored.Limit.Cents).
		ToSlice()...)
	return stored, nil
}

func (s *BudgetService) List(ctx context.Context, owner string) ([]core.Budget, error) {
	budgets, err := s.budgets.ListBudgets(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	return budgets, nil
}

// Status returns a warning or alert message for every budget at or above 80%
// of its limit in the current calendar month.
func (s *BudgetService) Status(ctx context.Context, owner string) ([]string, error) {
	budgets, err := s.budgets.ListBudgets(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	if len(budgets) == 0 {
		return []string{}, nil
	}
	since := s.monthStart()
	expenses, err := s.expenses.ListExpenses(ctx, owner, core.Since(since))
	if err != nil {
		return nil, fmt.Errorf("list month expenses: %w", err)
	}
	return core.BudgetStatus(budgets, expenses, since), nil
}

func (s *BudgetService) Update(ctx context.Context, owner, id string, patch BudgetPatch) (core.Budget, error) {
	b, err := s.owned(ctx, owner, id)
	if err != nil {
		return core.Budget{}, err
	}
	if c := strings.TrimSpace(patch.Category); c != "" {
		b.Category = c
	}
	if patch.Limit != nil && patch.Limit.Cents != 0 {
		b.Limit = *patch.Limit
	}
	if err := b.Validate(); err != nil {
		return core.Budget{}, fmt.Errorf("validate budget: %w", err)
	}
	if err := s.budgets.UpdateBudget(ctx, b); err != nil {
		return core.Budget{}, fmt.Errorf("update budget: %w", err)
	}
	return b, nil
}

func (s *BudgetService) Delete(ctx context.Context, owner, id string) error {
	if _, err := s.owned(ctx, owner, id); err != nil {
		return err
	}
	if err := s.budgets.DeleteBudget(ctx, id); err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	slog.InfoContext(ctx, "Budget deleted",
		log.FieldComponent, log.ComponentBudget,
		log.FieldUserID, owner,
		log.FieldBudgetID, id)
	return nil
}

// owned loads a budget and checks it belongs to owner.
func (s *BudgetService) owned(ctx context.Context, owner, id string) (core.Budget, error) {
	b, err := s.budgets.GetBudget(ctx, id)
	if err != nil {
		return core.Budget{}, fmt.Errorf("get budget: %w", err)
	}
	if b.Owner != owner {
		return core.Budget{}, ErrUnauthorized
	}
	return b, nil
}
