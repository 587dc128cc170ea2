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

// ExpenseService manages expense records and announces saved expenses.
type ExpenseService struct {
	clock
	expenses store.ExpenseStore
	budgets  store.BudgetStore
	events   EventPublisher
}

// NewExpenseService wires the stores and an optional event publisher.
func NewExpenseService(expenses store.ExpenseStore, budgets store.BudgetStore, events EventPublisher) *ExpenseService {
	return &ExpenseService{
		clock:    clock{now: time.Now},
		expenses: expenses,
		budgets:  budgets,
		events:   events,
	}
}

type ExpenseInput struct {
	Amount        core.Money
	Category      string
	Date          core.Date
	PaymentMethod string
	Notes         string
}

// ExpensePatch holds the fields to change; nil fields are left untouched.
type ExpensePatch struct {
	Amount        *core.Money
	Category      *string
	Date          *core.Date
	PaymentMethod *string
	Notes         *string
}

func (s *ExpenseService) Add(ctx context.Context, owner string, in ExpenseInput) (core.Expense, error) {
	e := core.Expense{
		ID:            newID(),
		Owner:         owner,
		Amount:        in.Amount,
		Category:      strings.TrimSpace(in.Category),
		Date:          in.Date,
		PaymentMethod: strings.TrimSpace(in.PaymentMethod),
		Notes:         in.Notes,
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, fmt.Errorf("validate expense: %w", err)
	}
	if err := s.expenses.CreateExpense(ctx, e); err != nil {
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}
	slog.InfoContext(ctx, "Expense created", log.NewFields().
		WithComponent(log.ComponentExpense).
		WithOperation(log.OpCreate).
		WithUser(owner).
		WithExpense(e.ID, e.Amount.Cents, e.Category, e.PaymentMethod).
		ToSlice()...)

	s.publish(ctx, e)
	return e, nil
}

// List returns the owner's expenses matching f, oldest first.
func (s *ExpenseService) List(ctx context.Context, owner string, f core.ExpenseFilter) ([]core.Expense, error) {
	expenses, err := s.expenses.ListExpenses(ctx, owner, f)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

func (s *ExpenseService) Update(ctx context.Context, owner, id string, patch ExpensePatch) (core.Expense, error) {
	e, err := s.owned(ctx, owner, id)
	if err != nil {
		return core.Expense{}, err
	}
	if patch.Amount != nil {
		e.Amount = *patch.Amount
	}
	if patch.Category != nil {
		e.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.Date != nil {
		e.Date = *patch.Date
	}
	if patch.PaymentMethod != nil {
		e.PaymentMethod = strings.TrimSpace(*patch.PaymentMethod)
	}
	if patch.Notes != nil {
		e.Notes = *patch.Notes
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, fmt.Errorf("validate expense: %w", err)
	}
	if err := s.expenses.UpdateExpense(ctx, e); err != nil {
		return core.Expense{}, fmt.Errorf("update expense: %w", err)
	}
	s.publish(ctx, e)
	return e, nil
}

func (s *ExpenseService) Delete(ctx context.Context, owner, id string) error {
	if _, err := s.owned(ctx, owner, id); err != nil {
		return err
	}
	if err := s.expenses.DeleteExpense(ctx, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	slog.InfoContext(ctx, "Expense deleted",
		log.FieldComponent, log.ComponentExpense,
		log.FieldUserID, owner,
		log.FieldExpenseID, id)
	return nil
}

func (s *ExpenseService) owned(ctx context.Context, owner, id string) (core.Expense, error) {
	e, err := s.expenses.GetExpense(ctx, id)
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense: %w", err)
	}
	if e.Owner != owner {
		return core.Expense{}, ErrUnauthorized
	}
	return e, nil
}

// publish emits expense.saved and, when the expense's category budget is at
// warning or alert tier for the month, budget.alert. Failures are logged only.
func (s *ExpenseService) publish(ctx context.Context, e core.Expense) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishExpenseSaved(ctx, e); err != nil {
		slog.WarnContext(ctx, "Failed to publish expense event",
			log.FieldComponent, log.ComponentAMQP,
			log.FieldExpenseID, e.ID,
			log.FieldError, err)
	}

	level, msg, err := s.categoryStatus(ctx, e.Owner, e.Category)
	if err != nil {
		slog.WarnContext(ctx, "Failed to compute budget status",
			log.FieldComponent, log.ComponentBudget,
			log.FieldCategory, e.Category,
			log.FieldError, err)
		return
	}
	if level == core.LevelNone {
		return
	}
	if err := s.events.PublishBudgetAlert(ctx, e.Owner, e.Category, level, msg); err != nil {
		slog.WarnContext(ctx, "Failed to publish budget alert",
			log.FieldComponent, log.ComponentAMQP,
			log.FieldCategory, e.Category,
			log.FieldError, err)
	}
}

func (s *ExpenseService) categoryStatus(ctx context.Context, owner, category string) (core.AlertLevel, string, error) {
	budgets, err := s.budgets.ListBudgets(ctx, owner)
	if err != nil {
		return core.LevelNone, "", err
	}
	for _, b := range budgets {
		if b.Category != category {
			continue
		}
		since := s.monthStart()
		f := core.Since(since)
		f.Category = category
		expenses, err := s.expenses.ListExpenses(ctx, owner, f)
		if err != nil {
			return core.LevelNone, "", err
		}
		spent := core.SpentByCategory(expenses, since)[category]
		level, msg := core.ClassifyBudget(category, spent, b.Limit)
		return level, msg, nil
	}
	return core.LevelNone, "", nil
}
