// Package store declares the persistence ports the services depend on.
package store

import (
	"context"
	"errors"

	"fintrack/internal/core"
)

var (
	// ErrNotFound is returned when a record id does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a write would break a uniqueness rule
	// (one budget per owner and category, one user per email).
	ErrConflict = errors.New("record conflict")
)

// Ports for persistence adapters.
type (
	ExpenseStore interface {
		CreateExpense(ctx context.Context, e core.Expense) error
		GetExpense(ctx context.Context, id string) (core.Expense, error)
		// ListExpenses returns the owner's expenses matching f ordered by
		// date ascending, then insertion order.
		ListExpenses(ctx context.Context, owner string, f core.ExpenseFilter) ([]core.Expense, error)
		UpdateExpense(ctx context.Context, e core.Expense) error
		DeleteExpense(ctx context.Context, id string) error
	}

	BudgetStore interface {
		// UpsertBudget atomically inserts b or overwrites the limit of the
		// existing (owner, category) record, returning the stored budget.
		UpsertBudget(ctx context.Context, b core.Budget) (core.Budget, error)
		GetBudget(ctx context.Context, id string) (core.Budget, error)
		ListBudgets(ctx context.Context, owner string) ([]core.Budget, error)
		UpdateBudget(ctx context.Context, b core.Budget) error
		DeleteBudget(ctx context.Context, id string) error
	}

	UserStore interface {
		CreateUser(ctx context.Context, u core.User) error
		GetUser(ctx context.Context, id string) (core.User, error)
		GetUserByEmail(ctx context.Context, email string) (core.User, error)
	}

	// Store is the full record store a backend provides.
	Store interface {
		ExpenseStore
		BudgetStore
		UserStore
		Ping(ctx context.Context) error
	}
)
