// Package services implements the finance operations on top of the store
// ports: budgets, expenses, the dashboard and user accounts.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/core"
)

var (
	// ErrUnauthorized is returned when a record exists but belongs to
	// another user.
	ErrUnauthorized = errors.New("not authorized")
	// ErrUserExists is returned by Register for an email already in use.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials covers unknown emails and wrong passwords alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidInput is returned for malformed account input.
	ErrInvalidInput = errors.New("invalid input")
)

// EventPublisher receives domain events after expenses are saved. A nil
// publisher disables events.
type EventPublisher interface {
	PublishExpenseSaved(ctx context.Context, e core.Expense) error
	PublishBudgetAlert(ctx context.Context, owner, category string, level core.AlertLevel, message string) error
}

func newID() string {
	return uuid.NewString()
}

// clock is embedded by services that depend on the current month.
type clock struct {
	now func() time.Time
}

func (c clock) monthStart() core.Date {
	if c.now == nil {
		return core.MonthStart(time.Now())
	}
	return core.MonthStart(c.now())
}
