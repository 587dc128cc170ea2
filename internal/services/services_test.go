package services

import (
	"context"
	"sync"
	"time"

	"fintrack/internal/core"
)

var fixedNow = time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

func fixedClock() clock {
	return clock{now: func() time.Time { return fixedNow }}
}

func money(units int64) core.Money {
	return core.Money{Cents: units * 100}
}

func march(day int) core.Date {
	return core.NewDate(2025, 3, day)
}

type publishedAlert struct {
	owner, category string
	level           core.AlertLevel
	message         string
}

type fakePublisher struct {
	mu       sync.Mutex
	expenses []core.Expense
	alerts   []publishedAlert
	err      error
}

func (f *fakePublisher) PublishExpenseSaved(_ context.Context, e core.Expense) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.expenses = append(f.expenses, e)
	return f.err
}

func (f *fakePublisher) PublishBudgetAlert(_ context.Context, owner, category string, level core.AlertLevel, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts = append(f.alerts, publishedAlert{owner, category, level, message})
	return f.err
}
