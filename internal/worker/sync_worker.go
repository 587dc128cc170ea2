// Package worker consumes expense and budget events published by the API.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/cache"
	"fintrack/internal/core"
	"fintrack/internal/log"
)

const (
	alertCacheSize = 4096
	alertCacheTTL  = 6 * time.Hour
)

// ExpenseAppender writes an expense to an external sheet and returns a
// reference to the written row.
type ExpenseAppender interface {
	Append(ctx context.Context, e core.Expense) (string, error)
}

// Stats counts processed events since start.
type Stats struct {
	Synced        int64
	SyncErrors    int64
	Alerts        int64
	DroppedAlerts int64
}

// SyncWorker mirrors saved expenses to a sheet and reports budget alerts.
// Repeated alerts with the same message for an (owner, category) are logged once
// per alertCacheTTL.
type SyncWorker struct {
	sheets     ExpenseAppender
	lastAlerts *cache.LRUCache[string]

	synced        atomic.Int64
	syncErrors    atomic.Int64
	alerts        atomic.Int64
	droppedAlerts atomic.Int64
}

// NewSyncWorker builds a worker. sheets may be nil, in which case expenses are
// acknowledged without being mirrored.
func NewSyncWorker(sheets ExpenseAppender) *SyncWorker {
	return &SyncWorker{
		sheets:     sheets,
		lastAlerts: cache.NewLRUCache[string](alertCacheSize, alertCacheTTL),
	}
}

// Handlers binds the worker to the AMQP consumer.
func (w *SyncWorker) Handlers() amqp.Handlers {
	return amqp.Handlers{
		ExpenseSaved: w.HandleExpenseSaved,
		BudgetAlert:  w.HandleBudgetAlert,
	}
}

// AlertCache exposes the dedup cache so it can be swept by a cache.Manager.
func (w *SyncWorker) AlertCache() cache.Cleaner {
	return w.lastAlerts
}

// HandleExpenseSaved appends the expense to the sheet. A returned error makes
// the consumer requeue the message.
func (w *SyncWorker) HandleExpenseSaved(ctx context.Context, msg *amqp.ExpenseSavedMessage) error {
	e := msg.Expense()
	fields := log.NewFields().
		WithComponent(log.ComponentWorker).
		WithOperation(log.OpAppend).
		WithUser(e.Owner).
		WithExpense(e.ID, e.Amount.Cents, e.Category, e.PaymentMethod)

	if w.sheets == nil {
		slog.DebugContext(ctx, "No sheet configured, skipping expense mirror", fields.ToSlice()...)
		return nil
	}

	ref, err := w.sheets.Append(ctx, e)
	if err != nil {
		w.syncErrors.Add(1)
		slog.ErrorContext(ctx, "Failed to mirror expense", fields.WithError(err).ToSlice()...)
		return fmt.Errorf("append to sheets: %w", err)
	}
	w.synced.Add(1)
	slog.InfoContext(ctx, "Successfully synced expense", append(fields.ToSlice(), "sheets_ref", ref)...)
	return nil
}

// HandleBudgetAlert logs the alert unless the same message was already
// reported recently.
func (w *SyncWorker) HandleBudgetAlert(ctx context.Context, msg *amqp.BudgetAlertMessage) error {
	key := msg.Owner + "\x00" + msg.Category
	if prev, ok := w.lastAlerts.Get(key); ok && prev == msg.Message {
		w.droppedAlerts.Add(1)
		return nil
	}
	w.lastAlerts.Set(key, msg.Message)
	w.alerts.Add(1)

	attrs := []any{
		log.FieldComponent, log.ComponentWorker,
		log.FieldUserID, msg.Owner,
		log.FieldCategory, msg.Category,
		log.FieldAlertLevel, msg.Level,
	}
	if msg.Level == core.LevelAlert.String() {
		slog.ErrorContext(ctx, msg.Message, attrs...)
	} else {
		slog.WarnContext(ctx, msg.Message, attrs...)
	}
	return nil
}

func (w *SyncWorker) Stats() Stats {
	return Stats{
		Synced:        w.synced.Load(),
		SyncErrors:    w.syncErrors.Load(),
		Alerts:        w.alerts.Load(),
		DroppedAlerts: w.droppedAlerts.Load(),
	}
}
