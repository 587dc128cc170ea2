package worker

import (
	"context"
	"errors"
	"testing"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
)

type fakeAppender struct {
	appended []core.Expense
	err      error
}

func (f *fakeAppender) Append(_ context.Context, e core.Expense) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.appended = append(f.appended, e)
	return "2025 Expenses!A2:G2", nil
}

func savedMessage() *amqp.ExpenseSavedMessage {
	return amqp.NewExpenseSavedMessage(core.Expense{
		ID:            "exp-1",
		Owner:         "user-1",
		Amount:        core.Money{Cents: 4200},
		Category:      "Food",
		Date:          core.NewDate(2025, 3, 10),
		PaymentMethod: "Card",
	})
}

func TestHandleExpenseSaved(t *testing.T) {
	sheets := &fakeAppender{}
	w := NewSyncWorker(sheets)

	if err := w.HandleExpenseSaved(context.Background(), savedMessage()); err != nil {
		t.Fatalf("HandleExpenseSaved: %v", err)
	}
	if len(sheets.appended) != 1 || sheets.appended[0].ID != "exp-1" {
		t.Fatalf("expected expense to be mirrored, got %+v", sheets.appended)
	}
	if got := w.Stats().Synced; got != 1 {
		t.Errorf("expected 1 synced, got %d", got)
	}
}

func TestHandleExpenseSaved_AppendError(t *testing.T) {
	boom := errors.New("sheets down")
	w := NewSyncWorker(&fakeAppender{err: boom})

	err := w.HandleExpenseSaved(context.Background(), savedMessage())
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped append error, got %v", err)
	}
	if got := w.Stats().SyncErrors; got != 1 {
		t.Errorf("expected 1 sync error, got %d", got)
	}
}

func TestHandleExpenseSaved_NoSheets(t *testing.T) {
	w := NewSyncWorker(nil)
	if err := w.HandleExpenseSaved(context.Background(), savedMessage()); err != nil {
		t.Fatalf("expected nil without sheets, got %v", err)
	}
	if got := w.Stats().Synced; got != 0 {
		t.Errorf("expected nothing synced, got %d", got)
	}
}

func TestHandleBudgetAlert_Dedup(t *testing.T) {
	w := NewSyncWorker(nil)
	ctx := context.Background()

	warn := amqp.NewBudgetAlertMessage("user-1", "Food", core.LevelWarning, "Warning: You've spent 85.0% of your 'Food' budget.")
	alert := amqp.NewBudgetAlertMessage("user-1", "Food", core.LevelAlert, "Alert: You've exceeded your 'Food' budget!")

	for _, msg := range []*amqp.BudgetAlertMessage{warn, warn, alert, alert} {
		if err := w.HandleBudgetAlert(ctx, msg); err != nil {
			t.Fatalf("HandleBudgetAlert: %v", err)
		}
	}

	stats := w.Stats()
	if stats.Alerts != 2 || stats.DroppedAlerts != 2 {
		t.Errorf("expected 2 alerts and 2 dropped, got %+v", stats)
	}
}

func TestHandlers(t *testing.T) {
	h := NewSyncWorker(nil).Handlers()
	if h.ExpenseSaved == nil || h.BudgetAlert == nil {
		t.Fatal("expected both handlers to be bound")
	}
}
