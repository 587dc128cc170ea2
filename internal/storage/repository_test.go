package storage

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"fintrack/internal/core"
	"fintrack/internal/store"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "data", "fintrack.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestRunMigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.db")
	if err := RunMigrations(path); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := RunMigrations(path); err != nil {
		t.Fatalf("second run should be a no-op: %v", err)
	}
}

func TestExpenseRoundTripAndFilters(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	add := func(id, owner, cat, method string, day int) {
		t.Helper()
		err := repo.CreateExpense(ctx, core.Expense{
			ID: id, Owner: owner, Amount: core.Money{Cents: 1250}, Category: cat,
			Date: core.NewDate(2025, 3, day), PaymentMethod: method, Notes: "n-" + id,
		})
		if err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}
	add("e1", "u1", "Food", "Card", 10)
	add("e2", "u1", "Food", "Cash", 3)
	add("e3", "u1", "Rent", "Card", 3)
	add("e4", "u2", "Food", "Card", 3)

	all, err := repo.ListExpenses(ctx, "u1", core.ExpenseFilter{})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"e2", "e3", "e1"}
	if len(all) != len(want) {
		t.Fatalf("expected %d, got %d", len(want), len(all))
	}
	for i, e := range all {
		if e.ID != want[i] {
			t.Fatalf("position %d expected %s, got %s", i, want[i], e.ID)
		}
	}
	if all[0].Date.String() != "2025-03-03" || all[0].Amount.Cents != 1250 || all[0].Notes != "n-e2" {
		t.Fatalf("round trip mismatch: %+v", all[0])
	}

	from, to := core.NewDate(2025, 3, 3), core.NewDate(2025, 3, 3)
	filtered, err := repo.ListExpenses(ctx, "u1", core.ExpenseFilter{Category: "Food", From: &from, To: &to})
	if err != nil {
		t.Fatal(err)
	}
	if len(filtered) != 1 || filtered[0].ID != "e2" {
		t.Fatalf("unexpected filtered result %+v", filtered)
	}

	cash, _ := repo.ListExpenses(ctx, "u1", core.ExpenseFilter{PaymentMethod: "Cash"})
	if len(cash) != 1 {
		t.Fatalf("expected 1 cash expense, got %d", len(cash))
	}
}

func TestExpenseUpdateDeleteNotFound(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	e := core.Expense{ID: "e1", Owner: "u1", Amount: core.Money{Cents: 100}, Category: "Food",
		Date: core.NewDate(2025, 3, 1), PaymentMethod: "Card"}
	if err := repo.CreateExpense(ctx, e); err != nil {
		t.Fatal(err)
	}
	e.Category = "Groceries"
	if err := repo.UpdateExpense(ctx, e); err != nil {
		t.Fatal(err)
	}
	got, err := repo.GetExpense(ctx, "e1")
	if err != nil || got.Category != "Groceries" {
		t.Fatalf("unexpected expense %+v (err=%v)", got, err)
	}
	if err := repo.DeleteExpense(ctx, "e1"); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.GetExpense(ctx, "e1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := repo.UpdateExpense(ctx, e); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}
}

func TestUpsertBudgetConcurrent(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	ids := []string{"b1", "b2", "b3", "b4", "b5", "b6", "b7", "b8"}
	var wg sync.WaitGroup
	errs := make(chan error, len(ids))
	for i, id := range ids {
		wg.Add(1)
		go func(id string, limit int64) {
			defer wg.Done()
			_, err := repo.UpsertBudget(ctx, core.Budget{ID: id, Owner: "u1", Category: "Food", Limit: core.Money{Cents: limit}})
			errs <- err
		}(id, int64(i+1)*100)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}

	list, err := repo.ListBudgets(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Fatalf("expected exactly one budget, got %d", len(list))
	}
}

func TestUpsertBudgetPreservesID(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	first, err := repo.UpsertBudget(ctx, core.Budget{ID: "b1", Owner: "u1", Category: "Food", Limit: core.Money{Cents: 1000}})
	if err != nil {
		t.Fatal(err)
	}
	second, err := repo.UpsertBudget(ctx, core.Budget{ID: "b2", Owner: "u1", Category: "Food", Limit: core.Money{Cents: 5000}})
	if err != nil {
		t.Fatal(err)
	}
	if second.ID != first.ID || second.Limit.Cents != 5000 {
		t.Fatalf("expected %s updated in place, got %+v", first.ID, second)
	}

	if _, err := repo.UpsertBudget(ctx, core.Budget{ID: "b3", Owner: "u1", Category: "Rent", Limit: core.Money{Cents: 1000}}); err != nil {
		t.Fatal(err)
	}
	err = repo.UpdateBudget(ctx, core.Budget{ID: "b3", Owner: "u1", Category: "Food", Limit: core.Money{Cents: 1000}})
	if !errors.Is(err, store.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	if err := repo.DeleteBudget(ctx, "b1"); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.GetBudget(ctx, "b1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	if err := repo.CreateUser(ctx, core.User{ID: "u1", Email: "Ann@Example.com", PasswordHash: "h"}); err != nil {
		t.Fatal(err)
	}
	err := repo.CreateUser(ctx, core.User{ID: "u2", Email: "ann@example.com", PasswordHash: "h"})
	if !errors.Is(err, store.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	u, err := repo.GetUserByEmail(ctx, "ANN@example.com")
	if err != nil || u.ID != "u1" || u.Email != "ann@example.com" {
		t.Fatalf("unexpected user %+v (err=%v)", u, err)
	}
	if _, err := repo.GetUser(ctx, "nobody"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
