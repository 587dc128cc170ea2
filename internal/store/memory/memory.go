// Package memory is an in-process record store used as the default backend
// and in tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"fintrack/internal/core"
	"fintrack/internal/store"
)

type expenseRow struct {
	seq int64
	e   core.Expense
}

type budgetKey struct {
	owner    string
	category string
}

type Store struct {
	mu       sync.Mutex
	seq      int64
	expenses map[string]expenseRow
	budgets  map[string]core.Budget
	order    []string // budget ids in insertion order
	byKey    map[budgetKey]string
	users    map[string]core.User
	byEmail  map[string]string
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		expenses: map[string]expenseRow{},
		budgets:  map[string]core.Budget{},
		byKey:    map[budgetKey]string{},
		users:    map[string]core.User{},
		byEmail:  map[string]string{},
	}
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) CreateExpense(_ context.Context, e core.Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.expenses[e.ID]; ok {
		return store.ErrConflict
	}
	s.seq++
	s.expenses[e.ID] = expenseRow{seq: s.seq, e: e}
	return nil
}

func (s *Store) GetExpense(_ context.Context, id string) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.expenses[id]
	if !ok {
		return core.Expense{}, store.ErrNotFound
	}
	return row.e, nil
}

func (s *Store) ListExpenses(_ context.Context, owner string, f core.ExpenseFilter) ([]core.Expense, error) {
	s.mu.Lock()
	rows := make([]expenseRow, 0, len(s.expenses))
	for _, row := range s.expenses {
		if row.e.Owner == owner && f.Matches(row.e) {
			rows = append(rows, row)
		}
	}
	s.mu.Unlock()

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].e.Date.Equal(rows[j].e.Date.Time) {
			return rows[i].e.Date.Before(rows[j].e.Date)
		}
		return rows[i].seq < rows[j].seq
	})
	out := make([]core.Expense, len(rows))
	for i, row := range rows {
		out[i] = row.e
	}
	return out, nil
}

func (s *Store) UpdateExpense(_ context.Context, e core.Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.expenses[e.ID]
	if !ok {
		return store.ErrNotFound
	}
	row.e = e
	s.expenses[e.ID] = row
	return nil
}

func (s *Store) DeleteExpense(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.expenses[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.expenses, id)
	return nil
}

func (s *Store) UpsertBudget(_ context.Context, b core.Budget) (core.Budget, error) {
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := budgetKey{owner: b.Owner, category: b.Category}
	if id, ok := s.byKey[key]; ok {
		existing := s.budgets[id]
		existing.Limit = b.Limit
		s.budgets[id] = existing
		return existing, nil
	}
	s.budgets[b.ID] = b
	s.byKey[key] = b.ID
	s.order = append(s.order, b.ID)
	return b, nil
}

func (s *Store) GetBudget(_ context.Context, id string) (core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.budgets[id]
	if !ok {
		return core.Budget{}, store.ErrNotFound
	}
	return b, nil
}

func (s *Store) ListBudgets(_ context.Context, owner string) ([]core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []core.Budget{}
	for _, id := range s.order {
		if b := s.budgets[id]; b.Owner == owner {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *Store) UpdateBudget(_ context.Context, b core.Budget) error {
	if err := b.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.budgets[b.ID]
	if !ok {
		return store.ErrNotFound
	}
	oldKey := budgetKey{owner: old.Owner, category: old.Category}
	newKey := budgetKey{owner: b.Owner, category: b.Category}
	if oldKey != newKey {
		if _, taken := s.byKey[newKey]; taken {
			return store.ErrConflict
		}
		delete(s.byKey, oldKey)
		s.byKey[newKey] = b.ID
	}
	s.budgets[b.ID] = b
	return nil
}

func (s *Store) DeleteBudget(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.budgets[id]
	if !ok {
		return store.ErrNotFound
	}
	delete(s.budgets, id)
	delete(s.byKey, budgetKey{owner: b.Owner, category: b.Category})
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) CreateUser(_ context.Context, u core.User) error {
	email := strings.ToLower(u.Email)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEmail[email]; ok {
		return store.ErrConflict
	}
	s.users[u.ID] = u
	s.byEmail[email] = u.ID
	return nil
}

func (s *Store) GetUser(_ context.Context, id string) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return core.User{}, store.ErrNotFound
	}
	return u, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return core.User{}, store.ErrNotFound
	}
	return s.users[id], nil
}
