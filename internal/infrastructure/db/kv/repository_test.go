package kv

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/consultia/expense-system/internal/core/domain"
	"github.com/consultia/expense-system/internal/core/ports"
)

// memStore is an in-memory ports.Store that preserves the key-ordered
// prefix-read contract.
type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (s *memStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	if !ok {
		return nil, ports.ErrKeyNotFound
	}
	return v, nil
}

func (s *memStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *memStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *memStore) GetByPrefix(_ context.Context, prefix string) ([][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var keys []string
	for k := range s.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	values := make([][]byte, 0, len(keys))
	for _, k := range keys {
		values = append(values, s.data[k])
	}
	return values, nil
}

func TestUserRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newMemStore())

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	user := &domain.User{
		Email:     "john@consultia.com",
		Name:      "John Smith",
		Role:      domain.RoleConsultant,
		CreatedAt: now,
	}
	if err := repo.Put(ctx, user); err != nil {
		t.Fatalf("put user: %v", err)
	}

	got, err := repo.Get(ctx, "john@consultia.com")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.Name != "John Smith" || got.Role != domain.RoleConsultant {
		t.Errorf("unexpected user: %+v", got)
	}
	if !got.CreatedAt.Equal(now) {
		t.Errorf("createdAt = %v, want %v", got.CreatedAt, now)
	}
}

func TestUserRepositoryNotFound(t *testing.T) {
	repo := NewUserRepository(newMemStore())
	_, err := repo.Get(context.Background(), "missing@consultia.com")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}

func TestUserRepositoryDeleteThenGet(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newMemStore())

	user := &domain.User{Email: "old@consultia.com", Name: "Old", Role: domain.RoleConsultant}
	if err := repo.Put(ctx, user); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := repo.Delete(ctx, "old@consultia.com"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, "old@consultia.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("err after delete = %v, want ErrUserNotFound", err)
	}
}

func TestUserRepositoryListIsKeyOrdered(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newMemStore())

	for _, email := range []string{"carol@x.com", "alice@x.com", "bob@x.com"} {
		if err := repo.Put(ctx, &domain.User{Email: email, Role: domain.RoleConsultant}); err != nil {
			t.Fatalf("put %s: %v", email, err)
		}
	}

	users, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"alice@x.com", "bob@x.com", "carol@x.com"}
	if len(users) != len(want) {
		t.Fatalf("got %d users, want %d", len(users), len(want))
	}
	for i, u := range users {
		if u.Email != want[i] {
			t.Errorf("users[%d].Email = %s, want %s", i, u.Email, want[i])
		}
	}
}

func TestProjectRepositoryNormalizesLegacyRecords(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	repo := NewProjectRepository(store)

	// Record written before status and consultant tracking existed.
	legacy := []byte(`{"id":"p1","name":"Legacy","managerId":"sarah@consultia.com"}`)
	if err := store.Set(ctx, "project:p1", legacy); err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, err := repo.Get(ctx, "p1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != domain.ProjectActive {
		t.Errorf("status = %q, want %q", got.Status, domain.ProjectActive)
	}
	if got.ConsultantIDs == nil {
		t.Error("ConsultantIDs should be normalized to an empty slice")
	}

	projects, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if projects[0].Status != domain.ProjectActive {
		t.Errorf("listed status = %q, want %q", projects[0].Status, domain.ProjectActive)
	}
}

func TestProjectRepositoryNotFound(t *testing.T) {
	repo := NewProjectRepository(newMemStore())
	_, err := repo.Get(context.Background(), "nope")
	if !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("err = %v, want ErrProjectNotFound", err)
	}
}

func TestExpenseRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewExpenseRepository(newMemStore())

	expense := &domain.Expense{
		ID:              "e1",
		ConsultantEmail: "john@consultia.com",
		ProjectID:       "p1",
		Amount:          decimal.RequireFromString("125.50"),
		Status:          domain.ExpensePending,
		Mileage: &domain.Mileage{
			StartLocation: "Office",
			EndLocation:   "Client site",
			Distance:      decimal.RequireFromString("42.5"),
		},
	}
	if err := repo.Put(ctx, expense); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := repo.Get(ctx, "e1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Amount.Equal(expense.Amount) {
		t.Errorf("amount = %s, want %s", got.Amount, expense.Amount)
	}
	if got.Mileage == nil || !got.Mileage.Distance.Equal(expense.Mileage.Distance) {
		t.Errorf("mileage not preserved: %+v", got.Mileage)
	}

	_, err = repo.Get(ctx, "e2")
	if !errors.Is(err, domain.ErrExpenseNotFound) {
		t.Fatalf("err = %v, want ErrExpenseNotFound", err)
	}
}

func TestLogoRepositorySingleton(t *testing.T) {
	ctx := context.Background()
	repo := NewLogoRepository(newMemStore())

	if _, err := repo.Get(ctx); !errors.Is(err, domain.ErrLogoNotFound) {
		t.Fatalf("err = %v, want ErrLogoNotFound", err)
	}

	logo := &domain.Logo{URL: "https://files/logos/a.png", FileName: "a.png", UploadedBy: "sarah@consultia.com"}
	if err := repo.Put(ctx, logo); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.URL != logo.URL {
		t.Errorf("url = %s, want %s", got.URL, logo.URL)
	}
}
