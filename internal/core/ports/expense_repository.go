package ports

import (
	"context"

	"github.com/consultia/expense-system/internal/core/domain"
)

// ExpenseRepository persists expenses keyed by generated id. List returns
// records in key order; the service layer sorts by submission time.
type ExpenseRepository interface {
	Get(ctx context.Context, id string) (*domain.Expense, error)
	Put(ctx context.Context, expense *domain.Expense) error
	List(ctx context.Context) ([]*domain.Expense, error)
}
