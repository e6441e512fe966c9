package ports

import (
	"context"

	"github.com/consultia/expense-system/internal/core/domain"
)

// UserRepository persists directory records keyed by email.
type UserRepository interface {
	Get(ctx context.Context, email string) (*domain.User, error)
	Put(ctx context.Context, user *domain.User) error
	// Delete removes the record at the old key during an email rename; the
	// store has no rename primitive.
	Delete(ctx context.Context, email string) error
	List(ctx context.Context) ([]*domain.User, error)
}
