package ports

import (
	"context"

	"github.com/consultia/expense-system/internal/core/domain"
)

// LogoRepository persists the application logo singleton.
type LogoRepository interface {
	Get(ctx context.Context) (*domain.Logo, error)
	Put(ctx context.Context, logo *domain.Logo) error
}
