package ports

import (
	"context"

	"github.com/consultia/expense-system/internal/core/domain"
)

// ProjectRepository persists projects keyed by generated id. Get and List
// apply read-boundary defaults (absent status becomes active).
type ProjectRepository interface {
	Get(ctx context.Context, id string) (*domain.Project, error)
	Put(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.Project, error)
}
