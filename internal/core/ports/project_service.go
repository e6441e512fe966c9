package ports

import (
	"context"

	"github.com/consultia/expense-system/internal/core/domain"
)

// CreateProjectInput carries the payload for project creation.
type CreateProjectInput struct {
	Name        string
	Description string
}

// ProjectService defines the project registry use cases. Every operation
// takes the requesting principal; authorization lives behind these calls,
// not in the transport layer.
type ProjectService interface {
	Create(ctx context.Context, principal domain.Principal, input CreateProjectInput) (*domain.Project, error)
	// List returns the projects visible to the principal: managers see all
	// projects, consultants only active projects they are assigned to.
	List(ctx context.Context, principal domain.Principal) ([]*domain.Project, error)
	// Assign adds a consultant to a project owned by the principal.
	// Idempotent: assigning an already-assigned consultant is a no-op.
	Assign(ctx context.Context, principal domain.Principal, projectID, consultantEmail string) (*domain.Project, error)
	SetStatus(ctx context.Context, principal domain.Principal, projectID string, status domain.ProjectStatus) (*domain.Project, error)
	// Delete hard-deletes a project. Expenses are not cascaded; orphaned
	// expenses stay readable by id but drop out of manager listings.
	Delete(ctx context.Context, principal domain.Principal, projectID string) error
}
