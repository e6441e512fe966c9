package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/consultia/expense-system/internal/api/metrics"
	"github.com/consultia/expense-system/internal/core/domain"
	"github.com/consultia/expense-system/internal/core/policy"
	"github.com/consultia/expense-system/internal/core/ports"
)

// ProjectService implements the project registry use cases.
type ProjectService struct {
	projects ports.ProjectRepository
	users    ports.UserRepository
	log      zerolog.Logger
}

func NewProjectService(projects ports.ProjectRepository, users ports.UserRepository, log zerolog.Logger) *ProjectService {
	return &ProjectService{projects: projects, users: users, log: log}
}

func (s *ProjectService) Create(ctx context.Context, principal domain.Principal, input ports.CreateProjectInput) (*domain.Project, error) {
	if !policy.CanCreateProject(principal) {
		return nil, domain.ErrForbidden
	}
	if input.Name == "" {
		return nil, fmt.Errorf("%w: project name is required", domain.ErrValidation)
	}

	project := &domain.Project{
		ID:            uuid.NewString(),
		Name:          input.Name,
		Description:   input.Description,
		ManagerID:     principal.Email,
		ConsultantIDs: []string{},
		Status:        domain.ProjectActive,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.projects.Put(ctx, project); err != nil {
		return nil, err
	}

	metrics.ProjectsCreatedTotal.Inc()
	s.log.Info().Str("project_id", project.ID).Str("manager", principal.Email).Msg("project created")
	return project, nil
}

func (s *ProjectService) List(ctx context.Context, principal domain.Principal) ([]*domain.Project, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}
	return policy.VisibleProjects(principal, projects), nil
}

// Assign validates the consultant before resolving the project: an unknown
// or non-consultant target reads as not found regardless of project state.
func (s *ProjectService) Assign(ctx context.Context, principal domain.Principal, projectID, consultantEmail string) (*domain.Project, error) {
	if consultantEmail == "" {
		return nil, fmt.Errorf("%w: consultant email is required", domain.ErrValidation)
	}

	consultant, err := s.users.Get(ctx, consultantEmail)
	if err != nil || consultant.Role != domain.RoleConsultant {
		return nil, domain.ErrConsultantNotFound
	}

	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !policy.CanMutateProject(principal, project) {
		return nil, domain.ErrForbidden
	}

	// Read-modify-write without locking: two concurrent assigns to the same
	// project can lose one assignment (last writer wins).
	if project.AddConsultant(consultantEmail) {
		if err := s.projects.Put(ctx, project); err != nil {
			return nil, err
		}
		s.log.Info().Str("project_id", projectID).Str("consultant", consultantEmail).Msg("consultant assigned")
	}
	return project, nil
}

func (s *ProjectService) SetStatus(ctx context.Context, principal domain.Principal, projectID string, status domain.ProjectStatus) (*domain.Project, error) {
	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !policy.CanMutateProject(principal, project) {
		return nil, domain.ErrForbidden
	}

	now := time.Now().UTC()
	project.Status = status
	project.UpdatedAt = &now
	if err := s.projects.Put(ctx, project); err != nil {
		return nil, err
	}

	s.log.Info().Str("project_id", projectID).Str("status", string(status)).Msg("project status updated")
	return project, nil
}

func (s *ProjectService) Delete(ctx context.Context, principal domain.Principal, projectID string) error {
	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return err
	}
	if !policy.CanMutateProject(principal, project) {
		return domain.ErrForbidden
	}

	// No cascade: expenses keep their projectId and simply stop appearing
	// in manager listings once the join target is gone.
	if err := s.projects.Delete(ctx, projectID); err != nil {
		return err
	}

	s.log.Info().Str("project_id", projectID).Str("manager", principal.Email).Msg("project deleted")
	return nil
}
