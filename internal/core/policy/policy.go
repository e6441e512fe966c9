// Package policy holds the pure authorization decision functions. Every
// rule is a function over the principal and plain resource facts; nothing
// here reads the store or returns errors. Services translate a false into
// domain.ErrForbidden after their own not-found checks, so an unresolved id
// surfaces as 404 before ownership is ever considered.
package policy

import "github.com/consultia/expense-system/internal/core/domain"

// CanCreateProject allows managers only.
func CanCreateProject(p domain.Principal) bool {
	return p.IsManager()
}

// CanMutateProject covers assign, status change and delete: the requester
// must be a manager and own the project.
func CanMutateProject(p domain.Principal, project *domain.Project) bool {
	return p.IsManager() && project.ManagerID == p.Email
}

// CanSubmitExpense allows both roles; the service enforces the manager
// branch's on-behalf rules separately.
func CanSubmitExpense(p domain.Principal) bool {
	return p.IsManager() || p.IsConsultant()
}

// CanReviewExpense requires the requester to be the manager owning the
// expense's project.
func CanReviewExpense(p domain.Principal, project *domain.Project) bool {
	return p.IsManager() && project.ManagerID == p.Email
}

// CanManageConsultants gates the consultant directory endpoints. Any
// manager may manage any consultant; this is unscoped by project ownership.
func CanManageConsultants(p domain.Principal) bool {
	return p.IsManager()
}

// CanUpdateLogo gates the logo write: manager-only, read is public.
func CanUpdateLogo(p domain.Principal) bool {
	return p.IsManager()
}

// VisibleProjects filters a project listing for the principal. Managers see
// every project regardless of ownership (shared multi-manager visibility is
// a product choice, not an oversight); consultants see only active projects
// they are assigned to.
func VisibleProjects(p domain.Principal, projects []*domain.Project) []*domain.Project {
	if p.IsManager() {
		return projects
	}
	visible := make([]*domain.Project, 0, len(projects))
	for _, project := range projects {
		if project.Status == domain.ProjectActive && project.HasConsultant(p.Email) {
			visible = append(visible, project)
		}
	}
	return visible
}

// VisibleExpenses filters an expense listing for the principal. Consultants
// see their own submissions; managers see expenses belonging to projects
// they own, derived by joining through the project set rather than a field
// on the expense. Expenses whose project is gone match no manager.
func VisibleExpenses(p domain.Principal, expenses []*domain.Expense, projects []*domain.Project) []*domain.Expense {
	if p.IsConsultant() {
		visible := make([]*domain.Expense, 0, len(expenses))
		for _, e := range expenses {
			if e.ConsultantEmail == p.Email {
				visible = append(visible, e)
			}
		}
		return visible
	}

	managed := make(map[string]struct{}, len(projects))
	for _, project := range projects {
		if project.ManagerID == p.Email {
			managed[project.ID] = struct{}{}
		}
	}

	visible := make([]*domain.Expense, 0, len(expenses))
	for _, e := range expenses {
		if _, ok := managed[e.ProjectID]; ok {
			visible = append(visible, e)
		}
	}
	return visible
}
