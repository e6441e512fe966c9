package domain

import "time"

// ProjectStatus represents the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "active"
	ProjectArchived ProjectStatus = "archived"
)

// ParseProjectStatus validates a raw status string.
func ParseProjectStatus(s string) (ProjectStatus, error) {
	switch ProjectStatus(s) {
	case ProjectActive, ProjectArchived:
		return ProjectStatus(s), nil
	}
	return "", ErrInvalidStatus
}

// Project is stored under "project:<id>". ManagerID never changes through
// project operations; only an email rename rewrites it.
type Project struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	ManagerID     string        `json:"managerId"`
	ConsultantIDs []string      `json:"consultantIds"`
	Status        ProjectStatus `json:"status,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     *time.Time    `json:"updatedAt,omitempty"`
}

// Normalize applies read-boundary defaults. Records written before the
// status field existed carry no status and are treated as active.
func (p *Project) Normalize() {
	if p.Status == "" {
		p.Status = ProjectActive
	}
	if p.ConsultantIDs == nil {
		p.ConsultantIDs = []string{}
	}
}

// HasConsultant reports whether email is assigned to the project.
func (p *Project) HasConsultant(email string) bool {
	for _, id := range p.ConsultantIDs {
		if id == email {
			return true
		}
	}
	return false
}

// AddConsultant appends email to the assignment set and reports whether the
// project changed. Assigning an already-assigned consultant is a no-op.
func (p *Project) AddConsultant(email string) bool {
	if p.HasConsultant(email) {
		return false
	}
	p.ConsultantIDs = append(p.ConsultantIDs, email)
	return true
}

// ReplaceEmail rewrites every reference to oldEmail (owner or assignment)
// with newEmail and reports whether the project changed.
func (p *Project) ReplaceEmail(oldEmail, newEmail string) bool {
	changed := false
	if p.ManagerID == oldEmail {
		p.ManagerID = newEmail
		changed = true
	}
	for i, id := range p.ConsultantIDs {
		if id == oldEmail {
			p.ConsultantIDs[i] = newEmail
			changed = true
		}
	}
	return changed
}
