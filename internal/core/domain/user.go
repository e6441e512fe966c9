package domain

import "time"

const (
	RoleConsultant = "consultant"
	RoleManager    = "manager"
)

// ValidRole reports whether role is one of the two supported roles.
func ValidRole(role string) bool {
	return role == RoleConsultant || role == RoleManager
}

// User is the directory record stored under "user:<email>". Email is the
// primary key; changing it means re-keying the record and rewriting every
// back-reference (see the propagator). Role is immutable after creation.
type User struct {
	Email           string     `json:"email"`
	Name            string     `json:"name"`
	Role            string     `json:"role"`
	AvatarFileName  string     `json:"avatarFileName,omitempty"`
	AvatarUpdatedAt *time.Time `json:"avatarUpdatedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	CreatedBy       string     `json:"createdBy,omitempty"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`
	UpdatedBy       string     `json:"updatedBy,omitempty"`
}

// Principal is the authenticated identity making a request, resolved from
// the bearer token by the Auth middleware. ID is the identity provider's
// opaque surrogate id.
type Principal struct {
	ID    string
	Email string
	Role  string
}

func (p Principal) IsManager() bool {
	return p.Role == RoleManager
}

func (p Principal) IsConsultant() bool {
	return p.Role == RoleConsultant
}
