package ports

import (
	"context"

	"github.com/consultia/expense-system/internal/core/domain"
)

// ConsultantView is a directory record with its signed avatar URL resolved.
type ConsultantView struct {
	User      *domain.User
	AvatarURL string
}

// CreateConsultantInput carries a manager-initiated consultant creation.
// Name defaults to the email local part when empty.
type CreateConsultantInput struct {
	Email    string
	Password string
	Name     string
}

// UpdateConsultantInput carries a manager edit. Name is a pointer so an
// absent field is distinguishable from clearing the name. A non-empty
// NewEmail triggers the rename propagation.
type UpdateConsultantInput struct {
	Name     *string
	NewEmail string
}

// UpdateProfileInput carries a self-service profile edit.
type UpdateProfileInput struct {
	Name  string
	Email string
}

// UserService defines the consultant directory and profile use cases.
type UserService interface {
	ListConsultants(ctx context.Context, principal domain.Principal) ([]*ConsultantView, error)
	CreateConsultant(ctx context.Context, principal domain.Principal, input CreateConsultantInput) (*domain.User, error)
	UpdateConsultant(ctx context.Context, principal domain.Principal, email string, input UpdateConsultantInput) (*domain.User, error)
	ResetConsultantPassword(ctx context.Context, principal domain.Principal, email, password string) error
	UpdateProfile(ctx context.Context, principal domain.Principal, input UpdateProfileInput) (*domain.User, error)
	// SetAvatar stores the uploaded file and returns its signed URL.
	SetAvatar(ctx context.Context, principal domain.Principal, upload FileUpload) (string, error)
}

// LogoService manages the application logo singleton: public read,
// manager-only write.
type LogoService interface {
	// Get returns the current logo URL, or "" when no logo has been uploaded.
	Get(ctx context.Context) (string, error)
	Update(ctx context.Context, principal domain.Principal, upload FileUpload) (string, error)
}
