package ports

import (
	"context"

	"github.com/consultia/expense-system/internal/core/domain"
)

// SignupInput carries a public registration request.
type SignupInput struct {
	Email    string
	Password string
	Name     string
	Role     string
}

// SessionView is the resolved principal plus profile returned by Session.
type SessionView struct {
	User      *domain.User
	AvatarURL string
}

type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Session(ctx context.Context, principal domain.Principal) (*SessionView, error)
}
