package handler

import "github.com/consultia/expense-system/internal/core/domain"

type signupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=consultant manager"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

// sessionResponse is the profile payload for GET /session. The avatar URL
// is resolved server-side because raw file names are useless to clients.
type sessionResponse struct {
	User      *domain.User `json:"user"`
	AvatarURL string       `json:"avatarUrl,omitempty"`
}
