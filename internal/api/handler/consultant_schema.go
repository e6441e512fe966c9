package handler

type createConsultantRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name"`
}

type updateConsultantRequest struct {
	Name     *string `json:"name"`
	NewEmail string  `json:"newEmail" validate:"omitempty,email"`
}

type resetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}
