package handler

type createProjectRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type assignConsultantRequest struct {
	ConsultantEmail string `json:"consultantEmail" validate:"required,email"`
}

type projectStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active archived"`
}
