package handler

type reviewExpenseRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}
