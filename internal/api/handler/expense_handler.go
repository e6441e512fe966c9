package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/consultia/expense-system/internal/core/domain"
	"github.com/consultia/expense-system/internal/core/ports"
)

// Receipts and avatars are small documents; anything larger is a client bug.
const maxUploadBytes = 10 << 20

type ExpenseHandler struct {
	expenseService ports.ExpenseService
}

func NewExpenseHandler(expenseService ports.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// Create submits an expense from a multipart form. The optional receipt
// arrives as a file part; amount, date and mileage fields as form values.
func (h *ExpenseHandler) Create(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	input := ports.CreateExpenseInput{
		ProjectID:       c.FormValue("projectId"),
		Amount:          c.FormValue("amount"),
		Description:     c.FormValue("description"),
		Date:            c.FormValue("date"),
		ConsultantEmail: c.FormValue("consultantEmail"),
		Mileage: ports.MileageInput{
			StartLocation: c.FormValue("startLocation"),
			EndLocation:   c.FormValue("endLocation"),
			Distance:      c.FormValue("distance"),
		},
	}

	if fh, err := c.FormFile("receipt"); err == nil {
		upload, err := readUpload(fh)
		if err != nil {
			return err
		}
		input.Receipt = upload
	}

	expense, err := h.expenseService.Create(c.Request().Context(), principal, input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, expense)
}

// List returns the expenses visible to the caller, newest first.
func (h *ExpenseHandler) List(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	expenses, err := h.expenseService.List(c.Request().Context(), principal)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, expenses)
}

// Review approves or rejects a pending expense.
func (h *ExpenseHandler) Review(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req reviewExpenseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	status, err := domain.ParseReviewStatus(req.Status)
	if err != nil {
		return err
	}

	expense, err := h.expenseService.Review(c.Request().Context(), principal, c.Param("id"), status)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, expense)
}

// readUpload loads a multipart file part into memory with a size cap.
func readUpload(fh *multipart.FileHeader) (*ports.FileUpload, error) {
	if fh.Size > maxUploadBytes {
		return nil, fmt.Errorf("%w: file exceeds size limit", domain.ErrValidation)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable file upload")
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable file upload")
	}
	if len(content) > maxUploadBytes {
		return nil, fmt.Errorf("%w: file exceeds size limit", domain.ErrValidation)
	}

	return &ports.FileUpload{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Content:     content,
	}, nil
}
