package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/consultia/expense-system/internal/core/domain"
	"github.com/consultia/expense-system/internal/core/ports"
)

type ConsultantHandler struct {
	userService ports.UserService
}

func NewConsultantHandler(userService ports.UserService) *ConsultantHandler {
	return &ConsultantHandler{userService: userService}
}

type consultantView struct {
	*domain.User
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// List returns the consultant directory with resolved avatar URLs.
func (h *ConsultantHandler) List(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	views, err := h.userService.ListConsultants(c.Request().Context(), principal)
	if err != nil {
		return err
	}

	out := make([]consultantView, 0, len(views))
	for _, v := range views {
		out = append(out, consultantView{User: v.User, AvatarURL: v.AvatarURL})
	}
	return c.JSON(http.StatusOK, out)
}

// Create registers a consultant account on a manager's behalf.
func (h *ConsultantHandler) Create(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createConsultantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.CreateConsultant(c.Request().Context(), principal, ports.CreateConsultantInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, user)
}

// Update edits a consultant's name or email. An email change rewrites every
// record referencing the old address before the old key is dropped.
func (h *ConsultantHandler) Update(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req updateConsultantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.UpdateConsultant(c.Request().Context(), principal, c.Param("email"), ports.UpdateConsultantInput{
		Name:     req.Name,
		NewEmail: req.NewEmail,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

// ResetPassword sets a new password for a consultant.
func (h *ConsultantHandler) ResetPassword(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.userService.ResetConsultantPassword(c.Request().Context(), principal, c.Param("email"), req.Password); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
