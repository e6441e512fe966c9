package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/consultia/expense-system/internal/core/ports"
)

type LogoHandler struct {
	logoService ports.LogoService
}

func NewLogoHandler(logoService ports.LogoService) *LogoHandler {
	return &LogoHandler{logoService: logoService}
}

// Get returns the current application logo URL. Public: the login screen
// needs it before any token exists.
func (h *LogoHandler) Get(c echo.Context) error {
	url, err := h.logoService.Get(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"logoUrl": url})
}

// Update replaces the application logo.
func (h *LogoHandler) Update(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("logo")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "logo file is required")
	}
	upload, err := readUpload(fh)
	if err != nil {
		return err
	}

	url, err := h.logoService.Update(c.Request().Context(), principal, *upload)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"logoUrl": url})
}
