package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/consultia/expense-system/internal/core/domain"
)

// ctxPrincipal extracts the auth claims injected by the Auth middleware.
// A missing role or email means the middleware did not run or the token
// lacks identity claims; both are rejected before any service call.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	role, _ := c.Get("role").(string)
	email, _ := c.Get("email").(string)
	if role == "" || email == "" {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	sub, _ := c.Get("sub").(string)
	return domain.Principal{ID: sub, Email: email, Role: role}, nil
}
