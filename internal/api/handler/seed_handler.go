package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/consultia/expense-system/internal/core/domain"
	"github.com/consultia/expense-system/internal/core/ports"
)

// SeedHandler populates a development environment with a working data set:
// one manager, two consultants, and two projects with assignments. It goes
// through the regular services so seeded data obeys every invariant, and it
// tolerates reruns by skipping accounts that already exist. The route is
// never registered in production.
type SeedHandler struct {
	authService    ports.AuthService
	projectService ports.ProjectService
	log            zerolog.Logger
}

func NewSeedHandler(authService ports.AuthService, projectService ports.ProjectService, log zerolog.Logger) *SeedHandler {
	return &SeedHandler{authService: authService, projectService: projectService, log: log}
}

type seedAccount struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type seedResponse struct {
	Message  string        `json:"message"`
	Accounts []seedAccount `json:"accounts"`
}

func (h *SeedHandler) Seed(c echo.Context) error {
	ctx := c.Request().Context()

	accounts := []struct {
		email, password, name, role string
	}{
		{"sarah@consultia.com", "manager123", "Sarah Johnson", domain.RoleManager},
		{"john@consultia.com", "consultant123", "John Smith", domain.RoleConsultant},
		{"emily@consultia.com", "consultant123", "Emily Davis", domain.RoleConsultant},
	}

	for _, a := range accounts {
		_, err := h.authService.Signup(ctx, ports.SignupInput{
			Email:    a.email,
			Password: a.password,
			Name:     a.name,
			Role:     a.role,
		})
		if err != nil && !errors.Is(err, domain.ErrUserExists) {
			return err
		}
	}

	manager := domain.Principal{Email: "sarah@consultia.com", Role: domain.RoleManager}
	if err := h.seedProjects(ctx, manager); err != nil {
		return err
	}

	h.log.Info().Msg("sample data seeded")

	resp := seedResponse{Message: "sample data created"}
	for _, a := range accounts {
		resp.Accounts = append(resp.Accounts, seedAccount{Email: a.email, Password: a.password, Role: a.role})
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *SeedHandler) seedProjects(ctx context.Context, manager domain.Principal) error {
	// Rerunning the seed adds fresh projects rather than detecting old
	// ones; project ids are random so there is no stable key to check.
	projects := []struct {
		input       ports.CreateProjectInput
		consultants []string
	}{
		{
			input:       ports.CreateProjectInput{Name: "Website Redesign", Description: "Corporate website overhaul for Acme Corp"},
			consultants: []string{"john@consultia.com", "emily@consultia.com"},
		},
		{
			input:       ports.CreateProjectInput{Name: "ERP Migration", Description: "Legacy ERP to cloud migration"},
			consultants: []string{"john@consultia.com"},
		},
	}

	for _, p := range projects {
		project, err := h.projectService.Create(ctx, manager, p.input)
		if err != nil {
			return err
		}
		for _, email := range p.consultants {
			if _, err := h.projectService.Assign(ctx, manager, project.ID, email); err != nil {
				return err
			}
		}
	}
	return nil
}
