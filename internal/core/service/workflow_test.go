package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/consultia/expense-system/internal/core/domain"
	"github.com/consultia/expense-system/internal/core/ports"
)

// End-to-end pass over the services sharing one set of repositories:
// create a project, assign a consultant, submit an expense, review it.
func TestExpenseWorkflowScenario(t *testing.T) {
	ctx := context.Background()

	users := newStubUserRepo()
	projects := newStubProjectRepo()
	expenses := newStubExpenseRepo()
	blobs := newStubBlob()
	users.users[manager.Email] = &domain.User{Email: manager.Email, Role: domain.RoleManager}
	users.users[consultant.Email] = &domain.User{Email: consultant.Email, Role: domain.RoleConsultant}

	projectSvc := NewProjectService(projects, users, zerolog.Nop())
	expenseSvc := NewExpenseService(expenses, projects, blobs, zerolog.Nop())

	project, err := projectSvc.Create(ctx, manager, ports.CreateProjectInput{Name: "Cloud Migration"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	// The status was never part of the request; reading back through the
	// owner's listing still shows it active.
	listed, err := projectSvc.List(ctx, manager)
	if err != nil {
		t.Fatalf("list projects: %v", err)
	}
	if len(listed) != 1 || listed[0].Status != domain.ProjectActive {
		t.Fatalf("listed = %+v, want one active project", listed)
	}

	if _, err := projectSvc.Assign(ctx, manager, project.ID, consultant.Email); err != nil {
		t.Fatalf("assign: %v", err)
	}

	expense, err := expenseSvc.Create(ctx, consultant, ports.CreateExpenseInput{
		ProjectID:   project.ID,
		Amount:      "125.50",
		Description: "Taxi",
		Receipt:     receiptUpload(),
	})
	if err != nil {
		t.Fatalf("submit expense: %v", err)
	}

	pending, err := expenseSvc.List(ctx, manager)
	if err != nil {
		t.Fatalf("list expenses: %v", err)
	}
	if len(pending) != 1 || pending[0].Status != domain.ExpensePending {
		t.Fatalf("manager list = %+v, want one pending expense", pending)
	}
	if !pending[0].Amount.Equal(decimal.RequireFromString("125.50")) {
		t.Errorf("amount = %s", pending[0].Amount)
	}

	if _, err := expenseSvc.Review(ctx, manager, expense.ID, domain.ExpenseApproved); err != nil {
		t.Fatalf("review: %v", err)
	}

	approved, err := expenseSvc.List(ctx, manager)
	if err != nil {
		t.Fatalf("list after review: %v", err)
	}
	if approved[0].Status != domain.ExpenseApproved || approved[0].ReviewedBy != manager.Email {
		t.Fatalf("reviewed expense = %+v", approved[0])
	}
}

func TestOnBehalfForUnassignedConsultantCreatesNothing(t *testing.T) {
	ctx := context.Background()

	expenses := newStubExpenseRepo()
	projects := newStubProjectRepo()
	if err := projects.Put(ctx, &domain.Project{ID: "p1", ManagerID: manager.Email, Status: domain.ProjectActive}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	svc := NewExpenseService(expenses, projects, newStubBlob(), zerolog.Nop())

	_, err := svc.Create(ctx, manager, ports.CreateExpenseInput{
		ProjectID:       "p1",
		Amount:          "50",
		Description:     "d",
		ConsultantEmail: consultant.Email,
		Receipt:         receiptUpload(),
	})
	if !errors.Is(err, domain.ErrConsultantNotAssigned) {
		t.Fatalf("err = %v, want ErrConsultantNotAssigned", err)
	}
	if len(expenses.expenses) != 0 {
		t.Fatalf("expense was created despite the failure: %v", expenses.expenses)
	}
}
