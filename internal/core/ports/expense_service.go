package ports

import (
	"context"

	"github.com/consultia/expense-system/internal/core/domain"
)

// MileageInput carries the optional travel fields from the expense form.
// The sub-record is attached only when all three are present; partial input
// is dropped, not rejected.
type MileageInput struct {
	StartLocation string
	EndLocation   string
	Distance      string
}

// CreateExpenseInput carries the multipart expense submission. Amount,
// Date and Distance arrive as raw form strings and are parsed by the
// service. ConsultantEmail is the manager-on-behalf target and must be
// empty for consultant self-submissions.
type CreateExpenseInput struct {
	ProjectID       string
	Amount          string
	Description     string
	Date            string
	ConsultantEmail string
	Receipt         *FileUpload
	Mileage         MileageInput
}

// ExpenseService defines the expense ledger use cases.
type ExpenseService interface {
	Create(ctx context.Context, principal domain.Principal, input CreateExpenseInput) (*domain.Expense, error)
	// List returns the expenses visible to the principal, sorted by
	// submission time descending with key order breaking ties.
	List(ctx context.Context, principal domain.Principal) ([]*domain.Expense, error)
	// Review settles a pending expense exactly once. Only the manager who
	// owns the expense's project may review it.
	Review(ctx context.Context, principal domain.Principal, expenseID string, status domain.ExpenseStatus) (*domain.Expense, error)
}
