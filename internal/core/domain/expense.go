package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseStatus represents the approval state of an expense.
type ExpenseStatus string

const (
	ExpensePending  ExpenseStatus = "pending"
	ExpenseApproved ExpenseStatus = "approved"
	ExpenseRejected ExpenseStatus = "rejected"
)

// ParseReviewStatus validates a requested review outcome. Only the two
// terminal states are valid review targets.
func ParseReviewStatus(s string) (ExpenseStatus, error) {
	switch ExpenseStatus(s) {
	case ExpenseApproved, ExpenseRejected:
		return ExpenseStatus(s), nil
	}
	return "", ErrInvalidStatus
}

// CanTransitionTo reports whether a transition from the current status to
// next is valid. The only legal moves are from pending to approved or
// rejected; an expense is reviewed exactly once.
func (s ExpenseStatus) CanTransitionTo(next ExpenseStatus) bool {
	if s != ExpensePending {
		return false
	}
	return next == ExpenseApproved || next == ExpenseRejected
}

// Mileage is the optional travel sub-record on an expense. It exists only
// when all three fields were supplied together at creation time.
type Mileage struct {
	StartLocation string          `json:"startLocation"`
	EndLocation   string          `json:"endLocation"`
	Distance      decimal.Decimal `json:"distance"`
}

// Expense is stored under "expense:<id>". ConsultantEmail is the
// beneficiary; SubmittedBy is whoever actually created the record and may
// differ when a manager files on a consultant's behalf.
type Expense struct {
	ID              string          `json:"id"`
	ConsultantEmail string          `json:"consultantEmail"`
	ProjectID       string          `json:"projectId"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	Date            time.Time       `json:"date"`
	ReceiptFileName string          `json:"receiptFileName"`
	ReceiptURL      string          `json:"receiptUrl"`
	Status          ExpenseStatus   `json:"status"`
	SubmittedAt     time.Time       `json:"submittedAt"`
	SubmittedBy     string          `json:"submittedBy"`
	ReviewedAt      *time.Time      `json:"reviewedAt,omitempty"`
	ReviewedBy      string          `json:"reviewedBy,omitempty"`
	Mileage         *Mileage        `json:"mileage,omitempty"`
}
