package service

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/consultia/expense-system/internal/api/metrics"
	"github.com/consultia/expense-system/internal/core/domain"
	"github.com/consultia/expense-system/internal/core/policy"
	"github.com/consultia/expense-system/internal/core/ports"
)

const receiptURLTTL = 365 * 24 * time.Hour

// ExpenseService implements the expense ledger use cases.
type ExpenseService struct {
	expenses ports.ExpenseRepository
	projects ports.ProjectRepository
	blobs    ports.BlobStore
	log      zerolog.Logger
}

func NewExpenseService(expenses ports.ExpenseRepository, projects ports.ProjectRepository, blobs ports.BlobStore, log zerolog.Logger) *ExpenseService {
	return &ExpenseService{expenses: expenses, projects: projects, blobs: blobs, log: log}
}

// Create submits a new expense. Consultants submit for themselves; managers
// must name a beneficiary already assigned to one of their own projects.
func (s *ExpenseService) Create(ctx context.Context, principal domain.Principal, input ports.CreateExpenseInput) (*domain.Expense, error) {
	if !policy.CanSubmitExpense(principal) {
		return nil, domain.ErrForbidden
	}
	if input.ProjectID == "" || input.Amount == "" || input.Description == "" || input.Receipt == nil {
		return nil, fmt.Errorf("%w: project, amount, description and receipt are required", domain.ErrValidation)
	}

	amount, err := decimal.NewFromString(input.Amount)
	if err != nil || !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be a positive decimal", domain.ErrValidation)
	}

	beneficiary := principal.Email
	if principal.IsManager() {
		if input.ConsultantEmail == "" {
			return nil, fmt.Errorf("%w: managers must assign expenses to a consultant", domain.ErrValidation)
		}
		project, err := s.projects.Get(ctx, input.ProjectID)
		if err != nil {
			return nil, err
		}
		if project.ManagerID != principal.Email {
			return nil, domain.ErrForbidden
		}
		if !project.HasConsultant(input.ConsultantEmail) {
			return nil, domain.ErrConsultantNotAssigned
		}
		beneficiary = input.ConsultantEmail
	}

	fileName := uuid.NewString() + "-" + filepath.Base(input.Receipt.FileName)
	if err := s.blobs.Put(ctx, ports.BucketReceipts, fileName, input.Receipt.Content, input.Receipt.ContentType); err != nil {
		return nil, fmt.Errorf("store receipt: %w", err)
	}
	receiptURL, err := s.blobs.SignedURL(ports.BucketReceipts, fileName, receiptURLTTL)
	if err != nil {
		return nil, fmt.Errorf("sign receipt url: %w", err)
	}

	now := time.Now().UTC()
	expense := &domain.Expense{
		ID:              uuid.NewString(),
		ConsultantEmail: beneficiary,
		ProjectID:       input.ProjectID,
		Amount:          amount,
		Description:     input.Description,
		Date:            parseExpenseDate(input.Date, now),
		ReceiptFileName: fileName,
		ReceiptURL:      receiptURL,
		Status:          domain.ExpensePending,
		SubmittedAt:     now,
		SubmittedBy:     principal.Email,
	}

	if m, err := parseMileage(input.Mileage); err != nil {
		return nil, err
	} else if m != nil {
		expense.Mileage = m
	}

	if err := s.expenses.Put(ctx, expense); err != nil {
		return nil, err
	}

	metrics.ExpensesSubmittedTotal.WithLabelValues(principal.Role).Inc()
	s.log.Info().
		Str("expense_id", expense.ID).
		Str("project_id", expense.ProjectID).
		Str("consultant", beneficiary).
		Str("submitted_by", principal.Email).
		Msg("expense submitted")
	return expense, nil
}

func (s *ExpenseService) List(ctx context.Context, principal domain.Principal) ([]*domain.Expense, error) {
	expenses, err := s.expenses.List(ctx)
	if err != nil {
		return nil, err
	}

	var projects []*domain.Project
	if principal.IsManager() {
		if projects, err = s.projects.List(ctx); err != nil {
			return nil, err
		}
	}

	visible := policy.VisibleExpenses(principal, expenses, projects)

	// Newest first. The repository lists in key order, so the stable sort
	// keeps ties deterministic.
	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].SubmittedAt.After(visible[j].SubmittedAt)
	})
	return visible, nil
}

// Review settles a pending expense. The owning manager is derived through
// the project; an orphaned expense (project deleted) is reviewable by
// nobody.
func (s *ExpenseService) Review(ctx context.Context, principal domain.Principal, expenseID string, status domain.ExpenseStatus) (*domain.Expense, error) {
	expense, err := s.expenses.Get(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	project, err := s.projects.Get(ctx, expense.ProjectID)
	if err != nil {
		return nil, domain.ErrForbidden
	}
	if !policy.CanReviewExpense(principal, project) {
		return nil, domain.ErrForbidden
	}

	if !expense.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w (current status %s)", domain.ErrAlreadyReviewed, expense.Status)
	}

	now := time.Now().UTC()
	expense.Status = status
	expense.ReviewedAt = &now
	expense.ReviewedBy = principal.Email
	if err := s.expenses.Put(ctx, expense); err != nil {
		return nil, err
	}

	metrics.ExpensesReviewedTotal.WithLabelValues(string(status)).Inc()
	s.log.Info().
		Str("expense_id", expenseID).
		Str("status", string(status)).
		Str("reviewed_by", principal.Email).
		Msg("expense reviewed")
	return expense, nil
}

func parseExpenseDate(raw string, fallback time.Time) time.Time {
	if raw == "" {
		return fallback
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC()
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.UTC()
	}
	return fallback
}

// parseMileage folds the three optional travel fields into a sub-record.
// Partial input is dropped silently rather than rejected; a malformed
// distance on an otherwise complete record is still an error.
func parseMileage(in ports.MileageInput) (*domain.Mileage, error) {
	if in.StartLocation == "" || in.EndLocation == "" || in.Distance == "" {
		return nil, nil
	}
	distance, err := decimal.NewFromString(in.Distance)
	if err != nil || !distance.IsPositive() {
		return nil, fmt.Errorf("%w: distance must be a positive decimal", domain.ErrValidation)
	}
	return &domain.Mileage{
		StartLocation: in.StartLocation,
		EndLocation:   in.EndLocation,
		Distance:      distance,
	}, nil
}
