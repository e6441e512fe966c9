package domain

import "errors"

// Sentinel errors shared across services. The HTTP error handler maps each
// to its status code; services wrap them with context via fmt.Errorf and %w.
var (
	// ErrValidation marks a missing or malformed required field (400).
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCredentials covers bad login input and password mismatches (401).
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrForbidden is the uniform authorization failure (403). It carries no
	// resource details; not-found takes precedence when an id does not resolve.
	ErrForbidden = errors.New("access forbidden")

	ErrUserNotFound       = errors.New("user not found")
	ErrConsultantNotFound = errors.New("consultant not found")
	ErrProjectNotFound    = errors.New("project not found")
	ErrExpenseNotFound    = errors.New("expense not found")
	ErrLogoNotFound       = errors.New("logo not set")

	// ErrUserExists signals a duplicate signup or consultant creation (409).
	ErrUserExists = errors.New("user already exists")

	// ErrEmailInUse signals an email rename targeting a taken address (409).
	ErrEmailInUse = errors.New("email address already in use")

	// ErrAlreadyReviewed signals a review call on a settled expense (409).
	ErrAlreadyReviewed = errors.New("expense already reviewed")

	// ErrConsultantNotAssigned signals a manager filing an expense for a
	// consultant who is not assigned to the target project (409).
	ErrConsultantNotAssigned = errors.New("consultant is not assigned to this project")

	// ErrInvalidStatus marks an unknown status literal in a request (400).
	ErrInvalidStatus = errors.New("invalid status")

	// ErrIdentityUnavailable marks an identity provider failure. Transient:
	// the operation failed and no local records were touched (500).
	ErrIdentityUnavailable = errors.New("identity provider unavailable")
)
