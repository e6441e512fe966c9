package ports

import "context"

// Identity is the identity provider's view of a principal. ID is an opaque
// surrogate id that never changes; email is a mutable attribute there, even
// though the directory keys on it.
type Identity struct {
	ID    string
	Email string
	Name  string
	Role  string
}

// IdentityProvider is the external authentication collaborator. It owns
// password storage and credential checks. During an email rename it is
// updated first; a provider failure aborts the rename before any local
// record is touched.
type IdentityProvider interface {
	CreateUser(ctx context.Context, email, password, name, role string) (*Identity, error)
	Authenticate(ctx context.Context, email, password string) (*Identity, error)
	UpdateEmail(ctx context.Context, oldEmail, newEmail string) error
	UpdatePassword(ctx context.Context, email, password string) error
}
