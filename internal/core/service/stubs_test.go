package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/consultia/expense-system/internal/core/domain"
	"github.com/consultia/expense-system/internal/core/ports"
)

// In-memory repositories backing the service tests. List methods return in
// key order to mirror the store contract.

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Get(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *stubUserRepo) Put(_ context.Context, user *domain.User) error {
	cp := *user
	r.users[user.Email] = &cp
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, email string) error {
	delete(r.users, email)
	return nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	keys := make([]string, 0, len(r.users))
	for k := range r.users {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]*domain.User, 0, len(keys))
	for _, k := range keys {
		cp := *r.users[k]
		out = append(out, &cp)
	}
	return out, nil
}

type stubProjectRepo struct {
	projects map[string]*domain.Project
	putErr   error
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{projects: make(map[string]*domain.Project)}
}

func (r *stubProjectRepo) Get(_ context.Context, id string) (*domain.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	cp := *p
	cp.ConsultantIDs = append([]string(nil), p.ConsultantIDs...)
	cp.Normalize()
	return &cp, nil
}

func (r *stubProjectRepo) Put(_ context.Context, project *domain.Project) error {
	if r.putErr != nil {
		return r.putErr
	}
	cp := *project
	cp.ConsultantIDs = append([]string(nil), project.ConsultantIDs...)
	r.projects[project.ID] = &cp
	return nil
}

func (r *stubProjectRepo) Delete(_ context.Context, id string) error {
	delete(r.projects, id)
	return nil
}

func (r *stubProjectRepo) List(_ context.Context) ([]*domain.Project, error) {
	keys := make([]string, 0, len(r.projects))
	for k := range r.projects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]*domain.Project, 0, len(keys))
	for _, k := range keys {
		cp := *r.projects[k]
		cp.ConsultantIDs = append([]string(nil), r.projects[k].ConsultantIDs...)
		cp.Normalize()
		out = append(out, &cp)
	}
	return out, nil
}

type stubExpenseRepo struct {
	expenses map[string]*domain.Expense
}

func newStubExpenseRepo() *stubExpenseRepo {
	return &stubExpenseRepo{expenses: make(map[string]*domain.Expense)}
}

func (r *stubExpenseRepo) Get(_ context.Context, id string) (*domain.Expense, error) {
	e, ok := r.expenses[id]
	if !ok {
		return nil, domain.ErrExpenseNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *stubExpenseRepo) Put(_ context.Context, expense *domain.Expense) error {
	cp := *expense
	r.expenses[expense.ID] = &cp
	return nil
}

func (r *stubExpenseRepo) List(_ context.Context) ([]*domain.Expense, error) {
	keys := make([]string, 0, len(r.expenses))
	for k := range r.expenses {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]*domain.Expense, 0, len(keys))
	for _, k := range keys {
		cp := *r.expenses[k]
		out = append(out, &cp)
	}
	return out, nil
}

type stubLogoRepo struct {
	logo *domain.Logo
}

func (r *stubLogoRepo) Get(_ context.Context) (*domain.Logo, error) {
	if r.logo == nil {
		return nil, domain.ErrLogoNotFound
	}
	cp := *r.logo
	return &cp, nil
}

func (r *stubLogoRepo) Put(_ context.Context, logo *domain.Logo) error {
	cp := *logo
	r.logo = &cp
	return nil
}

// stubIdentity tracks credentials in memory. failUpdateEmail simulates a
// provider outage during a rename.
type stubIdentity struct {
	accounts        map[string]string
	failUpdateEmail bool
	failCreate      bool
}

func newStubIdentity() *stubIdentity {
	return &stubIdentity{accounts: make(map[string]string)}
}

func (s *stubIdentity) CreateUser(_ context.Context, email, password, _, role string) (*ports.Identity, error) {
	if s.failCreate {
		return nil, errors.New("provider down")
	}
	if _, ok := s.accounts[email]; ok {
		return nil, domain.ErrUserExists
	}
	s.accounts[email] = password
	return &ports.Identity{ID: "id-" + email, Email: email, Role: role}, nil
}

func (s *stubIdentity) Authenticate(_ context.Context, email, password string) (*ports.Identity, error) {
	stored, ok := s.accounts[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if stored != password {
		return nil, domain.ErrInvalidCredentials
	}
	return &ports.Identity{ID: "id-" + email, Email: email}, nil
}

func (s *stubIdentity) UpdateEmail(_ context.Context, oldEmail, newEmail string) error {
	if s.failUpdateEmail {
		return errors.New("provider down")
	}
	pw, ok := s.accounts[oldEmail]
	if !ok {
		return domain.ErrUserNotFound
	}
	if _, taken := s.accounts[newEmail]; taken {
		return domain.ErrEmailInUse
	}
	delete(s.accounts, oldEmail)
	s.accounts[newEmail] = pw
	return nil
}

func (s *stubIdentity) UpdatePassword(_ context.Context, email, password string) error {
	if _, ok := s.accounts[email]; !ok {
		return domain.ErrUserNotFound
	}
	s.accounts[email] = password
	return nil
}

// stubBlob records Puts and signs URLs deterministically.
type stubBlob struct {
	stored  map[string][]byte
	signErr error
}

func newStubBlob() *stubBlob {
	return &stubBlob{stored: make(map[string][]byte)}
}

func (b *stubBlob) Put(_ context.Context, bucket, name string, content []byte, _ string) error {
	b.stored[bucket+"/"+name] = content
	return nil
}

func (b *stubBlob) SignedURL(bucket, name string, _ time.Duration) (string, error) {
	if b.signErr != nil {
		return "", b.signErr
	}
	return fmt.Sprintf("https://files.test/%s/%s", bucket, name), nil
}
