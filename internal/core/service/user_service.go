package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/consultia/expense-system/internal/core/domain"
	"github.com/consultia/expense-system/internal/core/policy"
	"github.com/consultia/expense-system/internal/core/ports"
)

const minPasswordLength = 6

// UserService implements the consultant directory and profile use cases.
// Email renames are delegated to the propagator.
type UserService struct {
	users      ports.UserRepository
	identity   ports.IdentityProvider
	blobs      ports.BlobStore
	propagator *Propagator
	log        zerolog.Logger
}

func NewUserService(users ports.UserRepository, identity ports.IdentityProvider, blobs ports.BlobStore, propagator *Propagator, log zerolog.Logger) *UserService {
	return &UserService{
		users:      users,
		identity:   identity,
		blobs:      blobs,
		propagator: propagator,
		log:        log,
	}
}

func (s *UserService) ListConsultants(ctx context.Context, principal domain.Principal) ([]*ports.ConsultantView, error) {
	if !policy.CanManageConsultants(principal) {
		return nil, domain.ErrForbidden
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]*ports.ConsultantView, 0, len(users))
	for _, u := range users {
		if u.Role != domain.RoleConsultant {
			continue
		}
		view := &ports.ConsultantView{User: u}
		if u.AvatarFileName != "" {
			url, err := s.blobs.SignedURL(ports.BucketAvatars, u.AvatarFileName, avatarURLTTL)
			if err != nil {
				s.log.Warn().Err(err).Str("email", u.Email).Msg("failed to sign avatar url")
			} else {
				view.AvatarURL = url
			}
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *UserService) CreateConsultant(ctx context.Context, principal domain.Principal, input ports.CreateConsultantInput) (*domain.User, error) {
	if !policy.CanManageConsultants(principal) {
		return nil, domain.ErrForbidden
	}
	if input.Email == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}
	if len(input.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLength)
	}

	if _, err := s.users.Get(ctx, input.Email); err == nil {
		return nil, domain.ErrUserExists
	}

	name := input.Name
	if name == "" {
		name = emailLocalPart(input.Email)
	}

	if _, err := s.identity.CreateUser(ctx, input.Email, input.Password, name, domain.RoleConsultant); err != nil {
		return nil, err
	}

	consultant := &domain.User{
		Email:     input.Email,
		Name:      name,
		Role:      domain.RoleConsultant,
		CreatedAt: time.Now().UTC(),
		CreatedBy: principal.Email,
	}
	if err := s.users.Put(ctx, consultant); err != nil {
		return nil, err
	}

	s.log.Info().Str("email", consultant.Email).Str("created_by", principal.Email).Msg("consultant created")
	return consultant, nil
}

func (s *UserService) UpdateConsultant(ctx context.Context, principal domain.Principal, email string, input ports.UpdateConsultantInput) (*domain.User, error) {
	if !policy.CanManageConsultants(principal) {
		return nil, domain.ErrForbidden
	}

	consultant, err := s.users.Get(ctx, email)
	if err != nil {
		return nil, domain.ErrConsultantNotFound
	}
	if consultant.Role != domain.RoleConsultant {
		return nil, domain.ErrForbidden
	}

	if input.NewEmail != "" && input.NewEmail != email {
		if consultant, err = s.propagator.Rename(ctx, email, input.NewEmail); err != nil {
			return nil, err
		}
	}

	if input.Name != nil {
		consultant.Name = *input.Name
	}
	now := time.Now().UTC()
	consultant.UpdatedAt = &now
	consultant.UpdatedBy = principal.Email
	if err := s.users.Put(ctx, consultant); err != nil {
		return nil, err
	}
	return consultant, nil
}

func (s *UserService) ResetConsultantPassword(ctx context.Context, principal domain.Principal, email, password string) error {
	if !policy.CanManageConsultants(principal) {
		return domain.ErrForbidden
	}
	if password == "" {
		return fmt.Errorf("%w: password is required", domain.ErrValidation)
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLength)
	}

	consultant, err := s.users.Get(ctx, email)
	if err != nil {
		return domain.ErrConsultantNotFound
	}
	if consultant.Role != domain.RoleConsultant {
		return domain.ErrForbidden
	}

	if err := s.identity.UpdatePassword(ctx, email, password); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrIdentityUnavailable, err)
	}

	s.log.Info().Str("email", email).Str("reset_by", principal.Email).Msg("consultant password reset")
	return nil
}

// UpdateProfile edits the caller's own record. A changed email runs the
// full rename propagation; a manager renaming themselves rewrites the
// managerId on every project they own.
func (s *UserService) UpdateProfile(ctx context.Context, principal domain.Principal, input ports.UpdateProfileInput) (*domain.User, error) {
	if input.Name == "" && input.Email == "" {
		return nil, fmt.Errorf("%w: name or email is required", domain.ErrValidation)
	}

	user, err := s.users.Get(ctx, principal.Email)
	if err != nil {
		return nil, err
	}

	if input.Email != "" && input.Email != principal.Email {
		if user, err = s.propagator.Rename(ctx, principal.Email, input.Email); err != nil {
			return nil, err
		}
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	now := time.Now().UTC()
	user.UpdatedAt = &now
	user.UpdatedBy = principal.Email
	if err := s.users.Put(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) SetAvatar(ctx context.Context, principal domain.Principal, upload ports.FileUpload) (string, error) {
	if upload.FileName == "" || len(upload.Content) == 0 {
		return "", fmt.Errorf("%w: avatar file is required", domain.ErrValidation)
	}

	user, err := s.users.Get(ctx, principal.Email)
	if err != nil {
		return "", err
	}

	fileName := fmt.Sprintf("avatar-%s-%s%s", principal.ID, uuid.NewString(), fileExtension(upload.FileName))
	if err := s.blobs.Put(ctx, ports.BucketAvatars, fileName, upload.Content, upload.ContentType); err != nil {
		return "", fmt.Errorf("store avatar: %w", err)
	}
	url, err := s.blobs.SignedURL(ports.BucketAvatars, fileName, avatarURLTTL)
	if err != nil {
		return "", fmt.Errorf("sign avatar url: %w", err)
	}

	now := time.Now().UTC()
	user.AvatarFileName = fileName
	user.AvatarUpdatedAt = &now
	if err := s.users.Put(ctx, user); err != nil {
		return "", err
	}
	return url, nil
}

func emailLocalPart(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}

func fileExtension(name string) string {
	return strings.ToLower(filepath.Ext(name))
}
