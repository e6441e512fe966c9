package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/consultia/expense-system/internal/core/domain"
	"github.com/consultia/expense-system/internal/core/ports"
)

const avatarURLTTL = 365 * 24 * time.Hour

// AuthService implements signup, login and session resolution. Credentials
// live in the identity provider; the directory record under "user:<email>"
// is the source of truth for authorization decisions.
type AuthService struct {
	users     ports.UserRepository
	identity  ports.IdentityProvider
	blobs     ports.BlobStore
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(users ports.UserRepository, identity ports.IdentityProvider, blobs ports.BlobStore, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		identity:  identity,
		blobs:     blobs,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

func (s *AuthService) Signup(ctx context.Context, input ports.SignupInput) (*domain.User, error) {
	if input.Email == "" || input.Password == "" || input.Name == "" || input.Role == "" {
		return nil, fmt.Errorf("%w: email, password, name and role are required", domain.ErrValidation)
	}
	if !domain.ValidRole(input.Role) {
		return nil, fmt.Errorf("%w: role must be consultant or manager", domain.ErrValidation)
	}

	if _, err := s.users.Get(ctx, input.Email); err == nil {
		return nil, domain.ErrUserExists
	}

	// Provider first: no directory record without a credential behind it.
	if _, err := s.identity.CreateUser(ctx, input.Email, input.Password, input.Name, input.Role); err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:     input.Email,
		Name:      input.Name,
		Role:      input.Role,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.users.Put(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("email", user.Email).Str("role", user.Role).Msg("user signed up")
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	ident, err := s.identity.Authenticate(ctx, email, password)
	if err != nil {
		return "", nil, err
	}

	user, err := s.users.Get(ctx, ident.Email)
	if err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(ident, user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) Session(ctx context.Context, principal domain.Principal) (*ports.SessionView, error) {
	user, err := s.users.Get(ctx, principal.Email)
	if err != nil {
		return nil, err
	}

	view := &ports.SessionView{User: user}
	if user.AvatarFileName != "" {
		url, err := s.blobs.SignedURL(ports.BucketAvatars, user.AvatarFileName, avatarURLTTL)
		if err != nil {
			s.log.Warn().Err(err).Str("email", user.Email).Msg("failed to sign avatar url")
		} else {
			view.AvatarURL = url
		}
	}
	return view, nil
}

func (s *AuthService) generateToken(ident *ports.Identity, user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   ident.ID,
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
