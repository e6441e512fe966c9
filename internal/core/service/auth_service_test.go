package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/consultia/expense-system/internal/core/domain"
	"github.com/consultia/expense-system/internal/core/ports"
)

func newAuthFixture() (*AuthService, *stubUserRepo, *stubIdentity, *stubBlob) {
	users := newStubUserRepo()
	identity := newStubIdentity()
	blobs := newStubBlob()
	svc := NewAuthService(users, identity, blobs, "test-secret", time.Hour, zerolog.Nop())
	return svc, users, identity, blobs
}

func TestSignupAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, users, _, _ := newAuthFixture()

	user, err := svc.Signup(ctx, ports.SignupInput{
		Email:    "sarah@consultia.com",
		Password: "manager123",
		Name:     "Sarah Johnson",
		Role:     domain.RoleManager,
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if user.Role != domain.RoleManager {
		t.Errorf("role = %s, want manager", user.Role)
	}
	if _, err := users.Get(ctx, "sarah@consultia.com"); err != nil {
		t.Fatalf("directory record missing: %v", err)
	}

	token, logged, err := svc.Login(ctx, "sarah@consultia.com", "manager123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if logged.Email != user.Email {
		t.Errorf("logged email = %s", logged.Email)
	}

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims["email"] != "sarah@consultia.com" || claims["role"] != domain.RoleManager {
		t.Errorf("unexpected claims: %v", claims)
	}
}

func TestSignupValidation(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newAuthFixture()

	cases := []ports.SignupInput{
		{Password: "x12345", Name: "n", Role: domain.RoleManager},
		{Email: "a@b.com", Name: "n", Role: domain.RoleManager},
		{Email: "a@b.com", Password: "x12345", Role: domain.RoleManager},
		{Email: "a@b.com", Password: "x12345", Name: "n"},
		{Email: "a@b.com", Password: "x12345", Name: "n", Role: "admin"},
	}
	for i, input := range cases {
		if _, err := svc.Signup(ctx, input); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("case %d: err = %v, want ErrValidation", i, err)
		}
	}
}

func TestSignupDuplicate(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newAuthFixture()

	input := ports.SignupInput{Email: "a@b.com", Password: "x12345", Name: "A", Role: domain.RoleConsultant}
	if _, err := svc.Signup(ctx, input); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	if _, err := svc.Signup(ctx, input); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("err = %v, want ErrUserExists", err)
	}
}

func TestSignupProviderFailureLeavesNoDirectoryRecord(t *testing.T) {
	ctx := context.Background()
	svc, users, identity, _ := newAuthFixture()
	identity.failCreate = true

	_, err := svc.Signup(ctx, ports.SignupInput{Email: "a@b.com", Password: "x12345", Name: "A", Role: domain.RoleConsultant})
	if err == nil {
		t.Fatal("expected error")
	}
	if _, err := users.Get(ctx, "a@b.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("directory record should not exist, got err = %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newAuthFixture()

	if _, err := svc.Signup(ctx, ports.SignupInput{Email: "a@b.com", Password: "x12345", Name: "A", Role: domain.RoleConsultant}); err != nil {
		t.Fatalf("signup: %v", err)
	}
	if _, _, err := svc.Login(ctx, "a@b.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.Login(ctx, "", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("empty input err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _, _, _ := newAuthFixture()
	if _, _, err := svc.Login(context.Background(), "ghost@b.com", "x12345"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}

func TestSessionResolvesAvatarURL(t *testing.T) {
	ctx := context.Background()
	svc, users, _, _ := newAuthFixture()

	user := &domain.User{
		Email:          "a@b.com",
		Name:           "A",
		Role:           domain.RoleConsultant,
		AvatarFileName: "avatar-1.png",
	}
	if err := users.Put(ctx, user); err != nil {
		t.Fatalf("put: %v", err)
	}

	view, err := svc.Session(ctx, domain.Principal{Email: "a@b.com", Role: domain.RoleConsultant})
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	if view.AvatarURL != "https://files.test/avatars/avatar-1.png" {
		t.Errorf("avatar url = %s", view.AvatarURL)
	}
}

func TestSessionAvatarSignFailureIsNonFatal(t *testing.T) {
	ctx := context.Background()
	users := newStubUserRepo()
	blobs := newStubBlob()
	blobs.signErr = errors.New("signer down")
	svc := NewAuthService(users, newStubIdentity(), blobs, "s", time.Hour, zerolog.Nop())

	if err := users.Put(ctx, &domain.User{Email: "a@b.com", Role: domain.RoleConsultant, AvatarFileName: "x.png"}); err != nil {
		t.Fatalf("put: %v", err)
	}

	view, err := svc.Session(ctx, domain.Principal{Email: "a@b.com", Role: domain.RoleConsultant})
	if err != nil {
		t.Fatalf("session should succeed: %v", err)
	}
	if view.AvatarURL != "" {
		t.Errorf("avatar url should be empty, got %s", view.AvatarURL)
	}
}
