package service

import (
	"context"
	"testing"

	"github.com/spec-kit/docubuddy/internal/config"
	"github.com/spec-kit/docubuddy/internal/domain"
	apperrors "github.com/spec-kit/docubuddy/pkg/util/errorutil"
)

func authTestConfig() config.Config {
	return config.Config{Auth: config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 60,
		BcryptCost:            4,
	}}
}

func TestSignupAndLogin(t *testing.T) {
	profiles := newStubProfileRepo()
	svc := NewAuthService(authTestConfig(), profiles)

	actor, token, _, err := svc.Signup(context.Background(), "Dev One", "dev@example.com", "hunter2-long", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if actor.ID == "" || token == "" {
		t.Fatal("signup should return a persisted actor and a token")
	}
	if actor.Role != domain.RoleAdmin {
		t.Fatalf("role = %s, want admin", actor.Role)
	}

	logged, token, _, err := svc.Login(context.Background(), "dev@example.com", "hunter2-long")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if logged.ID != actor.ID || token == "" {
		t.Fatal("login should authenticate the signed-up actor")
	}

	claims, err := svc.TokenManager().ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.Role != domain.RoleAdmin {
		t.Fatalf("token role = %s, want signup metadata role", claims.Role)
	}
}

func TestSignupUnknownRoleDefaultsToTeamMember(t *testing.T) {
	svc := NewAuthService(authTestConfig(), newStubProfileRepo())

	actor, _, _, err := svc.Signup(context.Background(), "Dev", "dev@example.com", "hunter2-long", domain.Role("superuser"))
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if actor.Role != domain.RoleTeamMember {
		t.Fatalf("role = %s, want team_member fallback", actor.Role)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	profiles := newStubProfileRepo()
	svc := NewAuthService(authTestConfig(), profiles)

	if _, _, _, err := svc.Signup(context.Background(), "Dev", "dev@example.com", "hunter2-long", domain.RoleTeamMember); err != nil {
		t.Fatalf("first Signup: %v", err)
	}
	_, _, _, err := svc.Signup(context.Background(), "Dev Again", "dev@example.com", "hunter2-long", domain.RoleTeamMember)
	if !apperrors.IsCode(err, "CONFLICT") {
		t.Fatalf("err = %v, want CONFLICT", err)
	}
}

func TestSignupShortPassword(t *testing.T) {
	svc := NewAuthService(authTestConfig(), newStubProfileRepo())

	_, _, _, err := svc.Signup(context.Background(), "Dev", "dev@example.com", "short", domain.RoleTeamMember)
	if !apperrors.IsCode(err, "VALIDATION_FAILED") {
		t.Fatalf("err = %v, want VALIDATION_FAILED", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	profiles := newStubProfileRepo()
	svc := NewAuthService(authTestConfig(), profiles)
	if _, _, _, err := svc.Signup(context.Background(), "Dev", "dev@example.com", "hunter2-long", domain.RoleTeamMember); err != nil {
		t.Fatalf("Signup: %v", err)
	}

	_, _, _, err := svc.Login(context.Background(), "dev@example.com", "wrong-password")
	if !apperrors.IsCode(err, "UNAUTHORIZED") {
		t.Fatalf("err = %v, want UNAUTHORIZED", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := NewAuthService(authTestConfig(), newStubProfileRepo())

	_, _, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	if !apperrors.IsCode(err, "UNAUTHORIZED") {
		t.Fatalf("err = %v, want UNAUTHORIZED", err)
	}
}
