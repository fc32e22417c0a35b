package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/docubuddy/internal/api/dto"
	"github.com/spec-kit/docubuddy/internal/auth"
	"github.com/spec-kit/docubuddy/internal/domain"
	"github.com/spec-kit/docubuddy/internal/identity"
	"github.com/spec-kit/docubuddy/internal/service"
	apperrors "github.com/spec-kit/docubuddy/pkg/util/errorutil"
)

// AuthHandler exposes signup, login and logout endpoints.
type AuthHandler struct {
	auth     *service.AuthService
	resolver *identity.Resolver
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, resolver *identity.Resolver) *AuthHandler {
	return &AuthHandler{auth: authService, resolver: resolver}
}

// Signup handles POST /auth/signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	actor, token, exp, err := h.auth.Signup(c.Context(), req.FullName, req.Email, req.Password, domain.Role(req.Role))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user": actorResponse(actor),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	actor, token, exp, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": actorResponse(actor),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Logout handles POST /auth/logout. Dropping the cached role forces a fresh
// resolution on the next sign-in.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Actor == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	h.resolver.Invalidate(c.Context(), principal.Actor.ID)
	return c.SendStatus(http.StatusNoContent)
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Actor == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user":        actorResponse(principal.Actor),
			"role_source": string(principal.RoleSource),
		},
	})
}

func actorResponse(actor *domain.Actor) dto.ActorResponse {
	return dto.ActorResponse{
		ID:       actor.ID,
		FullName: actor.FullName,
		Email:    actor.Email,
		Role:     string(actor.Role),
	}
}
