package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/docubuddy/internal/api/dto"
	"github.com/spec-kit/docubuddy/internal/auth"
	"github.com/spec-kit/docubuddy/internal/service"
	apperrors "github.com/spec-kit/docubuddy/pkg/util/errorutil"
)

// TeamsHandler manages team and membership endpoints.
type TeamsHandler struct {
	teams       *service.TeamService
	memberships *service.MembershipService
}

// NewTeamsHandler constructs handler.
func NewTeamsHandler(teamService *service.TeamService, membershipService *service.MembershipService) *TeamsHandler {
	return &TeamsHandler{teams: teamService, memberships: membershipService}
}

// ListTeams GET /teams.
func (h *TeamsHandler) ListTeams(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Actor == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	directory := h.teams.ListTeams(c.Context(), principal.Actor)
	return c.JSON(fiber.Map{"data": dto.NewTeamResponses(directory.Teams)})
}

// CreateTeam POST /teams.
func (h *TeamsHandler) CreateTeam(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Actor == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateTeamRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	team, err := h.teams.CreateTeam(c.Context(), principal.Actor, req.Name)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTeamResponse(*team)})
}

// ListMembers GET /teams/:id/members.
func (h *TeamsHandler) ListMembers(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Actor == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	members, err := h.memberships.ListTeamMembers(c.Context(), principal.Actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewMemberResponses(members)})
}

// AddMember POST /teams/:id/members.
func (h *TeamsHandler) AddMember(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Actor == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.AddMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	membership, user, err := h.memberships.AddMember(c.Context(), principal.Actor, c.Params("id"), req.Email)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"membership_id": membership.ID,
			"team_id":       membership.TeamID,
			"user_id":       membership.UserID,
			"email":         user.Email,
			"added_at":      membership.AddedAt,
		},
	})
}

// RemoveMember DELETE /members/:id.
func (h *TeamsHandler) RemoveMember(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Actor == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.memberships.RemoveMember(c.Context(), principal.Actor, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// SearchUsers GET /users/search?q=.
func (h *TeamsHandler) SearchUsers(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Actor == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	query := strings.TrimSpace(c.Query("q"))
	users, err := h.memberships.SearchUsers(c.Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserSearchResponses(users)})
}
