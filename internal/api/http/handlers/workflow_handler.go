package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/docubuddy/internal/api/dto"
	"github.com/spec-kit/docubuddy/internal/auth"
	"github.com/spec-kit/docubuddy/internal/service"
	apperrors "github.com/spec-kit/docubuddy/pkg/util/errorutil"
)

// WorkflowHandler exposes the admin team-selection workflow.
type WorkflowHandler struct {
	workflow *service.WorkflowService
	teams    *service.TeamService
}

// NewWorkflowHandler constructs handler.
func NewWorkflowHandler(workflowService *service.WorkflowService, teamService *service.TeamService) *WorkflowHandler {
	return &WorkflowHandler{workflow: workflowService, teams: teamService}
}

// GetWorkflow GET /workflow.
func (h *WorkflowHandler) GetWorkflow(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Actor == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	directory := h.teams.ListTeams(c.Context(), principal.Actor)
	selection, err := h.workflow.Resolve(c.Context(), principal.Actor, directory)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewWorkflowResponse(selection, directory.Teams)})
}

// SelectTeam POST /workflow/select.
func (h *WorkflowHandler) SelectTeam(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Actor == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.SelectTeamRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.TeamID == "" {
		return apperrors.NewValidationError("team_id required", nil)
	}

	directory := h.teams.ListTeams(c.Context(), principal.Actor)
	selection, err := h.workflow.SelectTeam(c.Context(), principal.Actor, directory, req.TeamID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewWorkflowResponse(selection, directory.Teams)})
}

// ChangeTeam POST /workflow/change.
func (h *WorkflowHandler) ChangeTeam(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Actor == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	directory := h.teams.ListTeams(c.Context(), principal.Actor)
	selection, err := h.workflow.ChangeTeam(c.Context(), principal.Actor)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewWorkflowResponse(selection, directory.Teams)})
}
