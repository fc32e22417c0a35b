package dto

import "github.com/spec-kit/docubuddy/internal/domain"

// SelectTeamRequest payload for picking the working team.
type SelectTeamRequest struct {
	TeamID string `json:"team_id"`
}

// WorkflowResponse is the resolved workflow state plus the selectable teams.
type WorkflowResponse struct {
	Step                 string         `json:"step"`
	CurrentWorkingTeamID *string        `json:"current_working_team_id"`
	Teams                []TeamResponse `json:"teams"`
}

// NewWorkflowResponse maps a selection and its team set.
func NewWorkflowResponse(selection domain.WorkflowSelection, teams []domain.Team) WorkflowResponse {
	return WorkflowResponse{
		Step:                 string(selection.Step),
		CurrentWorkingTeamID: selection.CurrentWorkingTeamID,
		Teams:                NewTeamResponses(teams),
	}
}
