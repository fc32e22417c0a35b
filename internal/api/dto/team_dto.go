package dto

import (
	"time"

	"github.com/spec-kit/docubuddy/internal/domain"
)

// CreateTeamRequest payload for team creation.
type CreateTeamRequest struct {
	Name string `json:"name"`
}

// TeamResponse is a single team.
type TeamResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// NewTeamResponse maps a domain team.
func NewTeamResponse(team domain.Team) TeamResponse {
	return TeamResponse{
		ID:        team.ID,
		Name:      team.Name,
		CreatedBy: team.CreatedBy,
		CreatedAt: team.CreatedAt,
	}
}

// NewTeamResponses maps a team slice.
func NewTeamResponses(teams []domain.Team) []TeamResponse {
	out := make([]TeamResponse, 0, len(teams))
	for _, team := range teams {
		out = append(out, NewTeamResponse(team))
	}
	return out
}
