package dto

import (
	"time"

	"github.com/spec-kit/docubuddy/internal/domain"
)

// AddMemberRequest payload for adding a user to a team by email.
type AddMemberRequest struct {
	Email string `json:"email"`
}

// MemberResponse is one team membership with display data resolved.
type MemberResponse struct {
	MembershipID string    `json:"membership_id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	TeamName     string    `json:"team_name"`
	AddedAt      time.Time `json:"added_at"`
}

// NewMemberResponse maps a member view.
func NewMemberResponse(view domain.TeamMemberView) MemberResponse {
	return MemberResponse{
		MembershipID: view.MembershipID,
		Email:        view.Email,
		Name:         view.Name,
		TeamName:     view.TeamName,
		AddedAt:      view.AddedAt,
	}
}

// NewMemberResponses maps a member view slice.
func NewMemberResponses(views []domain.TeamMemberView) []MemberResponse {
	out := make([]MemberResponse, 0, len(views))
	for _, view := range views {
		out = append(out, NewMemberResponse(view))
	}
	return out
}

// UserSearchResponse is a lightweight search hit for the member picker.
type UserSearchResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// NewUserSearchResponses maps search hits.
func NewUserSearchResponses(actors []domain.Actor) []UserSearchResponse {
	out := make([]UserSearchResponse, 0, len(actors))
	for _, actor := range actors {
		out = append(out, UserSearchResponse{
			ID:       actor.ID,
			Email:    actor.Email,
			FullName: actor.FullName,
		})
	}
	return out
}
