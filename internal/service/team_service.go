package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/docubuddy/internal/domain"
	"github.com/spec-kit/docubuddy/internal/events"
	"github.com/spec-kit/docubuddy/internal/repository"
	apperrors "github.com/spec-kit/docubuddy/pkg/util/errorutil"
)

// TeamDirectory is the visible team set for one actor. Scope carries the
// team-id set used by the document catalog for team members; for admins it
// mirrors the owned teams.
type TeamDirectory struct {
	Teams []domain.Team
	Scope []string
}

// Contains reports whether the id names a visible team.
func (d TeamDirectory) Contains(teamID string) bool {
	for _, team := range d.Teams {
		if team.ID == teamID {
			return true
		}
	}
	return false
}

// TeamService loads and mutates the team set visible to an actor.
type TeamService struct {
	teams      repository.TeamRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewTeamService constructs the service.
func NewTeamService(teams repository.TeamRepository, dispatcher events.Dispatcher, logger *zap.Logger) *TeamService {
	return &TeamService{teams: teams, dispatcher: dispatcher, logger: logger}
}

// ListTeams returns the teams visible to the actor, newest first. A data
// access failure degrades to an empty directory rather than erroring the
// caller's whole view; the failure is logged.
func (s *TeamService) ListTeams(ctx context.Context, actor *domain.Actor) TeamDirectory {
	if actor == nil {
		return TeamDirectory{}
	}

	var (
		teams []domain.Team
		err   error
	)
	if actor.IsAdmin() {
		teams, err = s.teams.ListByCreator(ctx, actor.ID)
	} else {
		teams, err = s.teams.ListByMember(ctx, actor.ID)
	}
	if err != nil {
		s.logger.Warn("team list degraded to empty",
			zap.String("actor_id", actor.ID),
			zap.String("role", string(actor.Role)),
			zap.Error(err))
		return TeamDirectory{}
	}

	scope := make([]string, 0, len(teams))
	for _, team := range teams {
		scope = append(scope, team.ID)
	}
	return TeamDirectory{Teams: teams, Scope: scope}
}

// GetTeam fetches a single team by id.
func (s *TeamService) GetTeam(ctx context.Context, id string) (*domain.Team, error) {
	team, err := s.teams.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNoRows {
			return nil, apperrors.NewNotFound("team", map[string]any{"team_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return team, nil
}

// CreateTeam creates a team owned by the acting admin.
func (s *TeamService) CreateTeam(ctx context.Context, actor *domain.Actor, name string) (*domain.Team, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.NewForbidden("admin role required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("team name required", nil)
	}

	team := &domain.Team{
		Name:      name,
		CreatedBy: actor.ID,
	}
	if err := s.teams.Create(ctx, team); err != nil {
		return nil, apperrors.MapError(err)
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:    events.EventTeamCreated,
		ActorID: actor.ID,
		Payload: events.TeamCreatedPayload{TeamID: team.ID, Name: team.Name},
	})
	return team, nil
}
