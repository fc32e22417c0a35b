package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/docubuddy/internal/domain"
	"github.com/spec-kit/docubuddy/internal/repository"
	apperrors "github.com/spec-kit/docubuddy/pkg/util/errorutil"
)

// WorkflowService resolves which step of the team workflow an admin is on
// and keeps the persisted selection consistent with the teams that actually
// exist for them.
type WorkflowService struct {
	store  repository.WorkflowStore
	logger *zap.Logger
}

// NewWorkflowService constructs the service.
func NewWorkflowService(store repository.WorkflowStore, logger *zap.Logger) *WorkflowService {
	return &WorkflowService{store: store, logger: logger}
}

// Resolve reconciles the persisted selection against the visible team set:
//
//   - no teams: selection is cleared, step is select_team
//   - exactly one team and no valid selection: that team is auto-selected
//   - persisted selection names a visible team: step is manage_team
//   - persisted selection is stale: it is cleared and the flow restarts at
//     select_team (unless auto-selection applies)
func (s *WorkflowService) Resolve(ctx context.Context, actor *domain.Actor, directory TeamDirectory) (domain.WorkflowSelection, error) {
	selected, err := s.store.GetSelectedTeam(ctx, actor.ID)
	if err != nil {
		s.logger.Warn("workflow selection read failed, restarting at team selection",
			zap.String("actor_id", actor.ID),
			zap.Error(err))
		selected = ""
	}

	if len(directory.Teams) == 0 {
		if selected != "" {
			s.clear(ctx, actor.ID)
		}
		return domain.WorkflowSelection{Step: domain.WorkflowStepSelectTeam}, nil
	}

	if selected != "" {
		if directory.Contains(selected) {
			return domain.WorkflowSelection{
				CurrentWorkingTeamID: &selected,
				Step:                 domain.WorkflowStepManageTeam,
			}, nil
		}
		// The stored team no longer exists for this actor.
		s.clear(ctx, actor.ID)
		selected = ""
	}

	if len(directory.Teams) == 1 {
		only := directory.Teams[0].ID
		if err := s.store.SaveSelectedTeam(ctx, actor.ID, only); err != nil {
			s.logger.Warn("workflow auto-selection not persisted",
				zap.String("actor_id", actor.ID),
				zap.String("team_id", only),
				zap.Error(err))
		}
		return domain.WorkflowSelection{
			CurrentWorkingTeamID: &only,
			Step:                 domain.WorkflowStepManageTeam,
		}, nil
	}

	return domain.WorkflowSelection{Step: domain.WorkflowStepSelectTeam}, nil
}

// SelectTeam records the actor's working team. Selecting a team outside the
// visible set is a no-op: the stored selection is untouched and the current
// state is returned unchanged.
func (s *WorkflowService) SelectTeam(ctx context.Context, actor *domain.Actor, directory TeamDirectory, teamID string) (domain.WorkflowSelection, error) {
	if !directory.Contains(teamID) {
		return s.Resolve(ctx, actor, directory)
	}
	if err := s.store.SaveSelectedTeam(ctx, actor.ID, teamID); err != nil {
		return domain.WorkflowSelection{}, apperrors.MapError(err)
	}
	return domain.WorkflowSelection{
		CurrentWorkingTeamID: &teamID,
		Step:                 domain.WorkflowStepManageTeam,
	}, nil
}

// ChangeTeam returns to the selection step. The stored selection is kept so
// the picker can highlight the previous choice.
func (s *WorkflowService) ChangeTeam(ctx context.Context, actor *domain.Actor) (domain.WorkflowSelection, error) {
	selected, err := s.store.GetSelectedTeam(ctx, actor.ID)
	if err != nil {
		selected = ""
	}
	selection := domain.WorkflowSelection{Step: domain.WorkflowStepSelectTeam}
	if selected != "" {
		selection.CurrentWorkingTeamID = &selected
	}
	return selection, nil
}

func (s *WorkflowService) clear(ctx context.Context, actorID string) {
	if err := s.store.ClearSelectedTeam(ctx, actorID); err != nil {
		s.logger.Warn("workflow selection clear failed",
			zap.String("actor_id", actorID),
			zap.Error(err))
	}
}
