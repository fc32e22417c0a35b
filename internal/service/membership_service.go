package service

import (
	"context"
	"errors"
	"strings"

	"github.com/spec-kit/docubuddy/internal/domain"
	"github.com/spec-kit/docubuddy/internal/events"
	"github.com/spec-kit/docubuddy/internal/repository"
	apperrors "github.com/spec-kit/docubuddy/pkg/util/errorutil"
)

const userSearchLimit = 10

// MembershipService adds and removes users from teams, enforcing uniqueness
// of (team, user) pairs.
type MembershipService struct {
	memberships repository.MembershipRepository
	profiles    repository.ProfileRepository
	teams       repository.TeamRepository
	dispatcher  events.Dispatcher
}

// MembershipDependencies bundles repositories for the service.
type MembershipDependencies struct {
	MembershipRepo repository.MembershipRepository
	ProfileRepo    repository.ProfileRepository
	TeamRepo       repository.TeamRepository
	Dispatcher     events.Dispatcher
}

// NewMembershipService constructs the service.
func NewMembershipService(deps MembershipDependencies) *MembershipService {
	return &MembershipService{
		memberships: deps.MembershipRepo,
		profiles:    deps.ProfileRepo,
		teams:       deps.TeamRepo,
		dispatcher:  deps.Dispatcher,
	}
}

// FindUserByEmail is an exact, case-sensitive lookup.
func (s *MembershipService) FindUserByEmail(ctx context.Context, email string) (*domain.Actor, error) {
	actor, err := s.profiles.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"email": email})
		}
		return nil, apperrors.MapError(err)
	}
	return actor, nil
}

// SearchUsers matches email or full name case-insensitively by substring,
// capped at 10 results. An empty query yields an empty sequence without
// touching the store.
func (s *MembershipService) SearchUsers(ctx context.Context, query string) ([]domain.Actor, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	users, err := s.profiles.Search(ctx, query, userSearchLimit)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// ownedTeam loads the team and verifies the acting admin created it. Admins
// only administer their own teams; someone else's team is forbidden even
// though it exists.
func (s *MembershipService) ownedTeam(ctx context.Context, actor *domain.Actor, teamID string) (*domain.Team, error) {
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, apperrors.NewNotFound("team", map[string]any{"team_id": teamID})
		}
		return nil, apperrors.MapError(err)
	}
	if team.CreatedBy != actor.ID {
		return nil, apperrors.NewForbidden("team is managed by another admin")
	}
	return team, nil
}

// AddMember creates a membership for the user identified by email. A second
// call for the same (team, user) pair fails with a conflict and performs no
// write. The returned membership carries the server-assigned id and timestamp
// so callers can append to their local view without re-fetching.
func (s *MembershipService) AddMember(ctx context.Context, actor *domain.Actor, teamID, email string) (*domain.Membership, *domain.Actor, error) {
	if !actor.IsAdmin() {
		return nil, nil, apperrors.NewForbidden("admin role required")
	}
	email = strings.TrimSpace(email)
	if email == "" || teamID == "" {
		return nil, nil, apperrors.NewValidationError("email and team required", nil)
	}
	if _, err := s.ownedTeam(ctx, actor, teamID); err != nil {
		return nil, nil, err
	}

	user, err := s.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}

	exists, err := s.memberships.Exists(ctx, teamID, user.ID)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	if exists {
		return nil, nil, apperrors.NewConflict("user is already a member of this team",
			map[string]any{"team_id": teamID, "user_id": user.ID})
	}

	membership := &domain.Membership{
		TeamID:  teamID,
		UserID:  user.ID,
		AddedBy: actor.ID,
	}
	if err := s.memberships.Create(ctx, membership); err != nil {
		return nil, nil, apperrors.MapError(err)
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:    events.EventMemberAdded,
		ActorID: actor.ID,
		Payload: events.MemberAddedPayload{
			MembershipID: membership.ID,
			TeamID:       membership.TeamID,
			UserID:       membership.UserID,
		},
	})
	return membership, user, nil
}

// RemoveMember deletes a membership by id.
func (s *MembershipService) RemoveMember(ctx context.Context, actor *domain.Actor, membershipID string) error {
	if !actor.IsAdmin() {
		return apperrors.NewForbidden("admin role required")
	}
	if err := s.memberships.Delete(ctx, membershipID); err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return apperrors.NewNotFound("membership", map[string]any{"membership_id": membershipID})
		}
		return apperrors.MapError(err)
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:    events.EventMemberRemoved,
		ActorID: actor.ID,
		Payload: events.MemberRemovedPayload{MembershipID: membershipID},
	})
	return nil
}

// ListTeamMembers returns the members of one team with profile display data
// resolved; unresolvable profiles fall back to an "Unknown" label instead of
// failing the listing.
func (s *MembershipService) ListTeamMembers(ctx context.Context, actor *domain.Actor, teamID string) ([]domain.TeamMemberView, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.NewForbidden("admin role required")
	}
	team, err := s.ownedTeam(ctx, actor, teamID)
	if err != nil {
		return nil, err
	}

	memberships, err := s.memberships.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if len(memberships) == 0 {
		return []domain.TeamMemberView{}, nil
	}

	userIDs := make([]string, 0, len(memberships))
	for _, m := range memberships {
		userIDs = append(userIDs, m.UserID)
	}
	profiles, err := s.profiles.ListByIDs(ctx, userIDs)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	byID := make(map[string]domain.Actor, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
	}

	views := make([]domain.TeamMemberView, 0, len(memberships))
	for _, m := range memberships {
		view := domain.TeamMemberView{
			MembershipID: m.ID,
			TeamName:     team.Name,
			AddedAt:      m.AddedAt,
			Email:        "Unknown",
			Name:         "Unknown",
		}
		if p, ok := byID[m.UserID]; ok {
			view.Email = p.Email
			view.Name = displayName(p)
		}
		views = append(views, view)
	}
	return views, nil
}

// displayName prefers the full name, falling back to the email local part.
func displayName(actor domain.Actor) string {
	if actor.FullName != "" {
		return actor.FullName
	}
	if at := strings.IndexByte(actor.Email, '@'); at > 0 {
		return actor.Email[:at]
	}
	return actor.Email
}
