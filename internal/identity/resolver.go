package identity

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/docubuddy/internal/auth"
	"github.com/spec-kit/docubuddy/internal/domain"
	"github.com/spec-kit/docubuddy/internal/repository"
)

// Resolver derives the effective actor from session claims. The role is
// resolved through a prioritized chain: profile record, token metadata,
// then the team_member default. A profile-store failure falls back to the
// token role and logs the degradation instead of failing closed.
type Resolver struct {
	profiles repository.ProfileRepository
	cache    repository.RoleCache
	logger   *zap.Logger
}

// NewResolver constructs the resolver.
func NewResolver(profiles repository.ProfileRepository, cache repository.RoleCache, logger *zap.Logger) *Resolver {
	return &Resolver{profiles: profiles, cache: cache, logger: logger}
}

// Resolve returns the actor together with the source that satisfied the role
// lookup. Only authoritative (profile-sourced) roles are cached; degraded
// resolutions are re-attempted on the next call.
func (r *Resolver) Resolve(ctx context.Context, claims *auth.Claims) (*domain.Actor, domain.RoleSource, error) {
	if claims == nil || claims.ActorID == "" {
		return nil, "", errors.New("no session claims")
	}

	if r.cache != nil {
		if cached, err := r.cache.GetRole(ctx, claims.ActorID); err == nil && cached != "" {
			role := domain.Role(cached)
			if role.Valid() {
				return r.actorFromClaims(claims, role), domain.RoleSourceProfile, nil
			}
		}
	}

	profile, err := r.profiles.GetByID(ctx, claims.ActorID)
	switch {
	case err == nil:
		if r.cache != nil {
			if cacheErr := r.cache.SetRole(ctx, profile.ID, string(profile.Role)); cacheErr != nil {
				r.logger.Warn("role cache write failed", zap.Error(cacheErr))
			}
		}
		return profile, domain.RoleSourceProfile, nil
	case errors.Is(err, repository.ErrNoRows):
		// No profile row yet; the signup metadata role still applies.
	default:
		r.logger.Warn("role lookup degraded to token metadata",
			zap.String("actor_id", claims.ActorID),
			zap.Error(err))
	}

	if claims.Role.Valid() {
		return r.actorFromClaims(claims, claims.Role), domain.RoleSourceToken, nil
	}
	return r.actorFromClaims(claims, domain.RoleTeamMember), domain.RoleSourceDefault, nil
}

// Invalidate drops the cached role, forcing the next Resolve to consult the
// profile store. Called on sign-out.
func (r *Resolver) Invalidate(ctx context.Context, actorID string) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Invalidate(ctx, actorID); err != nil {
		r.logger.Warn("role cache invalidation failed", zap.Error(err))
	}
}

func (r *Resolver) actorFromClaims(claims *auth.Claims, role domain.Role) *domain.Actor {
	return &domain.Actor{
		ID:    claims.ActorID,
		Email: claims.Email,
		Role:  role,
	}
}
