package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// WorkflowStore persists the admin's selected working team across sessions.
// Keys are namespaced per actor; a selection never expires on its own.
type WorkflowStore interface {
	GetSelectedTeam(ctx context.Context, actorID string) (string, error)
	SaveSelectedTeam(ctx context.Context, actorID, teamID string) error
	ClearSelectedTeam(ctx context.Context, actorID string) error
}

// RoleCache caches the resolved role flag so downstream components reuse it
// without re-resolving every call.
type RoleCache interface {
	GetRole(ctx context.Context, actorID string) (string, error)
	SetRole(ctx context.Context, actorID, role string) error
	Invalidate(ctx context.Context, actorID string) error
}

const (
	selectedTeamKeyPrefix = "workflow:selected_team:"
	roleCacheKeyPrefix    = "identity:role:"
)

type redisWorkflowStore struct {
	client *redis.Client
}

// NewWorkflowStore returns a Redis-backed workflow selection store.
func NewWorkflowStore(client *redis.Client) WorkflowStore {
	return &redisWorkflowStore{client: client}
}

// GetSelectedTeam returns the persisted team id, or "" when none is stored.
func (s *redisWorkflowStore) GetSelectedTeam(ctx context.Context, actorID string) (string, error) {
	val, err := s.client.Get(ctx, selectedTeamKeyPrefix+actorID).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (s *redisWorkflowStore) SaveSelectedTeam(ctx context.Context, actorID, teamID string) error {
	return s.client.Set(ctx, selectedTeamKeyPrefix+actorID, teamID, 0).Err()
}

func (s *redisWorkflowStore) ClearSelectedTeam(ctx context.Context, actorID string) error {
	return s.client.Del(ctx, selectedTeamKeyPrefix+actorID).Err()
}

type redisRoleCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRoleCache returns a Redis-backed role cache with the given TTL.
func NewRoleCache(client *redis.Client, ttl time.Duration) RoleCache {
	return &redisRoleCache{client: client, ttl: ttl}
}

// GetRole returns the cached role, or "" on a cache miss.
func (c *redisRoleCache) GetRole(ctx context.Context, actorID string) (string, error) {
	val, err := c.client.Get(ctx, roleCacheKeyPrefix+actorID).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (c *redisRoleCache) SetRole(ctx context.Context, actorID, role string) error {
	return c.client.Set(ctx, roleCacheKeyPrefix+actorID, role, c.ttl).Err()
}

func (c *redisRoleCache) Invalidate(ctx context.Context, actorID string) error {
	return c.client.Del(ctx, roleCacheKeyPrefix+actorID).Err()
}
