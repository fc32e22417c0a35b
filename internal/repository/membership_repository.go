package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/docubuddy/internal/domain"
)

// MembershipRepository persists the team/user join relation.
type MembershipRepository interface {
	Create(ctx context.Context, membership *domain.Membership) error
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, teamID, userID string) (bool, error)
	ListByTeam(ctx context.Context, teamID string) ([]domain.Membership, error)
}

type membershipRepository struct {
	pool *pgxpool.Pool
}

// NewMembershipRepository constructs repository.
func NewMembershipRepository(pool *pgxpool.Pool) MembershipRepository {
	return &membershipRepository{pool: pool}
}

func (r *membershipRepository) Create(ctx context.Context, membership *domain.Membership) error {
	const query = `
        INSERT INTO team_members (team_id, user_id, added_by)
        VALUES ($1,$2,$3)
        RETURNING id, added_at`
	return r.pool.QueryRow(ctx, query,
		membership.TeamID,
		membership.UserID,
		membership.AddedBy,
	).Scan(&membership.ID, &membership.AddedAt)
}

func (r *membershipRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM team_members WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *membershipRepository) Exists(ctx context.Context, teamID, userID string) (bool, error) {
	const query = `SELECT id FROM team_members WHERE team_id=$1 AND user_id=$2`
	var id string
	err := r.pool.QueryRow(ctx, query, teamID, userID).Scan(&id)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *membershipRepository) ListByTeam(ctx context.Context, teamID string) ([]domain.Membership, error) {
	const query = `
        SELECT id, team_id, user_id, added_by, added_at
        FROM team_members WHERE team_id=$1
        ORDER BY added_at DESC`
	rows, err := r.pool.Query(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Membership
	for rows.Next() {
		var membership domain.Membership
		if err := rows.Scan(&membership.ID, &membership.TeamID, &membership.UserID, &membership.AddedBy, &membership.AddedAt); err != nil {
			return nil, err
		}
		result = append(result, membership)
	}
	return result, rows.Err()
}
