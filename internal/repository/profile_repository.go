package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/docubuddy/internal/domain"
)

// ProfileRepository defines persistence access for user profiles.
type ProfileRepository interface {
	Create(ctx context.Context, actor *domain.Actor, passwordHash string) error
	GetByID(ctx context.Context, id string) (*domain.Actor, error)
	GetByEmail(ctx context.Context, email string) (*domain.Actor, error)
	GetCredentialsByEmail(ctx context.Context, email string) (*domain.Actor, string, error)
	Search(ctx context.Context, query string, limit int) ([]domain.Actor, error)
	ListByIDs(ctx context.Context, ids []string) ([]domain.Actor, error)
}

type profileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository returns a Postgres-backed implementation.
func NewProfileRepository(pool *pgxpool.Pool) ProfileRepository {
	return &profileRepository{pool: pool}
}

func (r *profileRepository) Create(ctx context.Context, actor *domain.Actor, passwordHash string) error {
	const query = `
        INSERT INTO profiles (full_name, email, password_hash, role)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		actor.FullName,
		actor.Email,
		passwordHash,
		actor.Role,
	).Scan(&actor.ID, &actor.CreatedAt, &actor.UpdatedAt)
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Actor, error) {
	const query = `
        SELECT id, full_name, email, role, created_at, updated_at
        FROM profiles WHERE id=$1`

	var actor domain.Actor
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&actor.ID,
		&actor.FullName,
		&actor.Email,
		&actor.Role,
		&actor.CreatedAt,
		&actor.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &actor, nil
}

// GetByEmail is an exact, case-sensitive match.
func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*domain.Actor, error) {
	const query = `
        SELECT id, full_name, email, role, created_at, updated_at
        FROM profiles WHERE email=$1`

	var actor domain.Actor
	if err := r.pool.QueryRow(ctx, query, email).Scan(
		&actor.ID,
		&actor.FullName,
		&actor.Email,
		&actor.Role,
		&actor.CreatedAt,
		&actor.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &actor, nil
}

func (r *profileRepository) GetCredentialsByEmail(ctx context.Context, email string) (*domain.Actor, string, error) {
	const query = `
        SELECT id, full_name, email, role, password_hash, created_at, updated_at
        FROM profiles WHERE email=$1`

	var (
		actor domain.Actor
		hash  string
	)
	if err := r.pool.QueryRow(ctx, query, email).Scan(
		&actor.ID,
		&actor.FullName,
		&actor.Email,
		&actor.Role,
		&hash,
		&actor.CreatedAt,
		&actor.UpdatedAt,
	); err != nil {
		return nil, "", err
	}
	return &actor, hash, nil
}

// Search matches email or full name case-insensitively by substring. The
// query is treated as a literal: LIKE metacharacters in it are escaped so a
// stray % or _ cannot widen the match.
func (r *profileRepository) Search(ctx context.Context, query string, limit int) ([]domain.Actor, error) {
	const sql = `
        SELECT id, full_name, email, role, created_at, updated_at
        FROM profiles
        WHERE email ILIKE '%' || $1 || '%' OR full_name ILIKE '%' || $1 || '%'
        LIMIT $2`

	rows, err := r.pool.Query(ctx, sql, escapeLikePattern(query), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Actor
	for rows.Next() {
		var actor domain.Actor
		if err := rows.Scan(&actor.ID, &actor.FullName, &actor.Email, &actor.Role, &actor.CreatedAt, &actor.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, actor)
	}
	return result, rows.Err()
}

func (r *profileRepository) ListByIDs(ctx context.Context, ids []string) ([]domain.Actor, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	const query = `
        SELECT id, full_name, email, role, created_at, updated_at
        FROM profiles WHERE id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Actor
	for rows.Next() {
		var actor domain.Actor
		if err := rows.Scan(&actor.ID, &actor.FullName, &actor.Email, &actor.Role, &actor.CreatedAt, &actor.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, actor)
	}
	return result, rows.Err()
}

// escapeLikePattern neutralizes %, _ and the backslash escape itself so the
// caller's text only ever matches literally inside a LIKE/ILIKE pattern.
func escapeLikePattern(query string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(query)
}

// ErrNoRows re-exports the pgx sentinel so services outside the repository
// package can branch on not-found without importing pgx.
var ErrNoRows = pgx.ErrNoRows
