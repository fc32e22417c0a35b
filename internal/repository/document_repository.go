package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/docubuddy/internal/domain"
)

// DocumentRepository persists catalog entries for uploaded documents.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	ListAll(ctx context.Context) ([]domain.DocumentView, error)
	ListByTeams(ctx context.Context, teamIDs []string) ([]domain.DocumentView, error)
	UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus) error
	Delete(ctx context.Context, id string) error
}

type documentRepository struct {
	pool *pgxpool.Pool
}

// NewDocumentRepository constructs repository.
func NewDocumentRepository(pool *pgxpool.Pool) DocumentRepository {
	return &documentRepository{pool: pool}
}

func (r *documentRepository) Create(ctx context.Context, doc *domain.Document) error {
	const query = `
        INSERT INTO documents (filename, file_size, status, uploaded_by, team_id, file_path)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, upload_date`
	return r.pool.QueryRow(ctx, query,
		doc.Filename,
		doc.FileSize,
		doc.Status,
		doc.UploadedBy,
		doc.TeamID,
		doc.FilePath,
	).Scan(&doc.ID, &doc.UploadDate)
}

func (r *documentRepository) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	const query = `
        SELECT id, filename, file_size, upload_date, status, uploaded_by, team_id, file_path
        FROM documents WHERE id=$1`
	var doc domain.Document
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&doc.ID,
		&doc.Filename,
		&doc.FileSize,
		&doc.UploadDate,
		&doc.Status,
		&doc.UploadedBy,
		&doc.TeamID,
		&doc.FilePath,
	); err != nil {
		return nil, err
	}
	return &doc, nil
}

const documentViewColumns = `
        d.id, d.filename, d.file_size, d.upload_date, d.status, d.uploaded_by, d.team_id, t.name`

func (r *documentRepository) ListAll(ctx context.Context) ([]domain.DocumentView, error) {
	const query = `
        SELECT` + documentViewColumns + `
        FROM documents d
        LEFT JOIN teams t ON t.id = d.team_id
        ORDER BY d.upload_date DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDocumentViews(rows)
}

func (r *documentRepository) ListByTeams(ctx context.Context, teamIDs []string) ([]domain.DocumentView, error) {
	const query = `
        SELECT` + documentViewColumns + `
        FROM documents d
        LEFT JOIN teams t ON t.id = d.team_id
        WHERE d.team_id = ANY($1)
        ORDER BY d.upload_date DESC`
	rows, err := r.pool.Query(ctx, query, teamIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDocumentViews(rows)
}

func (r *documentRepository) UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus) error {
	const query = `UPDATE documents SET status=$1 WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *documentRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM documents WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanDocumentViews(rows pgx.Rows) ([]domain.DocumentView, error) {
	var result []domain.DocumentView
	for rows.Next() {
		var (
			view     domain.DocumentView
			teamName *string
		)
		if err := rows.Scan(
			&view.ID,
			&view.Filename,
			&view.FileSize,
			&view.UploadDate,
			&view.Status,
			&view.UploadedBy,
			&view.TeamID,
			&teamName,
		); err != nil {
			return nil, err
		}
		if teamName != nil && *teamName != "" {
			view.TeamName = *teamName
		} else {
			view.TeamName = domain.NoTeamLabel
		}
		result = append(result, view)
	}
	return result, rows.Err()
}
