package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/docubuddy/internal/domain"
	"github.com/spec-kit/docubuddy/internal/events"
	"github.com/spec-kit/docubuddy/internal/repository"
	"github.com/spec-kit/docubuddy/internal/storage"
	apperrors "github.com/spec-kit/docubuddy/pkg/util/errorutil"
)

// CatalogService lists and deletes documents with role-based scoping:
// admins see everything, team members see only documents belonging to
// their teams.
type CatalogService struct {
	documents  repository.DocumentRepository
	blobs      storage.BlobStore
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// CatalogDependencies bundles the catalog's collaborators.
type CatalogDependencies struct {
	DocumentRepo repository.DocumentRepository
	Blobs        storage.BlobStore
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
}

// NewCatalogService constructs the service.
func NewCatalogService(deps CatalogDependencies) *CatalogService {
	return &CatalogService{
		documents:  deps.DocumentRepo,
		blobs:      deps.Blobs,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// ListDocuments returns the documents visible to the actor, newest first.
// Team members with an empty team scope get an empty result without a
// catalog query.
func (s *CatalogService) ListDocuments(ctx context.Context, actor *domain.Actor, scope []string) ([]domain.DocumentView, error) {
	var (
		views []domain.DocumentView
		err   error
	)
	if actor.IsAdmin() {
		views, err = s.documents.ListAll(ctx)
	} else {
		if len(scope) == 0 {
			return []domain.DocumentView{}, nil
		}
		views, err = s.documents.ListByTeams(ctx, scope)
	}
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if views == nil {
		views = []domain.DocumentView{}
	}
	return views, nil
}

// FilterDocuments narrows a listing by case-insensitive substring match on
// the filename or uploader, optionally pinned to one team. Empty arguments
// leave their dimension unfiltered.
func FilterDocuments(docs []domain.DocumentView, query, teamID string) []domain.DocumentView {
	if query == "" && teamID == "" {
		return docs
	}
	needle := strings.ToLower(query)
	filtered := make([]domain.DocumentView, 0, len(docs))
	for _, doc := range docs {
		if teamID != "" && (doc.TeamID == nil || *doc.TeamID != teamID) {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(doc.Filename), needle) &&
			!strings.Contains(strings.ToLower(doc.UploadedBy), needle) {
			continue
		}
		filtered = append(filtered, doc)
	}
	return filtered
}

// DeleteDocument removes a catalog entry and best-effort removes the backing
// blob. Blob removal failure is logged but does not undo the catalog delete.
func (s *CatalogService) DeleteDocument(ctx context.Context, actor *domain.Actor, documentID string) error {
	if !actor.IsAdmin() {
		return apperrors.NewForbidden("admin role required")
	}

	doc, err := s.documents.GetByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return apperrors.NewNotFound("document", map[string]any{"document_id": documentID})
		}
		return apperrors.MapError(err)
	}

	if err := s.documents.Delete(ctx, documentID); err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return apperrors.NewNotFound("document", map[string]any{"document_id": documentID})
		}
		return apperrors.MapError(err)
	}

	if doc.FilePath != "" {
		if err := s.blobs.Remove(ctx, []string{doc.FilePath}); err != nil {
			s.logger.Warn("blob removal failed after catalog delete",
				zap.String("document_id", documentID),
				zap.String("file_path", doc.FilePath),
				zap.Error(err))
		}
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:    events.EventDocumentDeleted,
		ActorID: actor.ID,
		Payload: events.DocumentDeletedPayload{DocumentID: documentID, FilePath: doc.FilePath},
	})
	return nil
}
