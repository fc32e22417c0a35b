package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/docubuddy/internal/config"
	"github.com/spec-kit/docubuddy/internal/domain"
	"github.com/spec-kit/docubuddy/internal/events"
	"github.com/spec-kit/docubuddy/internal/repository"
	"github.com/spec-kit/docubuddy/internal/storage"
	apperrors "github.com/spec-kit/docubuddy/pkg/util/errorutil"
)

// UploadFile is one file submitted in an upload batch.
type UploadFile struct {
	Filename    string
	Size        int64
	ContentType string
	Content     io.Reader
}

// UploadOutcome is the per-file result of a batch. Exactly one of Document
// and Err is set; a failed file never leaves a catalog entry behind.
type UploadOutcome struct {
	Token    string
	Filename string
	Document *domain.DocumentView
	Err      error
}

// ProgressSink receives per-file progress updates keyed by an opaque token
// unique within the batch.
type ProgressSink interface {
	Update(token, filename string, percent int)
	Clear(token string)
}

// NopProgressSink discards progress updates.
type NopProgressSink struct{}

func (NopProgressSink) Update(string, string, int) {}
func (NopProgressSink) Clear(string)               {}

// UploadService runs the upload pipeline: blob store write, then catalog
// insert, with compensating blob removal when the insert fails.
type UploadService struct {
	documents  repository.DocumentRepository
	teams      repository.TeamRepository
	blobs      storage.BlobStore
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.StorageConfig
	now        func() time.Time
}

// UploadDependencies bundles the pipeline's collaborators.
type UploadDependencies struct {
	DocumentRepo repository.DocumentRepository
	TeamRepo     repository.TeamRepository
	Blobs        storage.BlobStore
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
	Config       config.StorageConfig
}

// NewUploadService constructs the service.
func NewUploadService(deps UploadDependencies) *UploadService {
	return &UploadService{
		documents:  deps.DocumentRepo,
		teams:      deps.TeamRepo,
		blobs:      deps.Blobs,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		cfg:        deps.Config,
		now:        time.Now,
	}
}

// UploadBatch processes the files independently: one file's failure never
// aborts its siblings. Uploading without a destination team is a batch-level
// error and no file is touched; a team-less document would be invisible to
// everyone but admins. The returned slice is ordered like the input.
func (s *UploadService) UploadBatch(ctx context.Context, actor *domain.Actor, teamID *string, files []UploadFile, sink ProgressSink) ([]UploadOutcome, error) {
	if teamID == nil || *teamID == "" {
		return nil, apperrors.NewValidationError("select a team before uploading", nil)
	}
	if len(files) == 0 {
		return nil, apperrors.NewValidationError("no files submitted", nil)
	}
	if sink == nil {
		sink = NopProgressSink{}
	}

	outcomes := make([]UploadOutcome, 0, len(files))
	for _, file := range files {
		outcome := s.uploadOne(ctx, actor, teamID, file, sink)
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}

func (s *UploadService) uploadOne(ctx context.Context, actor *domain.Actor, teamID *string, file UploadFile, sink ProgressSink) UploadOutcome {
	outcome := UploadOutcome{
		Token:    uuid.NewString(),
		Filename: file.Filename,
	}
	defer sink.Clear(outcome.Token)

	if err := s.validateFile(file); err != nil {
		outcome.Err = err
		return outcome
	}

	key := storage.ObjectKey(actor.ID, file.Filename, s.now())
	path, err := s.blobs.Upload(ctx, key, file.Content)
	if err != nil {
		s.logger.Error("blob upload failed",
			zap.String("filename", file.Filename),
			zap.String("key", key),
			zap.Error(err))
		outcome.Err = apperrors.NewUnavailable(fmt.Sprintf("upload failed for %s", file.Filename), err)
		return outcome
	}
	sink.Update(outcome.Token, file.Filename, 50)

	doc := &domain.Document{
		Filename:   file.Filename,
		FileSize:   file.Size,
		Status:     domain.DocumentStatusProcessing,
		UploadedBy: actor.ID,
		TeamID:     teamID,
		FilePath:   path,
	}
	if err := s.documents.Create(ctx, doc); err != nil {
		// The blob now exists with no catalog entry; remove it so the
		// store and the catalog cannot drift apart.
		if rmErr := s.blobs.Remove(ctx, []string{path}); rmErr != nil {
			s.logger.Error("compensating blob removal failed",
				zap.String("filename", file.Filename),
				zap.String("file_path", path),
				zap.Error(rmErr))
		}
		outcome.Err = apperrors.MapError(err)
		return outcome
	}
	sink.Update(outcome.Token, file.Filename, 100)

	view := domain.DocumentView{
		ID:         doc.ID,
		Filename:   doc.Filename,
		FileSize:   doc.FileSize,
		UploadDate: doc.UploadDate,
		Status:     doc.Status,
		UploadedBy: doc.UploadedBy,
		TeamID:     doc.TeamID,
		TeamName:   s.resolveTeamName(ctx, teamID),
	}
	outcome.Document = &view

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:    events.EventDocumentUploaded,
		ActorID: actor.ID,
		Payload: events.DocumentUploadedPayload{
			DocumentID: doc.ID,
			Filename:   doc.Filename,
			TeamID:     doc.TeamID,
		},
	})
	return outcome
}

func (s *UploadService) validateFile(file UploadFile) error {
	if strings.TrimSpace(file.Filename) == "" {
		return apperrors.NewValidationError("filename required", nil)
	}
	if s.cfg.FileSizeLimitBytes > 0 && file.Size > s.cfg.FileSizeLimitBytes {
		return apperrors.NewValidationError(
			fmt.Sprintf("%s exceeds the size limit", file.Filename),
			map[string]any{"limit_bytes": s.cfg.FileSizeLimitBytes, "size_bytes": file.Size})
	}
	if len(s.cfg.AllowedMimeTypes) > 0 && file.ContentType != "" {
		allowed := false
		for _, mime := range s.cfg.AllowedMimeTypes {
			if strings.EqualFold(mime, file.ContentType) {
				allowed = true
				break
			}
		}
		if !allowed {
			return apperrors.NewValidationError(
				fmt.Sprintf("%s has an unsupported type", file.Filename),
				map[string]any{"content_type": file.ContentType})
		}
	}
	return nil
}

func (s *UploadService) resolveTeamName(ctx context.Context, teamID *string) string {
	if teamID == nil || *teamID == "" {
		return domain.NoTeamLabel
	}
	team, err := s.teams.GetByID(ctx, *teamID)
	if err != nil {
		return domain.NoTeamLabel
	}
	return team.Name
}
