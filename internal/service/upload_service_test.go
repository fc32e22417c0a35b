package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/docubuddy/internal/config"
	"github.com/spec-kit/docubuddy/internal/domain"
	"github.com/spec-kit/docubuddy/internal/events"
	apperrors "github.com/spec-kit/docubuddy/pkg/util/errorutil"
)

type recordingSink struct {
	mu      sync.Mutex
	updates map[string][]int
	cleared []string
}

func newRecordingSink() *recordingSink {
	return &recordingSink{updates: map[string][]int{}}
}

func (s *recordingSink) Update(token, filename string, percent int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates[filename] = append(s.updates[filename], percent)
}

func (s *recordingSink) Clear(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleared = append(s.cleared, token)
}

func newUploadFixture(docs *stubDocumentRepo, blobs *stubBlobStore) (*UploadService, events.Dispatcher) {
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewUploadService(UploadDependencies{
		DocumentRepo: docs,
		TeamRepo:     newStubTeamRepo(&domain.Team{ID: "t1", Name: "Docs", CreatedBy: "admin-1"}),
		Blobs:        blobs,
		Dispatcher:   dispatcher,
		Logger:       zap.NewNop(),
		Config:       config.StorageConfig{Bucket: "documents"},
	})
	return svc, dispatcher
}

func uploadFiles(names ...string) []UploadFile {
	files := make([]UploadFile, 0, len(names))
	for _, name := range names {
		files = append(files, UploadFile{
			Filename: name,
			Size:     42,
			Content:  strings.NewReader("contents"),
		})
	}
	return files
}

func TestUploadBatchAdminNeedsTeam(t *testing.T) {
	docs := newStubDocumentRepo()
	blobs := &stubBlobStore{}
	svc, _ := newUploadFixture(docs, blobs)

	_, err := svc.UploadBatch(context.Background(), adminActor(), nil, uploadFiles("a.pdf"), nil)
	if !apperrors.IsCode(err, "VALIDATION_FAILED") {
		t.Fatalf("err = %v, want VALIDATION_FAILED", err)
	}
	if len(blobs.uploads) != 0 {
		t.Fatal("a rejected batch must not touch the blob store")
	}
}

func TestUploadBatchMemberNeedsTeam(t *testing.T) {
	docs := newStubDocumentRepo()
	blobs := &stubBlobStore{}
	svc, _ := newUploadFixture(docs, blobs)

	_, err := svc.UploadBatch(context.Background(), memberActor(), nil, uploadFiles("a.pdf"), nil)
	if !apperrors.IsCode(err, "VALIDATION_FAILED") {
		t.Fatalf("err = %v, want VALIDATION_FAILED", err)
	}
	if len(blobs.uploads) != 0 || len(docs.docs) != 0 {
		t.Fatal("a team-less member upload must create nothing")
	}

	empty := ""
	_, err = svc.UploadBatch(context.Background(), memberActor(), &empty, uploadFiles("a.pdf"), nil)
	if !apperrors.IsCode(err, "VALIDATION_FAILED") {
		t.Fatalf("err = %v, want VALIDATION_FAILED for an empty team id", err)
	}
}

func TestUploadBatchSuccess(t *testing.T) {
	docs := newStubDocumentRepo()
	blobs := &stubBlobStore{}
	svc, dispatcher := newUploadFixture(docs, blobs)
	rec := recordEvents(dispatcher, events.EventDocumentUploaded)
	sink := newRecordingSink()

	outcomes, err := svc.UploadBatch(context.Background(), adminActor(), strptr("t1"), uploadFiles("a.pdf"), sink)
	if err != nil {
		t.Fatalf("UploadBatch: %v", err)
	}
	if len(outcomes) != 1 || outcomes[0].Err != nil {
		t.Fatalf("outcomes = %+v, want one success", outcomes)
	}
	doc := outcomes[0].Document
	if doc == nil {
		t.Fatal("successful outcome should carry the catalog entry")
	}
	if doc.Status != domain.DocumentStatusProcessing {
		t.Fatalf("status = %s, want processing", doc.Status)
	}
	if doc.TeamName != "Docs" {
		t.Fatalf("team name = %q, want Docs", doc.TeamName)
	}
	if got := sink.updates["a.pdf"]; len(got) != 2 || got[0] != 50 || got[1] != 100 {
		t.Fatalf("progress = %v, want [50 100]", got)
	}
	if rec.count() != 1 {
		t.Fatalf("got %d document_uploaded events, want 1", rec.count())
	}
	if len(blobs.uploads) != 1 || !strings.HasPrefix(blobs.uploads[0], "admin-1/") {
		t.Fatalf("uploads = %v, want one key under the uploader's prefix", blobs.uploads)
	}
}

func TestUploadBatchCompensatesFailedInsert(t *testing.T) {
	docs := newStubDocumentRepo()
	docs.createErr = errors.New("insert failed")
	blobs := &stubBlobStore{}
	svc, _ := newUploadFixture(docs, blobs)

	outcomes, err := svc.UploadBatch(context.Background(), adminActor(), strptr("t1"), uploadFiles("a.pdf"), nil)
	if err != nil {
		t.Fatalf("UploadBatch: %v", err)
	}
	if outcomes[0].Err == nil {
		t.Fatal("a failed catalog insert must fail the file")
	}
	if len(blobs.removed) != 1 {
		t.Fatalf("got %d compensating removals, want exactly 1", len(blobs.removed))
	}
	if blobs.removed[0] != blobs.uploads[0] {
		t.Fatal("compensation must remove the blob that was just written")
	}
}

func TestUploadBatchIsolatesFailures(t *testing.T) {
	docs := newStubDocumentRepo()
	blobs := &stubBlobStore{}
	svc, _ := newUploadFixture(docs, blobs)

	files := uploadFiles("good.pdf", "", "also-good.pdf")
	outcomes, err := svc.UploadBatch(context.Background(), adminActor(), strptr("t1"), files, nil)
	if err != nil {
		t.Fatalf("UploadBatch: %v", err)
	}
	if len(outcomes) != 3 {
		t.Fatalf("got %d outcomes, want 3", len(outcomes))
	}
	if outcomes[0].Err != nil || outcomes[2].Err != nil {
		t.Fatal("siblings of a failed file must still succeed")
	}
	if outcomes[1].Err == nil {
		t.Fatal("the nameless file should have failed validation")
	}
	if len(docs.docs) != 2 {
		t.Fatalf("got %d catalog entries, want 2", len(docs.docs))
	}
}

func TestUploadBatchRejectsOversizedFile(t *testing.T) {
	docs := newStubDocumentRepo()
	blobs := &stubBlobStore{}
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewUploadService(UploadDependencies{
		DocumentRepo: docs,
		TeamRepo:     newStubTeamRepo(&domain.Team{ID: "t1", Name: "Docs"}),
		Blobs:        blobs,
		Dispatcher:   dispatcher,
		Logger:       zap.NewNop(),
		Config:       config.StorageConfig{FileSizeLimitBytes: 10},
	})

	outcomes, err := svc.UploadBatch(context.Background(), adminActor(), strptr("t1"), uploadFiles("big.pdf"), nil)
	if err != nil {
		t.Fatalf("UploadBatch: %v", err)
	}
	if outcomes[0].Err == nil {
		t.Fatal("a file over the size limit must fail")
	}
	if len(blobs.uploads) != 0 {
		t.Fatal("an invalid file must never reach the blob store")
	}
}
