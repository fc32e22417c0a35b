package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/docubuddy/internal/domain"
	"github.com/spec-kit/docubuddy/internal/events"
	"github.com/spec-kit/docubuddy/internal/repository"
)

// ProcessingWorker completes document processing after a fixed delay. It
// subscribes to upload events and flips each document from processing to
// ready once the delay elapses, standing in for a real ingestion pipeline.
type ProcessingWorker struct {
	documents  repository.DocumentRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	delay      time.Duration

	mu      sync.Mutex
	stopped bool
	wg      sync.WaitGroup
}

// NewProcessingWorker constructs the worker.
func NewProcessingWorker(documents repository.DocumentRepository, dispatcher events.Dispatcher, logger *zap.Logger, delay time.Duration) *ProcessingWorker {
	return &ProcessingWorker{
		documents:  documents,
		dispatcher: dispatcher,
		logger:     logger,
		delay:      delay,
	}
}

// Start subscribes the worker to upload events.
func (w *ProcessingWorker) Start() {
	if w.dispatcher == nil {
		return
	}
	w.dispatcher.Subscribe(events.EventDocumentUploaded, w.handleDocumentUploaded)
}

// Stop prevents new completions from being scheduled and waits for the
// in-flight ones.
func (w *ProcessingWorker) Stop() {
	w.mu.Lock()
	w.stopped = true
	w.mu.Unlock()
	w.wg.Wait()
}

func (w *ProcessingWorker) handleDocumentUploaded(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.DocumentUploadedPayload)
	if !ok {
		return nil
	}

	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.wg.Add(1)
	w.mu.Unlock()

	go func() {
		defer w.wg.Done()
		if w.delay > 0 {
			time.Sleep(w.delay)
		}
		w.complete(payload.DocumentID, event.ActorID)
	}()
	return nil
}

// complete moves one document out of the processing state. Documents that
// already left processing (or were deleted meanwhile) are skipped.
func (w *ProcessingWorker) complete(documentID, actorID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	doc, err := w.documents.GetByID(ctx, documentID)
	if err != nil {
		if !errors.Is(err, repository.ErrNoRows) {
			w.logger.Warn("processing completion lookup failed",
				zap.String("document_id", documentID),
				zap.Error(err))
		}
		return
	}
	if !doc.Status.CanTransition(domain.DocumentStatusReady) {
		return
	}

	if err := w.documents.UpdateStatus(ctx, documentID, domain.DocumentStatusReady); err != nil {
		w.logger.Warn("processing completion update failed",
			zap.String("document_id", documentID),
			zap.Error(err))
		return
	}

	w.logger.Info("document ready", zap.String("document_id", documentID))
	if w.dispatcher != nil {
		_ = w.dispatcher.Publish(ctx, events.Event{
			Type:      events.EventDocumentStatusChanged,
			ActorID:   actorID,
			Timestamp: time.Now(),
			Payload: events.DocumentStatusChangedPayload{
				DocumentID: documentID,
				OldStatus:  domain.DocumentStatusProcessing,
				NewStatus:  domain.DocumentStatusReady,
			},
		})
	}
}
