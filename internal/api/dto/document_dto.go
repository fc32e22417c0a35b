package dto

import (
	"time"

	"github.com/spec-kit/docubuddy/internal/domain"
	"github.com/spec-kit/docubuddy/internal/service"
)

// DocumentResponse is a catalog entry normalized for listing.
type DocumentResponse struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	FileSize   int64     `json:"file_size"`
	UploadDate time.Time `json:"upload_date"`
	Status     string    `json:"status"`
	UploadedBy string    `json:"uploaded_by"`
	TeamID     *string   `json:"team_id"`
	TeamName   string    `json:"team_name"`
}

// NewDocumentResponse maps a document view.
func NewDocumentResponse(view domain.DocumentView) DocumentResponse {
	return DocumentResponse{
		ID:         view.ID,
		Filename:   view.Filename,
		FileSize:   view.FileSize,
		UploadDate: view.UploadDate,
		Status:     string(view.Status),
		UploadedBy: view.UploadedBy,
		TeamID:     view.TeamID,
		TeamName:   view.TeamName,
	}
}

// NewDocumentResponses maps a document view slice.
func NewDocumentResponses(views []domain.DocumentView) []DocumentResponse {
	out := make([]DocumentResponse, 0, len(views))
	for _, view := range views {
		out = append(out, NewDocumentResponse(view))
	}
	return out
}

// UploadOutcomeResponse is the per-file result of an upload batch.
type UploadOutcomeResponse struct {
	Token    string            `json:"token"`
	Filename string            `json:"filename"`
	Document *DocumentResponse `json:"document,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// NewUploadOutcomeResponses maps batch outcomes.
func NewUploadOutcomeResponses(outcomes []service.UploadOutcome) []UploadOutcomeResponse {
	out := make([]UploadOutcomeResponse, 0, len(outcomes))
	for _, outcome := range outcomes {
		resp := UploadOutcomeResponse{
			Token:    outcome.Token,
			Filename: outcome.Filename,
		}
		if outcome.Document != nil {
			doc := NewDocumentResponse(*outcome.Document)
			resp.Document = &doc
		}
		if outcome.Err != nil {
			resp.Error = outcome.Err.Error()
		}
		out = append(out, resp)
	}
	return out
}
