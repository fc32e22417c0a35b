package events

import (
	"time"

	"github.com/spec-kit/docubuddy/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTeamCreated           EventType = "team_created"
	EventMemberAdded           EventType = "member_added"
	EventMemberRemoved         EventType = "member_removed"
	EventDocumentUploaded      EventType = "document_uploaded"
	EventDocumentStatusChanged EventType = "document_status_changed"
	EventDocumentDeleted       EventType = "document_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TeamCreatedPayload payload.
type TeamCreatedPayload struct {
	TeamID string `json:"team_id"`
	Name   string `json:"name"`
}

// MemberAddedPayload payload.
type MemberAddedPayload struct {
	MembershipID string `json:"membership_id"`
	TeamID       string `json:"team_id"`
	UserID       string `json:"user_id"`
}

// MemberRemovedPayload payload.
type MemberRemovedPayload struct {
	MembershipID string `json:"membership_id"`
}

// DocumentUploadedPayload payload.
type DocumentUploadedPayload struct {
	DocumentID string  `json:"document_id"`
	Filename   string  `json:"filename"`
	TeamID     *string `json:"team_id,omitempty"`
}

// DocumentStatusChangedPayload payload.
type DocumentStatusChangedPayload struct {
	DocumentID string                `json:"document_id"`
	OldStatus  domain.DocumentStatus `json:"old_status"`
	NewStatus  domain.DocumentStatus `json:"new_status"`
}

// DocumentDeletedPayload payload.
type DocumentDeletedPayload struct {
	DocumentID string `json:"document_id"`
	FilePath   string `json:"file_path"`
}
