package domain

import "time"

// DocumentStatus enumerates processing states for an uploaded document.
type DocumentStatus string

const (
	DocumentStatusProcessing DocumentStatus = "processing"
	DocumentStatusReady      DocumentStatus = "ready"
	DocumentStatusError      DocumentStatus = "error"
)

// NoTeamLabel is the display fallback when a document's team cannot be resolved.
const NoTeamLabel = "No Team"

// Document is the catalog entry describing one uploaded file.
type Document struct {
	ID         string
	Filename   string
	FileSize   int64
	UploadDate time.Time
	Status     DocumentStatus
	UploadedBy string
	TeamID     *string
	FilePath   string
}

// DocumentView is a document normalized for listing, with the team name
// resolved (or the NoTeamLabel fallback).
type DocumentView struct {
	ID         string
	Filename   string
	FileSize   int64
	UploadDate time.Time
	Status     DocumentStatus
	UploadedBy string
	TeamID     *string
	TeamName   string
}

// CanTransition reports whether a status change is allowed. Transitions only
// move forward: processing -> ready, processing -> error.
func (s DocumentStatus) CanTransition(next DocumentStatus) bool {
	if s != DocumentStatusProcessing {
		return false
	}
	return next == DocumentStatusReady || next == DocumentStatusError
}
