package domain

import "time"

// Membership grants a team_member visibility into one team's documents.
// (TeamID, UserID) pairs are unique; the pair is checked before insert.
type Membership struct {
	ID      string
	TeamID  string
	UserID  string
	AddedBy string
	AddedAt time.Time
}

// TeamMemberView is a membership joined with profile display data for listing.
type TeamMemberView struct {
	MembershipID string
	Email        string
	Name         string
	TeamName     string
	AddedAt      time.Time
}
