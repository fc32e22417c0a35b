package domain

import "time"

// Team is an organizational grouping owned by one admin, used to scope
// document visibility.
type Team struct {
	ID        string
	Name      string
	CreatedBy string
	CreatedAt time.Time
}
