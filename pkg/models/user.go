// Package models defines the persisted entities.
package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. Identity fields are immutable after
// registration; only the password hash is ever mutated (on reset).
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	ReportIDs    []uuid.UUID
	CreatedAt    time.Time
}

// Admin is an administrator account, kept separate from regular users.
type Admin struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
