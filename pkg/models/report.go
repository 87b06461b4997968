package models

import (
	"time"

	"github.com/google/uuid"
)

// Report is a user-submitted problem report. Append-only, never mutated.
type Report struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	UserName  string
	Body      string
	CreatedAt time.Time
}
