package models

import (
	"time"

	"github.com/google/uuid"
)

// Project groups a user's detection runs. Visible and mutable only by its
// owner; the ownership check happens at the service layer.
type Project struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProjectRecord is one detection run within a project: the submitted ad
// copy plus both pipeline outputs. Append-only; records are removed only
// by the cascade when their project is deleted.
type ProjectRecord struct {
	ID           uuid.UUID
	ProjectID    uuid.UUID
	InputAd      string
	ResultLaw    string
	ResultAdvice string
	CreatedAt    time.Time
}
