package team

import (
	"time"

	"github.com/google/uuid"
)

// Team represents a row in the teams table.
type Team struct {
	ID          uuid.UUID
	Name        string
	City        string
	PlayerCount int
	SecretHash  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UpdateFields holds team-updatable profile fields. Nil fields are not updated.
type UpdateFields struct {
	City        *string
	PlayerCount *int
}
