package auth

import (
	"github.com/google/uuid"
)

// Identity is carried inside issued tokens and stored in the request context
// after authentication.
type Identity struct {
	TeamID   uuid.UUID
	TeamName string
}
