package middleware

import (
	"context"

	"github.com/google/uuid"
)

// Owns reports whether the authenticated team in ctx is ownerID. It is false
// when ctx carries no identity.
func Owns(ctx context.Context, ownerID uuid.UUID) bool {
	identity := GetIdentity(ctx)
	return identity != nil && identity.TeamID == ownerID
}
