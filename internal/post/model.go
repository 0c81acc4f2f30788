package post

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Page size bounds for List.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// MaxPage reports the largest page whose offset fits in an int for the given
// page size. Limits outside [1, MaxLimit] are clamped first.
func MaxPage(limit int) int {
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return math.MaxInt / limit
}

// Post represents a row in the posts table. TeamID is the owning team.
type Post struct {
	ID        uuid.UUID
	TeamID    uuid.UUID
	Title     string
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListFilter holds optional filters and pagination for listing posts.
type ListFilter struct {
	TeamID *uuid.UUID
	Page   int // default 1
	Limit  int // default 20
}

// ListResult holds the result of a paginated list query.
type ListResult struct {
	Posts []Post
	Total int
	Page  int
	Limit int
}

// UpdateFields holds owner-updatable fields on a post. Nil fields are not updated.
type UpdateFields struct {
	Title *string
	Body  *string
}
