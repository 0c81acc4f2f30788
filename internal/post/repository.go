package post

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrPostNotFound is returned when a post record is not found.
var ErrPostNotFound = errors.New("post not found")

// ErrOwnerNotFound is returned when creating a post for a team that no longer exists.
var ErrOwnerNotFound = errors.New("owner team not found")

// Repository provides CRUD operations on the posts table.
type Repository interface {
	Create(ctx context.Context, p *Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*Post, error)
	List(ctx context.Context, filter ListFilter) (*ListResult, error)
	Update(ctx context.Context, id uuid.UUID, fields UpdateFields) (*Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
