package post

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the data access contract for posts. Reads join the
// authors table to populate AuthorName.
type Repository interface {
	// Create inserts a new post owned by p.AuthorID.
	Create(ctx context.Context, p *Post) error

	// FindByID returns ErrPostNotFound if the id does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*Post, error)

	// Update persists title, content and status.
	Update(ctx context.Context, p *Post) error

	// Delete returns ErrPostNotFound if the id does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns one page of posts matching the filter plus the
	// total count of matches.
	List(ctx context.Context, filter Filter) ([]Post, int, error)
}
