package author

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the data access contract for authors. Implementations
// return the sentinel errors from errors.go so callers can map them
// without knowing the storage engine.
type Repository interface {
	// Create inserts a new author.
	// Returns ErrUsernameAlreadyExists on a duplicate username.
	Create(ctx context.Context, a *Author) error

	// FindByID returns ErrAuthorNotFound if the id does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*Author, error)

	// FindByUsername is used by login.
	// Returns ErrAuthorNotFound if the username does not exist.
	FindByUsername(ctx context.Context, username string) (*Author, error)

	// Update persists mutable fields.
	// Returns ErrUsernameAlreadyExists if the new username collides.
	Update(ctx context.Context, a *Author) error

	// Delete removes the author; owned posts cascade at the storage
	// layer.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns one page of authors ordered by created_at
	// descending, plus the total count.
	List(ctx context.Context, limit, offset int) ([]Author, int, error)
}
