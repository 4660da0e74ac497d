package post

import (
	"context"

	"github.com/google/uuid"

	"blog-backend/internal/shared/authz"
)

// Service is the business logic contract for the post resource.
type Service interface {
	// Create inserts a post owned by the actor. Anonymous callers are
	// rejected with authz.ErrNotAuthenticated.
	Create(ctx context.Context, actor *authz.Actor, req CreateRequest) (*DTO, error)

	// Get returns a single post.
	Get(ctx context.Context, id uuid.UUID) (*DTO, error)

	// List returns one page of posts plus the total count.
	List(ctx context.Context, req ListRequest) ([]DTO, int, error)

	// Update replaces all writable fields; owner only.
	Update(ctx context.Context, actor *authz.Actor, id uuid.UUID, req UpdateRequest) (*DTO, error)

	// PartialUpdate mutates only the provided fields; owner only.
	PartialUpdate(ctx context.Context, actor *authz.Actor, id uuid.UUID, req PartialUpdateRequest) (*DTO, error)

	// Delete removes the post; owner only.
	Delete(ctx context.Context, actor *authz.Actor, id uuid.UUID) error
}
