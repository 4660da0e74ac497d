package author

import (
	"context"

	"github.com/google/uuid"

	"blog-backend/internal/shared/authz"
)

// Service is the business logic contract for the author resource,
// including credential verification and token issuance.
type Service interface {
	// Register creates an author. Open to anonymous callers.
	Register(ctx context.Context, req RegisterRequest) (*DTO, error)

	// Login verifies credentials and issues a signed token pair.
	// Unknown username and wrong password both yield
	// ErrInvalidCredentials; a correct password on an inactive
	// account yields ErrAccountInactive.
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)

	// Get returns a single author.
	Get(ctx context.Context, id uuid.UUID) (*DTO, error)

	// List returns one page of authors plus the total count.
	List(ctx context.Context, req ListRequest) ([]DTO, int, error)

	// Update replaces all writable fields. Only the author itself may
	// do this; the policy decides between authz.ErrNotAuthenticated
	// and authz.ErrForbidden.
	Update(ctx context.Context, actor *authz.Actor, id uuid.UUID, req UpdateRequest) (*DTO, error)

	// PartialUpdate mutates only the provided fields, same policy as
	// Update.
	PartialUpdate(ctx context.Context, actor *authz.Actor, id uuid.UUID, req PartialUpdateRequest) (*DTO, error)

	// Delete removes the author and, by cascade, its posts.
	Delete(ctx context.Context, actor *authz.Actor, id uuid.UUID) error
}
