package author

import "errors"

// Repository-level errors
var (
	ErrAuthorNotFound        = errors.New("author not found")
	ErrUsernameAlreadyExists = errors.New("username already exists")
)

// Service-level (business logic) errors
var (
	// ErrInvalidCredentials covers both unknown username and wrong
	// password so the two are indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountInactive is deliberately distinct from invalid
	// credentials: it reveals the account exists but blocks its use.
	ErrAccountInactive = errors.New("author is inactive")
)
