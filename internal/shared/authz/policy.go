// Package authz holds the object-level authorization policy as a pure
// decision function, testable without any HTTP layer.
package authz

import (
	"errors"

	"github.com/google/uuid"
)

// Action is the enumerated set of operations a handler can perform on a
// resource.
type Action int

const (
	ActionList Action = iota
	ActionRetrieve
	ActionCreate
	ActionUpdate
	ActionPartialUpdate
	ActionDelete
)

func (a Action) String() string {
	switch a {
	case ActionList:
		return "list"
	case ActionRetrieve:
		return "retrieve"
	case ActionCreate:
		return "create"
	case ActionUpdate:
		return "update"
	case ActionPartialUpdate:
		return "partial_update"
	case ActionDelete:
		return "delete"
	}
	return "unknown"
}

// Decision is the outcome of an authorization check. A missing actor
// and an authenticated-but-unauthorized actor are distinct outcomes
// and map to 401 and 403 respectively.
type Decision int

const (
	Allow Decision = iota
	DenyUnauthenticated
	DenyForbidden
)

var (
	ErrNotAuthenticated = errors.New("authentication credentials were not provided")
	ErrForbidden        = errors.New("you do not have permission to perform this action")
)

// Err converts a deny decision into its sentinel error; Allow yields nil.
func (d Decision) Err() error {
	switch d {
	case DenyUnauthenticated:
		return ErrNotAuthenticated
	case DenyForbidden:
		return ErrForbidden
	}
	return nil
}

// Actor identifies the authenticated caller. A nil *Actor is an
// anonymous request.
type Actor struct {
	ID uuid.UUID
}

// Ownable is a resource instance with exactly one owning author.
type Ownable interface {
	OwnedBy() uuid.UUID
}

// Policy encodes the per-resource rules. Reads are always open; writes
// are owner-only; create is open or authenticated-only depending on
// the resource (author registration is public, posts are not).
type Policy struct {
	AnonymousCreate bool
}

var (
	// AuthorPolicy: anyone may read or register; an author may only
	// modify itself.
	AuthorPolicy = Policy{AnonymousCreate: true}

	// PostPolicy: anyone may read; creating requires authentication;
	// only the owning author may modify.
	PostPolicy = Policy{AnonymousCreate: false}
)

// Authorize decides whether actor may perform action on resource.
// resource may be nil for ActionList and ActionCreate, which are not
// object-level.
func (p Policy) Authorize(action Action, actor *Actor, resource Ownable) Decision {
	switch action {
	case ActionList, ActionRetrieve:
		return Allow

	case ActionCreate:
		if actor == nil && !p.AnonymousCreate {
			return DenyUnauthenticated
		}
		return Allow

	case ActionUpdate, ActionPartialUpdate, ActionDelete:
		if actor == nil {
			return DenyUnauthenticated
		}
		if resource == nil || actor.ID != resource.OwnedBy() {
			return DenyForbidden
		}
		return Allow
	}

	return DenyForbidden
}
