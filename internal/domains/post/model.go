package post

import (
	"time"

	"github.com/google/uuid"
)

// Status is the post lifecycle enumeration. The integer values are
// part of the wire contract (filtering and payloads use them).
type Status int

const (
	StatusDraft     Status = 0
	StatusPublished Status = 1
	StatusArchived  Status = 2
)

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

func (s Status) String() string {
	switch s {
	case StatusDraft:
		return "draft"
	case StatusPublished:
		return "published"
	case StatusArchived:
		return "archived"
	}
	return "unknown"
}

// Post is the domain entity, mapped 1:1 to the posts table.
// AuthorName is denormalized from the authors table on reads.
type Post struct {
	ID      uuid.UUID `db:"id" json:"id"`
	Title   string    `db:"title" json:"title"`
	Content string    `db:"content" json:"content"`

	AuthorID   uuid.UUID `db:"author_id" json:"author"`
	AuthorName string    `db:"author_name" json:"author_name"`

	Status Status `db:"status" json:"status"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// OwnedBy implements authz.Ownable.
func (p *Post) OwnedBy() uuid.UUID {
	return p.AuthorID
}
