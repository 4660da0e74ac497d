package post

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// PageSize is fixed for all list endpoints.
const PageSize = 10

// DefaultOrdering is newest first. A leading '-' on an ordering key
// reverses the direction; unknown keys are ignored and the default
// applies.
const DefaultOrdering = "-created_at"

// CreateRequest creates a post. The owner is always the authenticated
// caller; any author supplied in the body is ignored by construction.
type CreateRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Status  Status `json:"status"`
}

func (r CreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
		),
		validation.Field(&r.Status,
			validation.In(StatusDraft, StatusPublished, StatusArchived).Error("status must be 0 (draft), 1 (published) or 2 (archived)"),
		),
	)
}

// UpdateRequest is the full-replacement body for PUT.
type UpdateRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Status  Status `json:"status"`
}

func (r UpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
		),
		validation.Field(&r.Status,
			validation.In(StatusDraft, StatusPublished, StatusArchived).Error("status must be 0 (draft), 1 (published) or 2 (archived)"),
		),
	)
}

// PartialUpdateRequest is the subset-of-fields body for PATCH.
type PartialUpdateRequest struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
	Status  *Status `json:"status,omitempty"`
}

func (r PartialUpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.When(r.Title != nil, validation.Length(1, 255)),
		),
		validation.Field(&r.Status,
			validation.When(r.Status != nil, validation.In(StatusDraft, StatusPublished, StatusArchived)),
		),
	)
}

// ListRequest carries the list query parameters: exact-match filters
// on status and owning author, an ordering key, and the page number.
type ListRequest struct {
	Status   *int   `form:"status" json:"status"`
	Author   string `form:"author" json:"author"`
	Ordering string `form:"ordering" json:"ordering"`
	Page     int    `form:"page" json:"page"`
}

func (r *ListRequest) SetDefaults() {
	if r.Ordering == "" {
		r.Ordering = DefaultOrdering
	}
	if r.Page == 0 {
		r.Page = 1
	}
}

func (r ListRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status,
			validation.When(r.Status != nil, validation.Min(0), validation.Max(2)),
		),
		validation.Field(&r.Author,
			validation.When(r.Author != "", is.UUID.Error("author must be a valid id")),
		),
		validation.Field(&r.Page, validation.Min(1)),
	)
}

// Filter is the repository-level query derived from a validated
// ListRequest.
type Filter struct {
	Status   *Status
	AuthorID *uuid.UUID
	Ordering string
	Limit    int
	Offset   int
}

// DTO is the public post representation.
type DTO struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Author     uuid.UUID `json:"author"`
	AuthorName string    `json:"author_name"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (p *Post) ToDTO() DTO {
	return DTO{
		ID:         p.ID,
		Title:      p.Title,
		Content:    p.Content,
		Author:     p.AuthorID,
		AuthorName: p.AuthorName,
		Status:     p.Status,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
