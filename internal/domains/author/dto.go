package author

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// PageSize is fixed for all list endpoints.
const PageSize = 10

// ========================================
// AUTH DTOs
// ========================================

// LoginRequest carries the credentials for POST /api/login/.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required.Error("username is required")),
		validation.Field(&r.Password, validation.Required.Error("password is required")),
	)
}

// TokenResponse is the signed access/refresh pair issued on login.
type TokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// ========================================
// RESOURCE DTOs
// ========================================

// RegisterRequest creates an author. Registration is open; no
// authentication required.
type RegisterRequest struct {
	Username    string  `json:"username"`
	Password    string  `json:"password"`
	FullName    string  `json:"full_name"`
	Description *string `json:"description,omitempty"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required.Error("username is required"),
			validation.Length(1, 150),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required for registration"),
			validation.Length(8, 128).Error("password must be 8-128 characters"),
		),
		validation.Field(&r.FullName,
			validation.Required.Error("full name is required"),
			validation.Length(1, 255),
		),
	)
}

// UpdateRequest is the full-replacement body for PUT. All writable
// fields must be present; password is optional and write-only.
type UpdateRequest struct {
	Username    string  `json:"username"`
	FullName    string  `json:"full_name"`
	Description *string `json:"description,omitempty"`
	Password    string  `json:"password,omitempty"`
}

func (r UpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required.Error("username is required"),
			validation.Length(1, 150),
		),
		validation.Field(&r.FullName,
			validation.Required.Error("full name is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Password,
			validation.When(r.Password != "", validation.Length(8, 128)),
		),
	)
}

// PartialUpdateRequest is the subset-of-fields body for PATCH. Nil
// pointers mean "leave unchanged".
type PartialUpdateRequest struct {
	Username    *string `json:"username,omitempty"`
	FullName    *string `json:"full_name,omitempty"`
	Description *string `json:"description,omitempty"`
	Password    *string `json:"password,omitempty"`
}

func (r PartialUpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.When(r.Username != nil, validation.Length(1, 150)),
		),
		validation.Field(&r.FullName,
			validation.When(r.FullName != nil, validation.Length(1, 255)),
		),
		validation.Field(&r.Password,
			validation.When(r.Password != nil, validation.Length(8, 128)),
		),
	)
}

// ListRequest carries list query parameters.
type ListRequest struct {
	Page int `form:"page" json:"page"`
}

func (r *ListRequest) SetDefaults() {
	if r.Page == 0 {
		r.Page = 1
	}
}

func (r ListRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Page, validation.Min(1)),
	)
}

// DTO is the public author representation. The password hash never
// appears here.
type DTO struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	FullName    string    `json:"full_name"`
	Description *string   `json:"description"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToDTO converts the entity to its public representation.
func (a *Author) ToDTO() DTO {
	return DTO{
		ID:          a.ID,
		Username:    a.Username,
		FullName:    a.FullName,
		Description: a.Description,
		Active:      a.Active,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
