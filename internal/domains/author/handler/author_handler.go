package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"blog-backend/internal/domains/author"
	"blog-backend/internal/shared/authz"
	"blog-backend/internal/shared/middleware"
	"blog-backend/internal/shared/response"
	"blog-backend/pkg/logger"
)

// AuthorHandler exposes the author resource plus the login endpoint.
type AuthorHandler struct {
	service author.Service
}

func NewAuthorHandler(service author.Service) *AuthorHandler {
	return &AuthorHandler{service: service}
}

// Login handles POST /api/login/.
func (h *AuthorHandler) Login(c *gin.Context) {
	var req author.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Generic(c, http.StatusBadRequest)
		return
	}

	tokens, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokens)
}

// Register handles POST /api/authors/. Registration is open to
// anonymous callers.
func (h *AuthorHandler) Register(c *gin.Context) {
	var req author.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Generic(c, http.StatusBadRequest)
		return
	}

	dto, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto)
}

// List handles GET /api/authors/.
func (h *AuthorHandler) List(c *gin.Context) {
	var req author.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Generic(c, http.StatusBadRequest)
		return
	}
	req.SetDefaults()

	dtos, total, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	// Pages past the end do not exist (the first page is always
	// addressable, even when empty).
	if req.Page > 1 && (req.Page-1)*author.PageSize >= total {
		response.Generic(c, http.StatusNotFound)
		return
	}

	response.Paginated(c, total, req.Page, author.PageSize, dtos)
}

// Retrieve handles GET /api/authors/:id/.
func (h *AuthorHandler) Retrieve(c *gin.Context) {
	id, ok := h.authorID(c)
	if !ok {
		return
	}

	dto, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto)
}

// Update handles PUT /api/authors/:id/ (full replacement).
func (h *AuthorHandler) Update(c *gin.Context) {
	id, ok := h.authorID(c)
	if !ok {
		return
	}

	var req author.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Generic(c, http.StatusBadRequest)
		return
	}

	dto, err := h.service.Update(c.Request.Context(), middleware.CurrentActor(c), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto)
}

// PartialUpdate handles PATCH /api/authors/:id/.
func (h *AuthorHandler) PartialUpdate(c *gin.Context) {
	id, ok := h.authorID(c)
	if !ok {
		return
	}

	var req author.PartialUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Generic(c, http.StatusBadRequest)
		return
	}

	dto, err := h.service.PartialUpdate(c.Request.Context(), middleware.CurrentActor(c), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto)
}

// Delete handles DELETE /api/authors/:id/.
func (h *AuthorHandler) Delete(c *gin.Context) {
	id, ok := h.authorID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.CurrentActor(c), id); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// authorID parses the :id path parameter; a malformed id behaves like
// a missing resource.
func (h *AuthorHandler) authorID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Generic(c, http.StatusNotFound)
		return uuid.Nil, false
	}
	return id, true
}

// handleError maps domain errors to HTTP responses.
func (h *AuthorHandler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors

	switch {
	case errors.As(err, &vErrs):
		response.ValidationFailed(c, vErrs)

	case errors.Is(err, author.ErrUsernameAlreadyExists):
		response.ValidationFailed(c, gin.H{"username": "author with this username already exists"})

	case errors.Is(err, author.ErrInvalidCredentials):
		response.Detail(c, http.StatusUnauthorized, "Invalid credentials")

	case errors.Is(err, author.ErrAccountInactive):
		response.Detail(c, http.StatusForbidden, "Author is inactive")

	case errors.Is(err, authz.ErrNotAuthenticated):
		response.Detail(c, http.StatusUnauthorized, "Authentication credentials were not provided")

	case errors.Is(err, authz.ErrForbidden):
		response.Detail(c, http.StatusForbidden, "You do not have permission to perform this action")

	case errors.Is(err, author.ErrAuthorNotFound):
		response.Generic(c, http.StatusNotFound)

	default:
		logger.Error("author handler error", err)
		response.Generic(c, http.StatusInternalServerError)
	}
}
