package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"blog-backend/internal/domains/post"
	"blog-backend/internal/shared/authz"
	"blog-backend/internal/shared/middleware"
	"blog-backend/internal/shared/response"
	"blog-backend/pkg/logger"
)

// PostHandler exposes the post resource.
type PostHandler struct {
	service post.Service
}

func NewPostHandler(service post.Service) *PostHandler {
	return &PostHandler{service: service}
}

// Create handles POST /api/posts/. The post is owned by the caller.
func (h *PostHandler) Create(c *gin.Context) {
	actor := middleware.CurrentActor(c)
	if actor == nil {
		response.Detail(c, http.StatusUnauthorized, "Authentication credentials were not provided")
		return
	}

	var req post.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Generic(c, http.StatusBadRequest)
		return
	}

	dto, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto)
}

// List handles GET /api/posts/ with optional status, author and
// ordering query parameters.
func (h *PostHandler) List(c *gin.Context) {
	var req post.ListRequest
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

	if req.Page > 1 && (req.Page-1)*post.PageSize >= total {
		response.Generic(c, http.StatusNotFound)
		return
	}

	response.Paginated(c, total, req.Page, post.PageSize, dtos)
}

// Retrieve handles GET /api/posts/:id/.
func (h *PostHandler) Retrieve(c *gin.Context) {
	id, ok := h.postID(c)
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

// Update handles PUT /api/posts/:id/ (full replacement).
func (h *PostHandler) Update(c *gin.Context) {
	id, ok := h.postID(c)
	if !ok {
		return
	}

	var req post.UpdateRequest
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

// PartialUpdate handles PATCH /api/posts/:id/.
func (h *PostHandler) PartialUpdate(c *gin.Context) {
	id, ok := h.postID(c)
	if !ok {
		return
	}

	var req post.PartialUpdateRequest
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

// Delete handles DELETE /api/posts/:id/.
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := h.postID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.CurrentActor(c), id); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// postID parses the :id path parameter; a malformed id behaves like a
// missing resource.
func (h *PostHandler) postID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Generic(c, http.StatusNotFound)
		return uuid.Nil, false
	}
	return id, true
}

// handleError maps domain errors to HTTP responses.
func (h *PostHandler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors

	switch {
	case errors.As(err, &vErrs):
		response.ValidationFailed(c, vErrs)

	case errors.Is(err, authz.ErrNotAuthenticated):
		response.Detail(c, http.StatusUnauthorized, "Authentication credentials were not provided")

	case errors.Is(err, authz.ErrForbidden):
		response.Detail(c, http.StatusForbidden, "You do not have permission to perform this action")

	case errors.Is(err, post.ErrPostNotFound):
		response.Generic(c, http.StatusNotFound)

	default:
		logger.Error("post handler error", err)
		response.Generic(c, http.StatusInternalServerError)
	}
}
