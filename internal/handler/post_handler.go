package handler

import (
	"net/http"
	"strconv"

	"github.com/evigdia/evigdia-backend/internal/common"
	"github.com/evigdia/evigdia-backend/internal/domain"
	"github.com/evigdia/evigdia-backend/internal/middleware"
	"github.com/evigdia/evigdia-backend/internal/repository"
	"github.com/evigdia/evigdia-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// PostHandler handles blog post requests
type PostHandler struct {
	service *service.PostService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(service *service.PostService) *PostHandler {
	return &PostHandler{service: service}
}

// List handles GET /api/v1/posts
func (h *PostHandler) List(c *gin.Context) {
	page, limit := pagination(c)

	filter := repository.PostFilter{
		Status:       domain.PostStatusPublished,
		CategorySlug: c.Query("category"),
		TagSlug:      c.Query("tag"),
		Search:       c.Query("q"),
	}
	// admins may list any status
	if status := c.Query("status"); status != "" && middleware.GetUserLevel(c) >= domain.AdminLevel {
		filter.Status = domain.PostStatus(status)
	}

	posts, total, err := h.service.List(page, limit, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, posts, &common.Meta{Page: page, Limit: limit, Total: total})
}

// Get handles GET /api/v1/posts/:slug
func (h *PostHandler) Get(c *gin.Context) {
	post, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, post, nil)
}

// Categories handles GET /api/v1/categories
func (h *PostHandler) Categories(c *gin.Context) {
	categories, err := h.service.Categories()
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, categories, nil)
}

// Tags handles GET /api/v1/tags
func (h *PostHandler) Tags(c *gin.Context) {
	tags, err := h.service.Tags()
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, tags, nil)
}

// Create handles POST /api/v1/posts
func (h *PostHandler) Create(c *gin.Context) {
	var req service.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	post, err := h.service.Create(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.CreatedResponse(c, post)
}

// Update handles PUT /api/v1/posts/:id
func (h *PostHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req service.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	isAdmin := middleware.GetUserLevel(c) >= domain.AdminLevel
	post, err := h.service.Update(c.Request.Context(), id, middleware.GetUserID(c), isAdmin, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, post, nil)
}

// Delete handles DELETE /api/v1/posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	isAdmin := middleware.GetUserLevel(c) >= domain.AdminLevel
	if err := h.service.Delete(c.Request.Context(), id, middleware.GetUserID(c), isAdmin); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Publish handles POST /api/v1/posts/:id/publish
func (h *PostHandler) Publish(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	isAdmin := middleware.GetUserLevel(c) >= domain.AdminLevel
	post, err := h.service.Publish(c.Request.Context(), id, middleware.GetUserID(c), isAdmin)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, post, nil)
}

// Archive handles POST /api/v1/posts/:id/archive
func (h *PostHandler) Archive(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	isAdmin := middleware.GetUserLevel(c) >= domain.AdminLevel
	if err := h.service.Archive(c.Request.Context(), id, middleware.GetUserID(c), isAdmin); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Revisions handles GET /api/v1/posts/:id/revisions
func (h *PostHandler) Revisions(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	page, limit := pagination(c)

	revisions, total, err := h.service.Revisions(id, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, revisions, &common.Meta{Page: page, Limit: limit, Total: total})
}

// GetRevision handles GET /api/v1/posts/:id/revisions/:number
func (h *PostHandler) GetRevision(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	number, err := strconv.ParseUint(c.Param("number"), 10, 32)
	if err != nil || number == 0 {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid revision number", nil)
		return
	}

	revision, err := h.service.GetRevision(id, uint(number))
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, revision, nil)
}

// Restore handles POST /api/v1/posts/:id/revisions/:number/restore
func (h *PostHandler) Restore(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	number, err := strconv.ParseUint(c.Param("number"), 10, 32)
	if err != nil || number == 0 {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid revision number", nil)
		return
	}

	isAdmin := middleware.GetUserLevel(c) >= domain.AdminLevel
	post, err := h.service.Restore(c.Request.Context(), id, uint(number), middleware.GetUserID(c), isAdmin)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, post, nil)
}
