package handler

import (
	"net/http"

	"github.com/evigdia/evigdia-backend/internal/common"
	"github.com/evigdia/evigdia-backend/internal/middleware"
	"github.com/evigdia/evigdia-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// ContactHandler handles contact form submissions
type ContactHandler struct {
	service *service.ContactService
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(service *service.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

// Submit handles POST /api/v1/contact
func (h *ContactHandler) Submit(c *gin.Context) {
	var req service.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	submission, err := h.service.Submit(&req, clientMeta(c), c.GetHeader("Accept-Language"))
	if err != nil {
		respondError(c, err)
		return
	}
	common.CreatedResponse(c, gin.H{"id": submission.ID})
}

// List handles GET /api/v1/admin/contact
func (h *ContactHandler) List(c *gin.Context) {
	page, limit := pagination(c)
	unprocessedOnly := c.Query("unprocessed") == "true"

	submissions, total, err := h.service.List(page, limit, unprocessedOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, submissions, &common.Meta{Page: page, Limit: limit, Total: total})
}

// Get handles GET /api/v1/admin/contact/:id
func (h *ContactHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	submission, err := h.service.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, submission, nil)
}

// MarkProcessed handles PUT /api/v1/admin/contact/:id/processed
func (h *ContactHandler) MarkProcessed(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.MarkProcessed(id, middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"processed": true}, nil)
}

// Delete handles DELETE /api/v1/admin/contact/:id
func (h *ContactHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
