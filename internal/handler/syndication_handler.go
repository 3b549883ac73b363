package handler

import (
	"net/http"

	"github.com/evigdia/evigdia-backend/internal/common"
	"github.com/evigdia/evigdia-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// SyndicationHandler handles cross-posting records for posts
type SyndicationHandler struct {
	service *service.SyndicationService
}

// NewSyndicationHandler creates a new SyndicationHandler
func NewSyndicationHandler(service *service.SyndicationService) *SyndicationHandler {
	return &SyndicationHandler{service: service}
}

// ListByPost handles GET /api/v1/posts/:id/syndications
func (h *SyndicationHandler) ListByPost(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	syndications, err := h.service.ListByPost(id)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, syndications, nil)
}

// Create handles POST /api/v1/posts/:id/syndications
func (h *SyndicationHandler) Create(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req service.SyndicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	syndication, err := h.service.Create(id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.CreatedResponse(c, syndication)
}

// SetCanonical handles PUT /api/v1/syndications/:id/canonical
func (h *SyndicationHandler) SetCanonical(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	syndication, err := h.service.SetCanonical(id)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, syndication, nil)
}

// Delete handles DELETE /api/v1/syndications/:id
func (h *SyndicationHandler) Delete(c *gin.Context) {
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
