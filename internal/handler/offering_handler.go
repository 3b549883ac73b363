package handler

import (
	"net/http"

	"github.com/evigdia/evigdia-backend/internal/common"
	"github.com/evigdia/evigdia-backend/internal/domain"
	"github.com/evigdia/evigdia-backend/internal/middleware"
	"github.com/evigdia/evigdia-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// OfferingHandler handles the public services catalog
type OfferingHandler struct {
	service *service.OfferingService
}

// NewOfferingHandler creates a new OfferingHandler
func NewOfferingHandler(service *service.OfferingService) *OfferingHandler {
	return &OfferingHandler{service: service}
}

// ListPublished handles GET /api/v1/services
func (h *OfferingHandler) ListPublished(c *gin.Context) {
	offerings, err := h.service.ListPublished(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, offerings, nil)
}

// Get handles GET /api/v1/services/:slug
func (h *OfferingHandler) Get(c *gin.Context) {
	offering, err := h.service.GetBySlug(c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, offering, nil)
}

// List handles GET /api/v1/admin/services
func (h *OfferingHandler) List(c *gin.Context) {
	page, limit := pagination(c)
	status := domain.ServiceStatus(c.Query("status"))

	offerings, total, err := h.service.List(page, limit, status)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, offerings, &common.Meta{Page: page, Limit: limit, Total: total})
}

// Create handles POST /api/v1/admin/services
func (h *OfferingHandler) Create(c *gin.Context) {
	var req service.OfferingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	offering, err := h.service.Create(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.CreatedResponse(c, offering)
}

// Update handles PUT /api/v1/admin/services/:id
func (h *OfferingHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req service.OfferingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	offering, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, offering, nil)
}

// Delete handles DELETE /api/v1/admin/services/:id
func (h *OfferingHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
