package handler

import (
	"net/http"

	"github.com/evigdia/evigdia-backend/internal/common"
	"github.com/evigdia/evigdia-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// ActivityHandler exposes the activity log to admins
type ActivityHandler struct {
	service *service.ActivityService
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(service *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// List handles GET /api/v1/admin/activity
func (h *ActivityHandler) List(c *gin.Context) {
	page, limit := pagination(c)
	logs, total, err := h.service.List(page, limit, c.Query("type"))
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, logs, &common.Meta{Page: page, Limit: limit, Total: total})
}

// MarkProcessed handles POST /api/v1/admin/activity/processed
func (h *ActivityHandler) MarkProcessed(c *gin.Context) {
	var req struct {
		IDs []uint64 `json:"ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.service.MarkProcessed(req.IDs); err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"processed": len(req.IDs)}, nil)
}

// TopSearches handles GET /api/v1/admin/activity/top-searches
func (h *ActivityHandler) TopSearches(c *gin.Context) {
	limit := intQuery(c, "limit", 10)
	days := intQuery(c, "days", 7)
	terms, err := h.service.TopSearches(limit, days)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, terms, nil)
}
