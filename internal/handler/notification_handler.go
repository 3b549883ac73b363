package handler

import (
	"net/http"

	"github.com/evigdia/evigdia-backend/internal/common"
	"github.com/evigdia/evigdia-backend/internal/middleware"
	"github.com/evigdia/evigdia-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// NotificationHandler handles user and admin notification requests
type NotificationHandler struct {
	service *service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(service *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// List handles GET /api/v1/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	page, limit := pagination(c)
	unreadOnly := c.Query("unread") == "true"

	result, err := h.service.List(middleware.GetUserID(c), page, limit, unreadOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, result, nil)
}

// Summary handles GET /api/v1/notifications/summary
func (h *NotificationHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, summary, nil)
}

// MarkRead handles PUT /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.MarkRead(middleware.GetUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"read": true}, nil)
}

// MarkAllRead handles PUT /api/v1/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.service.MarkAllRead(middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"read": true}, nil)
}

// Delete handles DELETE /api/v1/notifications/:id
func (h *NotificationHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(middleware.GetUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListAdmin handles GET /api/v1/admin/notifications
func (h *NotificationHandler) ListAdmin(c *gin.Context) {
	page, limit := pagination(c)
	unreadOnly := c.Query("unread") == "true"

	notifications, total, err := h.service.ListAdmin(page, limit, unreadOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, notifications, &common.Meta{Page: page, Limit: limit, Total: total})
}

// AdminSummary handles GET /api/v1/admin/notifications/summary
func (h *NotificationHandler) AdminSummary(c *gin.Context) {
	summary, err := h.service.AdminSummary()
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, summary, nil)
}

// MarkAdminRead handles PUT /api/v1/admin/notifications/:id/read
func (h *NotificationHandler) MarkAdminRead(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.MarkAdminRead(id); err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"read": true}, nil)
}

// MarkAllAdminRead handles PUT /api/v1/admin/notifications/read-all
func (h *NotificationHandler) MarkAllAdminRead(c *gin.Context) {
	if err := h.service.MarkAllAdminRead(); err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"read": true}, nil)
}
