package handler

import (
	"net/http"

	"github.com/evigdia/evigdia-backend/internal/common"
	"github.com/evigdia/evigdia-backend/internal/middleware"
	"github.com/evigdia/evigdia-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// SubscriptionHandler handles newsletter subscription requests
type SubscriptionHandler struct {
	service *service.SubscriptionService
}

// NewSubscriptionHandler creates a new SubscriptionHandler
func NewSubscriptionHandler(service *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{service: service}
}

// Subscribe handles POST /api/v1/subscriptions
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	var req service.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var userID *uint64
	if id := middleware.GetUserID(c); id != 0 {
		userID = &id
	}
	subscription, err := h.service.Subscribe(&req, userID, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}
	common.CreatedResponse(c, gin.H{
		"email":     subscription.Email,
		"confirmed": subscription.IsConfirmed,
	})
}

// Confirm handles GET /api/v1/subscriptions/confirm/:token
func (h *SubscriptionHandler) Confirm(c *gin.Context) {
	subscription, err := h.service.Confirm(c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{
		"email":     subscription.Email,
		"confirmed": subscription.IsConfirmed,
	}, nil)
}

// Unsubscribe handles GET /api/v1/subscriptions/unsubscribe/:token
func (h *SubscriptionHandler) Unsubscribe(c *gin.Context) {
	if err := h.service.Unsubscribe(c.Param("token")); err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"unsubscribed": true}, nil)
}

// List handles GET /api/v1/admin/subscriptions
func (h *SubscriptionHandler) List(c *gin.Context) {
	page, limit := pagination(c)
	subscriptions, total, err := h.service.List(page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, subscriptions, &common.Meta{Page: page, Limit: limit, Total: total})
}
