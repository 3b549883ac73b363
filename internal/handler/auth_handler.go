package handler

import (
	"net/http"

	"github.com/evigdia/evigdia-backend/internal/common"
	"github.com/evigdia/evigdia-backend/internal/middleware"
	"github.com/evigdia/evigdia-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	user, err := h.service.Register(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.CreatedResponse(c, user)
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	user, tokens, err := h.service.Login(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"user": user, "tokens": tokens}, nil)
}

// Refresh handles POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	tokens, err := h.service.Refresh(req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, tokens, nil)
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.service.GetUser(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, user, nil)
}
