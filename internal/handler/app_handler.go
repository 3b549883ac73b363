package handler

import (
	"net/http"

	"github.com/evigdia/evigdia-backend/internal/common"
	"github.com/evigdia/evigdia-backend/internal/domain"
	"github.com/evigdia/evigdia-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// AppHandler handles desktop app remote control requests
type AppHandler struct {
	service *service.AppService
}

// NewAppHandler creates a new AppHandler
func NewAppHandler(service *service.AppService) *AppHandler {
	return &AppHandler{service: service}
}

// Status handles GET /api/v1/app/status/:type
//
// Called by desktop clients on startup, behind the API key gate.
func (h *AppHandler) Status(c *gin.Context) {
	appType := domain.AppType(c.Param("type"))
	status, err := h.service.Status(c.Request.Context(), appType)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, status, nil)
}

// ListManagers handles GET /api/v1/admin/app/managers
func (h *AppHandler) ListManagers(c *gin.Context) {
	managers, err := h.service.ListManagers()
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, managers, nil)
}

// UpdateManager handles PUT /api/v1/admin/app/managers/:type
func (h *AppHandler) UpdateManager(c *gin.Context) {
	appType := domain.AppType(c.Param("type"))
	var req service.AppControlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	manager, err := h.service.UpdateManager(c.Request.Context(), appType, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, manager, nil)
}

// GlobalControl handles GET /api/v1/admin/app/global
func (h *AppHandler) GlobalControl(c *gin.Context) {
	control, err := h.service.GlobalControl()
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, control, nil)
}

// UpdateGlobalControl handles PUT /api/v1/admin/app/global
func (h *AppHandler) UpdateGlobalControl(c *gin.Context) {
	var req service.GlobalControlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	control, err := h.service.UpdateGlobalControl(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, control, nil)
}
