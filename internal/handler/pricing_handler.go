package handler

import (
	"net/http"

	"github.com/evigdia/evigdia-backend/internal/common"
	"github.com/evigdia/evigdia-backend/internal/domain"
	"github.com/evigdia/evigdia-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// PricingHandler handles subscription price requests
type PricingHandler struct {
	service *service.PricingService
}

// NewPricingHandler creates a new PricingHandler
func NewPricingHandler(service *service.PricingService) *PricingHandler {
	return &PricingHandler{service: service}
}

// List handles GET /api/v1/pricing
func (h *PricingHandler) List(c *gin.Context) {
	prices, err := h.service.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, prices, nil)
}

// Get handles GET /api/v1/pricing/:plan
func (h *PricingHandler) Get(c *gin.Context) {
	price, err := h.service.Get(domain.PlanType(c.Param("plan")))
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, price, nil)
}

// Set handles PUT /api/v1/admin/pricing/:plan
func (h *PricingHandler) Set(c *gin.Context) {
	var req service.PriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	price, err := h.service.Set(c.Request.Context(), domain.PlanType(c.Param("plan")), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, price, nil)
}
