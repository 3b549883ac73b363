package handler

import (
	"net/http"
	"strings"

	"github.com/evigdia/evigdia-backend/internal/common"
	"github.com/evigdia/evigdia-backend/internal/middleware"
	"github.com/evigdia/evigdia-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// SearchHandler handles post search requests
type SearchHandler struct {
	service *service.SearchService
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(service *service.SearchService) *SearchHandler {
	return &SearchHandler{service: service}
}

// Search handles GET /api/v1/search
func (h *SearchHandler) Search(c *gin.Context) {
	keyword := strings.TrimSpace(c.Query("q"))
	if keyword == "" {
		common.ErrorResponse(c, http.StatusBadRequest, "Search keyword is required", nil)
		return
	}
	page, limit := pagination(c)

	var userID *uint64
	if id := middleware.GetUserID(c); id != 0 {
		userID = &id
	}
	posts, total, err := h.service.Search(c.Request.Context(), keyword, page, limit, userID, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, posts, &common.Meta{Page: page, Limit: limit, Total: total})
}
