package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/evigdia/evigdia-backend/internal/common"
	"github.com/evigdia/evigdia-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto HTTP responses
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrPostNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "Post not found", nil)
	case errors.Is(err, common.ErrCommentNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "Comment not found", nil)
	case errors.Is(err, common.ErrRevisionNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "Revision not found", nil)
	case errors.Is(err, common.ErrServiceNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "Service not found", nil)
	case errors.Is(err, common.ErrUserNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "User not found", nil)
	case errors.Is(err, common.ErrNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "Not found", nil)
	case errors.Is(err, common.ErrForbidden):
		common.ErrorResponse(c, http.StatusForbidden, "Forbidden", nil)
	case errors.Is(err, common.ErrCommentsDisabled):
		common.ErrorResponse(c, http.StatusForbidden, "Comments are disabled for this post", nil)
	case errors.Is(err, common.ErrAlreadyExists):
		common.ErrorResponse(c, http.StatusConflict, "Already exists", nil)
	case errors.Is(err, common.ErrUserAlreadyExists):
		common.ErrorResponse(c, http.StatusConflict, "Username or email already taken", nil)
	case errors.Is(err, common.ErrLinkExpired):
		common.ErrorResponse(c, http.StatusGone, "Link is expired or exhausted", nil)
	case errors.Is(err, common.ErrInvalidCredentials):
		common.ErrorResponse(c, http.StatusUnauthorized, "Invalid credentials", nil)
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrExpiredToken):
		common.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token", nil)
	case errors.Is(err, common.ErrInvalidInput):
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid input", nil)
	default:
		common.ErrorResponse(c, http.StatusInternalServerError, "Internal server error", err)
	}
}

// clientMeta collects request client attributes for event records
func clientMeta(c *gin.Context) service.ClientMeta {
	return service.ClientMeta{
		IPAddress: c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
		Referrer:  c.GetHeader("Referer"),
	}
}

// parseID parses a uint64 path parameter
func parseID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid "+name, nil)
		return 0, false
	}
	return id, true
}

// pagination parses page/limit query parameters
func pagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	return page, limit
}

// intQuery parses an integer query parameter with a fallback
func intQuery(c *gin.Context, name string, fallback int) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return fallback
	}
	return value
}
