package handler

import (
	"net/http"

	"github.com/evigdia/evigdia-backend/internal/common"
	"github.com/evigdia/evigdia-backend/internal/domain"
	"github.com/evigdia/evigdia-backend/internal/middleware"
	"github.com/evigdia/evigdia-backend/internal/repository"
	"github.com/evigdia/evigdia-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// EngagementHandler handles comments, reactions, views and shares
type EngagementHandler struct {
	service *service.EngagementService
	users   repository.UserRepository
}

// NewEngagementHandler creates a new EngagementHandler
func NewEngagementHandler(service *service.EngagementService, users repository.UserRepository) *EngagementHandler {
	return &EngagementHandler{service: service, users: users}
}

// currentUser resolves the authenticated user, or nil for guests
func (h *EngagementHandler) currentUser(c *gin.Context) *domain.User {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return nil
	}
	user, err := h.users.FindByID(userID)
	if err != nil {
		return nil
	}
	return user
}

// requireUser is currentUser for routes that cannot serve guests. A valid
// token whose user row is gone still gets a 401, not a nil actor.
func (h *EngagementHandler) requireUser(c *gin.Context) (*domain.User, bool) {
	user := h.currentUser(c)
	if user == nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return nil, false
	}
	return user, true
}

// Comments handles GET /api/v1/posts/:id/comments
func (h *EngagementHandler) Comments(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	page, limit := pagination(c)

	includeUnapproved := middleware.GetUserLevel(c) >= domain.AdminLevel
	comments, total, err := h.service.Comments(id, page, limit, includeUnapproved)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, comments, &common.Meta{Page: page, Limit: limit, Total: total})
}

// AddComment handles POST /api/v1/posts/:id/comments
func (h *EngagementHandler) AddComment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req service.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	comment, err := h.service.AddComment(c.Request.Context(), id, h.currentUser(c), &req, clientMeta(c))
	if err != nil {
		respondError(c, err)
		return
	}
	common.CreatedResponse(c, comment)
}

// DeleteComment handles DELETE /api/v1/comments/:id
func (h *EngagementHandler) DeleteComment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	actor, ok := h.requireUser(c)
	if !ok {
		return
	}
	if err := h.service.DeleteComment(c.Request.Context(), id, actor); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ApproveComment handles PUT /api/v1/admin/comments/:id/approve
func (h *EngagementHandler) ApproveComment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.ApproveComment(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"approved": true}, nil)
}

// MarkCommentSpam handles PUT /api/v1/admin/comments/:id/spam
func (h *EngagementHandler) MarkCommentSpam(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.MarkCommentSpam(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"spam": true}, nil)
}

// Like handles POST /api/v1/posts/:id/like
func (h *EngagementHandler) Like(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	actor, ok := h.requireUser(c)
	if !ok {
		return
	}
	if err := h.service.Like(c.Request.Context(), id, actor); err != nil {
		respondError(c, err)
		return
	}
	middleware.CountEngagementEvent("like")
	common.SuccessResponse(c, gin.H{"liked": true}, nil)
}

// Unlike handles DELETE /api/v1/posts/:id/like
func (h *EngagementHandler) Unlike(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	actor, ok := h.requireUser(c)
	if !ok {
		return
	}
	if err := h.service.Unlike(c.Request.Context(), id, actor); err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"liked": false}, nil)
}

// React handles PUT /api/v1/posts/:id/reaction
func (h *EngagementHandler) React(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Reaction domain.ReactionKind `json:"reaction" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	actor, ok := h.requireUser(c)
	if !ok {
		return
	}
	if err := h.service.React(c.Request.Context(), id, actor, req.Reaction); err != nil {
		respondError(c, err)
		return
	}
	middleware.CountEngagementEvent("reaction")
	common.SuccessResponse(c, gin.H{"reaction": req.Reaction}, nil)
}

// RemoveReaction handles DELETE /api/v1/posts/:id/reaction
func (h *EngagementHandler) RemoveReaction(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	actor, ok := h.requireUser(c)
	if !ok {
		return
	}
	if err := h.service.RemoveReaction(c.Request.Context(), id, actor); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ReactionCounts handles GET /api/v1/posts/:id/reactions
func (h *EngagementHandler) ReactionCounts(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	counts, err := h.service.ReactionCounts(id)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, counts, nil)
}

// ReactToComment handles PUT /api/v1/comments/:id/reaction
func (h *EngagementHandler) ReactToComment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Reaction domain.CommentReactionKind `json:"reaction" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	actor, ok := h.requireUser(c)
	if !ok {
		return
	}
	if err := h.service.ReactToComment(c.Request.Context(), id, actor, req.Reaction); err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"reaction": req.Reaction}, nil)
}

// Favorite handles POST /api/v1/posts/:id/favorite
func (h *EngagementHandler) Favorite(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Notes string `json:"notes"`
	}
	_ = c.ShouldBindJSON(&req)

	actor, ok := h.requireUser(c)
	if !ok {
		return
	}
	if err := h.service.Favorite(c.Request.Context(), id, actor, req.Notes); err != nil {
		respondError(c, err)
		return
	}
	middleware.CountEngagementEvent("favorite")
	common.SuccessResponse(c, gin.H{"favorited": true}, nil)
}

// Unfavorite handles DELETE /api/v1/posts/:id/favorite
func (h *EngagementHandler) Unfavorite(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	actor, ok := h.requireUser(c)
	if !ok {
		return
	}
	if err := h.service.Unfavorite(c.Request.Context(), id, actor); err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"favorited": false}, nil)
}

// ListFavorites handles GET /api/v1/favorites
func (h *EngagementHandler) ListFavorites(c *gin.Context) {
	page, limit := pagination(c)
	favorites, total, err := h.service.ListFavorites(middleware.GetUserID(c), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, favorites, &common.Meta{Page: page, Limit: limit, Total: total})
}

// RecordView handles POST /api/v1/posts/:id/view
func (h *EngagementHandler) RecordView(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req struct {
		TimeSpent uint `json:"time_spent_seconds"`
	}
	_ = c.ShouldBindJSON(&req)

	if err := h.service.RecordView(c.Request.Context(), id, h.currentUser(c), req.TimeSpent, clientMeta(c)); err != nil {
		respondError(c, err)
		return
	}
	middleware.CountEngagementEvent("view")
	c.Status(http.StatusAccepted)
}

// Share handles POST /api/v1/posts/:id/share
func (h *EngagementHandler) Share(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req service.ShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var actorID *uint64
	if userID := middleware.GetUserID(c); userID != 0 {
		actorID = &userID
	}
	share, err := h.service.Share(c.Request.Context(), id, actorID, &req, clientMeta(c))
	if err != nil {
		respondError(c, err)
		return
	}
	middleware.CountEngagementEvent("share")
	common.CreatedResponse(c, share)
}

// CreateShareableLink handles POST /api/v1/posts/:id/share-links
func (h *EngagementHandler) CreateShareableLink(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req service.ShareableLinkRequest
	_ = c.ShouldBindJSON(&req)

	var creatorID *uint64
	if userID := middleware.GetUserID(c); userID != 0 {
		creatorID = &userID
	}
	link, err := h.service.CreateShareableLink(c.Request.Context(), id, creatorID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.CreatedResponse(c, link)
}

// Platforms handles GET /api/v1/share/platforms
func (h *EngagementHandler) Platforms(c *gin.Context) {
	platforms, err := h.service.Platforms()
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, platforms, nil)
}

// ResolveShareableLink handles GET /api/v1/share/:token
func (h *EngagementHandler) ResolveShareableLink(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid token", nil)
		return
	}
	post, err := h.service.ResolveShareableLink(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, post, nil)
}
