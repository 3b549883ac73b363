package service

import (
	"context"
	"errors"
	"time"

	"github.com/evigdia/evigdia-backend/internal/common"
	"github.com/evigdia/evigdia-backend/internal/domain"
	"github.com/evigdia/evigdia-backend/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminBroadcaster pushes admin notifications to connected admin clients.
// Implemented by the websocket hub; a nil broadcaster disables pushes.
type AdminBroadcaster interface {
	BroadcastAdminNotification(n *domain.AdminNotification)
}

// ClientMeta carries request-level client attributes into event records
type ClientMeta struct {
	IPAddress string
	UserAgent string
	Referrer  string
}

// CommentRequest is the payload for posting a comment
type CommentRequest struct {
	Content    string  `json:"content" binding:"required"`
	ParentID   *uint64 `json:"parent_id"`
	GuestName  string  `json:"guest_name"`
	GuestEmail string  `json:"guest_email"`
}

// ShareRequest is the payload for recording a share
type ShareRequest struct {
	Platform string             `json:"platform"`
	Method   domain.ShareMethod `json:"method"`
}

// ShareableLinkRequest is the payload for minting a shareable link
type ShareableLinkRequest struct {
	ExpiresIn *int   `json:"expires_in_hours"`
	MaxUses   *uint  `json:"max_uses"`
	Notes     string `json:"notes"`
}

// EngagementService creates engagement events and runs their fan-out.
// Every event is created in one transaction together with its derived
// records, so either everything lands or nothing does.
type EngagementService struct {
	db          *gorm.DB
	posts       repository.PostRepository
	comments    repository.CommentRepository
	reactions   repository.ReactionRepository
	sharing     repository.SharingRepository
	tracker     *EngagementTracker
	broadcaster AdminBroadcaster
}

// NewEngagementService creates a new EngagementService
func NewEngagementService(
	db *gorm.DB,
	posts repository.PostRepository,
	comments repository.CommentRepository,
	reactions repository.ReactionRepository,
	sharing repository.SharingRepository,
	tracker *EngagementTracker,
	broadcaster AdminBroadcaster,
) *EngagementService {
	return &EngagementService{
		db:          db,
		posts:       posts,
		comments:    comments,
		reactions:   reactions,
		sharing:     sharing,
		tracker:     tracker,
		broadcaster: broadcaster,
	}
}

func (s *EngagementService) push(admin *domain.AdminNotification) {
	if s.broadcaster != nil && admin != nil {
		s.broadcaster.BroadcastAdminNotification(admin)
	}
}

func (s *EngagementService) findPost(postID uint64) (*domain.BlogPost, error) {
	post, err := s.posts.FindByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

// AddComment creates a comment and its fan-out. Authenticated comments are
// approved immediately; guest comments await moderation.
func (s *EngagementService) AddComment(ctx context.Context, postID uint64, actor *domain.User, req *CommentRequest, meta ClientMeta) (*domain.Comment, error) {
	post, err := s.findPost(postID)
	if err != nil {
		return nil, err
	}
	if !post.AllowComments {
		return nil, common.ErrCommentsDisabled
	}
	if actor == nil && req.GuestName == "" {
		return nil, common.ErrInvalidInput
	}
	if req.ParentID != nil {
		parent, err := s.comments.FindByID(*req.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, common.ErrCommentNotFound
			}
			return nil, err
		}
		if parent.PostID != postID {
			return nil, common.ErrInvalidInput
		}
	}

	comment := &domain.Comment{
		PostID:     postID,
		ParentID:   req.ParentID,
		Content:    req.Content,
		GuestName:  req.GuestName,
		GuestEmail: req.GuestEmail,
		IsApproved: actor != nil,
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
		Referrer:   meta.Referrer,
	}
	if actor != nil {
		comment.UserID = &actor.ID
		comment.User = actor
	}

	var admin *domain.AdminNotification
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.comments.WithTx(tx).Create(comment); err != nil {
			return err
		}
		// comment_count tracks approved comments only; guest comments
		// join it when moderation approves them
		if comment.IsApproved {
			if err := s.posts.WithTx(tx).IncrementCommentCount(postID, 1); err != nil {
				return err
			}
		}
		admin, err = s.tracker.OnCommentCreated(tx, post, comment)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.push(admin)
	return comment, nil
}

// Like records a like and its fan-out. One like per (user, post).
func (s *EngagementService) Like(ctx context.Context, postID uint64, actor *domain.User) error {
	if actor == nil {
		return common.ErrForbidden
	}
	post, err := s.findPost(postID)
	if err != nil {
		return err
	}
	existing, err := s.reactions.FindLike(actor.ID, postID)
	if err != nil {
		return err
	}
	if existing != nil {
		return common.ErrAlreadyExists
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.reactions.WithTx(tx).CreateLike(&domain.Like{UserID: actor.ID, PostID: postID}); err != nil {
			return err
		}
		if err := s.posts.WithTx(tx).IncrementLikeCount(postID, 1); err != nil {
			return err
		}
		return s.tracker.OnLikeCreated(tx, post, actor)
	})
}

// Unlike removes a like
func (s *EngagementService) Unlike(ctx context.Context, postID uint64, actor *domain.User) error {
	if actor == nil {
		return common.ErrForbidden
	}
	if _, err := s.findPost(postID); err != nil {
		return err
	}
	existing, err := s.reactions.FindLike(actor.ID, postID)
	if err != nil {
		return err
	}
	if existing == nil {
		return common.ErrNotFound
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.reactions.WithTx(tx).DeleteLike(actor.ID, postID); err != nil {
			return err
		}
		return s.posts.WithTx(tx).IncrementLikeCount(postID, -1)
	})
}

// React sets the user's reaction on a post, replacing any previous kind
func (s *EngagementService) React(ctx context.Context, postID uint64, actor *domain.User, kind domain.ReactionKind) error {
	if actor == nil {
		return common.ErrForbidden
	}
	if !domain.ValidReactionKind(kind) {
		return common.ErrInvalidInput
	}
	post, err := s.findPost(postID)
	if err != nil {
		return err
	}

	var admin *domain.AdminNotification
	err = s.db.Transaction(func(tx *gorm.DB) error {
		reaction := &domain.PostReaction{UserID: actor.ID, PostID: postID, Reaction: kind}
		if err := s.reactions.WithTx(tx).UpsertPostReaction(reaction); err != nil {
			return err
		}
		admin, err = s.tracker.OnReactionCreated(tx, post, actor, kind)
		return err
	})
	if err != nil {
		return err
	}

	s.push(admin)
	return nil
}

// RemoveReaction clears the user's reaction on a post
func (s *EngagementService) RemoveReaction(ctx context.Context, postID uint64, actor *domain.User) error {
	if actor == nil {
		return common.ErrForbidden
	}
	if _, err := s.findPost(postID); err != nil {
		return err
	}
	return s.reactions.DeletePostReaction(actor.ID, postID)
}

// ReactionCounts returns per-kind reaction counts for a post
func (s *EngagementService) ReactionCounts(postID uint64) (map[domain.ReactionKind]int64, error) {
	if _, err := s.findPost(postID); err != nil {
		return nil, err
	}
	return s.reactions.CountPostReactions(postID)
}

// ReactToComment sets the user's reaction on a comment
func (s *EngagementService) ReactToComment(ctx context.Context, commentID uint64, actor *domain.User, kind domain.CommentReactionKind) error {
	if actor == nil {
		return common.ErrForbidden
	}
	if !domain.ValidCommentReactionKind(kind) {
		return common.ErrInvalidInput
	}
	if _, err := s.comments.FindByID(commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrCommentNotFound
		}
		return err
	}
	reaction := &domain.CommentReaction{UserID: actor.ID, CommentID: commentID, Reaction: kind}
	return s.reactions.UpsertCommentReaction(reaction)
}

// Favorite bookmarks a post and runs the fan-out
func (s *EngagementService) Favorite(ctx context.Context, postID uint64, actor *domain.User, notes string) error {
	if actor == nil {
		return common.ErrForbidden
	}
	post, err := s.findPost(postID)
	if err != nil {
		return err
	}
	existing, err := s.reactions.FindFavorite(actor.ID, postID)
	if err != nil {
		return err
	}
	if existing != nil {
		return common.ErrAlreadyExists
	}

	var admin *domain.AdminNotification
	err = s.db.Transaction(func(tx *gorm.DB) error {
		favorite := &domain.Favorite{UserID: actor.ID, PostID: postID, Notes: notes}
		if err := s.reactions.WithTx(tx).CreateFavorite(favorite); err != nil {
			return err
		}
		admin, err = s.tracker.OnFavoriteCreated(tx, post, actor)
		return err
	})
	if err != nil {
		return err
	}

	s.push(admin)
	return nil
}

// Unfavorite removes a bookmark
func (s *EngagementService) Unfavorite(ctx context.Context, postID uint64, actor *domain.User) error {
	if actor == nil {
		return common.ErrForbidden
	}
	if _, err := s.findPost(postID); err != nil {
		return err
	}
	return s.reactions.DeleteFavorite(actor.ID, postID)
}

// ListFavorites returns the user's bookmarked posts
func (s *EngagementService) ListFavorites(userID uint64, page, limit int) ([]*domain.Favorite, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.reactions.ListFavorites(userID, page, limit)
}

// RecordView records a view event: a view row, an activity log entry, an
// atomic view_count bump and an admin notification, all in one transaction.
func (s *EngagementService) RecordView(ctx context.Context, postID uint64, viewer *domain.User, timeSpent uint, meta ClientMeta) error {
	post, err := s.findPost(postID)
	if err != nil {
		return err
	}

	view := &domain.PostView{
		PostID:    postID,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		Referrer:  meta.Referrer,
		TimeSpent: timeSpent,
	}
	if viewer != nil {
		view.UserID = &viewer.ID
	}

	var admin *domain.AdminNotification
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := repository.NewActivityRepository(tx).CreateView(view); err != nil {
			return err
		}
		admin, err = s.tracker.OnViewCreated(tx, post, view, viewer)
		return err
	})
	if err != nil {
		return err
	}

	s.push(admin)
	return nil
}

// Share records a share event against a platform (or a direct share) and
// runs the fan-out
func (s *EngagementService) Share(ctx context.Context, postID uint64, actorID *uint64, req *ShareRequest, meta ClientMeta) (*domain.ShareTracking, error) {
	post, err := s.findPost(postID)
	if err != nil {
		return nil, err
	}
	method := req.Method
	if method == "" {
		method = domain.ShareMethodSocial
	}
	if !domain.ValidShareMethod(method) {
		return nil, common.ErrInvalidInput
	}

	share := &domain.ShareTracking{
		PostID:    postID,
		UserID:    actorID,
		Method:    method,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		Referrer:  meta.Referrer,
		Metadata:  domain.JSONMap{},
	}
	if req.Platform != "" {
		platform, err := s.sharing.FindPlatformByName(req.Platform)
		if err != nil {
			return nil, err
		}
		if platform == nil {
			return nil, common.ErrInvalidInput
		}
		share.PlatformID = &platform.ID
		share.Platform = platform
	}

	var admin *domain.AdminNotification
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.sharing.WithTx(tx).CreateShare(share); err != nil {
			return err
		}
		admin, err = s.tracker.OnShareCreated(tx, post, share)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.push(admin)
	return share, nil
}

// CreateShareableLink mints a tokenized link to a post
func (s *EngagementService) CreateShareableLink(ctx context.Context, postID uint64, creatorID *uint64, req *ShareableLinkRequest) (*domain.ShareableLink, error) {
	if _, err := s.findPost(postID); err != nil {
		return nil, err
	}

	link := &domain.ShareableLink{
		PostID:    postID,
		CreatorID: creatorID,
		Token:     uuid.NewString(),
		MaxUses:   req.MaxUses,
		Notes:     req.Notes,
		IsActive:  true,
	}
	if req.ExpiresIn != nil {
		expiration := time.Now().Add(time.Duration(*req.ExpiresIn) * time.Hour)
		link.Expiration = &expiration
	}
	if err := s.sharing.CreateLink(link); err != nil {
		return nil, err
	}
	return link, nil
}

// ResolveShareableLink validates a link token and returns the target post,
// counting the use
func (s *EngagementService) ResolveShareableLink(ctx context.Context, token string) (*domain.BlogPost, error) {
	link, err := s.sharing.FindLinkByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	if !link.IsActive || link.IsExpired(time.Now()) {
		return nil, common.ErrLinkExpired
	}
	if link.MaxUses != nil && link.UseCount >= *link.MaxUses {
		return nil, common.ErrLinkExpired
	}

	post, err := s.findPost(link.PostID)
	if err != nil {
		return nil, err
	}
	if err := s.sharing.IncrementLinkUse(link.ID); err != nil {
		return nil, err
	}
	return post, nil
}

// ApproveComment releases a comment from the moderation queue and adds
// it to the post's comment_count
func (s *EngagementService) ApproveComment(ctx context.Context, commentID uint64) error {
	comment, err := s.comments.FindByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrCommentNotFound
		}
		return err
	}
	if comment.IsApproved {
		return nil
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.comments.WithTx(tx).Approve(commentID); err != nil {
			return err
		}
		return s.posts.WithTx(tx).IncrementCommentCount(comment.PostID, 1)
	})
}

// MarkCommentSpam flags a comment as spam, hiding it from listings
func (s *EngagementService) MarkCommentSpam(ctx context.Context, commentID uint64) error {
	comment, err := s.comments.FindByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrCommentNotFound
		}
		return err
	}
	if comment.IsSpam {
		return nil
	}
	// only approved comments are counted, so only those give the count back
	if !comment.IsApproved {
		return s.comments.MarkSpam(commentID)
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.comments.WithTx(tx).MarkSpam(commentID); err != nil {
			return err
		}
		return s.posts.WithTx(tx).IncrementCommentCount(comment.PostID, -1)
	})
}

// Platforms returns the active social platforms shares can target.
func (s *EngagementService) Platforms() ([]*domain.SocialPlatform, error) {
	return s.sharing.ListPlatforms(true)
}

// Comments returns a post's comments
func (s *EngagementService) Comments(postID uint64, page, limit int, includeUnapproved bool) ([]*domain.Comment, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}
	if _, err := s.findPost(postID); err != nil {
		return nil, 0, err
	}
	return s.comments.FindByPost(postID, page, limit, !includeUnapproved)
}

// DeleteComment removes a comment. Only the comment author, the post
// owner or an admin may delete.
func (s *EngagementService) DeleteComment(ctx context.Context, commentID uint64, actor *domain.User) error {
	if actor == nil {
		return common.ErrForbidden
	}
	comment, err := s.comments.FindByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrCommentNotFound
		}
		return err
	}
	post, err := s.findPost(comment.PostID)
	if err != nil {
		return err
	}

	isAuthor := comment.UserID != nil && *comment.UserID == actor.ID
	if !isAuthor && post.AuthorID != actor.ID && !actor.IsAdmin() {
		return common.ErrForbidden
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.comments.WithTx(tx).Delete(commentID); err != nil {
			return err
		}
		// spam and still-pending comments were never counted
		if !comment.IsApproved {
			return nil
		}
		return s.posts.WithTx(tx).IncrementCommentCount(comment.PostID, -1)
	})
}
