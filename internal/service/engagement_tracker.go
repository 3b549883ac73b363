package service

import (
	"fmt"

	"github.com/evigdia/evigdia-backend/internal/common"
	"github.com/evigdia/evigdia-backend/internal/domain"
	"github.com/evigdia/evigdia-backend/internal/repository"
	"gorm.io/gorm"
)

// EngagementTracker derives the downstream records for a freshly created
// engagement event: an activity log entry, at most one notification to the
// post owner, and an admin notification. Every method runs inside the
// caller's transaction, so a failed derivation rolls back the event itself.
//
// Each tracked event kind has its own fan-out:
//
//	comment   log + owner notification + admin notification
//	like      log + owner notification
//	reaction  admin notification only
//	favorite  log + owner notification + admin notification
//	view      log + atomic view_count increment + admin notification
//	share     post touch + log + admin notification
//
// Owner notifications are suppressed when the actor is the owner.
// Methods return the created admin notification, if any, so the caller
// can push it to connected admin clients after commit.
type EngagementTracker struct {
	baseURL       string
	posts         repository.PostRepository
	activity      repository.ActivityRepository
	notifications repository.NotificationRepository
}

// NewEngagementTracker creates a new EngagementTracker
func NewEngagementTracker(
	baseURL string,
	posts repository.PostRepository,
	activity repository.ActivityRepository,
	notifications repository.NotificationRepository,
) *EngagementTracker {
	return &EngagementTracker{
		baseURL:       baseURL,
		posts:         posts,
		activity:      activity,
		notifications: notifications,
	}
}

// OnCommentCreated records the fan-out for a new comment
func (t *EngagementTracker) OnCommentCreated(tx *gorm.DB, post *domain.BlogPost, comment *domain.Comment) (*domain.AdminNotification, error) {
	log := &domain.ActivityLog{
		ActivityType: domain.ActivityComment,
		UserID:       comment.UserID,
		PostID:       &post.ID,
		IPAddress:    nullable(comment.IPAddress),
		Metadata: domain.JSONMap{
			"comment_id": comment.ID,
			"preview":    common.Truncate(comment.Content, 50),
		},
	}
	if err := t.activity.WithTx(tx).CreateLog(log); err != nil {
		return nil, err
	}

	if comment.UserID == nil || *comment.UserID != post.AuthorID {
		notification := &domain.Notification{
			UserID:        post.AuthorID,
			Type:          domain.NotifyComment,
			Message:       fmt.Sprintf("New comment on your post '%s'", post.Title),
			TargetURL:     post.Permalink(t.baseURL),
			RelatedPostID: &post.ID,
		}
		if err := t.notifications.WithTx(tx).Create(notification); err != nil {
			return nil, err
		}
	}

	admin := &domain.AdminNotification{
		Type:               domain.AdminNotifyComment,
		Title:              fmt.Sprintf("New comment on '%s'", post.Title),
		Message:            fmt.Sprintf("%s commented on '%s': %s", comment.DisplayName(), post.Title, preview(comment.Content, 100)),
		RelatedObjectID:    &comment.ID,
		RelatedContentType: "comment",
		Metadata:           domain.JSONMap{"post_id": post.ID},
	}
	if err := t.notifications.WithTx(tx).CreateAdmin(admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// OnLikeCreated records the fan-out for a new like. Plain likes carry no
// admin notification.
func (t *EngagementTracker) OnLikeCreated(tx *gorm.DB, post *domain.BlogPost, actor *domain.User) error {
	log := &domain.ActivityLog{
		ActivityType: domain.ActivityLike,
		UserID:       &actor.ID,
		PostID:       &post.ID,
		Metadata:     domain.JSONMap{},
	}
	if err := t.activity.WithTx(tx).CreateLog(log); err != nil {
		return err
	}

	if actor.ID != post.AuthorID {
		notification := &domain.Notification{
			UserID:        post.AuthorID,
			Type:          domain.NotifyLike,
			Message:       fmt.Sprintf("%s liked your post '%s'", actor.DisplayName(), post.Title),
			TargetURL:     post.Permalink(t.baseURL),
			RelatedPostID: &post.ID,
		}
		if err := t.notifications.WithTx(tx).Create(notification); err != nil {
			return err
		}
	}
	return nil
}

// OnReactionCreated records the fan-out for a new post reaction. Reactions
// produce an admin notification only: no activity log and no owner
// notification, unlike likes and favorites.
func (t *EngagementTracker) OnReactionCreated(tx *gorm.DB, post *domain.BlogPost, actor *domain.User, kind domain.ReactionKind) (*domain.AdminNotification, error) {
	admin := &domain.AdminNotification{
		Type:               domain.AdminNotifyReaction,
		Title:              fmt.Sprintf("New reaction on '%s'", post.Title),
		Message:            fmt.Sprintf("%s reacted with %s to '%s'", actor.DisplayName(), kind, post.Title),
		RelatedObjectID:    &post.ID,
		RelatedContentType: "post",
		Metadata:           domain.JSONMap{"reaction": string(kind)},
	}
	if err := t.notifications.WithTx(tx).CreateAdmin(admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// OnFavoriteCreated records the fan-out for a new favorite
func (t *EngagementTracker) OnFavoriteCreated(tx *gorm.DB, post *domain.BlogPost, actor *domain.User) (*domain.AdminNotification, error) {
	log := &domain.ActivityLog{
		ActivityType: domain.ActivityFavorite,
		UserID:       &actor.ID,
		PostID:       &post.ID,
		Metadata:     domain.JSONMap{},
	}
	if err := t.activity.WithTx(tx).CreateLog(log); err != nil {
		return nil, err
	}

	if actor.ID != post.AuthorID {
		notification := &domain.Notification{
			UserID:        post.AuthorID,
			Type:          domain.NotifyFavorite,
			Message:       fmt.Sprintf("%s added your post '%s' to favorites", actor.DisplayName(), post.Title),
			TargetURL:     post.Permalink(t.baseURL),
			RelatedPostID: &post.ID,
		}
		if err := t.notifications.WithTx(tx).Create(notification); err != nil {
			return nil, err
		}
	}

	admin := &domain.AdminNotification{
		Type:               domain.AdminNotifyFavorite,
		Title:              fmt.Sprintf("Post favorited: '%s'", post.Title),
		Message:            fmt.Sprintf("%s favorited '%s'", actor.DisplayName(), post.Title),
		RelatedObjectID:    &post.ID,
		RelatedContentType: "post",
		Metadata:           domain.JSONMap{},
	}
	if err := t.notifications.WithTx(tx).CreateAdmin(admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// OnViewCreated records the fan-out for a new post view. The view counter
// is bumped with a database-level increment so concurrent viewers never
// lose updates.
func (t *EngagementTracker) OnViewCreated(tx *gorm.DB, post *domain.BlogPost, view *domain.PostView, viewer *domain.User) (*domain.AdminNotification, error) {
	log := &domain.ActivityLog{
		ActivityType: domain.ActivityPostView,
		UserID:       view.UserID,
		PostID:       &post.ID,
		IPAddress:    nullable(view.IPAddress),
		Metadata: domain.JSONMap{
			"user_agent": view.UserAgent,
			"referrer":   view.Referrer,
		},
	}
	if err := t.activity.WithTx(tx).CreateLog(log); err != nil {
		return nil, err
	}

	if err := t.posts.WithTx(tx).IncrementViewCount(post.ID); err != nil {
		return nil, err
	}

	identity := fmt.Sprintf("Anonymous (%s)", view.IPAddress)
	if viewer != nil {
		identity = viewer.Email
	}
	admin := &domain.AdminNotification{
		Type:               domain.AdminNotifyPostView,
		Title:              fmt.Sprintf("Post viewed: '%s'", post.Title),
		Message:            fmt.Sprintf("%s viewed '%s' (time spent: %ds)", identity, post.Title, view.TimeSpent),
		RelatedObjectID:    &post.ID,
		RelatedContentType: "post",
		Metadata:           domain.JSONMap{"time_spent": view.TimeSpent},
	}
	if err := t.notifications.WithTx(tx).CreateAdmin(admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// OnShareCreated records the fan-out for a new share. The post itself is
// touched so its updated_at reflects the share.
func (t *EngagementTracker) OnShareCreated(tx *gorm.DB, post *domain.BlogPost, share *domain.ShareTracking) (*domain.AdminNotification, error) {
	if err := t.posts.WithTx(tx).Touch(post.ID); err != nil {
		return nil, err
	}

	log := &domain.ActivityLog{
		ActivityType: domain.ActivityShare,
		UserID:       share.UserID,
		PostID:       &post.ID,
		IPAddress:    nullable(share.IPAddress),
		Metadata: domain.JSONMap{
			"platform": share.PlatformName(),
			"method":   string(share.Method),
		},
	}
	if err := t.activity.WithTx(tx).CreateLog(log); err != nil {
		return nil, err
	}

	admin := &domain.AdminNotification{
		Type:               domain.AdminNotifyShare,
		Title:              fmt.Sprintf("Post shared: '%s'", post.Title),
		Message:            fmt.Sprintf("'%s' was shared via %s", post.Title, share.PlatformName()),
		RelatedObjectID:    &share.ID,
		RelatedContentType: "share",
		Metadata:           domain.JSONMap{"post_id": post.ID},
	}
	if err := t.notifications.WithTx(tx).CreateAdmin(admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// preview cuts s to n bytes and marks the cut with an ellipsis
func preview(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return common.Truncate(s, n) + "..."
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
