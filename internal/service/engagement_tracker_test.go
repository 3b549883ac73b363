package service

import (
	"testing"

	"github.com/evigdia/evigdia-backend/internal/domain"
	"github.com/evigdia/evigdia-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTrackerDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.BlogPost{},
		&domain.Comment{},
		&domain.ActivityLog{},
		&domain.PostView{},
		&domain.Notification{},
		&domain.AdminNotification{},
		&domain.SocialPlatform{},
		&domain.ShareTracking{},
	))
	return db
}

func setupTracker(t *testing.T) (*gorm.DB, *EngagementTracker) {
	t.Helper()
	db := setupTrackerDB(t)
	tracker := NewEngagementTracker(
		"https://example.com",
		repository.NewPostRepository(db),
		repository.NewActivityRepository(db),
		repository.NewNotificationRepository(db),
	)
	return db, tracker
}

func seedPostWithOwner(t *testing.T, db *gorm.DB) (*domain.User, *domain.BlogPost) {
	t.Helper()
	owner := &domain.User{Username: "owner", Email: "owner@example.com", Nickname: "Owner"}
	require.NoError(t, db.Create(owner).Error)
	post := &domain.BlogPost{
		AuthorID: owner.ID,
		Title:    "Hello World",
		Slug:     "hello-world",
		Content:  "content",
		Status:   domain.PostStatusPublished,
	}
	require.NoError(t, db.Create(post).Error)
	return owner, post
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestCommentFanout(t *testing.T) {
	db, tracker := setupTracker(t)
	_, post := seedPostWithOwner(t, db)

	actor := &domain.User{Username: "visitor", Email: "visitor@example.com", Nickname: "Visitor"}
	require.NoError(t, db.Create(actor).Error)

	comment := &domain.Comment{
		PostID:  post.ID,
		UserID:  &actor.ID,
		User:    actor,
		Content: "Great write-up, learned a lot from the section on indexing strategies in particular because it goes deep",
	}
	require.NoError(t, db.Create(comment).Error)

	var admin *domain.AdminNotification
	err := db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		admin, txErr = tracker.OnCommentCreated(tx, post, comment)
		return txErr
	})
	require.NoError(t, err)
	require.NotNil(t, admin)

	var logEntry domain.ActivityLog
	require.NoError(t, db.First(&logEntry).Error)
	assert.Equal(t, domain.ActivityComment, logEntry.ActivityType)
	assert.Len(t, logEntry.Metadata["preview"], 50)

	var owned domain.Notification
	require.NoError(t, db.First(&owned).Error)
	assert.Equal(t, post.AuthorID, owned.UserID)
	assert.Equal(t, domain.NotifyComment, owned.Type)
	assert.Equal(t, "New comment on your post 'Hello World'", owned.Message)
	assert.Equal(t, "https://example.com/blog/hello-world", owned.TargetURL)

	assert.Equal(t, domain.AdminNotifyComment, admin.Type)
	assert.Contains(t, admin.Message, "Visitor commented on 'Hello World':")
	assert.Contains(t, admin.Message, "...")
}

func TestCommentFanoutOwnerSuppressed(t *testing.T) {
	db, tracker := setupTracker(t)
	owner, post := seedPostWithOwner(t, db)

	comment := &domain.Comment{PostID: post.ID, UserID: &owner.ID, User: owner, Content: "replying on my own post"}
	require.NoError(t, db.Create(comment).Error)

	err := db.Transaction(func(tx *gorm.DB) error {
		_, txErr := tracker.OnCommentCreated(tx, post, comment)
		return txErr
	})
	require.NoError(t, err)

	// no owner notification, admin notification still created
	assert.Equal(t, int64(0), countRows(t, db, &domain.Notification{}))
	assert.Equal(t, int64(1), countRows(t, db, &domain.AdminNotification{}))
}

func TestGuestCommentNotifiesOwner(t *testing.T) {
	db, tracker := setupTracker(t)
	_, post := seedPostWithOwner(t, db)

	comment := &domain.Comment{PostID: post.ID, GuestName: "Drive-by", Content: "nice"}
	require.NoError(t, db.Create(comment).Error)

	var admin *domain.AdminNotification
	err := db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		admin, txErr = tracker.OnCommentCreated(tx, post, comment)
		return txErr
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), countRows(t, db, &domain.Notification{}))
	assert.Contains(t, admin.Message, "Drive-by commented")
}

func TestLikeFanoutHasNoAdminNotification(t *testing.T) {
	db, tracker := setupTracker(t)
	_, post := seedPostWithOwner(t, db)

	actor := &domain.User{Username: "liker", Email: "liker@example.com", Nickname: "Liker"}
	require.NoError(t, db.Create(actor).Error)

	err := db.Transaction(func(tx *gorm.DB) error {
		return tracker.OnLikeCreated(tx, post, actor)
	})
	require.NoError(t, err)

	var owned domain.Notification
	require.NoError(t, db.First(&owned).Error)
	assert.Equal(t, "Liker liked your post 'Hello World'", owned.Message)

	assert.Equal(t, int64(1), countRows(t, db, &domain.ActivityLog{}))
	assert.Equal(t, int64(0), countRows(t, db, &domain.AdminNotification{}))
}

func TestReactionFanoutIsAdminOnly(t *testing.T) {
	db, tracker := setupTracker(t)
	_, post := seedPostWithOwner(t, db)

	actor := &domain.User{Username: "reactor", Email: "reactor@example.com", Nickname: "Reactor"}
	require.NoError(t, db.Create(actor).Error)

	var admin *domain.AdminNotification
	err := db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		admin, txErr = tracker.OnReactionCreated(tx, post, actor, domain.ReactionLove)
		return txErr
	})
	require.NoError(t, err)
	require.NotNil(t, admin)

	assert.Equal(t, "Reactor reacted with love to 'Hello World'", admin.Message)
	assert.Equal(t, int64(0), countRows(t, db, &domain.Notification{}))
	assert.Equal(t, int64(0), countRows(t, db, &domain.ActivityLog{}))
}

func TestFavoriteFanout(t *testing.T) {
	db, tracker := setupTracker(t)
	_, post := seedPostWithOwner(t, db)

	actor := &domain.User{Username: "fan", Email: "fan@example.com", Nickname: "Fan"}
	require.NoError(t, db.Create(actor).Error)

	err := db.Transaction(func(tx *gorm.DB) error {
		_, txErr := tracker.OnFavoriteCreated(tx, post, actor)
		return txErr
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), countRows(t, db, &domain.ActivityLog{}))
	assert.Equal(t, int64(1), countRows(t, db, &domain.Notification{}))
	assert.Equal(t, int64(1), countRows(t, db, &domain.AdminNotification{}))
}

func TestViewFanoutIncrementsCounter(t *testing.T) {
	db, tracker := setupTracker(t)
	_, post := seedPostWithOwner(t, db)

	view := &domain.PostView{
		PostID:    post.ID,
		IPAddress: "10.1.2.3",
		UserAgent: "test-agent",
		TimeSpent: 42,
	}
	require.NoError(t, db.Create(view).Error)

	var admin *domain.AdminNotification
	err := db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		admin, txErr = tracker.OnViewCreated(tx, post, view, nil)
		return txErr
	})
	require.NoError(t, err)

	var reloaded domain.BlogPost
	require.NoError(t, db.First(&reloaded, post.ID).Error)
	assert.Equal(t, uint(1), reloaded.ViewCount)

	assert.Equal(t, "Anonymous (10.1.2.3) viewed 'Hello World' (time spent: 42s)", admin.Message)

	var logEntry domain.ActivityLog
	require.NoError(t, db.First(&logEntry).Error)
	assert.Equal(t, "test-agent", logEntry.Metadata["user_agent"])
}

func TestViewFanoutIdentifiedViewer(t *testing.T) {
	db, tracker := setupTracker(t)
	_, post := seedPostWithOwner(t, db)

	viewer := &domain.User{Username: "reader", Email: "reader@example.com"}
	require.NoError(t, db.Create(viewer).Error)
	view := &domain.PostView{PostID: post.ID, UserID: &viewer.ID, IPAddress: "10.0.0.1", TimeSpent: 5}
	require.NoError(t, db.Create(view).Error)

	var admin *domain.AdminNotification
	err := db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		admin, txErr = tracker.OnViewCreated(tx, post, view, viewer)
		return txErr
	})
	require.NoError(t, err)
	assert.Contains(t, admin.Message, "reader@example.com viewed")
}

func TestShareFanout(t *testing.T) {
	db, tracker := setupTracker(t)
	_, post := seedPostWithOwner(t, db)

	platform := &domain.SocialPlatform{Name: "twitter", IsActive: true}
	require.NoError(t, db.Create(platform).Error)
	share := &domain.ShareTracking{
		PostID:     post.ID,
		PlatformID: &platform.ID,
		Platform:   platform,
		Method:     domain.ShareMethodSocial,
	}
	require.NoError(t, db.Create(share).Error)

	var admin *domain.AdminNotification
	err := db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		admin, txErr = tracker.OnShareCreated(tx, post, share)
		return txErr
	})
	require.NoError(t, err)

	assert.Equal(t, "'Hello World' was shared via twitter", admin.Message)

	var logEntry domain.ActivityLog
	require.NoError(t, db.First(&logEntry).Error)
	assert.Equal(t, domain.ActivityShare, logEntry.ActivityType)
	assert.Equal(t, "twitter", logEntry.Metadata["platform"])
}

func TestDirectShareFanout(t *testing.T) {
	db, tracker := setupTracker(t)
	_, post := seedPostWithOwner(t, db)

	share := &domain.ShareTracking{PostID: post.ID, Method: domain.ShareMethodLink}
	require.NoError(t, db.Create(share).Error)

	var admin *domain.AdminNotification
	err := db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		admin, txErr = tracker.OnShareCreated(tx, post, share)
		return txErr
	})
	require.NoError(t, err)
	assert.Equal(t, "'Hello World' was shared via direct", admin.Message)
}

func TestCommentFanoutRollsBackTogether(t *testing.T) {
	db, tracker := setupTracker(t)
	_, post := seedPostWithOwner(t, db)

	comment := &domain.Comment{PostID: post.ID, GuestName: "g", Content: "x"}
	require.NoError(t, db.Create(comment).Error)

	err := db.Transaction(func(tx *gorm.DB) error {
		if _, txErr := tracker.OnCommentCreated(tx, post, comment); txErr != nil {
			return txErr
		}
		return gorm.ErrInvalidTransaction
	})
	require.Error(t, err)

	assert.Equal(t, int64(0), countRows(t, db, &domain.ActivityLog{}))
	assert.Equal(t, int64(0), countRows(t, db, &domain.Notification{}))
	assert.Equal(t, int64(0), countRows(t, db, &domain.AdminNotification{}))
}
