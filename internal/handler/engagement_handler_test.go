package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/evigdia/evigdia-backend/internal/domain"
	"github.com/evigdia/evigdia-backend/internal/middleware"
	"github.com/evigdia/evigdia-backend/internal/repository"
	"github.com/evigdia/evigdia-backend/internal/service"
	"github.com/evigdia/evigdia-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func engagementRouter(t *testing.T, manager *jwt.Manager) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.BlogPost{},
		&domain.Comment{},
		&domain.Like{},
		&domain.PostReaction{},
		&domain.CommentReaction{},
		&domain.Favorite{},
		&domain.ActivityLog{},
		&domain.PostView{},
		&domain.Notification{},
		&domain.AdminNotification{},
		&domain.SocialPlatform{},
		&domain.ShareTracking{},
		&domain.ShareableLink{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	posts := repository.NewPostRepository(db)
	tracker := service.NewEngagementTracker(
		"https://example.com",
		posts,
		repository.NewActivityRepository(db),
		repository.NewNotificationRepository(db),
	)
	svc := service.NewEngagementService(
		db,
		posts,
		repository.NewCommentRepository(db),
		repository.NewReactionRepository(db),
		repository.NewSharingRepository(db),
		tracker,
		nil,
	)
	h := NewEngagementHandler(svc, repository.NewUserRepository(db))

	r := gin.New()
	r.POST("/posts/id/:id/like", middleware.JWTAuth(manager), h.Like)
	return r, db
}

func seedHandlerPost(t *testing.T, db *gorm.DB) (*domain.User, *domain.BlogPost) {
	t.Helper()
	owner := &domain.User{Username: "owner", Email: "owner@example.com"}
	if err := db.Create(owner).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	post := &domain.BlogPost{
		AuthorID: owner.ID,
		Title:    "Post",
		Slug:     "post",
		Content:  "content",
		Status:   domain.PostStatusPublished,
	}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("seed post: %v", err)
	}
	return owner, post
}

func TestLike_StaleTokenUnauthorized(t *testing.T) {
	manager := jwt.NewManager("test-secret", 1, 24)
	r, db := engagementRouter(t, manager)
	_, post := seedHandlerPost(t, db)

	// token verifies but the user row no longer exists
	token, err := manager.GenerateToken(999, "ghost", "Ghost", 1)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/id/1/like", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}

	var reloaded domain.BlogPost
	if err := db.First(&reloaded, post.ID).Error; err != nil {
		t.Fatalf("reload post: %v", err)
	}
	if reloaded.LikeCount != 0 {
		t.Errorf("expected like_count 0, got %d", reloaded.LikeCount)
	}
}

func TestLike_KnownUser(t *testing.T) {
	manager := jwt.NewManager("test-secret", 1, 24)
	r, db := engagementRouter(t, manager)
	owner, _ := seedHandlerPost(t, db)

	token, err := manager.GenerateToken(owner.ID, owner.Username, "Owner", 1)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/id/1/like", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}
