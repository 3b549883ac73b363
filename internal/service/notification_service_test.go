package service

import (
	"testing"

	"github.com/evigdia/evigdia-backend/internal/common"
	"github.com/evigdia/evigdia-backend/internal/domain"
	"github.com/evigdia/evigdia-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupNotificationService(t *testing.T) (*gorm.DB, *NotificationService) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Notification{}, &domain.AdminNotification{}))
	return db, NewNotificationService(repository.NewNotificationRepository(db))
}

func seedNotifications(t *testing.T, db *gorm.DB, userID uint64, n int) []*domain.Notification {
	t.Helper()
	out := make([]*domain.Notification, 0, n)
	for i := 0; i < n; i++ {
		notif := &domain.Notification{
			UserID:  userID,
			Type:    domain.NotifyComment,
			Message: "someone commented",
		}
		require.NoError(t, db.Create(notif).Error)
		out = append(out, notif)
	}
	return out
}

func TestNotificationList(t *testing.T) {
	db, svc := setupNotificationService(t)
	seedNotifications(t, db, 1, 3)
	seedNotifications(t, db, 2, 1)

	resp, err := svc.List(1, 1, 20, false)
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Total)
	assert.Equal(t, int64(3), resp.UnreadCount)
	assert.Len(t, resp.Items, 3)
	assert.Equal(t, 1, resp.TotalPages)
}

func TestMarkReadScopedToRecipient(t *testing.T) {
	db, svc := setupNotificationService(t)
	mine := seedNotifications(t, db, 1, 1)[0]

	// another user cannot touch it
	assert.ErrorIs(t, svc.MarkRead(2, mine.ID), common.ErrNotFound)

	require.NoError(t, svc.MarkRead(1, mine.ID))
	summary, err := svc.Summary(1)
	require.NoError(t, err)
	assert.Zero(t, summary.TotalUnread)
}

func TestMarkAllRead(t *testing.T) {
	db, svc := setupNotificationService(t)
	seedNotifications(t, db, 1, 4)

	require.NoError(t, svc.MarkAllRead(1))
	resp, err := svc.List(1, 1, 20, true)
	require.NoError(t, err)
	assert.Zero(t, resp.Total)
}

func TestDeleteNotification(t *testing.T) {
	db, svc := setupNotificationService(t)
	mine := seedNotifications(t, db, 1, 1)[0]

	assert.ErrorIs(t, svc.Delete(2, mine.ID), common.ErrNotFound)
	require.NoError(t, svc.Delete(1, mine.ID))
	assert.ErrorIs(t, svc.Delete(1, mine.ID), common.ErrNotFound)
}

func TestAdminNotifications(t *testing.T) {
	db, svc := setupNotificationService(t)
	admin := &domain.AdminNotification{Type: domain.AdminNotifyComment, Title: "t", Message: "m"}
	require.NoError(t, db.Create(admin).Error)

	list, total, err := svc.ListAdmin(1, 20, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)

	require.NoError(t, svc.MarkAdminRead(admin.ID))
	summary, err := svc.AdminSummary()
	require.NoError(t, err)
	assert.Zero(t, summary.TotalUnread)
}
