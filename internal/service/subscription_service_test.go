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

func setupSubscriptionService(t *testing.T) (*gorm.DB, *SubscriptionService) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Subscription{}, &domain.Notification{}, &domain.AdminNotification{}))
	subs := repository.NewSubscriptionRepository(db)
	notifs := repository.NewNotificationRepository(db)
	return db, NewSubscriptionService(db, subs, notifs, nil)
}

func TestSubscribe(t *testing.T) {
	db, svc := setupSubscriptionService(t)

	sub, err := svc.Subscribe(&SubscribeRequest{Email: "  Reader@Example.COM "}, nil, "10.0.0.1")
	require.NoError(t, err)

	assert.Equal(t, "reader@example.com", sub.Email)
	assert.False(t, sub.IsConfirmed)
	assert.True(t, sub.IsActive)
	assert.NotEmpty(t, sub.Token)
	assert.NotEmpty(t, sub.ConfirmationToken)

	// subscribing creates an admin notification
	var admin domain.AdminNotification
	require.NoError(t, db.First(&admin).Error)
	assert.Equal(t, domain.AdminNotifySubscription, admin.Type)
}

func TestSubscribeDuplicate(t *testing.T) {
	_, svc := setupSubscriptionService(t)

	_, err := svc.Subscribe(&SubscribeRequest{Email: "dup@example.com"}, nil, "")
	require.NoError(t, err)
	_, err = svc.Subscribe(&SubscribeRequest{Email: "dup@example.com"}, nil, "")
	assert.ErrorIs(t, err, common.ErrAlreadyExists)
}

func TestConfirm(t *testing.T) {
	_, svc := setupSubscriptionService(t)

	sub, err := svc.Subscribe(&SubscribeRequest{Email: "confirm@example.com"}, nil, "")
	require.NoError(t, err)

	confirmed, err := svc.Confirm(sub.ConfirmationToken)
	require.NoError(t, err)
	assert.True(t, confirmed.IsConfirmed)

	// confirming twice is idempotent
	again, err := svc.Confirm(sub.ConfirmationToken)
	require.NoError(t, err)
	assert.True(t, again.IsConfirmed)
}

func TestConfirmUnknownToken(t *testing.T) {
	_, svc := setupSubscriptionService(t)
	_, err := svc.Confirm("no-such-token")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestUnsubscribeAndResubscribe(t *testing.T) {
	_, svc := setupSubscriptionService(t)

	sub, err := svc.Subscribe(&SubscribeRequest{Email: "cycle@example.com"}, nil, "")
	require.NoError(t, err)
	require.NoError(t, svc.Unsubscribe(sub.Token))

	// the address can sign up again and gets a fresh confirmation token
	again, err := svc.Subscribe(&SubscribeRequest{Email: "cycle@example.com"}, nil, "")
	require.NoError(t, err)
	assert.True(t, again.IsActive)
	assert.False(t, again.IsConfirmed)
	assert.NotEqual(t, sub.ConfirmationToken, again.ConfirmationToken)
}
