package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/evigdia/evigdia-backend/internal/common"
	"github.com/evigdia/evigdia-backend/internal/domain"
	"github.com/evigdia/evigdia-backend/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubscribeRequest is the newsletter signup payload
type SubscribeRequest struct {
	Email       string         `json:"email" binding:"required,email"`
	Preferences domain.JSONMap `json:"preferences"`
}

// SubscriptionService handles newsletter subscription lifecycle
type SubscriptionService struct {
	db            *gorm.DB
	subscriptions repository.SubscriptionRepository
	notifications repository.NotificationRepository
	broadcaster   AdminBroadcaster
}

// NewSubscriptionService creates a new SubscriptionService
func NewSubscriptionService(
	db *gorm.DB,
	subscriptions repository.SubscriptionRepository,
	notifications repository.NotificationRepository,
	broadcaster AdminBroadcaster,
) *SubscriptionService {
	return &SubscriptionService{
		db:            db,
		subscriptions: subscriptions,
		notifications: notifications,
		broadcaster:   broadcaster,
	}
}

// Subscribe creates a pending subscription and notifies admins. A
// previously unsubscribed address is reactivated with a fresh
// confirmation token.
func (s *SubscriptionService) Subscribe(req *SubscribeRequest, userID *uint64, ip string) (*domain.Subscription, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := s.subscriptions.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.IsActive {
		return nil, common.ErrAlreadyExists
	}

	preferences := req.Preferences
	if preferences == nil {
		preferences = domain.JSONMap{}
	}

	var subscription *domain.Subscription
	var admin *domain.AdminNotification
	err = s.db.Transaction(func(tx *gorm.DB) error {
		subs := s.subscriptions.WithTx(tx)
		if existing != nil {
			existing.IsActive = true
			existing.IsConfirmed = false
			existing.ConfirmationToken = uuid.NewString()
			existing.UnsubscribedAt = nil
			existing.Preferences = preferences
			if err := subs.Update(existing); err != nil {
				return err
			}
			subscription = existing
		} else {
			subscription = &domain.Subscription{
				Email:             email,
				UserID:            userID,
				Token:             uuid.NewString(),
				ConfirmationToken: uuid.NewString(),
				IPAddress:         nullable(ip),
				Preferences:       preferences,
			}
			if err := subs.Create(subscription); err != nil {
				return err
			}
		}

		admin = &domain.AdminNotification{
			Type:               domain.AdminNotifySubscription,
			Title:              "New newsletter subscription",
			Message:            fmt.Sprintf("%s subscribed to the newsletter", email),
			RelatedObjectID:    &subscription.ID,
			RelatedContentType: "subscription",
			Metadata:           domain.JSONMap{},
		}
		return s.notifications.WithTx(tx).CreateAdmin(admin)
	})
	if err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastAdminNotification(admin)
	}
	return subscription, nil
}

// Confirm activates a subscription via its confirmation token
func (s *SubscriptionService) Confirm(token string) (*domain.Subscription, error) {
	subscription, err := s.subscriptions.FindByConfirmationToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	if subscription.IsConfirmed {
		return subscription, nil
	}
	subscription.IsConfirmed = true
	if err := s.subscriptions.Update(subscription); err != nil {
		return nil, err
	}
	return subscription, nil
}

// Unsubscribe deactivates a subscription via its unsubscribe token
func (s *SubscriptionService) Unsubscribe(token string) error {
	subscription, err := s.subscriptions.FindByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrNotFound
		}
		return err
	}
	if !subscription.IsActive {
		return nil
	}
	now := time.Now()
	subscription.IsActive = false
	subscription.UnsubscribedAt = &now
	return s.subscriptions.Update(subscription)
}

// List returns active, confirmed subscriptions
func (s *SubscriptionService) List(page, limit int) ([]*domain.Subscription, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}
	return s.subscriptions.ListActive(page, limit)
}
