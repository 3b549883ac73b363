package service

import (
	"errors"
	"fmt"

	"github.com/evigdia/evigdia-backend/internal/common"
	"github.com/evigdia/evigdia-backend/internal/domain"
	"github.com/evigdia/evigdia-backend/internal/repository"
	"gorm.io/gorm"
)

// ContactRequest is the contact form payload
type ContactRequest struct {
	FullName               string `json:"full_name" binding:"required,max=255"`
	Email                  string `json:"email" binding:"required,email"`
	PhoneNumber            string `json:"phone_number" binding:"max=20"`
	Subject                string `json:"subject" binding:"required,max=255"`
	PreferredContactMethod string `json:"preferred_contact_method"`
	UrgencyLevel           string `json:"urgency_level"`
	MessageContent         string `json:"message_content" binding:"required"`
	PrivacyPolicyAccepted  bool   `json:"privacy_policy_accepted"`
}

// ContactService handles contact form intake
type ContactService struct {
	db            *gorm.DB
	contacts      repository.ContactRepository
	notifications repository.NotificationRepository
	broadcaster   AdminBroadcaster
}

// NewContactService creates a new ContactService
func NewContactService(
	db *gorm.DB,
	contacts repository.ContactRepository,
	notifications repository.NotificationRepository,
	broadcaster AdminBroadcaster,
) *ContactService {
	return &ContactService{
		db:            db,
		contacts:      contacts,
		notifications: notifications,
		broadcaster:   broadcaster,
	}
}

// Submit validates and stores a contact submission. A phone number is
// required when the submitter asks to be reached by phone.
func (s *ContactService) Submit(req *ContactRequest, meta ClientMeta, language string) (*domain.ContactSubmission, error) {
	if !req.PrivacyPolicyAccepted {
		return nil, common.ErrInvalidInput
	}

	method := domain.ContactMethod(req.PreferredContactMethod)
	if method == "" {
		method = domain.ContactByEmail
	}
	switch method {
	case domain.ContactByEmail, domain.ContactByPhone, domain.ContactByEither:
	default:
		return nil, common.ErrInvalidInput
	}
	if (method == domain.ContactByPhone || method == domain.ContactByEither) && req.PhoneNumber == "" {
		return nil, common.ErrInvalidInput
	}

	urgency := domain.UrgencyLevel(req.UrgencyLevel)
	if urgency != "" {
		switch urgency {
		case domain.UrgencyLow, domain.UrgencyMedium, domain.UrgencyHigh, domain.UrgencyCritical:
		default:
			return nil, common.ErrInvalidInput
		}
	}

	submission := &domain.ContactSubmission{
		FullName:               req.FullName,
		Email:                  req.Email,
		PhoneNumber:            req.PhoneNumber,
		Subject:                req.Subject,
		PreferredContactMethod: method,
		UrgencyLevel:           urgency,
		MessageContent:         req.MessageContent,
		PrivacyPolicyAccepted:  true,
		IPAddress:              nullable(meta.IPAddress),
		UserAgent:              meta.UserAgent,
		ReferrerURL:            meta.Referrer,
		BrowserLanguage:        language,
	}

	var admin *domain.AdminNotification
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := repository.NewContactRepository(tx).Create(submission); err != nil {
			return err
		}
		admin = &domain.AdminNotification{
			Type:               domain.AdminNotifyContact,
			Title:              fmt.Sprintf("Contact form: %s", submission.Subject),
			Message:            fmt.Sprintf("%s <%s>: %s", submission.FullName, submission.Email, preview(submission.MessageContent, 100)),
			RelatedObjectID:    &submission.ID,
			RelatedContentType: "contact_submission",
			Metadata:           domain.JSONMap{"urgency": string(urgency)},
		}
		return s.notifications.WithTx(tx).CreateAdmin(admin)
	})
	if err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastAdminNotification(admin)
	}
	return submission, nil
}

// List returns contact submissions for admin review
func (s *ContactService) List(page, limit int, unprocessedOnly bool) ([]*domain.ContactSubmission, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.contacts.List(page, limit, unprocessedOnly)
}

// Get returns one contact submission
func (s *ContactService) Get(id uint64) (*domain.ContactSubmission, error) {
	submission, err := s.contacts.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return submission, nil
}

// MarkProcessed marks a submission as handled by the given admin
func (s *ContactService) MarkProcessed(id, processorID uint64) error {
	err := s.contacts.MarkProcessed(id, processorID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return common.ErrNotFound
	}
	return err
}

// Delete removes a submission
func (s *ContactService) Delete(id uint64) error {
	err := s.contacts.Delete(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return common.ErrNotFound
	}
	return err
}
