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

func setupContactService(t *testing.T) (*gorm.DB, *ContactService) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.ContactSubmission{}, &domain.Notification{}, &domain.AdminNotification{}))
	contacts := repository.NewContactRepository(db)
	notifs := repository.NewNotificationRepository(db)
	return db, NewContactService(db, contacts, notifs, nil)
}

func validContactRequest() *ContactRequest {
	return &ContactRequest{
		FullName:              "Jane Doe",
		Email:                 "jane@example.com",
		Subject:               "Licensing question",
		MessageContent:        "How does the yearly plan work?",
		PrivacyPolicyAccepted: true,
	}
}

func TestSubmitContact(t *testing.T) {
	db, svc := setupContactService(t)

	submission, err := svc.Submit(validContactRequest(), ClientMeta{IPAddress: "10.0.0.9", UserAgent: "curl/8"}, "en-US")
	require.NoError(t, err)

	assert.Equal(t, domain.ContactByEmail, submission.PreferredContactMethod)
	assert.False(t, submission.IsProcessed)
	assert.Equal(t, "en-US", submission.BrowserLanguage)

	// intake and the admin notification commit together
	var admin domain.AdminNotification
	require.NoError(t, db.First(&admin).Error)
	assert.Equal(t, domain.AdminNotifyContact, admin.Type)
	assert.Contains(t, admin.Title, "Licensing question")
	assert.Contains(t, admin.Message, "Jane Doe <jane@example.com>")
}

func TestSubmitContactRequiresPrivacyPolicy(t *testing.T) {
	_, svc := setupContactService(t)
	req := validContactRequest()
	req.PrivacyPolicyAccepted = false
	_, err := svc.Submit(req, ClientMeta{}, "")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestSubmitContactPhoneMethodRequiresNumber(t *testing.T) {
	_, svc := setupContactService(t)

	req := validContactRequest()
	req.PreferredContactMethod = string(domain.ContactByPhone)
	_, err := svc.Submit(req, ClientMeta{}, "")
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	req.PhoneNumber = "+1-555-0100"
	submission, err := svc.Submit(req, ClientMeta{}, "")
	require.NoError(t, err)
	assert.Equal(t, domain.ContactByPhone, submission.PreferredContactMethod)
}

func TestSubmitContactEitherMethodRequiresNumber(t *testing.T) {
	_, svc := setupContactService(t)
	req := validContactRequest()
	req.PreferredContactMethod = string(domain.ContactByEither)
	_, err := svc.Submit(req, ClientMeta{}, "")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestSubmitContactRejectsUnknownMethod(t *testing.T) {
	_, svc := setupContactService(t)
	req := validContactRequest()
	req.PreferredContactMethod = "carrier-pigeon"
	_, err := svc.Submit(req, ClientMeta{}, "")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestSubmitContactRejectsUnknownUrgency(t *testing.T) {
	_, svc := setupContactService(t)
	req := validContactRequest()
	req.UrgencyLevel = "yesterday"
	_, err := svc.Submit(req, ClientMeta{}, "")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestMarkProcessed(t *testing.T) {
	_, svc := setupContactService(t)

	submission, err := svc.Submit(validContactRequest(), ClientMeta{}, "")
	require.NoError(t, err)

	require.NoError(t, svc.MarkProcessed(submission.ID, 7))

	got, err := svc.Get(submission.ID)
	require.NoError(t, err)
	assert.True(t, got.IsProcessed)
	require.NotNil(t, got.ProcessedByID)
	assert.Equal(t, uint64(7), *got.ProcessedByID)
	assert.NotNil(t, got.ProcessedAt)

	assert.ErrorIs(t, svc.MarkProcessed(999, 7), common.ErrNotFound)
}

func TestDeleteContact(t *testing.T) {
	_, svc := setupContactService(t)

	submission, err := svc.Submit(validContactRequest(), ClientMeta{}, "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(submission.ID))
	_, err = svc.Get(submission.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(submission.ID), common.ErrNotFound)
}

func TestListUnprocessedOnly(t *testing.T) {
	_, svc := setupContactService(t)

	first, err := svc.Submit(validContactRequest(), ClientMeta{}, "")
	require.NoError(t, err)
	second := validContactRequest()
	second.Subject = "Second"
	_, err = svc.Submit(second, ClientMeta{}, "")
	require.NoError(t, err)

	require.NoError(t, svc.MarkProcessed(first.ID, 1))

	list, total, err := svc.List(1, 20, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, "Second", list[0].Subject)
}
