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

func setupSyndicationService(t *testing.T) (*gorm.DB, *SyndicationService) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.BlogPost{}, &domain.ContentSyndication{}))
	posts := repository.NewPostRepository(db)
	syndications := repository.NewSyndicationRepository(db)
	return db, NewSyndicationService(db, posts, syndications)
}

func seedSyndicatedPost(t *testing.T, db *gorm.DB) *domain.BlogPost {
	t.Helper()
	author := &domain.User{Username: "author", Email: "author@example.com", Password: "x"}
	require.NoError(t, db.Create(author).Error)
	post := &domain.BlogPost{
		Title:    "Syndicated",
		Slug:     "syndicated",
		Content:  "body",
		Status:   domain.PostStatusPublished,
		AuthorID: author.ID,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func canonicalIDs(t *testing.T, db *gorm.DB, postID uint64) []uint64 {
	t.Helper()
	var ids []uint64
	require.NoError(t, db.Model(&domain.ContentSyndication{}).
		Where("post_id = ? AND is_canonical = ?", postID, true).
		Pluck("id", &ids).Error)
	return ids
}

func TestCreateSyndication(t *testing.T) {
	db, svc := setupSyndicationService(t)
	post := seedSyndicatedPost(t, db)

	syndication, err := svc.Create(post.ID, &SyndicationRequest{
		PlatformName: "medium",
		URL:          "https://medium.com/@author/syndicated",
	})
	require.NoError(t, err)
	assert.Equal(t, post.ID, syndication.PostID)
	assert.False(t, syndication.IsCanonical)
}

func TestCreateSyndicationUnknownPost(t *testing.T) {
	_, svc := setupSyndicationService(t)
	_, err := svc.Create(999, &SyndicationRequest{PlatformName: "medium", URL: "https://medium.com/x"})
	assert.ErrorIs(t, err, common.ErrPostNotFound)
}

func TestCreateCanonicalDemotesExisting(t *testing.T) {
	db, svc := setupSyndicationService(t)
	post := seedSyndicatedPost(t, db)

	first, err := svc.Create(post.ID, &SyndicationRequest{
		PlatformName: "medium",
		URL:          "https://medium.com/x",
		IsCanonical:  true,
	})
	require.NoError(t, err)

	second, err := svc.Create(post.ID, &SyndicationRequest{
		PlatformName: "devto",
		URL:          "https://dev.to/x",
		IsCanonical:  true,
	})
	require.NoError(t, err)

	ids := canonicalIDs(t, db, post.ID)
	require.Len(t, ids, 1)
	assert.Equal(t, second.ID, ids[0])
	assert.NotEqual(t, first.ID, ids[0])
}

func TestSetCanonical(t *testing.T) {
	db, svc := setupSyndicationService(t)
	post := seedSyndicatedPost(t, db)

	first, err := svc.Create(post.ID, &SyndicationRequest{
		PlatformName: "medium",
		URL:          "https://medium.com/x",
		IsCanonical:  true,
	})
	require.NoError(t, err)
	second, err := svc.Create(post.ID, &SyndicationRequest{
		PlatformName: "devto",
		URL:          "https://dev.to/x",
	})
	require.NoError(t, err)

	promoted, err := svc.SetCanonical(second.ID)
	require.NoError(t, err)
	assert.True(t, promoted.IsCanonical)

	ids := canonicalIDs(t, db, post.ID)
	require.Len(t, ids, 1)
	assert.Equal(t, second.ID, ids[0])

	var demoted domain.ContentSyndication
	require.NoError(t, db.First(&demoted, first.ID).Error)
	assert.False(t, demoted.IsCanonical)
}

func TestDuplicatePlatformRejected(t *testing.T) {
	db, svc := setupSyndicationService(t)
	post := seedSyndicatedPost(t, db)

	_, err := svc.Create(post.ID, &SyndicationRequest{PlatformName: "medium", URL: "https://medium.com/a"})
	require.NoError(t, err)
	_, err = svc.Create(post.ID, &SyndicationRequest{PlatformName: "medium", URL: "https://medium.com/b"})
	assert.Error(t, err)
}

func TestListByPostCanonicalFirst(t *testing.T) {
	db, svc := setupSyndicationService(t)
	post := seedSyndicatedPost(t, db)

	_, err := svc.Create(post.ID, &SyndicationRequest{PlatformName: "medium", URL: "https://medium.com/x"})
	require.NoError(t, err)
	canonical, err := svc.Create(post.ID, &SyndicationRequest{
		PlatformName: "devto",
		URL:          "https://dev.to/x",
		IsCanonical:  true,
	})
	require.NoError(t, err)

	list, err := svc.ListByPost(post.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, canonical.ID, list[0].ID)
}

func TestDeleteSyndication(t *testing.T) {
	db, svc := setupSyndicationService(t)
	post := seedSyndicatedPost(t, db)

	syndication, err := svc.Create(post.ID, &SyndicationRequest{PlatformName: "medium", URL: "https://medium.com/x"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(syndication.ID))

	assert.ErrorIs(t, svc.Delete(syndication.ID), common.ErrNotFound)
}
