package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/evigdia/evigdia-backend/internal/common"
	"github.com/evigdia/evigdia-backend/internal/domain"
	"github.com/evigdia/evigdia-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupPostService(t *testing.T) (*gorm.DB, *PostService) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	// one connection keeps the in-memory database shared across goroutines
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.BlogPost{},
		&domain.PostRevision{},
		&domain.Category{},
		&domain.Tag{},
	))

	posts := repository.NewPostRepository(db)
	taxonomy := repository.NewTaxonomyRepository(db)
	ledger := NewRevisionLedger(repository.NewRevisionRepository(db))
	return db, NewPostService(db, posts, taxonomy, ledger, nil, nil)
}

func strPtr(s string) *string { return &s }

func TestCreatePost(t *testing.T) {
	db, svc := setupPostService(t)

	post, err := svc.Create(context.Background(), 1, &CreatePostRequest{
		Title:      "My First Post",
		Content:    "Some interesting content",
		Status:     "published",
		Categories: []string{"Engineering"},
		Tags:       []string{"go", "testing"},
	})
	require.NoError(t, err)

	assert.Equal(t, "my-first-post", post.Slug)
	assert.Equal(t, domain.PostStatusPublished, post.Status)
	assert.NotNil(t, post.PublishedAt)
	assert.Equal(t, "My First Post", post.MetaTitle)
	assert.Equal(t, "Some interesting content", post.MetaDescription)
	assert.Equal(t, 1, post.ReadingTime)

	// revision 1 exists
	var rev domain.PostRevision
	require.NoError(t, db.Where("post_id = ?", post.ID).First(&rev).Error)
	assert.Equal(t, uint(1), rev.RevisionNumber)
	assert.Equal(t, "Initial version", rev.ChangeSummary)

	var tagCount int64
	db.Model(&domain.Tag{}).Count(&tagCount)
	assert.Equal(t, int64(2), tagCount)
}

func TestCreatePostSlugCollision(t *testing.T) {
	_, svc := setupPostService(t)

	first, err := svc.Create(context.Background(), 1, &CreatePostRequest{Title: "Duplicate", Content: "a"})
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), 1, &CreatePostRequest{Title: "Duplicate", Content: "b"})
	require.NoError(t, err)

	assert.Equal(t, "duplicate", first.Slug)
	assert.Equal(t, "duplicate-2", second.Slug)
}

func TestCreatePostRejectsInvalidStatus(t *testing.T) {
	_, svc := setupPostService(t)

	_, err := svc.Create(context.Background(), 1, &CreatePostRequest{Title: "x", Content: "y", Status: "archived"})
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = svc.Create(context.Background(), 1, &CreatePostRequest{Title: "x", Content: "y", Status: "scheduled"})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestUpdatePostRecordsRevision(t *testing.T) {
	_, svc := setupPostService(t)

	post, err := svc.Create(context.Background(), 1, &CreatePostRequest{Title: "Before", Content: "before content"})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), post.ID, 1, false, &UpdatePostRequest{
		Title:         strPtr("After"),
		Content:       strPtr("after content"),
		ChangeSummary: "Rework",
	})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Title)
	assert.Equal(t, "after", updated.Slug)

	revs, total, err := svc.Revisions(post.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	// newest first; it snapshots the pre-update state
	assert.Equal(t, uint(2), revs[0].RevisionNumber)
	assert.Equal(t, "Before", revs[0].Title)
	assert.Equal(t, "Rework", revs[0].ChangeSummary)
}

func TestConcurrentUpdatesUseDistinctRevisions(t *testing.T) {
	db, svc := setupPostService(t)

	post, err := svc.Create(context.Background(), 1, &CreatePostRequest{Title: "Contended", Content: "v0"})
	require.NoError(t, err)

	const writers = 8
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			content := fmt.Sprintf("v%d", n+1)
			_, err := svc.Update(context.Background(), post.ID, 1, false, &UpdatePostRequest{Content: &content})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	// creation wrote revision 1; every update snapshots exactly one more,
	// numbered contiguously with no duplicates
	var revs []domain.PostRevision
	require.NoError(t, db.Where("post_id = ?", post.ID).Order("revision_number").Find(&revs).Error)
	require.Len(t, revs, writers+1)
	for i, rev := range revs {
		assert.Equal(t, uint(i+1), rev.RevisionNumber)
	}
}

func TestUpdatePostForbiddenForNonAuthor(t *testing.T) {
	_, svc := setupPostService(t)

	post, err := svc.Create(context.Background(), 1, &CreatePostRequest{Title: "Mine", Content: "c"})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), post.ID, 2, false, &UpdatePostRequest{Title: strPtr("Theirs")})
	assert.ErrorIs(t, err, common.ErrForbidden)

	// admins may edit anyone's post
	_, err = svc.Update(context.Background(), post.ID, 2, true, &UpdatePostRequest{Title: strPtr("Theirs")})
	assert.NoError(t, err)
}

func TestRestorePost(t *testing.T) {
	_, svc := setupPostService(t)

	post, err := svc.Create(context.Background(), 1, &CreatePostRequest{Title: "Version One", Content: "one"})
	require.NoError(t, err)
	_, err = svc.Update(context.Background(), post.ID, 1, false, &UpdatePostRequest{
		Title:   strPtr("Version Two"),
		Content: strPtr("two"),
	})
	require.NoError(t, err)

	restored, err := svc.Restore(context.Background(), post.ID, 1, 1, false)
	require.NoError(t, err)
	assert.Equal(t, "Version One", restored.Title)
	assert.Equal(t, "one", restored.Content)

	revs, total, err := svc.Revisions(post.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, "Restored to revision 1", revs[0].ChangeSummary)
	assert.Equal(t, "Version Two", revs[0].Title)
}

func TestRestoreUnknownRevision(t *testing.T) {
	_, svc := setupPostService(t)

	post, err := svc.Create(context.Background(), 1, &CreatePostRequest{Title: "Solo", Content: "c"})
	require.NoError(t, err)

	_, err = svc.Restore(context.Background(), post.ID, 9, 1, false)
	assert.ErrorIs(t, err, common.ErrRevisionNotFound)
}

func TestDeletePostHidesFromReads(t *testing.T) {
	db, svc := setupPostService(t)

	post, err := svc.Create(context.Background(), 1, &CreatePostRequest{Title: "Ephemeral", Content: "c", Status: "published"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), post.ID, 1, false))

	_, err = svc.GetByID(post.ID)
	assert.ErrorIs(t, err, common.ErrPostNotFound)
	_, err = svc.GetBySlug(context.Background(), post.Slug)
	assert.ErrorIs(t, err, common.ErrPostNotFound)

	// the row and its revisions survive
	var count int64
	db.Model(&domain.BlogPost{}).Where("id = ?", post.ID).Count(&count)
	assert.Equal(t, int64(1), count)
	db.Model(&domain.PostRevision{}).Where("post_id = ?", post.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestListFiltersByStatus(t *testing.T) {
	_, svc := setupPostService(t)

	_, err := svc.Create(context.Background(), 1, &CreatePostRequest{Title: "Published", Content: "c", Status: "published"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), 1, &CreatePostRequest{Title: "Draft", Content: "c"})
	require.NoError(t, err)

	posts, total, err := svc.List(1, 10, repository.PostFilter{Status: domain.PostStatusPublished})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, posts, 1)
	assert.Equal(t, "Published", posts[0].Title)
}

func TestFillReadingStats(t *testing.T) {
	_, svc := setupPostService(t)

	longContent := ""
	for i := 0; i < 450; i++ {
		longContent += "word "
	}
	post, err := svc.Create(context.Background(), 1, &CreatePostRequest{Title: "Long", Content: longContent})
	require.NoError(t, err)
	assert.Equal(t, 450, post.WordCount)
	assert.Equal(t, 3, post.ReadingTime)
}
