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

func setupLedger(t *testing.T) (*gorm.DB, *RevisionLedger) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.BlogPost{}, &domain.PostRevision{}))
	return db, NewRevisionLedger(repository.NewRevisionRepository(db))
}

func seedVersionedPost(t *testing.T, db *gorm.DB) *domain.BlogPost {
	t.Helper()
	post := &domain.BlogPost{
		AuthorID: 1,
		Title:    "Original title",
		Slug:     "original",
		Content:  "original content",
		Excerpt:  "original excerpt",
		Status:   domain.PostStatusDraft,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func revisionNumbers(t *testing.T, db *gorm.DB, postID uint64) []uint {
	t.Helper()
	var numbers []uint
	require.NoError(t, db.Model(&domain.PostRevision{}).
		Where("post_id = ?", postID).
		Order("revision_number ASC").
		Pluck("revision_number", &numbers).Error)
	return numbers
}

func TestRecordInitial(t *testing.T) {
	db, ledger := setupLedger(t)
	post := seedVersionedPost(t, db)

	err := db.Transaction(func(tx *gorm.DB) error {
		return ledger.RecordInitial(tx, post, post.AuthorID)
	})
	require.NoError(t, err)

	var rev domain.PostRevision
	require.NoError(t, db.First(&rev).Error)
	assert.Equal(t, uint(1), rev.RevisionNumber)
	assert.Equal(t, "Initial version", rev.ChangeSummary)
	assert.Equal(t, "Original title", rev.Title)
	assert.Equal(t, "original content", rev.Content)
}

func TestRecordUpdateSnapshotsPreEditState(t *testing.T) {
	db, ledger := setupLedger(t)
	post := seedVersionedPost(t, db)
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return ledger.RecordInitial(tx, post, post.AuthorID)
	}))

	// snapshot is taken before the caller applies its edit
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, txErr := ledger.RecordUpdate(tx, post, post.AuthorID, "Content updated"); txErr != nil {
			return txErr
		}
		post.Title = "Edited title"
		post.Content = "edited content"
		return tx.Save(post).Error
	})
	require.NoError(t, err)

	rev, err := ledger.Revision(post.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, "Original title", rev.Title)
	assert.Equal(t, "original content", rev.Content)
	assert.Equal(t, "Content updated", rev.ChangeSummary)

	var reloaded domain.BlogPost
	require.NoError(t, db.First(&reloaded, post.ID).Error)
	assert.Equal(t, "Edited title", reloaded.Title)
}

func TestRevisionNumbersAreContiguous(t *testing.T) {
	db, ledger := setupLedger(t)
	post := seedVersionedPost(t, db)
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return ledger.RecordInitial(tx, post, post.AuthorID)
	}))

	for i := 0; i < 4; i++ {
		require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
			_, txErr := ledger.RecordUpdate(tx, post, post.AuthorID, "Content updated")
			return txErr
		}))
	}

	assert.Equal(t, []uint{1, 2, 3, 4, 5}, revisionNumbers(t, db, post.ID))
}

func TestDuplicateRevisionNumberRejected(t *testing.T) {
	db, ledger := setupLedger(t)
	post := seedVersionedPost(t, db)
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return ledger.RecordInitial(tx, post, post.AuthorID)
	}))

	dup := &domain.PostRevision{
		PostID:         post.ID,
		RevisionNumber: 1,
		Title:          post.Title,
		EditorID:       post.AuthorID,
	}
	assert.Error(t, db.Create(dup).Error)
}

func TestRestoreRecordsPreRestoreSnapshot(t *testing.T) {
	db, ledger := setupLedger(t)
	post := seedVersionedPost(t, db)
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return ledger.RecordInitial(tx, post, post.AuthorID)
	}))

	// revision 2 snapshots the original, then the post is edited
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		if _, txErr := ledger.RecordUpdate(tx, post, post.AuthorID, "Content updated"); txErr != nil {
			return txErr
		}
		post.Title = "Second title"
		post.Content = "second content"
		return tx.Save(post).Error
	}))

	// restore back to revision 1
	target, err := ledger.Revision(post.ID, 1)
	require.NoError(t, err)
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		if _, txErr := ledger.Restore(tx, post, target, post.AuthorID); txErr != nil {
			return txErr
		}
		return tx.Save(post).Error
	}))

	// the post carries revision 1's fields again
	var reloaded domain.BlogPost
	require.NoError(t, db.First(&reloaded, post.ID).Error)
	assert.Equal(t, "Original title", reloaded.Title)
	assert.Equal(t, "original content", reloaded.Content)

	// revision 3 preserves the pre-restore state
	snapshot, err := ledger.Revision(post.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, "Second title", snapshot.Title)
	assert.Equal(t, "second content", snapshot.Content)
	assert.Equal(t, "Restored to revision 1", snapshot.ChangeSummary)

	// no revision was renumbered or removed
	assert.Equal(t, []uint{1, 2, 3}, revisionNumbers(t, db, post.ID))
}

func TestHistoryNewestFirst(t *testing.T) {
	db, ledger := setupLedger(t)
	post := seedVersionedPost(t, db)
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return ledger.RecordInitial(tx, post, post.AuthorID)
	}))
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		_, txErr := ledger.RecordUpdate(tx, post, post.AuthorID, "Content updated")
		return txErr
	}))

	revisions, total, err := ledger.History(post.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, revisions, 2)
	assert.Equal(t, uint(2), revisions[0].RevisionNumber)
	assert.Equal(t, uint(1), revisions[1].RevisionNumber)
}
