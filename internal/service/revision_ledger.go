package service

import (
	"fmt"

	"github.com/evigdia/evigdia-backend/internal/domain"
	"github.com/evigdia/evigdia-backend/internal/repository"
	"gorm.io/gorm"
)

// RevisionLedger keeps an append-only history of a post's editable fields.
// Revision numbers per post are contiguous from 1 with no gaps or
// duplicates. Concurrent editors are serialized by the post row lock the
// caller takes before invoking RecordUpdate; the unique index on
// (post_id, revision_number) backstops the invariant.
type RevisionLedger struct {
	revisions repository.RevisionRepository
}

// NewRevisionLedger creates a new RevisionLedger
func NewRevisionLedger(revisions repository.RevisionRepository) *RevisionLedger {
	return &RevisionLedger{revisions: revisions}
}

// RecordInitial writes revision 1 at post creation
func (l *RevisionLedger) RecordInitial(tx *gorm.DB, post *domain.BlogPost, editorID uint64) error {
	rev := &domain.PostRevision{
		PostID:         post.ID,
		RevisionNumber: 1,
		Title:          post.Title,
		Content:        post.Content,
		Excerpt:        post.Excerpt,
		EditorID:       editorID,
		ChangeSummary:  "Initial version",
	}
	return l.revisions.WithTx(tx).Create(rev)
}

// RecordUpdate snapshots the post's current (pre-mutation) fields as the
// next revision. post must carry the values as they stood before the
// caller's edit, and the caller must hold the post row lock.
func (l *RevisionLedger) RecordUpdate(tx *gorm.DB, post *domain.BlogPost, editorID uint64, changeSummary string) (*domain.PostRevision, error) {
	repo := l.revisions.WithTx(tx)
	next, err := repo.NextNumber(post.ID)
	if err != nil {
		return nil, err
	}
	rev := &domain.PostRevision{
		PostID:         post.ID,
		RevisionNumber: next,
		Title:          post.Title,
		Content:        post.Content,
		Excerpt:        post.Excerpt,
		EditorID:       editorID,
		ChangeSummary:  changeSummary,
	}
	if err := repo.Create(rev); err != nil {
		return nil, err
	}
	return rev, nil
}

// Restore copies title, content and excerpt from the given revision back
// onto the post, recording the pre-restore state as a new revision first.
// Intervening revisions are never renumbered or deleted.
func (l *RevisionLedger) Restore(tx *gorm.DB, post *domain.BlogPost, rev *domain.PostRevision, editorID uint64) (*domain.PostRevision, error) {
	summary := fmt.Sprintf("Restored to revision %d", rev.RevisionNumber)
	snapshot, err := l.RecordUpdate(tx, post, editorID, summary)
	if err != nil {
		return nil, err
	}

	post.Title = rev.Title
	post.Content = rev.Content
	post.Excerpt = rev.Excerpt
	return snapshot, nil
}

// History returns the post's revisions, newest first
func (l *RevisionLedger) History(postID uint64, page, limit int) ([]*domain.PostRevision, int64, error) {
	return l.revisions.FindByPost(postID, page, limit)
}

// Revision returns one revision of a post by number
func (l *RevisionLedger) Revision(postID uint64, number uint) (*domain.PostRevision, error) {
	return l.revisions.FindByPostAndNumber(postID, number)
}
