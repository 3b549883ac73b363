package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/evigdia/evigdia-backend/internal/common"
	"github.com/evigdia/evigdia-backend/internal/domain"
	"github.com/evigdia/evigdia-backend/internal/repository"
	"github.com/evigdia/evigdia-backend/pkg/cache"
	"github.com/evigdia/evigdia-backend/pkg/elasticsearch"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const wordsPerMinute = 200

// CreatePostRequest is the payload for creating a post
type CreatePostRequest struct {
	Title            string     `json:"title" binding:"required,max=255"`
	Excerpt          string     `json:"excerpt" binding:"max=500"`
	Content          string     `json:"content" binding:"required"`
	Status           string     `json:"status"`
	ScheduledAt      *time.Time `json:"scheduled_at"`
	Categories       []string   `json:"categories"`
	Tags             []string   `json:"tags"`
	AllowComments    *bool      `json:"allow_comments"`
	IsFeatured       bool       `json:"is_featured"`
	FeaturedImageURL string     `json:"featured_image_url"`
	FeaturedImageAlt string     `json:"featured_image_alt"`
	MetaTitle        string     `json:"meta_title"`
	MetaDescription  string     `json:"meta_description"`
	MetaKeywords     string     `json:"meta_keywords"`
	CanonicalURL     string     `json:"canonical_url"`
}

// UpdatePostRequest is the payload for updating a post. Nil fields are
// left unchanged.
type UpdatePostRequest struct {
	Title            *string    `json:"title"`
	Excerpt          *string    `json:"excerpt"`
	Content          *string    `json:"content"`
	Status           *string    `json:"status"`
	ScheduledAt      *time.Time `json:"scheduled_at"`
	Categories       []string   `json:"categories"`
	Tags             []string   `json:"tags"`
	AllowComments    *bool      `json:"allow_comments"`
	IsFeatured       *bool      `json:"is_featured"`
	FeaturedImageURL *string    `json:"featured_image_url"`
	FeaturedImageAlt *string    `json:"featured_image_alt"`
	MetaTitle        *string    `json:"meta_title"`
	MetaDescription  *string    `json:"meta_description"`
	MetaKeywords     *string    `json:"meta_keywords"`
	CanonicalURL     *string    `json:"canonical_url"`
	ChangeSummary    string     `json:"change_summary"`
	RevisionNotes    string     `json:"revision_notes"`
}

// PostService handles blog post business logic
type PostService struct {
	db       *gorm.DB
	posts    repository.PostRepository
	taxonomy repository.TaxonomyRepository
	ledger   *RevisionLedger
	cache    cache.Service
	search   *elasticsearch.Client
}

// NewPostService creates a new PostService
func NewPostService(
	db *gorm.DB,
	posts repository.PostRepository,
	taxonomy repository.TaxonomyRepository,
	ledger *RevisionLedger,
	cacheService cache.Service,
	search *elasticsearch.Client,
) *PostService {
	return &PostService{
		db:       db,
		posts:    posts,
		taxonomy: taxonomy,
		ledger:   ledger,
		cache:    cacheService,
		search:   search,
	}
}

// Create persists a new post with revision 1
func (s *PostService) Create(ctx context.Context, authorID uint64, req *CreatePostRequest) (*domain.BlogPost, error) {
	status := domain.PostStatus(req.Status)
	if status == "" {
		status = domain.PostStatusDraft
	}
	switch status {
	case domain.PostStatusDraft, domain.PostStatusPublished, domain.PostStatusScheduled:
	default:
		return nil, common.ErrInvalidInput
	}
	if status == domain.PostStatusScheduled && req.ScheduledAt == nil {
		return nil, common.ErrInvalidInput
	}

	slug, err := s.uniqueSlug(req.Title, 0)
	if err != nil {
		return nil, err
	}

	allowComments := true
	if req.AllowComments != nil {
		allowComments = *req.AllowComments
	}

	post := &domain.BlogPost{
		AuthorID:         authorID,
		Title:            req.Title,
		Slug:             slug,
		Excerpt:          req.Excerpt,
		Content:          req.Content,
		Status:           status,
		ScheduledAt:      req.ScheduledAt,
		AllowComments:    allowComments,
		IsFeatured:       req.IsFeatured,
		FeaturedImageURL: req.FeaturedImageURL,
		FeaturedImageAlt: req.FeaturedImageAlt,
		MetaTitle:        req.MetaTitle,
		MetaDescription:  req.MetaDescription,
		MetaKeywords:     req.MetaKeywords,
		CanonicalURL:     req.CanonicalURL,
	}
	fillSEO(post)
	fillReadingStats(post)

	if status == domain.PostStatusPublished {
		now := time.Now()
		post.PublishedAt = &now
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		posts := s.posts.WithTx(tx)
		if err := posts.Create(post); err != nil {
			return err
		}
		if err := s.attachTaxonomy(tx, post, req.Categories, req.Tags); err != nil {
			return err
		}
		return s.ledger.RecordInitial(tx, post, authorID)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateListings(ctx)
	s.indexPost(post)
	return post, nil
}

// Update mutates a post, snapshotting the pre-update state as a new
// revision. The post row is locked for the whole read-snapshot-write
// sequence so concurrent editors cannot claim the same revision number.
func (s *PostService) Update(ctx context.Context, postID, editorID uint64, isAdmin bool, req *UpdatePostRequest) (*domain.BlogPost, error) {
	var post *domain.BlogPost
	var oldSlug string

	err := s.db.Transaction(func(tx *gorm.DB) error {
		posts := s.posts.WithTx(tx)
		var err error
		post, err = posts.FindByIDForUpdate(postID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.ErrPostNotFound
			}
			return err
		}
		if post.AuthorID != editorID && !isAdmin {
			return common.ErrForbidden
		}
		oldSlug = post.Slug

		summary := req.ChangeSummary
		if summary == "" {
			summary = "Content updated"
		}
		rev, err := s.ledger.RecordUpdate(tx, post, editorID, summary)
		if err != nil {
			return err
		}
		if req.RevisionNotes != "" {
			rev.RevisionNotes = req.RevisionNotes
			if err := tx.Model(rev).Update("revision_notes", req.RevisionNotes).Error; err != nil {
				return err
			}
		}

		if err := s.applyUpdate(post, req); err != nil {
			return err
		}
		fillSEO(post)
		fillReadingStats(post)
		if err := posts.Update(post); err != nil {
			return err
		}
		if req.Categories != nil || req.Tags != nil {
			return s.attachTaxonomy(tx, post, req.Categories, req.Tags)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidatePost(ctx, oldSlug)
	s.invalidateListings(ctx)
	s.indexPost(post)
	return post, nil
}

// Restore rolls a post's editable fields back to a prior revision. The
// pre-restore state is captured as a new revision; history is never
// rewritten.
func (s *PostService) Restore(ctx context.Context, postID uint64, revisionNumber uint, editorID uint64, isAdmin bool) (*domain.BlogPost, error) {
	var post *domain.BlogPost
	var oldSlug string

	err := s.db.Transaction(func(tx *gorm.DB) error {
		posts := s.posts.WithTx(tx)
		var err error
		post, err = posts.FindByIDForUpdate(postID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.ErrPostNotFound
			}
			return err
		}
		if post.AuthorID != editorID && !isAdmin {
			return common.ErrForbidden
		}
		oldSlug = post.Slug

		rev, err := s.ledger.revisions.WithTx(tx).FindByPostAndNumber(postID, revisionNumber)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.ErrRevisionNotFound
			}
			return err
		}

		if _, err := s.ledger.Restore(tx, post, rev, editorID); err != nil {
			return err
		}
		fillReadingStats(post)
		return posts.Update(post)
	})
	if err != nil {
		return nil, err
	}

	s.invalidatePost(ctx, oldSlug)
	s.invalidateListings(ctx)
	s.indexPost(post)
	return post, nil
}

// Publish moves a draft or scheduled post to published
func (s *PostService) Publish(ctx context.Context, postID, editorID uint64, isAdmin bool) (*domain.BlogPost, error) {
	post, err := s.posts.FindByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrPostNotFound
		}
		return nil, err
	}
	if post.AuthorID != editorID && !isAdmin {
		return nil, common.ErrForbidden
	}

	now := time.Now()
	post.Status = domain.PostStatusPublished
	post.PublishedAt = &now
	post.ScheduledAt = nil
	if err := s.posts.Update(post); err != nil {
		return nil, err
	}

	s.invalidatePost(ctx, post.Slug)
	s.invalidateListings(ctx)
	s.indexPost(post)
	return post, nil
}

// Archive soft-archives a post
func (s *PostService) Archive(ctx context.Context, postID, editorID uint64, isAdmin bool) error {
	post, err := s.posts.FindByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrPostNotFound
		}
		return err
	}
	if post.AuthorID != editorID && !isAdmin {
		return common.ErrForbidden
	}

	if err := s.posts.UpdateColumns(postID, map[string]interface{}{"status": domain.PostStatusArchived}); err != nil {
		return err
	}
	s.invalidatePost(ctx, post.Slug)
	s.invalidateListings(ctx)
	s.deindexPost(postID)
	return nil
}

// Delete soft-deletes a post. Deleted posts disappear from every read path
// but their rows and revisions are retained.
func (s *PostService) Delete(ctx context.Context, postID, editorID uint64, isAdmin bool) error {
	post, err := s.posts.FindByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrPostNotFound
		}
		return err
	}
	if post.AuthorID != editorID && !isAdmin {
		return common.ErrForbidden
	}

	if err := s.posts.Delete(postID); err != nil {
		return err
	}
	s.invalidatePost(ctx, post.Slug)
	s.invalidateListings(ctx)
	s.deindexPost(postID)
	return nil
}

// GetBySlug returns a post by slug, serving published posts from cache
// when possible
func (s *PostService) GetBySlug(ctx context.Context, slug string) (*domain.BlogPost, error) {
	if s.cache != nil && s.cache.IsAvailable() {
		if data, err := s.cache.GetPost(ctx, slug); err == nil {
			var cached domain.BlogPost
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	post, err := s.posts.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrPostNotFound
		}
		return nil, err
	}

	if s.cache != nil && s.cache.IsAvailable() && post.IsPublic(time.Now()) {
		if err := s.cache.SetPost(ctx, slug, post); err != nil {
			log.Warn().Err(err).Str("slug", slug).Msg("failed to cache post")
		}
	}
	return post, nil
}

// GetByID returns a post by ID
func (s *PostService) GetByID(postID uint64) (*domain.BlogPost, error) {
	post, err := s.posts.FindByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

// List returns paginated posts
func (s *PostService) List(page, limit int, filter repository.PostFilter) ([]*domain.BlogPost, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.posts.List(page, limit, filter)
}

// Categories returns the active blog categories
func (s *PostService) Categories() ([]*domain.Category, error) {
	return s.taxonomy.ListCategories(true)
}

// Tags returns the active blog tags
func (s *PostService) Tags() ([]*domain.Tag, error) {
	return s.taxonomy.ListTags(true)
}

// Revisions returns a post's revision history, newest first
func (s *PostService) Revisions(postID uint64, page, limit int) ([]*domain.PostRevision, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if _, err := s.GetByID(postID); err != nil {
		return nil, 0, err
	}
	return s.ledger.History(postID, page, limit)
}

// GetRevision returns one revision of a post
func (s *PostService) GetRevision(postID uint64, number uint) (*domain.PostRevision, error) {
	rev, err := s.ledger.Revision(postID, number)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrRevisionNotFound
		}
		return nil, err
	}
	return rev, nil
}

func (s *PostService) applyUpdate(post *domain.BlogPost, req *UpdatePostRequest) error {
	if req.Title != nil && *req.Title != post.Title {
		post.Title = *req.Title
		slug, err := s.uniqueSlug(post.Title, post.ID)
		if err != nil {
			return err
		}
		post.Slug = slug
	}
	if req.Excerpt != nil {
		post.Excerpt = *req.Excerpt
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Status != nil {
		status := domain.PostStatus(*req.Status)
		switch status {
		case domain.PostStatusDraft, domain.PostStatusPublished,
			domain.PostStatusArchived, domain.PostStatusScheduled:
		default:
			return common.ErrInvalidInput
		}
		if status == domain.PostStatusPublished && post.Status != domain.PostStatusPublished {
			now := time.Now()
			post.PublishedAt = &now
		}
		post.Status = status
	}
	if req.ScheduledAt != nil {
		post.ScheduledAt = req.ScheduledAt
	}
	if req.AllowComments != nil {
		post.AllowComments = *req.AllowComments
	}
	if req.IsFeatured != nil {
		post.IsFeatured = *req.IsFeatured
	}
	if req.FeaturedImageURL != nil {
		post.FeaturedImageURL = *req.FeaturedImageURL
	}
	if req.FeaturedImageAlt != nil {
		post.FeaturedImageAlt = *req.FeaturedImageAlt
	}
	if req.MetaTitle != nil {
		post.MetaTitle = *req.MetaTitle
	}
	if req.MetaDescription != nil {
		post.MetaDescription = *req.MetaDescription
	}
	if req.MetaKeywords != nil {
		post.MetaKeywords = *req.MetaKeywords
	}
	if req.CanonicalURL != nil {
		post.CanonicalURL = *req.CanonicalURL
	}
	return nil
}

func (s *PostService) attachTaxonomy(tx *gorm.DB, post *domain.BlogPost, categories, tags []string) error {
	posts := s.posts.WithTx(tx)
	taxonomy := repository.NewTaxonomyRepository(tx)

	if categories != nil {
		cats, err := taxonomy.FindOrCreateCategories(categories)
		if err != nil {
			return err
		}
		if err := posts.ReplaceCategories(post, cats); err != nil {
			return err
		}
	}
	if tags != nil {
		tagRows, err := taxonomy.FindOrCreateTags(tags)
		if err != nil {
			return err
		}
		if err := posts.ReplaceTags(post, tagRows); err != nil {
			return err
		}
	}
	return nil
}

// uniqueSlug derives a slug from the title, suffixing -2, -3, ... on
// collision
func (s *PostService) uniqueSlug(title string, excludeID uint64) (string, error) {
	base := common.Slugify(title)
	if base == "" {
		base = "post"
	}
	slug := base
	for i := 2; ; i++ {
		exists, err := s.posts.SlugExists(slug, excludeID)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *PostService) invalidatePost(ctx context.Context, slug string) {
	if s.cache == nil || !s.cache.IsAvailable() {
		return
	}
	if err := s.cache.InvalidatePost(ctx, slug); err != nil {
		log.Warn().Err(err).Str("slug", slug).Msg("failed to invalidate post cache")
	}
}

func (s *PostService) invalidateListings(ctx context.Context) {
	if s.cache == nil || !s.cache.IsAvailable() {
		return
	}
	if err := s.cache.InvalidatePosts(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate post list cache")
	}
}

func (s *PostService) indexPost(post *domain.BlogPost) {
	if s.search == nil {
		return
	}
	if post.Status != domain.PostStatusPublished {
		s.deindexPost(post.ID)
		return
	}
	doc := &elasticsearch.PostDocument{
		ID:      post.ID,
		Slug:    post.Slug,
		Title:   post.Title,
		Excerpt: post.Excerpt,
		Content: post.Content,
	}
	if err := s.search.IndexPost(context.Background(), doc); err != nil {
		log.Warn().Err(err).Uint64("post_id", post.ID).Msg("failed to index post")
	}
}

func (s *PostService) deindexPost(postID uint64) {
	if s.search == nil {
		return
	}
	if err := s.search.DeletePost(context.Background(), postID); err != nil {
		log.Warn().Err(err).Uint64("post_id", postID).Msg("failed to remove post from index")
	}
}

// fillSEO autofills missing meta fields from the post body
func fillSEO(post *domain.BlogPost) {
	if post.MetaTitle == "" {
		post.MetaTitle = common.Truncate(post.Title, 70)
	}
	if post.MetaDescription == "" {
		source := post.Excerpt
		if source == "" {
			source = post.Content
		}
		post.MetaDescription = common.Truncate(source, 160)
	}
}

// fillReadingStats recomputes word count and reading time
func fillReadingStats(post *domain.BlogPost) {
	words := len(strings.Fields(post.Content))
	post.WordCount = words
	post.ReadingTime = (words + wordsPerMinute - 1) / wordsPerMinute
	if post.ReadingTime == 0 {
		post.ReadingTime = 1
	}
}
