package service

import (
	"context"

	"github.com/evigdia/evigdia-backend/internal/domain"
	"github.com/evigdia/evigdia-backend/internal/repository"
	"github.com/evigdia/evigdia-backend/pkg/elasticsearch"
	"github.com/rs/zerolog/log"
)

// SearchService finds published posts by keyword. Elasticsearch is used
// when configured; otherwise the search falls back to SQL LIKE matching.
// Every search is recorded for analytics.
type SearchService struct {
	posts    repository.PostRepository
	activity repository.ActivityRepository
	search   *elasticsearch.Client
}

// NewSearchService creates a new SearchService
func NewSearchService(posts repository.PostRepository, activity repository.ActivityRepository, search *elasticsearch.Client) *SearchService {
	return &SearchService{posts: posts, activity: activity, search: search}
}

// Search returns published posts matching the keyword
func (s *SearchService) Search(ctx context.Context, keyword string, page, limit int, userID *uint64, ip string) ([]*domain.BlogPost, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var posts []*domain.BlogPost
	var total int64
	var err error

	if s.search != nil {
		posts, total, err = s.searchIndexed(ctx, keyword, page, limit)
		if err != nil {
			log.Warn().Err(err).Str("keyword", keyword).Msg("index search failed, falling back to sql")
			posts, total, err = s.searchSQL(keyword, page, limit)
		}
	} else {
		posts, total, err = s.searchSQL(keyword, page, limit)
	}
	if err != nil {
		return nil, 0, err
	}

	s.record(keyword, int(total), userID, ip)
	return posts, total, nil
}

func (s *SearchService) searchIndexed(ctx context.Context, keyword string, page, limit int) ([]*domain.BlogPost, int64, error) {
	ids, total, err := s.search.SearchPosts(ctx, keyword, page*limit)
	if err != nil {
		return nil, 0, err
	}

	start := (page - 1) * limit
	if start >= len(ids) {
		return []*domain.BlogPost{}, total, nil
	}
	end := start + limit
	if end > len(ids) {
		end = len(ids)
	}

	posts := make([]*domain.BlogPost, 0, end-start)
	for _, id := range ids[start:end] {
		post, err := s.posts.FindByID(id)
		if err != nil {
			continue // stale index entry
		}
		posts = append(posts, post)
	}
	return posts, total, nil
}

func (s *SearchService) searchSQL(keyword string, page, limit int) ([]*domain.BlogPost, int64, error) {
	return s.posts.List(page, limit, repository.PostFilter{
		Status: domain.PostStatusPublished,
		Search: keyword,
	})
}

// record stores the search query and its activity log entry. Recording is
// best effort and never fails the search.
func (s *SearchService) record(keyword string, results int, userID *uint64, ip string) {
	query := &domain.SearchQuery{
		Query:        keyword,
		UserID:       userID,
		IPAddress:    nullable(ip),
		ResultsCount: results,
	}
	if err := s.activity.CreateSearchQuery(query); err != nil {
		log.Warn().Err(err).Msg("failed to record search query")
	}

	entry := &domain.ActivityLog{
		ActivityType: domain.ActivitySearch,
		UserID:       userID,
		IPAddress:    nullable(ip),
		Metadata:     domain.JSONMap{"query": keyword, "results": results},
	}
	if err := s.activity.CreateLog(entry); err != nil {
		log.Warn().Err(err).Msg("failed to record search activity")
	}
}
