package service

import (
	"context"
	"time"

	"github.com/evigdia/evigdia-backend/internal/domain"
	"github.com/evigdia/evigdia-backend/internal/repository"
	"github.com/evigdia/evigdia-backend/pkg/cache"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Scheduler publishes scheduled posts when their time arrives
type Scheduler struct {
	posts repository.PostRepository
	cache cache.Service
	cron  *cron.Cron
	spec  string
}

// NewScheduler creates a new Scheduler. spec is a cron expression, e.g.
// "@every 1m".
func NewScheduler(posts repository.PostRepository, cacheService cache.Service, spec string) *Scheduler {
	return &Scheduler{
		posts: posts,
		cache: cacheService,
		cron:  cron.New(),
		spec:  spec,
	}
}

// Start registers the publish job and starts the cron loop
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.PublishDue); err != nil {
		return err
	}
	s.cron.Start()
	log.Info().Str("spec", s.spec).Msg("post scheduler started")
	return nil
}

// Stop stops the cron loop, waiting for a running job to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// PublishDue publishes every scheduled post whose time has passed
func (s *Scheduler) PublishDue() {
	now := time.Now()
	due, err := s.posts.ListScheduledDue(now)
	if err != nil {
		log.Error().Err(err).Msg("failed to list scheduled posts")
		return
	}
	if len(due) == 0 {
		return
	}

	published := 0
	for _, post := range due {
		err := s.posts.UpdateColumns(post.ID, map[string]interface{}{
			"status":       domain.PostStatusPublished,
			"published_at": now,
			"scheduled_at": nil,
		})
		if err != nil {
			log.Error().Err(err).Uint64("post_id", post.ID).Msg("failed to publish scheduled post")
			continue
		}
		published++
		log.Info().Uint64("post_id", post.ID).Str("title", post.Title).Msg("scheduled post published")
	}

	if published > 0 && s.cache != nil && s.cache.IsAvailable() {
		if err := s.cache.InvalidatePosts(context.Background()); err != nil {
			log.Warn().Err(err).Msg("failed to invalidate post list cache")
		}
	}
}
