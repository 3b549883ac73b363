package service

import (
	"errors"

	"github.com/evigdia/evigdia-backend/internal/common"
	"github.com/evigdia/evigdia-backend/internal/domain"
	"github.com/evigdia/evigdia-backend/internal/repository"
	"gorm.io/gorm"
)

// SyndicationRequest is the payload for recording a cross-platform
// publication
type SyndicationRequest struct {
	PlatformName string         `json:"platform_name" binding:"required,max=100"`
	URL          string         `json:"url" binding:"required,max=500"`
	IsCanonical  bool           `json:"is_canonical"`
	Metadata     domain.JSONMap `json:"metadata"`
}

// SyndicationService tracks where posts have been republished. At most
// one syndication per post may be canonical at any time.
type SyndicationService struct {
	db           *gorm.DB
	posts        repository.PostRepository
	syndications repository.SyndicationRepository
}

// NewSyndicationService creates a new SyndicationService
func NewSyndicationService(db *gorm.DB, posts repository.PostRepository, syndications repository.SyndicationRepository) *SyndicationService {
	return &SyndicationService{db: db, posts: posts, syndications: syndications}
}

// Create records a syndication. Promoting it to canonical demotes any
// existing canonical record for the post in the same transaction.
func (s *SyndicationService) Create(postID uint64, req *SyndicationRequest) (*domain.ContentSyndication, error) {
	if _, err := s.posts.FindByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrPostNotFound
		}
		return nil, err
	}

	metadata := req.Metadata
	if metadata == nil {
		metadata = domain.JSONMap{}
	}
	syndication := &domain.ContentSyndication{
		PostID:       postID,
		PlatformName: req.PlatformName,
		URL:          req.URL,
		IsCanonical:  req.IsCanonical,
		Metadata:     metadata,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.syndications.WithTx(tx)
		if err := repo.Create(syndication); err != nil {
			return err
		}
		if syndication.IsCanonical {
			return repo.ClearCanonical(postID, syndication.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return syndication, nil
}

// SetCanonical promotes a syndication to canonical, demoting the rest
func (s *SyndicationService) SetCanonical(syndicationID uint64) (*domain.ContentSyndication, error) {
	syndication, err := s.syndications.FindByID(syndicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.syndications.WithTx(tx)
		syndication.IsCanonical = true
		if err := repo.Update(syndication); err != nil {
			return err
		}
		return repo.ClearCanonical(syndication.PostID, syndication.ID)
	})
	if err != nil {
		return nil, err
	}
	return syndication, nil
}

// ListByPost returns a post's syndications, canonical first
func (s *SyndicationService) ListByPost(postID uint64) ([]*domain.ContentSyndication, error) {
	if _, err := s.posts.FindByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrPostNotFound
		}
		return nil, err
	}
	return s.syndications.ListByPost(postID)
}

// Delete removes a syndication record
func (s *SyndicationService) Delete(syndicationID uint64) error {
	if _, err := s.syndications.FindByID(syndicationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrNotFound
		}
		return err
	}
	return s.syndications.Delete(syndicationID)
}
