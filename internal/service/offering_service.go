package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/evigdia/evigdia-backend/internal/common"
	"github.com/evigdia/evigdia-backend/internal/domain"
	"github.com/evigdia/evigdia-backend/internal/repository"
	"github.com/evigdia/evigdia-backend/pkg/cache"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// OfferingRequest is the payload for creating or updating a service
// offering
type OfferingRequest struct {
	Title           string `json:"title" binding:"required,max=255"`
	Subtitle        string `json:"subtitle" binding:"max=255"`
	Description     string `json:"description" binding:"required"`
	SubDescription  string `json:"sub_description"`
	Status          string `json:"status"`
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
}

// OfferingService handles the site's service offerings
type OfferingService struct {
	offerings repository.ServiceRepository
	cache     cache.Service
}

// NewOfferingService creates a new OfferingService
func NewOfferingService(offerings repository.ServiceRepository, cacheService cache.Service) *OfferingService {
	return &OfferingService{offerings: offerings, cache: cacheService}
}

// ListPublished returns published offerings, served from cache when
// possible
func (s *OfferingService) ListPublished(ctx context.Context) ([]*domain.Service, error) {
	if s.cache != nil && s.cache.IsAvailable() {
		if data, err := s.cache.GetServices(ctx); err == nil {
			var cached []*domain.Service
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	offerings, _, err := s.offerings.List(1, 200, domain.ServicePublished)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && s.cache.IsAvailable() {
		if err := s.cache.SetServices(ctx, offerings); err != nil {
			log.Warn().Err(err).Msg("failed to cache services")
		}
	}
	return offerings, nil
}

// List returns offerings with an optional status filter
func (s *OfferingService) List(page, limit int, status domain.ServiceStatus) ([]*domain.Service, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.offerings.List(page, limit, status)
}

// GetBySlug returns one offering by slug
func (s *OfferingService) GetBySlug(slug string) (*domain.Service, error) {
	offering, err := s.offerings.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrServiceNotFound
		}
		return nil, err
	}
	return offering, nil
}

// Create persists a new offering
func (s *OfferingService) Create(ctx context.Context, creatorID uint64, req *OfferingRequest) (*domain.Service, error) {
	status, err := parseOfferingStatus(req.Status)
	if err != nil {
		return nil, err
	}

	slug, err := s.uniqueSlug(req.Title, 0)
	if err != nil {
		return nil, err
	}
	offering := &domain.Service{
		Title:           req.Title,
		Subtitle:        req.Subtitle,
		Slug:            slug,
		Description:     req.Description,
		SubDescription:  req.SubDescription,
		Status:          status,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		CreatedByID:     &creatorID,
	}
	fillOfferingSEO(offering)

	if err := s.offerings.Create(offering); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return offering, nil
}

// Update mutates an offering
func (s *OfferingService) Update(ctx context.Context, id uint64, req *OfferingRequest) (*domain.Service, error) {
	offering, err := s.offerings.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrServiceNotFound
		}
		return nil, err
	}

	status, err := parseOfferingStatus(req.Status)
	if err != nil {
		return nil, err
	}
	if req.Title != offering.Title {
		slug, err := s.uniqueSlug(req.Title, id)
		if err != nil {
			return nil, err
		}
		offering.Slug = slug
	}
	offering.Title = req.Title
	offering.Subtitle = req.Subtitle
	offering.Description = req.Description
	offering.SubDescription = req.SubDescription
	offering.Status = status
	offering.MetaTitle = req.MetaTitle
	offering.MetaDescription = req.MetaDescription
	fillOfferingSEO(offering)

	if err := s.offerings.Update(offering); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return offering, nil
}

// Delete removes an offering
func (s *OfferingService) Delete(ctx context.Context, id uint64) error {
	if _, err := s.offerings.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrServiceNotFound
		}
		return err
	}
	if err := s.offerings.Delete(id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *OfferingService) invalidate(ctx context.Context) {
	if s.cache == nil || !s.cache.IsAvailable() {
		return
	}
	if err := s.cache.InvalidateServices(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate services cache")
	}
}

func (s *OfferingService) uniqueSlug(title string, excludeID uint64) (string, error) {
	base := common.Slugify(title)
	if base == "" {
		base = "service"
	}
	slug := base
	for i := 2; ; i++ {
		exists, err := s.offerings.SlugExists(slug, excludeID)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

func parseOfferingStatus(raw string) (domain.ServiceStatus, error) {
	status := domain.ServiceStatus(raw)
	if status == "" {
		return domain.ServiceDraft, nil
	}
	switch status {
	case domain.ServiceDraft, domain.ServicePublished, domain.ServiceArchived,
		domain.ServicePending, domain.ServiceInProgress, domain.ServiceCompleted:
		return status, nil
	}
	return "", common.ErrInvalidInput
}

func fillOfferingSEO(offering *domain.Service) {
	if offering.MetaTitle == "" {
		offering.MetaTitle = common.Truncate(offering.Title, 70)
	}
	if offering.MetaDescription == "" {
		offering.MetaDescription = common.Truncate(offering.Description, 160)
	}
}
