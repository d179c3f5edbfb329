package destinations

import (
	"context"
	"fmt"
	"time"

	"voyago/internal/bookings"
	"voyago/internal/shared/apperrors"
	"voyago/pkg/cache"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	cacheKeyPrefix  = "voyago:destination:"
	cacheListPrefix = "voyago:destinations:list"
)

var validate = validator.New()

type Service interface {
	CreateDestination(ctx context.Context, adminID uuid.UUID, req CreateDestinationRequest) (*Destination, error)
	GetDestination(ctx context.Context, id uuid.UUID) (*Destination, error)
	UpdateDestination(ctx context.Context, id uuid.UUID, req UpdateDestinationRequest) (*Destination, error)
	ListDestinations(ctx context.Context, query DestinationListQuery) (*PaginatedDestinations, error)

	// GetBookingTarget implements bookings.TargetProvider.
	GetBookingTarget(ctx context.Context, id uuid.UUID) (*bookings.TargetInfo, error)
}

type service struct {
	repo         Repository
	cacheService cache.Service
	cacheTTL     time.Duration
}

// NewService creates a destination service. cacheService may be nil, in
// which case every read goes to the store.
func NewService(repo Repository, cacheService cache.Service, cacheTTL time.Duration) Service {
	return &service{
		repo:         repo,
		cacheService: cacheService,
		cacheTTL:     cacheTTL,
	}
}

func (s *service) CreateDestination(ctx context.Context, adminID uuid.UUID, req CreateDestinationRequest) (*Destination, error) {
	if err := validate.Struct(req); err != nil {
		return nil, apperrors.Validation("destination", nil, err.Error())
	}

	destination := &Destination{
		Name:         req.Name,
		State:        req.State,
		Description:  req.Description,
		PackagePrice: req.PackagePrice,
		IsActive:     true,
		ImageURL:     req.ImageURL,
		CreatedBy:    adminID,
	}

	if err := s.repo.Create(ctx, destination); err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx)
	return destination, nil
}

func (s *service) GetDestination(ctx context.Context, id uuid.UUID) (*Destination, error) {
	if s.cacheService != nil {
		var cached Destination
		err := s.cacheService.GetOrSet(ctx, cacheKey(id), s.cacheTTL, func() (interface{}, error) {
			return s.repo.GetByID(ctx, id)
		}, &cached)
		if err == nil {
			return &cached, nil
		}
		// Fall through on fetch errors so the taxonomy error surfaces.
		if apperrors.As(err) != nil {
			return nil, err
		}
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateDestination(ctx context.Context, id uuid.UUID, req UpdateDestinationRequest) (*Destination, error) {
	destination, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		destination.Name = *req.Name
	}
	if req.State != nil {
		destination.State = *req.State
	}
	if req.Description != nil {
		destination.Description = *req.Description
	}
	if req.PackagePrice != nil {
		if *req.PackagePrice < 0 {
			return nil, apperrors.Validation("package_price", *req.PackagePrice, "must not be negative")
		}
		destination.PackagePrice = *req.PackagePrice
	}
	if req.IsActive != nil {
		destination.IsActive = *req.IsActive
	}
	if req.ImageURL != nil {
		destination.ImageURL = *req.ImageURL
	}

	if err := s.repo.Update(ctx, destination); err != nil {
		return nil, err
	}

	if s.cacheService != nil {
		_ = s.cacheService.Delete(ctx, cacheKey(id))
	}
	s.invalidateListCache(ctx)

	return destination, nil
}

func (s *service) ListDestinations(ctx context.Context, query DestinationListQuery) (*PaginatedDestinations, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	records, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, err
	}

	return &PaginatedDestinations{
		Destinations: records,
		TotalCount:   total,
		Page:         query.Page,
		Limit:        query.Limit,
	}, nil
}

// GetBookingTarget exposes the pricing slice the booking pipeline needs.
func (s *service) GetBookingTarget(ctx context.Context, id uuid.UUID) (*bookings.TargetInfo, error) {
	destination, err := s.GetDestination(ctx, id)
	if err != nil {
		return nil, err
	}

	price := destination.PackagePrice
	return &bookings.TargetInfo{
		ID:           destination.ID,
		Name:         destination.Name,
		PackagePrice: &price,
		IsActive:     destination.IsActive,
	}, nil
}

func (s *service) invalidateListCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	_ = s.cacheService.DeletePattern(ctx, cacheListPrefix+"*")
}

func cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("%s%s", cacheKeyPrefix, id)
}
