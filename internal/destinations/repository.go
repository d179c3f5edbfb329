package destinations

import (
	"context"
	"errors"

	"voyago/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, destination *Destination) error
	GetByID(ctx context.Context, id uuid.UUID) (*Destination, error)
	Update(ctx context.Context, destination *Destination) error
	List(ctx context.Context, query DestinationListQuery) ([]Destination, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, destination *Destination) error {
	if err := r.db.WithContext(ctx).Create(destination).Error; err != nil {
		return apperrors.Storage("create destination", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Destination, error) {
	var destination Destination
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&destination).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("destination", id)
		}
		return nil, apperrors.Storage("get destination", err)
	}
	return &destination, nil
}

func (r *repository) Update(ctx context.Context, destination *Destination) error {
	result := r.db.WithContext(ctx).Save(destination)
	if result.Error != nil {
		return apperrors.Storage("update destination", result.Error)
	}
	return nil
}

func (r *repository) List(ctx context.Context, query DestinationListQuery) ([]Destination, int64, error) {
	var destinations []Destination
	var totalCount int64

	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	base := r.db.WithContext(ctx).Model(&Destination{})

	if query.Search != "" {
		base = base.Where("name ILIKE ?", "%"+query.Search+"%")
	}
	if query.State != "" {
		base = base.Where("state = ?", query.State)
	}
	if query.Active != nil {
		base = base.Where("is_active = ?", *query.Active)
	}

	if err := base.Count(&totalCount).Error; err != nil {
		return nil, 0, apperrors.Storage("count destinations", err)
	}

	offset := (query.Page - 1) * query.Limit
	err := base.
		Order("name ASC").
		Offset(offset).
		Limit(query.Limit).
		Find(&destinations).Error
	if err != nil {
		return nil, 0, apperrors.Storage("list destinations", err)
	}

	return destinations, totalCount, nil
}
