package events

import (
	"context"
	"errors"

	"voyago/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*Event, error)
	Update(ctx context.Context, event *Event) error
	ListUpcoming(ctx context.Context, limit int) ([]Event, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, event *Event) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return apperrors.Storage("create event", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	var event Event
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("event", id)
		}
		return nil, apperrors.Storage("get event", err)
	}
	return &event, nil
}

func (r *repository) Update(ctx context.Context, event *Event) error {
	if err := r.db.WithContext(ctx).Save(event).Error; err != nil {
		return apperrors.Storage("update event", err)
	}
	return nil
}

func (r *repository) ListUpcoming(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 20
	}

	var events []Event
	err := r.db.WithContext(ctx).
		Where("date_time > NOW()").
		Where("is_active = ?", true).
		Order("date_time ASC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, apperrors.Storage("list upcoming events", err)
	}
	return events, nil
}
