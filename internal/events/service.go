package events

import (
	"context"
	"time"

	"voyago/internal/bookings"

	"github.com/google/uuid"
)

type Service interface {
	CreateEvent(ctx context.Context, adminID uuid.UUID, req CreateEventRequest) (*Event, error)
	GetEvent(ctx context.Context, id uuid.UUID) (*Event, error)
	UpdateEvent(ctx context.Context, id uuid.UUID, req UpdateEventRequest) (*Event, error)
	ListUpcoming(ctx context.Context, limit int) ([]Event, error)

	// GetBookingTarget implements bookings.TargetProvider.
	GetBookingTarget(ctx context.Context, id uuid.UUID) (*bookings.TargetInfo, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateEvent(ctx context.Context, adminID uuid.UUID, req CreateEventRequest) (*Event, error) {
	event := &Event{
		Name:        req.Name,
		Venue:       req.Venue,
		Description: req.Description,
		DateTime:    req.DateTime.UTC(),
		TicketPrice: req.TicketPrice,
		IsActive:    true,
		CreatedBy:   adminID,
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *service) GetEvent(ctx context.Context, id uuid.UUID) (*Event, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateEvent(ctx context.Context, id uuid.UUID, req UpdateEventRequest) (*Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		event.Name = *req.Name
	}
	if req.Venue != nil {
		event.Venue = *req.Venue
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.DateTime != nil {
		event.DateTime = req.DateTime.UTC()
	}
	if req.TicketPrice != nil {
		event.TicketPrice = *req.TicketPrice
	}
	if req.IsActive != nil {
		event.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *service) ListUpcoming(ctx context.Context, limit int) ([]Event, error) {
	return s.repo.ListUpcoming(ctx, limit)
}

// GetBookingTarget exposes the pricing slice the booking pipeline needs.
// An event that already happened is not bookable regardless of its flag.
func (s *service) GetBookingTarget(ctx context.Context, id uuid.UUID) (*bookings.TargetInfo, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	price := event.TicketPrice
	return &bookings.TargetInfo{
		ID:           event.ID,
		Name:         event.Name,
		PackagePrice: &price,
		IsActive:     event.IsActive && event.DateTime.After(time.Now()),
	}, nil
}
