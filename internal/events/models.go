package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is the alternative booking target: a scheduled happening with a
// per-seat ticket price, as opposed to a fixed destination package.
type Event struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name        string    `json:"name" gorm:"not null;size:255"`
	Venue       string    `json:"venue" gorm:"not null;size:255"`
	Description string    `json:"description" gorm:"type:text"`
	DateTime    time.Time `json:"date_time" gorm:"not null"`
	TicketPrice float64   `json:"ticket_price" gorm:"not null;check:ticket_price >= 0"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`

	CreatedBy uuid.UUID `json:"created_by" gorm:"type:uuid;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Event) TableName() string {
	return "events"
}

type CreateEventRequest struct {
	Name        string    `json:"name" binding:"required,min=3,max=255"`
	Venue       string    `json:"venue" binding:"required,min=3,max=255"`
	Description string    `json:"description" binding:"max=2000"`
	DateTime    time.Time `json:"date_time" binding:"required"`
	TicketPrice float64   `json:"ticket_price" binding:"required,min=0"`
}

type UpdateEventRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=3,max=255"`
	Venue       *string    `json:"venue" binding:"omitempty,min=3,max=255"`
	Description *string    `json:"description" binding:"omitempty,max=2000"`
	DateTime    *time.Time `json:"date_time"`
	TicketPrice *float64   `json:"ticket_price" binding:"omitempty,min=0"`
	IsActive    *bool      `json:"is_active"`
}
