package destinations

import (
	"time"

	"github.com/google/uuid"
)

// Destination is a fixed-price travel package customers book seats
// against. Only PackagePrice and IsActive feed the booking rules; the
// rest is catalogue data.
type Destination struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name         string    `json:"name" gorm:"not null;size:255"`
	State        string    `json:"state" gorm:"not null;size:100"`
	Description  string    `json:"description" gorm:"type:text"`
	PackagePrice float64   `json:"package_price" gorm:"not null;check:package_price >= 0"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	ImageURL     string    `json:"image_url" gorm:"size:500"`

	CreatedBy uuid.UUID `json:"created_by" gorm:"type:uuid;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Destination) TableName() string {
	return "destinations"
}

type CreateDestinationRequest struct {
	Name         string  `json:"name" binding:"required,min=3,max=255" validate:"required,min=3,max=255"`
	State        string  `json:"state" binding:"required,min=2,max=100" validate:"required,min=2,max=100"`
	Description  string  `json:"description" binding:"max=2000" validate:"max=2000"`
	PackagePrice float64 `json:"package_price" binding:"required,min=0" validate:"required,min=0"`
	ImageURL     string  `json:"image_url" binding:"omitempty,url" validate:"omitempty,url"`
}

type UpdateDestinationRequest struct {
	Name         *string  `json:"name" binding:"omitempty,min=3,max=255"`
	State        *string  `json:"state" binding:"omitempty,min=2,max=100"`
	Description  *string  `json:"description" binding:"omitempty,max=2000"`
	PackagePrice *float64 `json:"package_price" binding:"omitempty,min=0"`
	IsActive     *bool    `json:"is_active"`
	ImageURL     *string  `json:"image_url" binding:"omitempty,url"`
}

type DestinationListQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search string `form:"search"`
	State  string `form:"state"`
	Active *bool  `form:"active"`
}

type PaginatedDestinations struct {
	Destinations []Destination `json:"destinations"`
	TotalCount   int64         `json:"total_count"`
	Page         int           `json:"page"`
	Limit        int           `json:"limit"`
}
