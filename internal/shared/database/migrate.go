package database

import (
	"voyago/internal/bookings"
	"voyago/internal/destinations"
	"voyago/internal/events"
	"voyago/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&destinations.Destination{},
		&events.Event{},
		&bookings.Booking{},
	)
}
