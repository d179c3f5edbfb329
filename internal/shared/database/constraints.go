package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds the database constraints that back the
// concurrency guarantees around booking creation and status updates.
func MigrateConstraints(db *gorm.DB) error {
	// One active booking per user, destination and travel day. The partial
	// unique index is the backstop for the conflict check performed inside
	// the create transaction: two racing inserts cannot both commit.
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uniq_active_destination_booking
		ON bookings (user_id, destination_id, (DATE(travel_date AT TIME ZONE 'UTC')))
		WHERE booking_status IN ('pending', 'confirmed')
		  AND destination_id IS NOT NULL
		  AND travel_date IS NOT NULL;
	`).Error
	if err != nil {
		return err
	}

	// Same guarantee for event-target bookings.
	err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uniq_active_event_booking
		ON bookings (user_id, event_id, (DATE(travel_date AT TIME ZONE 'UTC')))
		WHERE booking_status IN ('pending', 'confirmed')
		  AND event_id IS NOT NULL
		  AND travel_date IS NOT NULL;
	`).Error
	if err != nil {
		return err
	}

	// A booking targets exactly one of destination or event.
	err = db.Exec(`
		ALTER TABLE bookings
		DROP CONSTRAINT IF EXISTS chk_booking_single_target;
	`).Error
	if err != nil {
		return err
	}
	err = db.Exec(`
		ALTER TABLE bookings
		ADD CONSTRAINT chk_booking_single_target
		CHECK ((destination_id IS NULL) <> (event_id IS NULL));
	`).Error
	if err != nil {
		return err
	}

	// Index for owner listings.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_user_status
		ON bookings (user_id, booking_status);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
