//go:build integration

package bookings_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"voyago/internal/bookings"
	"voyago/internal/destinations"
	"voyago/internal/shared/apperrors"
	"voyago/internal/shared/database"
	"voyago/internal/users"
)

// integrationDB connects to the database named by TEST_DATABASE_DSN and
// applies the schema plus the booking constraints. Run with:
//
//	go test -tags integration ./internal/bookings/
func integrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.MigrateConstraints(db))
	return db
}

func seedUserAndDestination(t *testing.T, db *gorm.DB) (uuid.UUID, uuid.UUID) {
	t.Helper()

	user := &users.User{
		ID:        uuid.New(),
		FirstName: "Asha",
		LastName:  "Nair",
		Email:     uuid.NewString() + "@voyago.test",
		Password:  "irrelevant",
		Role:      users.RoleUser,
	}
	require.NoError(t, db.Create(user).Error)
	t.Cleanup(func() { db.Delete(user) })

	dest := &destinations.Destination{
		ID:           uuid.New(),
		Name:         "Kerala Backwaters",
		State:        "Kerala",
		PackagePrice: 12000,
		IsActive:     true,
		CreatedBy:    user.ID,
	}
	require.NoError(t, db.Create(dest).Error)
	t.Cleanup(func() { db.Delete(dest) })

	return user.ID, dest.ID
}

// Two racing creates for the same user, destination and travel day must
// produce exactly one booking; the loser surfaces as a conflict whichever
// layer catches it first.
func TestCreateBookingConcurrentDuplicates(t *testing.T) {
	db := integrationDB(t)
	repo := bookings.NewRepository(db)

	userID, destID := seedUserAndDestination(t, db)
	t.Cleanup(func() {
		db.Where("user_id = ?", userID).Delete(&bookings.Booking{})
	})

	travelDate := time.Now().UTC().AddDate(0, 1, 0)
	newBooking := func() *bookings.Booking {
		return &bookings.Booking{
			ID:            uuid.New(),
			UserID:        userID,
			DestinationID: &destID,
			Seats:         2,
			TotalAmount:   24000,
			TravelDate:    &travelDate,
			Contact:       bookings.ContactInfo{Phone: "9876543210"},
		}
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.CreateBooking(context.Background(), newBooking())
		}(i)
	}
	wg.Wait()

	var succeeded, conflicted int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case apperrors.IsKind(err, apperrors.KindConflict):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, conflicted)

	var count int64
	require.NoError(t, db.Model(&bookings.Booking{}).
		Where("user_id = ?", userID).
		Where("booking_status IN ?", []bookings.BookingStatus{bookings.StatusPending, bookings.StatusConfirmed}).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
