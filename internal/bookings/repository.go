package bookings

import (
	"context"
	"errors"
	"time"

	"voyago/internal/shared/apperrors"
	"voyago/internal/shared/coerce"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	// Core booking operations
	CreateBooking(ctx context.Context, booking *Booking) error
	GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	UpdateBooking(ctx context.Context, booking *Booking) error

	// Atomic dual-axis status transition. expected guards the update so a
	// concurrent transition cannot be applied twice.
	ApplyTransition(ctx context.Context, id uuid.UUID, expected StatusPair, change StatusChange) error

	// Listing
	GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error)
	GetAllBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error)
}

// StatusPair is the expected current state guarding a transition.
type StatusPair struct {
	Booking BookingStatus
	Payment PaymentStatus
}

// StatusChange carries every field a transition is allowed to touch, so
// coupled changes land in one UPDATE and no observer ever sees an
// intermediate state such as paid+pending.
type StatusChange struct {
	BookingStatus      BookingStatus
	PaymentStatus      PaymentStatus
	PaymentConfirmedAt *time.Time
	TransactionID      string
	PaymentMethod      string
	SpecialRequests    *string
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// CreateBooking creates a booking atomically with the conflict check. The
// target row is locked for the duration of the transaction so two racing
// requests for the same user, target and travel day cannot both pass the
// check; the partial unique index is the storage-level backstop.
func (r *repository) CreateBooking(ctx context.Context, booking *Booking) error {
	if err := normalizeForWrite(booking); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		targetTable := "destinations"
		targetColumn := "destination_id"
		if booking.EventID != nil {
			targetTable = "events"
			targetColumn = "event_id"
		}

		// Lock the target row; serializes conflict checks per target.
		if err := lockTargetRow(tx, targetTable, booking.TargetID()).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound(targetTable[:len(targetTable)-1], booking.TargetID())
			}
			return translateError("lock target", err)
		}

		if booking.TravelDate != nil {
			var existing []Booking
			err := tx.Where("user_id = ?", booking.UserID).
				Where(targetColumn+" = ?", booking.TargetID()).
				Where("booking_status IN ?", []BookingStatus{StatusPending, StatusConfirmed}).
				Find(&existing).Error
			if err != nil {
				return translateError("check conflicts", err)
			}

			if HasConflict(existing, booking.UserID, booking.TargetID(), *booking.TravelDate) {
				return apperrors.Conflict("an active booking already exists for this date", map[string]any{
					"target_id":   booking.TargetID(),
					"travel_date": booking.TravelDate.Format("2006-01-02"),
				})
			}
		}

		if err := tx.Create(booking).Error; err != nil {
			return translateError("create booking", err)
		}
		return nil
	})

	return err
}

// lockTargetRow takes a FOR UPDATE lock on the destination or event row.
// The lock is held until the surrounding transaction commits, so conflict
// checks for the same target run one at a time.
func lockTargetRow(tx *gorm.DB, table string, id uuid.UUID) *gorm.DB {
	var locked struct {
		ID uuid.UUID `gorm:"column:id"`
	}
	return tx.Table(table).
		Select("id").
		Where("id = ?", id).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&locked)
}

func (r *repository) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("booking", id)
		}
		return nil, translateError("get booking", err)
	}
	return &booking, nil
}

// UpdateBooking persists a mutated booking record after a full
// re-coercion pass.
func (r *repository) UpdateBooking(ctx context.Context, booking *Booking) error {
	if err := normalizeForWrite(booking); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ?", booking.ID).
		Updates(map[string]interface{}{
			"seats":             booking.Seats,
			"total_amount":      booking.TotalAmount,
			"travel_date":       booking.TravelDate,
			"contact_phone":     booking.Contact.Phone,
			"contact_emergency": booking.Contact.EmergencyContact,
			"special_requests":  booking.SpecialRequests,
			"updated_at":        time.Now().UTC(),
		})
	if result.Error != nil {
		return translateError("update booking", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("booking", booking.ID)
	}
	return nil
}

// ApplyTransition writes both status axes and their side fields in a
// single guarded UPDATE.
func (r *repository) ApplyTransition(ctx context.Context, id uuid.UUID, expected StatusPair, change StatusChange) error {
	updates := map[string]interface{}{
		"booking_status": change.BookingStatus,
		"payment_status": change.PaymentStatus,
		"updated_at":     time.Now().UTC(),
	}
	if change.PaymentConfirmedAt != nil {
		updates["payment_confirmed_at"] = *change.PaymentConfirmedAt
	}
	if change.TransactionID != "" {
		updates["transaction_id"] = change.TransactionID
	}
	if change.PaymentMethod != "" {
		updates["payment_method"] = change.PaymentMethod
	}
	if change.SpecialRequests != nil {
		updates["special_requests"] = *change.SpecialRequests
	}

	result := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ?", id).
		Where("booking_status = ?", expected.Booking).
		Where("payment_status = ?", expected.Payment).
		Updates(updates)
	if result.Error != nil {
		return translateError("apply transition", result.Error)
	}
	if result.RowsAffected == 0 {
		// Either the booking vanished or another request transitioned it
		// first; both read as a conflict to the caller.
		return apperrors.Conflict("booking state changed concurrently", map[string]any{
			"booking_id": id,
		})
	}
	return nil
}

func (r *repository) GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("user_id = ?", userID)
	return r.paginate(base, query)
}

func (r *repository) GetAllBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	base := r.db.WithContext(ctx).Model(&Booking{})
	return r.paginate(base, query)
}

func (r *repository) paginate(base *gorm.DB, query BookingListQuery) ([]Booking, int64, error) {
	var bookings []Booking
	var totalCount int64

	// Set defaults
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	base = applyFilters(base, query)

	if err := base.Count(&totalCount).Error; err != nil {
		return nil, 0, translateError("count bookings", err)
	}

	offset := (query.Page - 1) * query.Limit
	err := base.
		Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&bookings).Error
	if err != nil {
		return nil, 0, translateError("list bookings", err)
	}

	return bookings, totalCount, nil
}

// applyFilters applies query filters to the GORM query
func applyFilters(query *gorm.DB, filters BookingListQuery) *gorm.DB {
	if filters.Status != "" {
		query = query.Where("booking_status = ?", filters.Status)
	}

	if filters.PaymentStatus != "" {
		query = query.Where("payment_status = ?", filters.PaymentStatus)
	}

	if filters.DestinationID != "" {
		if destinationID, err := uuid.Parse(filters.DestinationID); err == nil {
			query = query.Where("destination_id = ?", destinationID)
		}
	}

	if filters.DateFrom != "" {
		if dateFrom, err := time.Parse("2006-01-02", filters.DateFrom); err == nil {
			query = query.Where("travel_date >= ?", dateFrom)
		}
	}

	if filters.DateTo != "" {
		if dateTo, err := time.Parse("2006-01-02", filters.DateTo); err == nil {
			// Include the entire day
			dateTo = dateTo.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
			query = query.Where("travel_date <= ?", dateTo)
		}
	}

	return query
}

// normalizeForWrite re-runs the field coercions immediately before the
// record reaches the store. The record may have been assembled from
// several upstream sources that validated individually; this is the last
// checkpoint before an externally-owned store accepts the write.
func normalizeForWrite(b *Booking) error {
	if b.UserID == uuid.Nil {
		return apperrors.Validation("user_id", b.UserID, "is required")
	}
	if (b.DestinationID == nil) == (b.EventID == nil) {
		return apperrors.Validation("target", nil, "exactly one of destination or event must be set")
	}

	seats, err := coerce.Seats(b.Seats)
	if err != nil {
		return err
	}
	b.Seats = seats

	amount, err := coerce.Amount("total_amount", b.TotalAmount)
	if err != nil {
		return err
	}
	b.TotalAmount = amount

	phone, err := coerce.Phone("contact_info.phone", b.Contact.Phone, true)
	if err != nil {
		return err
	}
	b.Contact.Phone = phone

	emergency, err := coerce.Phone("contact_info.emergency_contact", b.Contact.EmergencyContact, false)
	if err != nil {
		return err
	}
	b.Contact.EmergencyContact = emergency

	travelDate, err := coerce.TravelDate("travel_date", b.TravelDate)
	if err != nil {
		return err
	}
	b.TravelDate = travelDate

	if len(b.SpecialRequests) > 1000 {
		return apperrors.Validation("special_requests", len(b.SpecialRequests), "must be at most 1000 characters")
	}

	if b.BookingStatus == "" {
		b.BookingStatus = StatusPending
	}
	if b.PaymentStatus == "" {
		b.PaymentStatus = PaymentUnpaid
	}
	if !b.BookingStatus.IsValid() {
		return apperrors.Validation("booking_status", b.BookingStatus, "is not a valid booking status")
	}
	if !b.PaymentStatus.IsValid() {
		return apperrors.Validation("payment_status", b.PaymentStatus, "is not a valid payment status")
	}

	return nil
}

// Postgres error classes, per the SQLSTATE reference.
const (
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
)

// translateError classifies a storage failure into the domain taxonomy.
// Raw driver errors never escape the repository.
func translateError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			return apperrors.NotFound("referenced record", nil).
				WithDetail("field", pgErr.ConstraintName)
		case pgUniqueViolation:
			return apperrors.Conflict("a conflicting record already exists", map[string]any{
				"constraint": pgErr.ConstraintName,
			})
		case pgCheckViolation:
			return apperrors.Validation(pgErr.ConstraintName, nil, "value violates a storage constraint")
		case pgNotNullViolation:
			return apperrors.Validation(pgErr.ColumnName, nil, "is required")
		}
	}
	return apperrors.Storage(op, err)
}
