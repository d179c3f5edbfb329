package bookings

import (
	"time"

	"github.com/google/uuid"
)

// ContactInfo is the embedded contact value object. Phone numbers are
// stored digits-only; formatting is stripped by the coercion layer.
type ContactInfo struct {
	Phone            string `gorm:"column:contact_phone;size:15;not null" json:"phone"`
	EmergencyContact string `gorm:"column:contact_emergency;size:15" json:"emergency_contact,omitempty"`
}

// Booking defines the main booking structure. A booking targets exactly
// one of a destination package or an event; the pair is immutable after
// creation and enforced by a database check constraint.
type Booking struct {
	ID            uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID        uuid.UUID     `gorm:"type:uuid;index;not null" json:"user_id"`
	DestinationID *uuid.UUID    `gorm:"type:uuid;index" json:"destination_id,omitempty"`
	EventID       *uuid.UUID    `gorm:"type:uuid;index" json:"event_id,omitempty"`
	Seats         int           `gorm:"not null;check:seats >= 1 AND seats <= 10" json:"seats"`
	TotalAmount   float64       `gorm:"not null;check:total_amount >= 0" json:"total_amount"`
	BookingStatus BookingStatus `gorm:"type:varchar(20);check:booking_status IN ('pending', 'confirmed', 'cancelled');default:'pending'" json:"booking_status"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);check:payment_status IN ('unpaid', 'paid', 'refunded');default:'unpaid'" json:"payment_status"`
	TravelDate    *time.Time    `json:"travel_date,omitempty"`
	Contact       ContactInfo   `gorm:"embedded" json:"contact_info"`

	SpecialRequests string `gorm:"size:1000" json:"special_requests,omitempty"`
	PaymentMethod   string `gorm:"type:varchar(50)" json:"payment_method,omitempty"`
	TransactionID   string `gorm:"type:varchar(100)" json:"transaction_id,omitempty"`

	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	PaymentConfirmedAt *time.Time `json:"payment_confirmed_at,omitempty"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

// TargetID returns the single target identifier of the booking.
func (b *Booking) TargetID() uuid.UUID {
	if b.DestinationID != nil {
		return *b.DestinationID
	}
	if b.EventID != nil {
		return *b.EventID
	}
	return uuid.Nil
}

// IsCancelled checks whether the booking reached its terminal state
func (b *Booking) IsCancelled() bool {
	return b.BookingStatus == StatusCancelled
}

// IsPaid checks whether payment has been recorded
func (b *Booking) IsPaid() bool {
	return b.PaymentStatus == PaymentPaid
}
