package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// BookingEvent is the wire payload published to the booking event stream.
// Consumers (email, analytics) key off EventType.
type BookingEvent struct {
	ID            uuid.UUID  `json:"id"`
	EventType     string     `json:"event_type"`
	BookingID     uuid.UUID  `json:"booking_id"`
	UserID        uuid.UUID  `json:"user_id"`
	DestinationID *uuid.UUID `json:"destination_id,omitempty"`
	EventID       *uuid.UUID `json:"event_id,omitempty"`
	Seats         int        `json:"seats"`
	TotalAmount   float64    `json:"total_amount"`
	BookingStatus string     `json:"booking_status"`
	PaymentStatus string     `json:"payment_status"`
	TravelDate    *time.Time `json:"travel_date,omitempty"`
	OccurredAt    time.Time  `json:"occurred_at"`
}

func (e *BookingEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// PartitionKey routes all events for one booking to the same partition
// so consumers observe them in order.
func (e *BookingEvent) PartitionKey() string {
	return e.BookingID.String()
}
