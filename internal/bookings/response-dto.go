package bookings

import "math"

// CancellationResponse reports the refund outcome of a cancellation.
type CancellationResponse struct {
	BookingID     string  `json:"booking_id"`
	BookingStatus string  `json:"booking_status"`
	PaymentStatus string  `json:"payment_status"`
	RefundAmount  float64 `json:"refund_amount"`
}

// PaginatedBookings wraps a booking listing with pagination metadata.
type PaginatedBookings struct {
	Bookings   []Booking `json:"bookings"`
	TotalCount int64     `json:"total_count"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"total_pages"`
}

// CalculateTotalPages computes the page count for a listing.
func CalculateTotalPages(totalCount int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(totalCount) / float64(limit)))
}
