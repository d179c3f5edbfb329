package bookings

// ContactInfoRequest carries the raw contact fields. Types are left loose
// on purpose: the coercion layer, not JSON decoding, decides what is
// acceptable.
type ContactInfoRequest struct {
	Phone            any `json:"phone"`
	EmergencyContact any `json:"emergencyContact"`
}

// CreateBookingRequest is the untrusted creation payload. Exactly one of
// DestinationID or EventID must be supplied.
type CreateBookingRequest struct {
	DestinationID   any                `json:"destinationId"`
	EventID         any                `json:"eventId"`
	Seats           any                `json:"seats"`
	TravelDate      any                `json:"travelDate"`
	SpecialRequests string             `json:"specialRequests"`
	ContactInfo     ContactInfoRequest `json:"contactInfo"`
}

// UpdateBookingRequest carries a partial update. Owners may only change
// SpecialRequests; elevated callers may change any field.
type UpdateBookingRequest struct {
	Seats           any     `json:"seats"`
	TravelDate      any     `json:"travelDate"`
	SpecialRequests *string `json:"specialRequests"`
	BookingStatus   *string `json:"bookingStatus"`
	PaymentStatus   *string `json:"paymentStatus"`
}

// ConfirmPaymentRequest is the payment confirmation signal.
type ConfirmPaymentRequest struct {
	TransactionID string `json:"transactionId" binding:"required,min=4,max=100"`
	PaymentMethod string `json:"paymentMethod" binding:"required,oneof=card upi netbanking wallet cash"`
}

// RejectPaymentRequest is the elevated-caller rejection signal.
type RejectPaymentRequest struct {
	Reason string `json:"reason" binding:"required,min=3,max=500"`
}

// BookingListQuery contains listing filters and pagination.
type BookingListQuery struct {
	Page          int    `form:"page" binding:"omitempty,min=1"`
	Limit         int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Status        string `form:"status" binding:"omitempty,oneof=pending confirmed cancelled"`
	PaymentStatus string `form:"payment_status" binding:"omitempty,oneof=unpaid paid refunded"`
	DestinationID string `form:"destination_id"`
	DateFrom      string `form:"date_from"`
	DateTo        string `form:"date_to"`
}
