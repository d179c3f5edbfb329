package bookings

// BookingStatus is the reservation lifecycle axis.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// bookingTransitions is the authoritative definition of legal moves.
// cancelled is terminal for every caller.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled},
	StatusCancelled: {},
}

// IsValid checks if the booking status is valid
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of BookingStatus
func (s BookingStatus) String() string {
	return string(s)
}

// CanTransitionTo checks whether moving to next is a legal transition
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is permitted
func (s BookingStatus) IsTerminal() bool {
	return len(bookingTransitions[s]) == 0
}

// IsActive reports whether the booking still occupies its travel slot
func (s BookingStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// PaymentStatus is the payment lifecycle axis, independent of but
// constrained by the booking status.
type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentUnpaid:   {PaymentPaid},
	PaymentPaid:     {PaymentRefunded},
	PaymentRefunded: {},
}

// IsValid checks if the payment status is valid
func (p PaymentStatus) IsValid() bool {
	switch p {
	case PaymentUnpaid, PaymentPaid, PaymentRefunded:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (p PaymentStatus) String() string {
	return string(p)
}

// CanTransitionTo checks whether moving to next is a legal transition
func (p PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	for _, allowed := range paymentTransitions[p] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is permitted
func (p PaymentStatus) IsTerminal() bool {
	return len(paymentTransitions[p]) == 0
}
