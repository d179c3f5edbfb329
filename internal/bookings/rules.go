package bookings

import (
	"time"

	"voyago/internal/shared/coerce"

	"github.com/google/uuid"
)

// Refund tiers by hours remaining before travel.
const (
	refundFullWindow  = 168 // one week
	refundMidWindow   = 72
	cancelCutoffHours = 48
	refundFullPercent = 0.95
	refundMidPercent  = 0.80
	refundLatePercent = 0.60
	refundNoDatePcnt  = 0.90
)

// ComputeAmount computes the booking total as package price times seats.
// A missing or negative package price falls back to defaultPrice instead
// of failing the booking. Seats must already be a coerced integer; this
// function never re-accepts untyped input.
func ComputeAmount(packagePrice *float64, seats int, defaultPrice float64) float64 {
	price := defaultPrice
	if packagePrice != nil && *packagePrice >= 0 {
		price = *packagePrice
	}
	return coerce.RoundMoney(price * float64(seats))
}

// SameTravelDay compares the UTC calendar date component only.
func SameTravelDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// HasConflict reports whether any existing booking for the same user and
// target is still active (pending or confirmed) on the same calendar day.
// Only evaluated when a travel date is supplied.
func HasConflict(existing []Booking, userID, targetID uuid.UUID, travelDate time.Time) bool {
	for i := range existing {
		b := &existing[i]
		if b.UserID != userID {
			continue
		}
		if b.TargetID() != targetID {
			continue
		}
		if !b.BookingStatus.IsActive() {
			continue
		}
		if b.TravelDate == nil {
			continue
		}
		if SameTravelDay(*b.TravelDate, travelDate) {
			return true
		}
	}
	return false
}

// CanCancel evaluates the cancellation policy: a cancelled booking stays
// cancelled, past trips cannot be cancelled, and the window closes 48
// hours before travel. Bookings without a travel date can always be
// cancelled.
func CanCancel(status BookingStatus, travelDate *time.Time, now time.Time) (bool, string) {
	if status == StatusCancelled {
		return false, "booking is already cancelled"
	}
	if travelDate == nil {
		return true, ""
	}
	if travelDate.Before(now) {
		return false, "travel date has already passed"
	}
	if travelDate.Sub(now) < cancelCutoffHours*time.Hour {
		return false, "cancellation window closed: less than 48 hours before travel"
	}
	return true, ""
}

// RefundAmount computes the refundable amount, tiered by the hours
// remaining until travel. Without a travel date a flat 90% applies.
func RefundAmount(totalAmount float64, travelDate *time.Time, now time.Time) float64 {
	if travelDate == nil {
		return coerce.RoundMoney(totalAmount * refundNoDatePcnt)
	}

	hoursLeft := travelDate.Sub(now).Hours()
	switch {
	case hoursLeft >= refundFullWindow:
		return coerce.RoundMoney(totalAmount * refundFullPercent)
	case hoursLeft >= refundMidWindow:
		return coerce.RoundMoney(totalAmount * refundMidPercent)
	case hoursLeft >= cancelCutoffHours:
		return coerce.RoundMoney(totalAmount * refundLatePercent)
	default:
		return 0
	}
}
