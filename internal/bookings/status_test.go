package bookings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusTransitions(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusConfirmed))
	assert.True(t, StatusPending.CanTransitionTo(StatusCancelled))
	assert.True(t, StatusConfirmed.CanTransitionTo(StatusCancelled))

	// cancelled is terminal, no resurrection
	assert.False(t, StatusCancelled.CanTransitionTo(StatusPending))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusConfirmed))
	assert.False(t, StatusConfirmed.CanTransitionTo(StatusPending))
}

func TestBookingStatusTerminal(t *testing.T) {
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
}

func TestBookingStatusActive(t *testing.T) {
	assert.True(t, StatusPending.IsActive())
	assert.True(t, StatusConfirmed.IsActive())
	assert.False(t, StatusCancelled.IsActive())
}

func TestBookingStatusValid(t *testing.T) {
	assert.True(t, StatusPending.IsValid())
	assert.False(t, BookingStatus("archived").IsValid())
	assert.False(t, BookingStatus("").IsValid())
}

func TestPaymentStatusTransitions(t *testing.T) {
	assert.True(t, PaymentUnpaid.CanTransitionTo(PaymentPaid))
	assert.True(t, PaymentPaid.CanTransitionTo(PaymentRefunded))

	assert.False(t, PaymentUnpaid.CanTransitionTo(PaymentRefunded))
	assert.False(t, PaymentRefunded.CanTransitionTo(PaymentPaid))
	assert.False(t, PaymentRefunded.CanTransitionTo(PaymentUnpaid))
	assert.False(t, PaymentPaid.CanTransitionTo(PaymentUnpaid))
}

func TestPaymentStatusTerminal(t *testing.T) {
	assert.True(t, PaymentRefunded.IsTerminal())
	assert.False(t, PaymentUnpaid.IsTerminal())
	assert.False(t, PaymentPaid.IsTerminal())
}
