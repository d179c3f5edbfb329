package bookings

import (
	"context"
	"fmt"
	"time"

	"voyago/internal/shared/apperrors"
	"voyago/internal/shared/coerce"
	"voyago/pkg/logger"

	"github.com/google/uuid"
)

// TargetInfo is the slice of a destination or event the booking pipeline
// consumes: its package price and whether it can still be booked.
type TargetInfo struct {
	ID           uuid.UUID
	Name         string
	PackagePrice *float64
	IsActive     bool
}

// TargetProvider resolves a booking target (to avoid circular dependency
// on the destinations and events packages).
type TargetProvider interface {
	GetBookingTarget(ctx context.Context, id uuid.UUID) (*TargetInfo, error)
}

// EventPublisher publishes booking lifecycle events (to avoid circular
// dependency on the notifications package). Publishing is best-effort.
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, eventType string, booking *Booking) error
}

// Lifecycle event types emitted to the booking event stream.
const (
	EventBookingCreated   = "booking.created"
	EventPaymentConfirmed = "booking.payment_confirmed"
	EventPaymentRejected  = "booking.payment_rejected"
	EventBookingCancelled = "booking.cancelled"
)

// Service interface defines the contract for booking business logic
type Service interface {
	CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*Booking, error)
	GetBooking(ctx context.Context, bookingID, callerID uuid.UUID, isAdmin bool) (*Booking, error)
	ListBookings(ctx context.Context, callerID uuid.UUID, isAdmin bool, query BookingListQuery) (*PaginatedBookings, error)
	UpdateBooking(ctx context.Context, bookingID, callerID uuid.UUID, isAdmin bool, req UpdateBookingRequest) (*Booking, error)
	ConfirmPayment(ctx context.Context, bookingID, callerID uuid.UUID, isAdmin bool, req ConfirmPaymentRequest) (*Booking, error)
	RejectPayment(ctx context.Context, bookingID uuid.UUID, req RejectPaymentRequest) (*Booking, error)
	CancelBooking(ctx context.Context, bookingID, callerID uuid.UUID, isAdmin bool) (*CancellationResponse, error)
}

// service implements the Service interface
type service struct {
	repo                Repository
	destinations        TargetProvider
	events              TargetProvider
	publisher           EventPublisher
	log                 *logger.Logger
	defaultPackagePrice float64
}

// NewService creates a new booking service instance. publisher may be nil
// when the event stream is disabled.
func NewService(repo Repository, destinations, events TargetProvider, publisher EventPublisher, defaultPackagePrice float64) Service {
	return &service{
		repo:                repo,
		destinations:        destinations,
		events:              events,
		publisher:           publisher,
		log:                 logger.GetDefault(),
		defaultPackagePrice: defaultPackagePrice,
	}
}

// CreateBooking runs the full validation pipeline: typed field coercion,
// business rules, then the conflict-checked insert. Field errors are
// aggregated in declaration order so rejection is deterministic.
func (s *service) CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*Booking, error) {
	booking := &Booking{
		UserID:        userID,
		BookingStatus: StatusPending,
		PaymentStatus: PaymentUnpaid,
	}

	c := apperrors.NewCollector()

	targetID, isEvent, err := s.coerceTarget(req)
	c.Add(err)

	seats, err := coerce.Seats(req.Seats)
	c.Add(err)

	travelDate, err := coerce.TravelDate("travelDate", req.TravelDate)
	c.Add(err)
	if err == nil && travelDate != nil && !travelDate.After(time.Now().UTC()) {
		c.Add(apperrors.Validation("travelDate", travelDate.Format(time.RFC3339), "must be in the future"))
	}

	phone, err := coerce.Phone("contactInfo.phone", req.ContactInfo.Phone, true)
	c.Add(err)

	emergency, err := coerce.Phone("contactInfo.emergencyContact", req.ContactInfo.EmergencyContact, false)
	c.Add(err)

	if len(req.SpecialRequests) > 1000 {
		c.Add(apperrors.Validation("specialRequests", len(req.SpecialRequests), "must be at most 1000 characters"))
	}

	if c.HasErrors() {
		return nil, c.Err()
	}

	booking.Seats = seats
	booking.TravelDate = travelDate
	booking.Contact = ContactInfo{Phone: phone, EmergencyContact: emergency}
	booking.SpecialRequests = req.SpecialRequests

	provider := s.destinations
	entity := "destination"
	if isEvent {
		provider = s.events
		entity = "event"
		booking.EventID = &targetID
	} else {
		booking.DestinationID = &targetID
	}

	target, err := provider.GetBookingTarget(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if !target.IsActive {
		return nil, apperrors.BusinessRule(
			"TARGET_INACTIVE",
			fmt.Sprintf("%s %s is not open for booking", entity, target.Name),
		).WithDetail(entity+"_id", targetID)
	}

	// Amount is always computed server-side, never trusted from the client.
	booking.TotalAmount = ComputeAmount(target.PackagePrice, seats, s.defaultPackagePrice)

	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}

	s.log.LogBookingCreated(ctx, booking.ID.String(), targetID.String(), userID.String())
	s.publish(ctx, EventBookingCreated, booking)
	return booking, nil
}

// coerceTarget validates that exactly one target identifier is supplied
// and returns it as a UUID.
func (s *service) coerceTarget(req CreateBookingRequest) (uuid.UUID, bool, error) {
	hasDestination := req.DestinationID != nil
	hasEvent := req.EventID != nil
	if hasDestination == hasEvent {
		return uuid.Nil, false, apperrors.Validation("destinationId", nil, "exactly one of destinationId or eventId is required")
	}

	field, raw := "destinationId", req.DestinationID
	if hasEvent {
		field, raw = "eventId", req.EventID
	}

	id, err := coerce.Identifier(field, raw)
	if err != nil {
		return uuid.Nil, hasEvent, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, hasEvent, apperrors.Validation(field, id, "is not a valid identifier")
	}
	return parsed, hasEvent, nil
}

// GetBooking retrieves a booking; owners only see their own records.
func (s *service) GetBooking(ctx context.Context, bookingID, callerID uuid.UUID, isAdmin bool) (*Booking, error) {
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && booking.UserID != callerID {
		return nil, apperrors.Authorization("booking does not belong to caller")
	}
	return booking, nil
}

// ListBookings lists the caller's bookings, or every booking for admins.
func (s *service) ListBookings(ctx context.Context, callerID uuid.UUID, isAdmin bool, query BookingListQuery) (*PaginatedBookings, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	var (
		records []Booking
		total   int64
		err     error
	)
	if isAdmin {
		records, total, err = s.repo.GetAllBookings(ctx, query)
	} else {
		records, total, err = s.repo.GetUserBookings(ctx, callerID, query)
	}
	if err != nil {
		return nil, err
	}

	return &PaginatedBookings{
		Bookings:   records,
		TotalCount: total,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: CalculateTotalPages(total, query.Limit),
	}, nil
}

// UpdateBooking applies a partial update. Owners may only change the
// special requests; elevated callers may change any field, with status
// changes still bound by the state machine.
func (s *service) UpdateBooking(ctx context.Context, bookingID, callerID uuid.UUID, isAdmin bool, req UpdateBookingRequest) (*Booking, error) {
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && booking.UserID != callerID {
		return nil, apperrors.Authorization("booking does not belong to caller")
	}
	if booking.IsCancelled() {
		return nil, apperrors.BusinessRule("BOOKING_CANCELLED", "cancelled bookings cannot be modified")
	}

	if !isAdmin {
		if req.Seats != nil || req.TravelDate != nil || req.BookingStatus != nil || req.PaymentStatus != nil {
			return nil, apperrors.Authorization("only special requests can be changed by the booking owner")
		}
		if req.SpecialRequests == nil {
			return nil, apperrors.Validation("specialRequests", nil, "is required")
		}
	}

	if req.SpecialRequests != nil {
		if len(*req.SpecialRequests) > 1000 {
			return nil, apperrors.Validation("specialRequests", len(*req.SpecialRequests), "must be at most 1000 characters")
		}
		booking.SpecialRequests = *req.SpecialRequests
	}

	if req.Seats != nil {
		seats, err := coerce.Seats(req.Seats)
		if err != nil {
			return nil, err
		}
		booking.Seats = seats

		// Seat changes reprice the booking against the current package.
		target, err := s.resolveTarget(ctx, booking)
		if err != nil {
			return nil, err
		}
		booking.TotalAmount = ComputeAmount(target.PackagePrice, seats, s.defaultPackagePrice)
	}

	if req.TravelDate != nil {
		travelDate, err := coerce.TravelDate("travelDate", req.TravelDate)
		if err != nil {
			return nil, err
		}
		if travelDate != nil && !travelDate.After(time.Now().UTC()) {
			return nil, apperrors.Validation("travelDate", travelDate.Format(time.RFC3339), "must be in the future")
		}
		booking.TravelDate = travelDate
	}

	if err := s.repo.UpdateBooking(ctx, booking); err != nil {
		return nil, err
	}

	if req.BookingStatus != nil || req.PaymentStatus != nil {
		if err := s.applyAdminStatusChange(ctx, booking, req); err != nil {
			return nil, err
		}
	}

	return s.repo.GetBookingByID(ctx, bookingID)
}

// applyAdminStatusChange validates and applies an explicit status change
// requested through the update endpoint. Both axes land in one write.
func (s *service) applyAdminStatusChange(ctx context.Context, booking *Booking, req UpdateBookingRequest) error {
	nextBooking := booking.BookingStatus
	nextPayment := booking.PaymentStatus

	if req.BookingStatus != nil {
		nextBooking = BookingStatus(*req.BookingStatus)
		if !nextBooking.IsValid() {
			return apperrors.Validation("bookingStatus", *req.BookingStatus, "is not a valid booking status")
		}
	}
	if req.PaymentStatus != nil {
		nextPayment = PaymentStatus(*req.PaymentStatus)
		if !nextPayment.IsValid() {
			return apperrors.Validation("paymentStatus", *req.PaymentStatus, "is not a valid payment status")
		}
	}

	if nextBooking != booking.BookingStatus && !booking.BookingStatus.CanTransitionTo(nextBooking) {
		return apperrors.BusinessRule("ILLEGAL_TRANSITION",
			fmt.Sprintf("booking status cannot move from %s to %s", booking.BookingStatus, nextBooking))
	}
	if nextPayment != booking.PaymentStatus && !booking.PaymentStatus.CanTransitionTo(nextPayment) {
		return apperrors.BusinessRule("ILLEGAL_TRANSITION",
			fmt.Sprintf("payment status cannot move from %s to %s", booking.PaymentStatus, nextPayment))
	}

	// Cross-axis coupling: paid implies confirmed, and a cancelled booking
	// that was paid must come out refunded.
	if nextPayment == PaymentPaid && nextBooking != StatusConfirmed {
		return apperrors.BusinessRule("ILLEGAL_TRANSITION", "a paid booking must be confirmed in the same transition")
	}
	if nextBooking == StatusCancelled && nextPayment == PaymentPaid {
		return apperrors.BusinessRule("ILLEGAL_TRANSITION", "cancelling a paid booking requires recording the refund")
	}

	change := StatusChange{BookingStatus: nextBooking, PaymentStatus: nextPayment}
	if nextPayment == PaymentPaid && booking.PaymentStatus == PaymentUnpaid {
		now := time.Now().UTC()
		change.PaymentConfirmedAt = &now
	}

	return s.repo.ApplyTransition(ctx, booking.ID,
		StatusPair{Booking: booking.BookingStatus, Payment: booking.PaymentStatus}, change)
}

// ConfirmPayment applies the coupled pending→confirmed, unpaid→paid
// transition atomically and stamps the confirmation time.
func (s *service) ConfirmPayment(ctx context.Context, bookingID, callerID uuid.UUID, isAdmin bool, req ConfirmPaymentRequest) (*Booking, error) {
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && booking.UserID != callerID {
		return nil, apperrors.Authorization("booking does not belong to caller")
	}

	if booking.IsCancelled() {
		return nil, apperrors.BusinessRule("BOOKING_CANCELLED", "cannot confirm payment on a cancelled booking")
	}
	if booking.IsPaid() {
		return nil, apperrors.BusinessRule("ALREADY_PAID", "payment has already been confirmed for this booking")
	}
	if !booking.BookingStatus.CanTransitionTo(StatusConfirmed) || !booking.PaymentStatus.CanTransitionTo(PaymentPaid) {
		return nil, apperrors.BusinessRule("ILLEGAL_TRANSITION",
			fmt.Sprintf("cannot confirm payment from state (%s, %s)", booking.BookingStatus, booking.PaymentStatus))
	}

	now := time.Now().UTC()
	change := StatusChange{
		BookingStatus:      StatusConfirmed,
		PaymentStatus:      PaymentPaid,
		PaymentConfirmedAt: &now,
		TransactionID:      req.TransactionID,
		PaymentMethod:      req.PaymentMethod,
	}
	err = s.repo.ApplyTransition(ctx, bookingID,
		StatusPair{Booking: booking.BookingStatus, Payment: booking.PaymentStatus}, change)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	s.log.LogPaymentConfirmed(ctx, bookingID.String(), req.TransactionID)
	s.publish(ctx, EventPaymentConfirmed, updated)
	return updated, nil
}

// RejectPayment cancels the booking, leaves the payment unpaid and
// appends the rejection reason to the special requests rather than
// overwriting them. Elevated callers only; the router enforces the role.
func (s *service) RejectPayment(ctx context.Context, bookingID uuid.UUID, req RejectPaymentRequest) (*Booking, error) {
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.IsCancelled() {
		return nil, apperrors.BusinessRule("BOOKING_CANCELLED", "booking is already cancelled")
	}
	if booking.IsPaid() {
		return nil, apperrors.BusinessRule("ALREADY_PAID", "cannot reject payment that was already confirmed")
	}

	notes := booking.SpecialRequests
	if notes != "" {
		notes += "\n"
	}
	notes += "[payment rejected] " + req.Reason

	change := StatusChange{
		BookingStatus:   StatusCancelled,
		PaymentStatus:   booking.PaymentStatus,
		SpecialRequests: &notes,
	}
	err = s.repo.ApplyTransition(ctx, bookingID,
		StatusPair{Booking: booking.BookingStatus, Payment: booking.PaymentStatus}, change)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, EventPaymentRejected, updated)
	return updated, nil
}

// CancelBooking moves the booking to its terminal state. A paid booking
// comes out refunded in the same write; there is never an observable
// cancelled+paid state.
func (s *service) CancelBooking(ctx context.Context, bookingID, callerID uuid.UUID, isAdmin bool) (*CancellationResponse, error) {
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && booking.UserID != callerID {
		return nil, apperrors.Authorization("booking does not belong to caller")
	}

	if booking.IsCancelled() {
		return nil, apperrors.BusinessRule("BOOKING_CANCELLED", "booking is already cancelled")
	}

	// Admins bypass the cancellation window, never the terminal-state rule.
	if !isAdmin {
		if allowed, reason := CanCancel(booking.BookingStatus, booking.TravelDate, time.Now().UTC()); !allowed {
			return nil, apperrors.BusinessRule("CANCELLATION_DENIED", reason)
		}
	}

	refund := 0.0
	nextPayment := booking.PaymentStatus
	if booking.IsPaid() {
		refund = RefundAmount(booking.TotalAmount, booking.TravelDate, time.Now().UTC())
		nextPayment = PaymentRefunded
	}

	change := StatusChange{
		BookingStatus: StatusCancelled,
		PaymentStatus: nextPayment,
	}
	err = s.repo.ApplyTransition(ctx, bookingID,
		StatusPair{Booking: booking.BookingStatus, Payment: booking.PaymentStatus}, change)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	s.log.LogBookingCancelled(ctx, bookingID.String(), callerID.String(), refund)
	s.publish(ctx, EventBookingCancelled, updated)

	return &CancellationResponse{
		BookingID:     updated.ID.String(),
		BookingStatus: updated.BookingStatus.String(),
		PaymentStatus: updated.PaymentStatus.String(),
		RefundAmount:  refund,
	}, nil
}

// resolveTarget fetches the booking's destination or event.
func (s *service) resolveTarget(ctx context.Context, booking *Booking) (*TargetInfo, error) {
	if booking.EventID != nil {
		return s.events.GetBookingTarget(ctx, *booking.EventID)
	}
	if booking.DestinationID != nil {
		return s.destinations.GetBookingTarget(ctx, *booking.DestinationID)
	}
	return nil, apperrors.Validation("target", nil, "booking has no target")
}

// publish sends a lifecycle event; failures never fail the operation.
func (s *service) publish(ctx context.Context, eventType string, booking *Booking) {
	if s.publisher == nil {
		return
	}
	// Best-effort: the write already committed.
	_ = s.publisher.PublishBookingEvent(ctx, eventType, booking)
}
