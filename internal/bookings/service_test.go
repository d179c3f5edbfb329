package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"voyago/internal/shared/apperrors"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) CreateBooking(ctx context.Context, booking *Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *mockRepository) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	args := m.Called(ctx, id)
	if b := args.Get(0); b != nil {
		return b.(*Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) UpdateBooking(ctx context.Context, booking *Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *mockRepository) ApplyTransition(ctx context.Context, id uuid.UUID, expected StatusPair, change StatusChange) error {
	args := m.Called(ctx, id, expected, change)
	return args.Error(0)
}

func (m *mockRepository) GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	args := m.Called(ctx, userID, query)
	return args.Get(0).([]Booking), args.Get(1).(int64), args.Error(2)
}

func (m *mockRepository) GetAllBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]Booking), args.Get(1).(int64), args.Error(2)
}

type mockTargetProvider struct {
	mock.Mock
}

func (m *mockTargetProvider) GetBookingTarget(ctx context.Context, id uuid.UUID) (*TargetInfo, error) {
	args := m.Called(ctx, id)
	if t := args.Get(0); t != nil {
		return t.(*TargetInfo), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishBookingEvent(ctx context.Context, eventType string, booking *Booking) error {
	args := m.Called(ctx, eventType, booking)
	return args.Error(0)
}

const defaultPrice = 5000.0

func newTestService(repo *mockRepository, dests, events *mockTargetProvider) Service {
	return NewService(repo, dests, events, nil, defaultPrice)
}

func validCreateRequest(destinationID uuid.UUID) CreateBookingRequest {
	return CreateBookingRequest{
		DestinationID: destinationID.String(),
		Seats:         3,
		TravelDate:    time.Now().UTC().AddDate(0, 1, 0).Format(time.RFC3339),
		ContactInfo: ContactInfoRequest{
			Phone:            "+91 98765 43210",
			EmergencyContact: "9123456780",
		},
		SpecialRequests: "window seats please",
	}
}

func TestCreateBookingComputesAmountFromPackagePrice(t *testing.T) {
	repo := new(mockRepository)
	dests := new(mockTargetProvider)
	events := new(mockTargetProvider)
	svc := newTestService(repo, dests, events)

	userID := uuid.New()
	destID := uuid.New()
	price := 2000.0

	dests.On("GetBookingTarget", mock.Anything, destID).Return(&TargetInfo{
		ID:           destID,
		Name:         "Goa Beach Getaway",
		PackagePrice: &price,
		IsActive:     true,
	}, nil)

	var persisted *Booking
	repo.On("CreateBooking", mock.Anything, mock.AnythingOfType("*bookings.Booking")).
		Run(func(args mock.Arguments) {
			persisted = args.Get(1).(*Booking)
		}).Return(nil)

	booking, err := svc.CreateBooking(context.Background(), userID, validCreateRequest(destID))
	require.NoError(t, err)
	require.NotNil(t, persisted)

	assert.Equal(t, 3, persisted.Seats)
	assert.InDelta(t, 6000.0, persisted.TotalAmount, 0.001)
	assert.Equal(t, StatusPending, persisted.BookingStatus)
	assert.Equal(t, PaymentUnpaid, persisted.PaymentStatus)
	assert.Equal(t, "919876543210", persisted.Contact.Phone)
	require.NotNil(t, booking.DestinationID)
	assert.Equal(t, destID, *booking.DestinationID)
}

func TestCreateBookingCoercesStringSeats(t *testing.T) {
	repo := new(mockRepository)
	dests := new(mockTargetProvider)
	svc := newTestService(repo, dests, new(mockTargetProvider))

	destID := uuid.New()
	dests.On("GetBookingTarget", mock.Anything, destID).Return(&TargetInfo{
		ID: destID, Name: "Manali", PackagePrice: nil, IsActive: true,
	}, nil)

	var persisted *Booking
	repo.On("CreateBooking", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { persisted = args.Get(1).(*Booking) }).
		Return(nil)

	req := validCreateRequest(destID)
	req.Seats = "2"

	_, err := svc.CreateBooking(context.Background(), uuid.New(), req)
	require.NoError(t, err)
	assert.Equal(t, 2, persisted.Seats)
	// nil package price falls back to the default
	assert.InDelta(t, 2*defaultPrice, persisted.TotalAmount, 0.001)
}

func TestCreateBookingAggregatesFieldErrors(t *testing.T) {
	svc := newTestService(new(mockRepository), new(mockTargetProvider), new(mockTargetProvider))

	req := validCreateRequest(uuid.New())
	req.Seats = "two"
	req.ContactInfo.Phone = "12345"
	req.TravelDate = "whenever"

	_, err := svc.CreateBooking(context.Background(), uuid.New(), req)
	require.Error(t, err)

	appErr := apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.KindValidation, appErr.Kind)

	fields, ok := appErr.Details["fields"].([]map[string]any)
	require.True(t, ok)
	assert.Len(t, fields, 3)
}

func TestCreateBookingRequiresExactlyOneTarget(t *testing.T) {
	svc := newTestService(new(mockRepository), new(mockTargetProvider), new(mockTargetProvider))

	req := validCreateRequest(uuid.New())
	req.EventID = uuid.New().String()

	_, err := svc.CreateBooking(context.Background(), uuid.New(), req)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	req = validCreateRequest(uuid.New())
	req.DestinationID = nil

	_, err = svc.CreateBooking(context.Background(), uuid.New(), req)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestCreateBookingRejectsInactiveTarget(t *testing.T) {
	repo := new(mockRepository)
	dests := new(mockTargetProvider)
	svc := newTestService(repo, dests, new(mockTargetProvider))

	destID := uuid.New()
	price := 11000.0
	dests.On("GetBookingTarget", mock.Anything, destID).Return(&TargetInfo{
		ID: destID, Name: "Rann of Kutch Safari", PackagePrice: &price, IsActive: false,
	}, nil)

	_, err := svc.CreateBooking(context.Background(), uuid.New(), validCreateRequest(destID))
	require.Error(t, err)

	appErr := apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.KindBusinessRule, appErr.Kind)
	assert.Equal(t, "TARGET_INACTIVE", appErr.Code)
	repo.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
}

func TestCreateBookingRejectsPastTravelDate(t *testing.T) {
	svc := newTestService(new(mockRepository), new(mockTargetProvider), new(mockTargetProvider))

	req := validCreateRequest(uuid.New())
	req.TravelDate = "2020-01-01"

	_, err := svc.CreateBooking(context.Background(), uuid.New(), req)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestGetBookingOwnership(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo, new(mockTargetProvider), new(mockTargetProvider))

	ownerID := uuid.New()
	bookingID := uuid.New()
	repo.On("GetBookingByID", mock.Anything, bookingID).Return(&Booking{
		ID: bookingID, UserID: ownerID,
		BookingStatus: StatusPending, PaymentStatus: PaymentUnpaid,
	}, nil)

	_, err := svc.GetBooking(context.Background(), bookingID, ownerID, false)
	assert.NoError(t, err)

	_, err = svc.GetBooking(context.Background(), bookingID, uuid.New(), false)
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuthorization))

	_, err = svc.GetBooking(context.Background(), bookingID, uuid.New(), true)
	assert.NoError(t, err)
}

func TestConfirmPaymentHappyPath(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo, new(mockTargetProvider), new(mockTargetProvider))

	ownerID := uuid.New()
	bookingID := uuid.New()
	pending := &Booking{
		ID: bookingID, UserID: ownerID,
		BookingStatus: StatusPending, PaymentStatus: PaymentUnpaid,
	}
	confirmed := &Booking{
		ID: bookingID, UserID: ownerID,
		BookingStatus: StatusConfirmed, PaymentStatus: PaymentPaid,
	}

	repo.On("GetBookingByID", mock.Anything, bookingID).Return(pending, nil).Once()
	repo.On("ApplyTransition", mock.Anything, bookingID,
		StatusPair{Booking: StatusPending, Payment: PaymentUnpaid},
		mock.MatchedBy(func(c StatusChange) bool {
			return c.BookingStatus == StatusConfirmed &&
				c.PaymentStatus == PaymentPaid &&
				c.PaymentConfirmedAt != nil &&
				c.TransactionID == "txn-0012345"
		})).Return(nil).Once()
	repo.On("GetBookingByID", mock.Anything, bookingID).Return(confirmed, nil).Once()

	got, err := svc.ConfirmPayment(context.Background(), bookingID, ownerID, false, ConfirmPaymentRequest{
		TransactionID: "txn-0012345",
		PaymentMethod: "upi",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, got.BookingStatus)
	assert.Equal(t, PaymentPaid, got.PaymentStatus)
	repo.AssertExpectations(t)
}

func TestConfirmPaymentRejectsAlreadyPaid(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo, new(mockTargetProvider), new(mockTargetProvider))

	ownerID := uuid.New()
	bookingID := uuid.New()
	repo.On("GetBookingByID", mock.Anything, bookingID).Return(&Booking{
		ID: bookingID, UserID: ownerID,
		BookingStatus: StatusConfirmed, PaymentStatus: PaymentPaid,
	}, nil)

	_, err := svc.ConfirmPayment(context.Background(), bookingID, ownerID, false, ConfirmPaymentRequest{
		TransactionID: "txn-0012345", PaymentMethod: "card",
	})
	require.Error(t, err)

	appErr := apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "ALREADY_PAID", appErr.Code)
	repo.AssertNotCalled(t, "ApplyTransition", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmPaymentRejectsCancelledBooking(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo, new(mockTargetProvider), new(mockTargetProvider))

	ownerID := uuid.New()
	bookingID := uuid.New()
	repo.On("GetBookingByID", mock.Anything, bookingID).Return(&Booking{
		ID: bookingID, UserID: ownerID,
		BookingStatus: StatusCancelled, PaymentStatus: PaymentUnpaid,
	}, nil)

	_, err := svc.ConfirmPayment(context.Background(), bookingID, ownerID, false, ConfirmPaymentRequest{
		TransactionID: "txn-0012345", PaymentMethod: "card",
	})
	require.Error(t, err)
	assert.Equal(t, "BOOKING_CANCELLED", apperrors.As(err).Code)
}

func TestRejectPaymentAppendsReason(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo, new(mockTargetProvider), new(mockTargetProvider))

	bookingID := uuid.New()
	pending := &Booking{
		ID: bookingID, UserID: uuid.New(),
		BookingStatus: StatusPending, PaymentStatus: PaymentUnpaid,
		SpecialRequests: "vegetarian meals",
	}
	cancelled := &Booking{
		ID: bookingID, UserID: pending.UserID,
		BookingStatus: StatusCancelled, PaymentStatus: PaymentUnpaid,
	}

	repo.On("GetBookingByID", mock.Anything, bookingID).Return(pending, nil).Once()
	repo.On("ApplyTransition", mock.Anything, bookingID,
		StatusPair{Booking: StatusPending, Payment: PaymentUnpaid},
		mock.MatchedBy(func(c StatusChange) bool {
			return c.BookingStatus == StatusCancelled &&
				c.PaymentStatus == PaymentUnpaid &&
				c.SpecialRequests != nil &&
				*c.SpecialRequests == "vegetarian meals\n[payment rejected] card declined"
		})).Return(nil).Once()
	repo.On("GetBookingByID", mock.Anything, bookingID).Return(cancelled, nil).Once()

	got, err := svc.RejectPayment(context.Background(), bookingID, RejectPaymentRequest{Reason: "card declined"})
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, got.BookingStatus)
	assert.Equal(t, PaymentUnpaid, got.PaymentStatus)
	repo.AssertExpectations(t)
}

func TestCancelPaidBookingRefundsAtomically(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo, new(mockTargetProvider), new(mockTargetProvider))

	ownerID := uuid.New()
	bookingID := uuid.New()
	travel := time.Now().UTC().Add(200 * time.Hour)
	paid := &Booking{
		ID: bookingID, UserID: ownerID,
		BookingStatus: StatusConfirmed, PaymentStatus: PaymentPaid,
		TotalAmount: 10000, TravelDate: &travel,
	}
	refunded := &Booking{
		ID: bookingID, UserID: ownerID,
		BookingStatus: StatusCancelled, PaymentStatus: PaymentRefunded,
		TotalAmount: 10000,
	}

	repo.On("GetBookingByID", mock.Anything, bookingID).Return(paid, nil).Once()
	repo.On("ApplyTransition", mock.Anything, bookingID,
		StatusPair{Booking: StatusConfirmed, Payment: PaymentPaid},
		mock.MatchedBy(func(c StatusChange) bool {
			// both axes move in one write, no cancelled+paid in between
			return c.BookingStatus == StatusCancelled && c.PaymentStatus == PaymentRefunded
		})).Return(nil).Once()
	repo.On("GetBookingByID", mock.Anything, bookingID).Return(refunded, nil).Once()

	resp, err := svc.CancelBooking(context.Background(), bookingID, ownerID, false)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.BookingStatus)
	assert.Equal(t, "refunded", resp.PaymentStatus)
	assert.InDelta(t, 9500.0, resp.RefundAmount, 0.001) // over a week out: 95%
	repo.AssertExpectations(t)
}

func TestCancelInsideWindowDeniedForOwner(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo, new(mockTargetProvider), new(mockTargetProvider))

	ownerID := uuid.New()
	bookingID := uuid.New()
	travel := time.Now().UTC().Add(24 * time.Hour)
	repo.On("GetBookingByID", mock.Anything, bookingID).Return(&Booking{
		ID: bookingID, UserID: ownerID,
		BookingStatus: StatusConfirmed, PaymentStatus: PaymentUnpaid,
		TravelDate: &travel,
	}, nil)

	_, err := svc.CancelBooking(context.Background(), bookingID, ownerID, false)
	require.Error(t, err)
	assert.Equal(t, "CANCELLATION_DENIED", apperrors.As(err).Code)
	repo.AssertNotCalled(t, "ApplyTransition", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelInsideWindowAllowedForAdmin(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo, new(mockTargetProvider), new(mockTargetProvider))

	bookingID := uuid.New()
	travel := time.Now().UTC().Add(24 * time.Hour)
	booking := &Booking{
		ID: bookingID, UserID: uuid.New(),
		BookingStatus: StatusConfirmed, PaymentStatus: PaymentUnpaid,
		TravelDate: &travel,
	}
	cancelled := &Booking{
		ID: bookingID, UserID: booking.UserID,
		BookingStatus: StatusCancelled, PaymentStatus: PaymentUnpaid,
	}

	repo.On("GetBookingByID", mock.Anything, bookingID).Return(booking, nil).Once()
	repo.On("ApplyTransition", mock.Anything, bookingID, mock.Anything, mock.Anything).Return(nil).Once()
	repo.On("GetBookingByID", mock.Anything, bookingID).Return(cancelled, nil).Once()

	resp, err := svc.CancelBooking(context.Background(), bookingID, uuid.New(), true)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.BookingStatus)
}

func TestCancelAlreadyCancelledIsTerminalEvenForAdmin(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo, new(mockTargetProvider), new(mockTargetProvider))

	bookingID := uuid.New()
	repo.On("GetBookingByID", mock.Anything, bookingID).Return(&Booking{
		ID: bookingID, UserID: uuid.New(),
		BookingStatus: StatusCancelled, PaymentStatus: PaymentRefunded,
	}, nil)

	_, err := svc.CancelBooking(context.Background(), bookingID, uuid.New(), true)
	require.Error(t, err)
	assert.Equal(t, "BOOKING_CANCELLED", apperrors.As(err).Code)
}

func TestUpdateBookingOwnerLimitedToSpecialRequests(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo, new(mockTargetProvider), new(mockTargetProvider))

	ownerID := uuid.New()
	bookingID := uuid.New()
	repo.On("GetBookingByID", mock.Anything, bookingID).Return(&Booking{
		ID: bookingID, UserID: ownerID,
		BookingStatus: StatusPending, PaymentStatus: PaymentUnpaid,
	}, nil)

	_, err := svc.UpdateBooking(context.Background(), bookingID, ownerID, false, UpdateBookingRequest{
		Seats: 5,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuthorization))
}

func TestUpdateBookingCancelledIsImmutable(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo, new(mockTargetProvider), new(mockTargetProvider))

	bookingID := uuid.New()
	confirmed := "confirmed"
	repo.On("GetBookingByID", mock.Anything, bookingID).Return(&Booking{
		ID: bookingID, UserID: uuid.New(),
		BookingStatus: StatusCancelled, PaymentStatus: PaymentUnpaid,
	}, nil)

	_, err := svc.UpdateBooking(context.Background(), bookingID, uuid.New(), true, UpdateBookingRequest{
		BookingStatus: &confirmed,
	})
	require.Error(t, err)
	assert.Equal(t, "BOOKING_CANCELLED", apperrors.As(err).Code)
}

func TestUpdateBookingAdminCannotMarkPaidWithoutConfirming(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo, new(mockTargetProvider), new(mockTargetProvider))

	bookingID := uuid.New()
	paidStr := "paid"
	repo.On("GetBookingByID", mock.Anything, bookingID).Return(&Booking{
		ID: bookingID, UserID: uuid.New(),
		BookingStatus: StatusPending, PaymentStatus: PaymentUnpaid,
	}, nil)
	repo.On("UpdateBooking", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.UpdateBooking(context.Background(), bookingID, uuid.New(), true, UpdateBookingRequest{
		PaymentStatus: &paidStr,
	})
	require.Error(t, err)
	assert.Equal(t, "ILLEGAL_TRANSITION", apperrors.As(err).Code)
}

func TestListBookingsScopesToCaller(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo, new(mockTargetProvider), new(mockTargetProvider))

	callerID := uuid.New()
	repo.On("GetUserBookings", mock.Anything, callerID, mock.Anything).
		Return([]Booking{{ID: uuid.New(), UserID: callerID}}, int64(1), nil)

	resp, err := svc.ListBookings(context.Background(), callerID, false, BookingListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.TotalCount)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 10, resp.Limit)
	repo.AssertNotCalled(t, "GetAllBookings", mock.Anything, mock.Anything)
}

func TestPublishedEventsOnLifecycle(t *testing.T) {
	repo := new(mockRepository)
	dests := new(mockTargetProvider)
	pub := new(mockPublisher)
	svc := NewService(repo, dests, new(mockTargetProvider), pub, defaultPrice)

	destID := uuid.New()
	price := 1000.0
	dests.On("GetBookingTarget", mock.Anything, destID).Return(&TargetInfo{
		ID: destID, Name: "Kerala", PackagePrice: &price, IsActive: true,
	}, nil)
	repo.On("CreateBooking", mock.Anything, mock.Anything).Return(nil)
	pub.On("PublishBookingEvent", mock.Anything, EventBookingCreated, mock.Anything).Return(nil)

	_, err := svc.CreateBooking(context.Background(), uuid.New(), validCreateRequest(destID))
	require.NoError(t, err)
	pub.AssertCalled(t, "PublishBookingEvent", mock.Anything, EventBookingCreated, mock.Anything)
}
