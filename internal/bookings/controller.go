package bookings

import (
	"net/http"

	"voyago/internal/shared/middleware"
	"voyago/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// callerID extracts the authenticated user id set by the JWT middleware.
func callerID(ctx *gin.Context) (uuid.UUID, bool) {
	userIDInterface, exists := ctx.Get("user_id")
	if !exists {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return uuid.Nil, false
	}

	userIDStr, ok := userIDInterface.(string)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Invalid user ID format", nil, nil)
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid user ID", nil, nil)
		return uuid.Nil, false
	}
	return userID, true
}

// bookingID parses the :id path parameter.
func bookingID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return uuid.Nil, false
	}
	return id, true
}

// CreateBooking handles POST /api/v1/bookings
func (c *Controller) CreateBooking(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}

	var req CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	booking, err := c.service.CreateBooking(ctx.Request.Context(), userID, req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Booking created successfully", booking, nil)
}

// GetBooking handles GET /api/v1/bookings/:id
func (c *Controller) GetBooking(ctx *gin.Context) {
	id, ok := bookingID(ctx)
	if !ok {
		return
	}
	userID, ok := callerID(ctx)
	if !ok {
		return
	}

	booking, err := c.service.GetBooking(ctx.Request.Context(), id, userID, middleware.IsAdmin(ctx))
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking retrieved successfully", booking, nil)
}

// ListBookings handles GET /api/v1/bookings
func (c *Controller) ListBookings(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}

	var query BookingListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	result, err := c.service.ListBookings(ctx.Request.Context(), userID, middleware.IsAdmin(ctx), query)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bookings retrieved successfully", result, nil)
}

// UpdateBooking handles PUT /api/v1/bookings/:id
func (c *Controller) UpdateBooking(ctx *gin.Context) {
	id, ok := bookingID(ctx)
	if !ok {
		return
	}
	userID, ok := callerID(ctx)
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	booking, err := c.service.UpdateBooking(ctx.Request.Context(), id, userID, middleware.IsAdmin(ctx), req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking updated successfully", booking, nil)
}

// ConfirmPayment handles POST /api/v1/bookings/:id/confirm-payment
func (c *Controller) ConfirmPayment(ctx *gin.Context) {
	id, ok := bookingID(ctx)
	if !ok {
		return
	}
	userID, ok := callerID(ctx)
	if !ok {
		return
	}

	var req ConfirmPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	booking, err := c.service.ConfirmPayment(ctx.Request.Context(), id, userID, middleware.IsAdmin(ctx), req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Payment confirmed successfully", booking, nil)
}

// RejectPayment handles POST /api/v1/bookings/:id/reject-payment
func (c *Controller) RejectPayment(ctx *gin.Context) {
	id, ok := bookingID(ctx)
	if !ok {
		return
	}

	var req RejectPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	booking, err := c.service.RejectPayment(ctx.Request.Context(), id, req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Payment rejected", booking, nil)
}

// CancelBooking handles DELETE /api/v1/bookings/:id
func (c *Controller) CancelBooking(ctx *gin.Context) {
	id, ok := bookingID(ctx)
	if !ok {
		return
	}
	userID, ok := callerID(ctx)
	if !ok {
		return
	}

	// The refund amount travels in the structured logs; the response
	// itself carries no body.
	if _, err := c.service.CancelBooking(ctx.Request.Context(), id, userID, middleware.IsAdmin(ctx)); err != nil {
		response.RespondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
