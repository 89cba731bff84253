package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"heala/internal/domain"
	"heala/pkg/validator"
)

// @Summary Create a booking
// @Description Books a session with a verified, available practitioner. The booking starts in pending.
// @Tags Bookings
// @Accept json
// @Produce json
// @Param input body domain.CreateBookingDTO true "Booking data"
// @Success 201 {object} map[string]interface{} "ID of the created booking"
// @Failure 400 {object} errorResponseBody "Validation error"
// @Failure 403 {object} errorResponseBody "Only clients may book"
// @Failure 404 {object} errorResponseBody "Practitioner not found"
// @Failure 422 {object} errorResponseBody "Practitioner is not bookable"
// @Security ApiKeyAuth
// @Router /bookings [post]
func (h *Handler) createBooking(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var req domain.CreateBookingDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid booking payload", zap.Error(err))
		badRequestResponse(c, "invalid request body")
		return
	}

	id, err := h.services.Booking.Create(c.Request.Context(), actor, req)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	createdResponse(c, gin.H{"id": id})
}

func (h *Handler) getBookingByID(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	booking, err := h.services.Booking.GetByID(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, booking)
}

func (h *Handler) getBookings(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var filter domain.BookingFilter

	if statusStr := c.Query("status"); statusStr != "" {
		status := domain.BookingStatus(statusStr)
		if !status.IsValid() {
			badRequestResponse(c, "invalid booking status")
			return
		}
		filter.Status = &status
	}
	if fromStr := c.Query("from_date"); fromStr != "" {
		from, err := validator.ParseDate(fromStr)
		if err != nil {
			badRequestResponse(c, "invalid from_date")
			return
		}
		filter.FromDate = &from
	}
	if toStr := c.Query("to_date"); toStr != "" {
		to, err := validator.ParseDate(toStr)
		if err != nil {
			badRequestResponse(c, "invalid to_date")
			return
		}
		filter.ToDate = &to
	}
	filter.OrderDesc = c.Query("order") == "desc"
	filter.Limit, filter.Offset = paginationParams(c)

	bookings, total, err := h.services.Booking.List(c.Request.Context(), actor, filter)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	paginatedSuccessResponse(c, bookings, total, filter.Offset/filter.Limit+1, filter.Limit)
}

type transitionBookingRequest struct {
	Status domain.BookingStatus `json:"status" binding:"required"`
}

// @Summary Transition a booking
// @Description Moves a booking to a new status. Clients may cancel their own bookings; practitioners may confirm, cancel and complete theirs.
// @Tags Bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param input body transitionBookingRequest true "Target status"
// @Success 200 {object} messageResponseType
// @Failure 400 {object} errorResponseBody "Invalid status"
// @Failure 403 {object} errorResponseBody "Actor may not perform this transition"
// @Failure 404 {object} errorResponseBody "Booking not found"
// @Failure 409 {object} errorResponseBody "Transition not allowed or booking changed concurrently"
// @Failure 422 {object} errorResponseBody "Completion before the session date"
// @Security ApiKeyAuth
// @Router /bookings/{id}/status [patch]
func (h *Handler) transitionBooking(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var req transitionBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "invalid request body")
		return
	}

	if err := h.services.Booking.Transition(c.Request.Context(), actor, c.Param("id"), req.Status); err != nil {
		domainErrorResponse(c, err)
		return
	}

	messageResponse(c, http.StatusOK, "booking updated")
}

func (h *Handler) getPractitionerStats(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	stats, err := h.services.Booking.PractitionerStats(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, stats)
}

func (h *Handler) getClientStats(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	stats, err := h.services.Booking.ClientStats(c.Request.Context(), actor)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, stats)
}
