package set_reason

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/HMS-CancellationService/internal/api/handlers"
	"github.com/m04kA/HMS-CancellationService/internal/service/cancellations"
	"github.com/m04kA/HMS-CancellationService/internal/usecase/cancel_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSessionNotFound    = "активная отмена для бронирования не найдена"
	msgInvalidReason      = "недопустимая причина отмены"
	msgSubmitInFlight     = "отмена уже отправляется, дождитесь результата"
	msgSessionClosed      = "сессия отмены завершена"
)

type Handler struct {
	service CancellationService
	logger  Logger
}

func NewHandler(service CancellationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/cancellation/reason
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancellation/reason - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req SetReasonRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancellation/reason - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	session, err := h.service.SetReason(r.Context(), bookingID, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, cancellations.ErrSessionNotFound):
			h.logger.Warn("PATCH /bookings/{id}/cancellation/reason - Session not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, cancel_booking.ErrValidation):
			h.logger.Warn("PATCH /bookings/{id}/cancellation/reason - Invalid reason: booking_id=%d, reason=%s",
				bookingID, req.Reason)
			handlers.RespondBadRequest(w, msgInvalidReason)

		case errors.Is(err, cancel_booking.ErrSubmitInFlight):
			h.logger.Warn("PATCH /bookings/{id}/cancellation/reason - Submit in flight: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgSubmitInFlight)

		case errors.Is(err, cancel_booking.ErrSessionClosed):
			h.logger.Warn("PATCH /bookings/{id}/cancellation/reason - Session closed: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgSessionClosed)

		default:
			h.logger.Error("PATCH /bookings/{id}/cancellation/reason - Failed: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/cancellation/reason - Reason set: booking_id=%d, reason=%s, refund=%d%%",
		bookingID, req.Reason, session.Calculation.RefundPercentage)
	handlers.RespondJSON(w, http.StatusOK, session)
}
