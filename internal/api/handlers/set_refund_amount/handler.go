package set_refund_amount

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

// Handle PATCH /api/v1/bookings/{bookingId}/cancellation/amount
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancellation/amount - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req SetRefundAmountRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancellation/amount - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	session, err := h.service.SetRefundAmount(r.Context(), bookingID, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, cancellations.ErrSessionNotFound):
			h.logger.Warn("PATCH /bookings/{id}/cancellation/amount - Session not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, cancel_booking.ErrSubmitInFlight):
			h.logger.Warn("PATCH /bookings/{id}/cancellation/amount - Submit in flight: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgSubmitInFlight)

		case errors.Is(err, cancel_booking.ErrSessionClosed):
			h.logger.Warn("PATCH /bookings/{id}/cancellation/amount - Session closed: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgSessionClosed)

		default:
			h.logger.Error("PATCH /bookings/{id}/cancellation/amount - Failed: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/cancellation/amount - Amount overridden: booking_id=%d, amount=%.2f, policy_max=%.2f",
		bookingID, session.RefundAmount, session.Calculation.MaxRefundAmount)
	handlers.RespondJSON(w, http.StatusOK, session)
}
