package submit_cancellation

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/HMS-CancellationService/internal/api/handlers"
	"github.com/m04kA/HMS-CancellationService/internal/api/middleware"
	"github.com/m04kA/HMS-CancellationService/internal/service/cancellations"
	"github.com/m04kA/HMS-CancellationService/internal/usecase/cancel_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingStaffID     = "отсутствует ID сотрудника"
	msgSessionNotFound    = "активная отмена для бронирования не найдена"
	msgSubmitInFlight     = "отмена уже отправляется, дождитесь результата"
	msgSessionClosed      = "сессия отмены завершена"
	msgCancelUnavailable  = "сервис отмен недоступен, повторите отправку"
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

// Handle POST /api/v1/bookings/{bookingId}/cancellation/submit
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/cancellation/submit - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	staffID, ok := middleware.GetStaffID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/cancellation/submit - Missing staff ID")
		handlers.RespondUnauthorized(w, msgMissingStaffID)
		return
	}

	// Тело опционально: отправка без комментария идет с пустым body
	var req SubmitRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /bookings/{id}/cancellation/submit - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	session, err := h.service.Submit(r.Context(), bookingID, req.ToServiceRequest(staffID))
	if err != nil {
		switch {
		case errors.Is(err, cancellations.ErrSessionNotFound):
			h.logger.Warn("POST /bookings/{id}/cancellation/submit - Session not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, cancel_booking.ErrValidation):
			h.logger.Warn("POST /bookings/{id}/cancellation/submit - Validation failed: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, cancel_booking.ErrSubmitInFlight):
			h.logger.Warn("POST /bookings/{id}/cancellation/submit - Submit in flight: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgSubmitInFlight)

		case errors.Is(err, cancel_booking.ErrSessionClosed):
			h.logger.Warn("POST /bookings/{id}/cancellation/submit - Session closed: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgSessionClosed)

		case errors.Is(err, cancel_booking.ErrSubmissionRejected):
			h.logger.Warn("POST /bookings/{id}/cancellation/submit - Rejected by cancellation service: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, err.Error())

		case errors.Is(err, cancel_booking.ErrServiceUnavailable):
			h.logger.Error("POST /bookings/{id}/cancellation/submit - Cancellation service unavailable: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondBadGateway(w, msgCancelUnavailable)

		default:
			h.logger.Error("POST /bookings/{id}/cancellation/submit - Failed: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/cancellation/submit - Cancellation completed: booking_id=%d, staff_id=%d, refund=%.2f",
		bookingID, staffID, session.Receipt.RefundAmount)
	handlers.RespondJSON(w, http.StatusOK, session)
}
