package start_cancellation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/HMS-CancellationService/internal/api/handlers"
	"github.com/m04kA/HMS-CancellationService/internal/service/cancellations"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
	msgCannotCancel     = "бронирование не может быть отменено"
	msgSessionExists    = "отмена этого бронирования уже начата"
	msgHotelUnavailable = "сервис бронирований недоступен, повторите попытку"
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

// Handle POST /api/v1/bookings/{bookingId}/cancellation
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/cancellation - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	session, err := h.service.Start(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, cancellations.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/cancellation - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cancellations.ErrCannotCancel):
			h.logger.Warn("POST /bookings/{id}/cancellation - Cannot cancel: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgCannotCancel)

		case errors.Is(err, cancellations.ErrSessionExists):
			h.logger.Warn("POST /bookings/{id}/cancellation - Session exists: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgSessionExists)

		case errors.Is(err, cancellations.ErrHotelServiceUnavailable):
			h.logger.Error("POST /bookings/{id}/cancellation - Hotel service unavailable: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondBadGateway(w, msgHotelUnavailable)

		default:
			h.logger.Error("POST /bookings/{id}/cancellation - Failed to start: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/cancellation - Session started: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusCreated, session)
}
