package abandon_cancellation

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
	msgSessionNotFound  = "активная отмена для бронирования не найдена"
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

// Handle DELETE /api/v1/bookings/{bookingId}/cancellation
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /bookings/{id}/cancellation - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	if err := h.service.Abandon(r.Context(), bookingID); err != nil {
		switch {
		case errors.Is(err, cancellations.ErrSessionNotFound):
			h.logger.Warn("DELETE /bookings/{id}/cancellation - Session not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		default:
			h.logger.Error("DELETE /bookings/{id}/cancellation - Failed: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /bookings/{id}/cancellation - Session abandoned: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
