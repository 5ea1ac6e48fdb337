package cancel_booking

import (
	"github.com/m04kA/HMS-CancellationService/internal/domain"
)

// validateSubmit проверяет запрос на отмену перед отправкой
// Локальные ошибки валидации никогда не уходят на сервер
func validateSubmit(reason domain.CancellationReason, refundAmount float64, details string, cancelledBy int64) error {
	if !reason.IsSet() {
		return ErrReasonRequired
	}

	if !reason.Valid() {
		return ErrInvalidReason
	}

	if refundAmount < 0 {
		return ErrNegativeRefundAmount
	}

	// Верхней границы по рассчитанному максимуму намеренно нет:
	// персонал вправе вернуть больше, чем предлагает политика
	if len([]rune(details)) > domain.MaxCancellationDetailsLength {
		return ErrDetailsTooLong
	}

	if cancelledBy <= 0 {
		return ErrInvalidStaffID
	}

	return nil
}
