package cancel_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation базовая ошибка валидации перед отправкой
	// Локальная и исправимая: оператор корректирует ввод и повторяет
	ErrValidation = errors.New("cancel_booking: validation failed")

	// ErrReasonRequired возвращается при отправке без выбранной причины
	ErrReasonRequired = fmt.Errorf("%w: reason required", ErrValidation)

	// ErrInvalidReason возвращается, когда причина не входит в перечисление
	ErrInvalidReason = fmt.Errorf("%w: unknown cancellation reason", ErrValidation)

	// ErrNegativeRefundAmount возвращается при отрицательной сумме возврата
	ErrNegativeRefundAmount = fmt.Errorf("%w: refund amount cannot be negative", ErrValidation)

	// ErrDetailsTooLong возвращается, когда комментарий превышает лимит длины
	ErrDetailsTooLong = fmt.Errorf("%w: cancellation details too long", ErrValidation)

	// ErrInvalidStaffID возвращается при некорректном ID сотрудника
	ErrInvalidStaffID = fmt.Errorf("%w: staff id must be positive", ErrValidation)

	// ErrSubmitInFlight возвращается при попытке повторной отправки,
	// пока предыдущая отправка еще не завершилась
	ErrSubmitInFlight = errors.New("cancel_booking: submit already in flight")

	// ErrSessionClosed возвращается при операциях над завершенной
	// или демонтированной сессией
	ErrSessionClosed = errors.New("cancel_booking: session closed")

	// ErrSubmissionRejected возвращается, когда сервис отмен отклонил запрос
	ErrSubmissionRejected = errors.New("cancel_booking: submission rejected")

	// ErrServiceUnavailable возвращается при сетевой ошибке отправки
	// Оператор может повторить отправку без потери введенных данных
	ErrServiceUnavailable = errors.New("cancel_booking: cancellation service unavailable")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("cancel_booking: internal error")
)
