package cancellations

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено в booking store
	// Фатальна для текущей сессии: начинать отмену нечего
	ErrBookingNotFound = errors.New("booking not found")

	// ErrSessionNotFound возвращается, когда для бронирования нет активной сессии отмены
	ErrSessionNotFound = errors.New("cancellation session not found")

	// ErrSessionExists возвращается при попытке начать вторую сессию отмены
	// для того же бронирования
	ErrSessionExists = errors.New("cancellation session already exists")

	// ErrCannotCancel возвращается, когда бронирование нельзя отменить
	// (уже отменено, гость заехал или выехал)
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrHotelServiceUnavailable возвращается при недоступности booking store
	// Оператор может повторить загрузку
	ErrHotelServiceUnavailable = errors.New("hotel service unavailable")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
