package hotelservice

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("hotelservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("hotelservice client: invalid response")

	// ErrServiceUnavailable возвращается при сетевых ошибках и недоступности сервиса
	ErrServiceUnavailable = errors.New("hotelservice unavailable")
)
