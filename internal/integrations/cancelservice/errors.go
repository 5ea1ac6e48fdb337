package cancelservice

import "errors"

var (
	// ErrRejected возвращается, когда сервис отмен отклонил запрос (success=false)
	// Ошибка локальна для запроса и не лечится повтором с теми же данными
	ErrRejected = errors.New("cancellation rejected")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("cancelservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("cancelservice client: invalid response")

	// ErrServiceUnavailable возвращается при сетевых ошибках и недоступности сервиса
	// Запрос можно безопасно повторить с тем же X-Request-ID
	ErrServiceUnavailable = errors.New("cancelservice unavailable")
)
