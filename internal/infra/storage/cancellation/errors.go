package cancellation

import "errors"

var (
	// ErrRecordNotFound возвращается, когда аудит-запись не найдена
	ErrRecordNotFound = errors.New("cancellation record not found")

	// ErrBuildQuery возвращается при ошибке построения SQL-запроса
	ErrBuildQuery = errors.New("cancellation repository: build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL-запроса
	ErrExecQuery = errors.New("cancellation repository: execute query")

	// ErrScanRow возвращается при ошибке чтения строки результата
	ErrScanRow = errors.New("cancellation repository: scan row")
)
