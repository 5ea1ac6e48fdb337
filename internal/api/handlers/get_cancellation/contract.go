package get_cancellation

import (
	"context"

	"github.com/m04kA/HMS-CancellationService/internal/service/cancellations/models"
)

type CancellationService interface {
	Get(ctx context.Context, bookingID int64) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
