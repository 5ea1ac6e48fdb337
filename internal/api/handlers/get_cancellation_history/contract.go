package get_cancellation_history

import (
	"context"

	"github.com/m04kA/HMS-CancellationService/internal/service/cancellations/models"
)

type CancellationService interface {
	History(ctx context.Context, bookingID int64) ([]*models.CancellationRecordResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
