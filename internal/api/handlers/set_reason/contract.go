package set_reason

import (
	"context"

	"github.com/m04kA/HMS-CancellationService/internal/service/cancellations/models"
)

type CancellationService interface {
	SetReason(ctx context.Context, bookingID int64, req *models.SetReasonRequest) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
