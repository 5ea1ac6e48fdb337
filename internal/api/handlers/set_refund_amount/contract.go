package set_refund_amount

import (
	"context"

	"github.com/m04kA/HMS-CancellationService/internal/service/cancellations/models"
)

type CancellationService interface {
	SetRefundAmount(ctx context.Context, bookingID int64, req *models.SetRefundAmountRequest) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
