package cancel_booking

import (
	"context"
	"time"

	"github.com/m04kA/HMS-CancellationService/internal/integrations/cancelservice"
)

// CancelServiceClient интерфейс клиента внешнего сервиса отмен
type CancelServiceClient interface {
	Cancel(ctx context.Context, requestID string, req *cancelservice.CancelRequest) (*cancelservice.Receipt, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
