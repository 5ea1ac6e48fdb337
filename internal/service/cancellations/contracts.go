package cancellations

import (
	"context"
	"time"

	"github.com/m04kA/HMS-CancellationService/internal/domain"
	"github.com/m04kA/HMS-CancellationService/internal/integrations/cancelservice"
	"github.com/m04kA/HMS-CancellationService/internal/integrations/hotelservice"
)

// HotelServiceClient интерфейс клиента booking store
type HotelServiceClient interface {
	GetBooking(ctx context.Context, bookingID int64) (*hotelservice.Booking, error)
}

// CancelServiceClient интерфейс клиента внешнего сервиса отмен
type CancelServiceClient interface {
	Cancel(ctx context.Context, requestID string, req *cancelservice.CancelRequest) (*cancelservice.Receipt, error)
}

// CancellationRepository интерфейс аудит-репозитория принятых отмен
type CancellationRepository interface {
	Create(ctx context.Context, record *domain.CancellationRecord) (*domain.CancellationRecord, error)
	GetByBookingID(ctx context.Context, bookingID int64) ([]*domain.CancellationRecord, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// SubmissionMetrics интерфейс счетчика результатов отправки отмен
type SubmissionMetrics interface {
	IncSubmission(result string)
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
