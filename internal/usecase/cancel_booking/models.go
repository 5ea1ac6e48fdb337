package cancel_booking

import (
	"github.com/m04kA/HMS-CancellationService/internal/domain"
)

// View снимок состояния сессии для внешних слоев
type View struct {
	BookingID        int64
	State            domain.SessionState
	Booking          domain.BookingSnapshot
	Reason           domain.CancellationReason
	Details          string
	Calculation      domain.RefundCalculation
	RefundAmount     float64
	AmountOverridden bool
	RequestID        string
	Receipt          *domain.CancellationReceipt
	LastError        string
}
