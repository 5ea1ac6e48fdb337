package models

import (
	"time"

	"github.com/m04kA/HMS-CancellationService/internal/domain"
	"github.com/m04kA/HMS-CancellationService/internal/usecase/cancel_booking"
)

// SetReasonRequest запрос на выбор причины отмены
type SetReasonRequest struct {
	Reason  string  `json:"reason"`
	Details *string `json:"details,omitempty"`
}

// SetRefundAmountRequest запрос на явное задание суммы возврата оператором
type SetRefundAmountRequest struct {
	Amount float64 `json:"amount"`
}

// SubmitRequest запрос на отправку отмены
type SubmitRequest struct {
	CancelledBy int64   `json:"cancelledBy"`
	Details     *string `json:"details,omitempty"`
}

// BookingResponse срез бронирования в ответе сессии
type BookingResponse struct {
	ID          int64     `json:"id"`
	CheckInAt   time.Time `json:"checkInAt"`
	TotalAmount float64   `json:"totalAmount"`
	Status      string    `json:"status"`
}

// RefundCalculationResponse расчет возврата в ответе сессии
type RefundCalculationResponse struct {
	RefundPercentage          int     `json:"refundPercentage"`
	CancellationFeePercentage int     `json:"cancellationFeePercentage"`
	RefundType                string  `json:"refundType"`
	MaxRefundAmount           float64 `json:"maxRefundAmount"`
	CancellationFeeAmount     float64 `json:"cancellationFeeAmount"`
	HoursUntilCheckIn         float64 `json:"hoursUntilCheckIn"`
}

// ReceiptResponse квитанция сервиса отмен в ответе сессии
type ReceiptResponse struct {
	RefundAmount    float64 `json:"refundAmount"`
	CancellationFee float64 `json:"cancellationFee"`
	RefundType      string  `json:"refundType"`
}

// SessionResponse состояние сессии отмены для внешних слоев
type SessionResponse struct {
	BookingID        int64                     `json:"bookingId"`
	State            string                    `json:"state"`
	Booking          BookingResponse           `json:"booking"`
	Reason           string                    `json:"reason,omitempty"`
	Details          string                    `json:"details,omitempty"`
	Calculation      RefundCalculationResponse `json:"calculation"`
	RefundAmount     float64                   `json:"refundAmount"`
	AmountOverridden bool                      `json:"amountOverridden"`
	Receipt          *ReceiptResponse          `json:"receipt,omitempty"`
	LastError        string                    `json:"lastError,omitempty"`
}

// CancellationRecordResponse аудит-запись отмены
type CancellationRecordResponse struct {
	ID              int64     `json:"id"`
	BookingID       int64     `json:"bookingId"`
	Reason          string    `json:"reason"`
	Details         *string   `json:"details,omitempty"`
	CancelledBy     int64     `json:"cancelledBy"`
	RefundAmount    float64   `json:"refundAmount"`
	MaxRefundAmount float64   `json:"maxRefundAmount"`
	ServerRefund    float64   `json:"serverRefundAmount"`
	ServerFee       float64   `json:"serverCancellationFee"`
	RefundType      string    `json:"refundType"`
	RequestID       string    `json:"requestId"`
	CreatedAt       time.Time `json:"createdAt"`
}

// FromDomainRecords конвертирует аудит-записи domain в модели сервиса
func FromDomainRecords(records []*domain.CancellationRecord) []*CancellationRecordResponse {
	result := make([]*CancellationRecordResponse, 0, len(records))
	for _, record := range records {
		result = append(result, &CancellationRecordResponse{
			ID:              record.ID,
			BookingID:       record.BookingID,
			Reason:          string(record.Reason),
			Details:         record.Details,
			CancelledBy:     record.CancelledBy,
			RefundAmount:    record.RefundAmount,
			MaxRefundAmount: record.MaxRefundAmount,
			ServerRefund:    record.ServerRefund,
			ServerFee:       record.ServerFee,
			RefundType:      record.RefundType,
			RequestID:       record.RequestID,
			CreatedAt:       record.CreatedAt,
		})
	}
	return result
}

// FromView конвертирует снимок сессии usecase в модель сервиса
func FromView(v *cancel_booking.View) *SessionResponse {
	resp := &SessionResponse{
		BookingID: v.BookingID,
		State:     string(v.State),
		Booking: BookingResponse{
			ID:          v.Booking.ID,
			CheckInAt:   v.Booking.CheckInAt,
			TotalAmount: v.Booking.TotalAmount,
			Status:      string(v.Booking.Status),
		},
		Reason:  string(v.Reason),
		Details: v.Details,
		Calculation: RefundCalculationResponse{
			RefundPercentage:          v.Calculation.RefundPercentage,
			CancellationFeePercentage: v.Calculation.CancellationFeePercentage,
			RefundType:                v.Calculation.RefundType,
			MaxRefundAmount:           v.Calculation.MaxRefundAmount,
			CancellationFeeAmount:     v.Calculation.CancellationFeeAmount,
			HoursUntilCheckIn:         v.Calculation.HoursUntilCheckIn,
		},
		RefundAmount:     v.RefundAmount,
		AmountOverridden: v.AmountOverridden,
		LastError:        v.LastError,
	}

	if v.Receipt != nil {
		resp.Receipt = &ReceiptResponse{
			RefundAmount:    v.Receipt.RefundAmount,
			CancellationFee: v.Receipt.CancellationFee,
			RefundType:      v.Receipt.RefundType,
		}
	}

	return resp
}
