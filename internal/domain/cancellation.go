package domain

import "time"

// BookingStatus represents the status of a booking in the hotel booking store
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusCheckedIn  BookingStatus = "checked_in"
	StatusCheckedOut BookingStatus = "checked_out"
	StatusCancelled  BookingStatus = "cancelled"
	StatusNoShow     BookingStatus = "no_show"
)

// BookingSnapshot срез бронирования из внешнего booking store
// Подсистема отмен только читает его и никогда не изменяет
type BookingSnapshot struct {
	ID          int64
	CheckInAt   time.Time
	TotalAmount float64
	Status      BookingStatus
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *BookingSnapshot) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CancellationReason причина отмены бронирования
type CancellationReason string

const (
	// ReasonUnset причина еще не выбрана оператором
	ReasonUnset CancellationReason = ""

	ReasonGuestRequest      CancellationReason = "guest_request"
	ReasonMedicalEmergency  CancellationReason = "medical_emergency"
	ReasonTravelIssues      CancellationReason = "travel_issues"
	ReasonHotelFault        CancellationReason = "hotel_fault"
	ReasonWeatherConditions CancellationReason = "weather_conditions"
	ReasonForceMajeure      CancellationReason = "force_majeure"
	ReasonOther             CancellationReason = "other"
)

// Valid returns true if the reason is one of the enumerated values
func (r CancellationReason) Valid() bool {
	switch r {
	case ReasonGuestRequest, ReasonMedicalEmergency, ReasonTravelIssues,
		ReasonHotelFault, ReasonWeatherConditions, ReasonForceMajeure, ReasonOther:
		return true
	default:
		return false
	}
}

// IsSet returns true if the operator has picked a reason
func (r CancellationReason) IsSet() bool {
	return r != ReasonUnset
}

// SessionState состояние сессии отмены бронирования
// Отсутствие сессии соответствует состоянию Idle
type SessionState string

const (
	SessionLoaded     SessionState = "loaded"
	SessionEditing    SessionState = "editing"
	SessionSubmitting SessionState = "submitting"
	SessionCompleted  SessionState = "completed"
	SessionFailed     SessionState = "failed"
)

// CancellationReceipt квитанция внешнего сервиса отмен о принятой отмене
type CancellationReceipt struct {
	RefundAmount    float64
	CancellationFee float64
	RefundType      string
}

// CancellationRecord аудит-запись о принятой отмене
// Хранит и отправленную сумму, и рассчитанный политикой максимум,
// чтобы превышение лимита оператором было видно в данных
type CancellationRecord struct {
	ID                int64
	BookingID         int64
	Reason            CancellationReason
	Details           *string
	CancelledBy       int64
	RefundAmount      float64
	MaxRefundAmount   float64
	ServerRefund      float64
	ServerFee         float64
	RefundType        string
	RequestID         string
	CreatedAt         time.Time
}
