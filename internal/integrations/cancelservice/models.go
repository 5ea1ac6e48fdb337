package cancelservice

// CancelRequest тело запроса к внешнему сервису отмен
type CancelRequest struct {
	BookingID           int64   `json:"booking_id"`
	CancellationReason  string  `json:"cancellation_reason"`
	CancellationDetails string  `json:"cancellation_details"`
	CancelledBy         int64   `json:"cancelled_by"`
	RefundAmount        float64 `json:"refund_amount"`
}

// Receipt данные принятой отмены в том виде, в котором они сохранены на сервере
type Receipt struct {
	RefundAmount    float64 `json:"refund_amount"`
	CancellationFee float64 `json:"cancellation_fee"`
	RefundType      string  `json:"refund_type"`
}

// apiResponse конверт ответа сервиса отмен
type apiResponse struct {
	Success bool     `json:"success"`
	Data    *Receipt `json:"data"`
	Message string   `json:"message"`
}
