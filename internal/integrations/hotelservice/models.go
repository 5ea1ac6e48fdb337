package hotelservice

import "time"

// Booking модель бронирования из HotelService
type Booking struct {
	ID          int64     `json:"id"`
	GuestName   string    `json:"guest_name"`
	RoomNumber  string    `json:"room_number"`
	CheckInAt   time.Time `json:"check_in_at"`
	CheckOutAt  time.Time `json:"check_out_at"`
	TotalAmount float64   `json:"total_amount"`
	Status      string    `json:"status"`
}

// ErrorResponse модель ошибки от HotelService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
