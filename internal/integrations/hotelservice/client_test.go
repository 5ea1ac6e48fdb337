package hotelservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestClient_GetBooking_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/internal/bookings/42", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": 42,
			"guest_name": "Ivanov Ivan",
			"room_number": "301",
			"check_in_at": "2025-10-16T14:00:00Z",
			"check_out_at": "2025-10-18T12:00:00Z",
			"total_amount": 10000,
			"status": "confirmed"
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 2*time.Second, nopLogger{})

	booking, err := client.GetBooking(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, int64(42), booking.ID)
	assert.Equal(t, 10000.0, booking.TotalAmount)
	assert.Equal(t, "confirmed", booking.Status)
	assert.Equal(t, time.Date(2025, 10, 16, 14, 0, 0, 0, time.UTC), booking.CheckInAt)
}

func TestClient_GetBooking_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 2*time.Second, nopLogger{})

	_, err := client.GetBooking(context.Background(), 99)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestClient_GetBooking_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 2*time.Second, nopLogger{})

	_, err := client.GetBooking(context.Background(), 42)
	assert.ErrorIs(t, err, ErrServiceUnavailable)
}

func TestClient_GetBooking_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // сервер уже остановлен, запрос упадет на сетевом уровне

	client := NewClient(srv.URL, time.Second, nopLogger{})

	_, err := client.GetBooking(context.Background(), 42)
	assert.ErrorIs(t, err, ErrServiceUnavailable)
}

func TestClient_GetBooking_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": "not-a-number"`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 2*time.Second, nopLogger{})

	_, err := client.GetBooking(context.Background(), 42)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}
