package submit_cancellation

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-CancellationService/internal/api/middleware"
	"github.com/m04kA/HMS-CancellationService/internal/service/cancellations"
	"github.com/m04kA/HMS-CancellationService/internal/service/cancellations/models"
	"github.com/m04kA/HMS-CancellationService/internal/usecase/cancel_booking"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	submitErr  error
	response   *models.SessionResponse
	bookingID  int64
	gotRequest *models.SubmitRequest
}

func (f *fakeService) Submit(_ context.Context, bookingID int64, req *models.SubmitRequest) (*models.SessionResponse, error) {
	f.bookingID = bookingID
	f.gotRequest = req
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return f.response, nil
}

// newRouter собирает роутер так же, как это делает main
func newRouter(svc CancellationService) *mux.Router {
	handler := NewHandler(svc, nopLogger{})

	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)
	api.HandleFunc("/bookings/{bookingId}/cancellation/submit",
		handler.Handle).Methods(http.MethodPost)
	return r
}

func doSubmit(t *testing.T, router *mux.Router, bookingID, staffID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(http.MethodPost,
		"/api/v1/bookings/"+bookingID+"/cancellation/submit", &buf)
	if staffID != "" {
		req.Header.Set("X-Staff-ID", staffID)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Submit_Success(t *testing.T) {
	svc := &fakeService{
		response: &models.SessionResponse{
			BookingID:    42,
			State:        "completed",
			RefundAmount: 375.00,
			Receipt: &models.ReceiptResponse{
				RefundAmount:    375.00,
				CancellationFee: 125.00,
				RefundType:      "75% Refund",
			},
		},
	}
	router := newRouter(svc)

	rec := doSubmit(t, router, "42", "7", map[string]string{"details": "guest request"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), svc.bookingID)
	require.NotNil(t, svc.gotRequest)
	assert.Equal(t, int64(7), svc.gotRequest.CancelledBy)
	require.NotNil(t, svc.gotRequest.Details)
	assert.Equal(t, "guest request", *svc.gotRequest.Details)

	var resp models.SessionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "completed", resp.State)
	require.NotNil(t, resp.Receipt)
	assert.InDelta(t, 375.00, resp.Receipt.RefundAmount, 0.001)
}

func TestHandler_Submit_EmptyBody(t *testing.T) {
	svc := &fakeService{
		response: &models.SessionResponse{
			BookingID: 42,
			State:     "completed",
			Receipt:   &models.ReceiptResponse{RefundAmount: 100},
		},
	}
	router := newRouter(svc)

	rec := doSubmit(t, router, "42", "7", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.gotRequest)
	assert.Nil(t, svc.gotRequest.Details)
}

func TestHandler_Submit_InvalidBookingID(t *testing.T) {
	svc := &fakeService{}
	router := newRouter(svc)

	rec := doSubmit(t, router, "abc", "7", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.gotRequest)
}

func TestHandler_Submit_MissingStaffID(t *testing.T) {
	svc := &fakeService{}
	router := newRouter(svc)

	rec := doSubmit(t, router, "42", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, svc.gotRequest)
}

func TestHandler_Submit_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"session not found", cancellations.ErrSessionNotFound, http.StatusNotFound},
		{"reason required", cancel_booking.ErrReasonRequired, http.StatusBadRequest},
		{"submit in flight", cancel_booking.ErrSubmitInFlight, http.StatusConflict},
		{"session closed", cancel_booking.ErrSessionClosed, http.StatusConflict},
		{"rejected by cancellation service", cancel_booking.ErrSubmissionRejected, http.StatusUnprocessableEntity},
		{"cancellation service unavailable", cancel_booking.ErrServiceUnavailable, http.StatusBadGateway},
		{"internal error", cancel_booking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{submitErr: tt.err}
			router := newRouter(svc)

			rec := doSubmit(t, router, "42", "7", nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
