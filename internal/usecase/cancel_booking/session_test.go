package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-CancellationService/internal/domain"
	"github.com/m04kA/HMS-CancellationService/internal/integrations/cancelservice"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct {
	t time.Time
}

func (f fixedTime) Now() time.Time {
	return f.t
}

type capturedCall struct {
	requestID string
	req       *cancelservice.CancelRequest
}

// fakeCancelClient фейковый клиент сервиса отмен с настраиваемым ответом
type fakeCancelClient struct {
	mu      sync.Mutex
	calls   []capturedCall
	receipt *cancelservice.Receipt
	err     error

	// если release не nil, Cancel блокируется до сигнала (для тестов конкурентности)
	release chan struct{}
}

func (f *fakeCancelClient) Cancel(ctx context.Context, requestID string, req *cancelservice.CancelRequest) (*cancelservice.Receipt, error) {
	f.mu.Lock()
	f.calls = append(f.calls, capturedCall{requestID: requestID, req: req})
	release := f.release
	f.mu.Unlock()

	if release != nil {
		<-release
	}

	if f.err != nil {
		return nil, f.err
	}
	return f.receipt, nil
}

func (f *fakeCancelClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeCancelClient) lastCall() capturedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

var sessionNow = time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)

func testBooking(hoursUntilCheckIn float64) domain.BookingSnapshot {
	return domain.BookingSnapshot{
		ID:          42,
		CheckInAt:   sessionNow.Add(time.Duration(hoursUntilCheckIn * float64(time.Hour))),
		TotalAmount: 10000,
		Status:      domain.StatusConfirmed,
	}
}

func newTestSession(hoursUntilCheckIn float64, client CancelServiceClient) *Session {
	return NewSession(testBooking(hoursUntilCheckIn), client, fixedTime{sessionNow}, nopLogger{})
}

func TestSession_InitialCalculation(t *testing.T) {
	s := newTestSession(30, &fakeCancelClient{})

	view := s.View()
	assert.Equal(t, domain.SessionLoaded, view.State)
	assert.Equal(t, domain.ReasonUnset, view.Reason)
	// Без причины действует базовый тариф без переопределений
	assert.Equal(t, 100, view.Calculation.RefundPercentage)
	assert.Equal(t, "Full Refund", view.Calculation.RefundType)
	assert.Equal(t, 10000.0, view.RefundAmount)
	assert.False(t, view.AmountOverridden)
}

func TestSession_SetReasonRecomputesAndRederivesAmount(t *testing.T) {
	s := newTestSession(8, &fakeCancelClient{})

	require.NoError(t, s.SetReason(domain.ReasonGuestRequest))

	view := s.View()
	assert.Equal(t, domain.SessionEditing, view.State)
	assert.Equal(t, 50, view.Calculation.RefundPercentage)
	assert.Equal(t, 5000.0, view.Calculation.MaxRefundAmount)
	assert.Equal(t, 5000.0, view.RefundAmount)

	// Смена причины на переопределяющую поднимает и расчет, и сумму
	require.NoError(t, s.SetReason(domain.ReasonMedicalEmergency))

	view = s.View()
	assert.Equal(t, 100, view.Calculation.RefundPercentage)
	assert.Equal(t, "Full Refund (Medical Emergency)", view.Calculation.RefundType)
	assert.Equal(t, 10000.0, view.RefundAmount)
}

func TestSession_AmountOverrideSurvivesReasonChange(t *testing.T) {
	s := newTestSession(8, &fakeCancelClient{})

	require.NoError(t, s.SetReason(domain.ReasonGuestRequest))
	require.NoError(t, s.SetRefundAmount(1234.56))
	require.NoError(t, s.SetReason(domain.ReasonHotelFault))

	view := s.View()
	assert.Equal(t, 100, view.Calculation.RefundPercentage)
	// Явно заданная оператором сумма больше не следует за максимумом
	assert.Equal(t, 1234.56, view.RefundAmount)
	assert.True(t, view.AmountOverridden)
}

func TestSession_OverrideAboveMaximumAllowed(t *testing.T) {
	client := &fakeCancelClient{receipt: &cancelservice.Receipt{RefundAmount: 20000, RefundType: "25% Refund"}}
	s := newTestSession(2, client)

	require.NoError(t, s.SetReason(domain.ReasonGuestRequest))
	// Политика дает максимум 2500, но верхней границы при отправке нет
	require.NoError(t, s.SetRefundAmount(20000))

	_, err := s.Submit(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, 20000.0, client.lastCall().req.RefundAmount)
}

func TestSession_SetReasonInvalid(t *testing.T) {
	s := newTestSession(8, &fakeCancelClient{})

	err := s.SetReason(domain.CancellationReason("late_checkout"))
	assert.ErrorIs(t, err, ErrInvalidReason)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSession_SubmitWithoutReasonRejected(t *testing.T) {
	client := &fakeCancelClient{}
	s := newTestSession(30, client)

	_, err := s.Submit(context.Background(), 7)

	require.ErrorIs(t, err, ErrReasonRequired)
	require.ErrorIs(t, err, ErrValidation)
	// Локальная ошибка валидации не доходит до сети
	assert.Equal(t, 0, client.callCount())
	assert.Equal(t, domain.SessionLoaded, s.View().State)
}

func TestSession_SubmitNegativeAmountRejected(t *testing.T) {
	client := &fakeCancelClient{}
	s := newTestSession(30, client)

	require.NoError(t, s.SetReason(domain.ReasonGuestRequest))
	require.NoError(t, s.SetRefundAmount(-1))

	_, err := s.Submit(context.Background(), 7)

	require.ErrorIs(t, err, ErrNegativeRefundAmount)
	assert.Equal(t, 0, client.callCount())
}

func TestSession_SubmitDetailsTooLong(t *testing.T) {
	client := &fakeCancelClient{}
	s := newTestSession(30, client)

	require.NoError(t, s.SetReason(domain.ReasonOther))
	require.NoError(t, s.SetDetails(strings.Repeat("x", domain.MaxCancellationDetailsLength+1)))

	_, err := s.Submit(context.Background(), 7)

	require.ErrorIs(t, err, ErrDetailsTooLong)
	assert.Equal(t, 0, client.callCount())
}

func TestSession_SubmitInvalidStaffID(t *testing.T) {
	client := &fakeCancelClient{}
	s := newTestSession(30, client)

	require.NoError(t, s.SetReason(domain.ReasonGuestRequest))

	_, err := s.Submit(context.Background(), 0)

	require.ErrorIs(t, err, ErrInvalidStaffID)
	assert.Equal(t, 0, client.callCount())
}

func TestSession_SubmitSuccess(t *testing.T) {
	client := &fakeCancelClient{
		receipt: &cancelservice.Receipt{RefundAmount: 7500, CancellationFee: 2500, RefundType: "75% Refund"},
	}
	s := newTestSession(18, client)

	require.NoError(t, s.SetReason(domain.ReasonTravelIssues))
	require.NoError(t, s.SetDetails("flight cancelled, airline confirmation attached"))

	receipt, err := s.Submit(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, 7500.0, receipt.RefundAmount)
	assert.Equal(t, 2500.0, receipt.CancellationFee)
	assert.Equal(t, "75% Refund", receipt.RefundType)

	call := client.lastCall()
	assert.NotEmpty(t, call.requestID)
	assert.Equal(t, int64(42), call.req.BookingID)
	assert.Equal(t, "travel_issues", call.req.CancellationReason)
	assert.Equal(t, "flight cancelled, airline confirmation attached", call.req.CancellationDetails)
	assert.Equal(t, int64(7), call.req.CancelledBy)
	assert.Equal(t, 7500.0, call.req.RefundAmount)

	view := s.View()
	assert.Equal(t, domain.SessionCompleted, view.State)
	require.NotNil(t, view.Receipt)
	assert.Equal(t, 7500.0, view.Receipt.RefundAmount)
}

func TestSession_SubmitTransportFailureIsRetryable(t *testing.T) {
	client := &fakeCancelClient{err: fmt.Errorf("%w: connection refused", cancelservice.ErrServiceUnavailable)}
	s := newTestSession(18, client)

	require.NoError(t, s.SetReason(domain.ReasonGuestRequest))
	require.NoError(t, s.SetDetails("guest called the front desk"))

	_, err := s.Submit(context.Background(), 7)
	require.ErrorIs(t, err, ErrServiceUnavailable)

	// Введенные данные сохранены, сессия в failed и готова к повтору
	view := s.View()
	assert.Equal(t, domain.SessionFailed, view.State)
	assert.Equal(t, domain.ReasonGuestRequest, view.Reason)
	assert.Equal(t, "guest called the front desk", view.Details)
	assert.NotEmpty(t, view.LastError)

	firstRequestID := client.lastCall().requestID

	client.err = nil
	client.receipt = &cancelservice.Receipt{RefundAmount: 7500, CancellationFee: 2500, RefundType: "75% Refund"}

	_, err = s.Submit(context.Background(), 7)
	require.NoError(t, err)

	// Повтор идет с тем же ключом идемпотентности
	assert.Equal(t, 2, client.callCount())
	assert.Equal(t, firstRequestID, client.lastCall().requestID)
	assert.Equal(t, domain.SessionCompleted, s.View().State)
}

func TestSession_SubmitRejected(t *testing.T) {
	client := &fakeCancelClient{err: fmt.Errorf("%w: booking already cancelled", cancelservice.ErrRejected)}
	s := newTestSession(18, client)

	require.NoError(t, s.SetReason(domain.ReasonGuestRequest))

	_, err := s.Submit(context.Background(), 7)

	require.ErrorIs(t, err, ErrSubmissionRejected)
	view := s.View()
	assert.Equal(t, domain.SessionFailed, view.State)
	assert.Contains(t, view.LastError, "booking already cancelled")
}

func TestSession_ConcurrentSubmitRejected(t *testing.T) {
	release := make(chan struct{})
	client := &fakeCancelClient{
		receipt: &cancelservice.Receipt{RefundAmount: 10000, RefundType: "Full Refund"},
		release: release,
	}
	s := newTestSession(30, client)
	require.NoError(t, s.SetReason(domain.ReasonGuestRequest))

	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background(), 7)
		done <- err
	}()

	// Дожидаемся, пока первая отправка уйдет в сеть
	require.Eventually(t, func() bool { return client.callCount() == 1 },
		time.Second, 5*time.Millisecond)

	_, err := s.Submit(context.Background(), 7)
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(release)
	require.NoError(t, <-done)

	// Вторая отправка так и не дошла до клиента
	assert.Equal(t, 1, client.callCount())
}

func TestSession_AbandonDropsLateResult(t *testing.T) {
	release := make(chan struct{})
	client := &fakeCancelClient{
		receipt: &cancelservice.Receipt{RefundAmount: 10000, RefundType: "Full Refund"},
		release: release,
	}
	s := newTestSession(30, client)
	require.NoError(t, s.SetReason(domain.ReasonGuestRequest))

	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background(), 7)
		done <- err
	}()

	require.Eventually(t, func() bool { return client.callCount() == 1 },
		time.Second, 5*time.Millisecond)

	s.Abandon()
	close(release)

	// Поздний ответ не применяется к демонтированной сессии
	err := <-done
	assert.ErrorIs(t, err, ErrSessionClosed)
	assert.Nil(t, s.View().Receipt)
}

func TestSession_EditsAfterCompletionRejected(t *testing.T) {
	client := &fakeCancelClient{receipt: &cancelservice.Receipt{RefundAmount: 10000, RefundType: "Full Refund"}}
	s := newTestSession(30, client)

	require.NoError(t, s.SetReason(domain.ReasonGuestRequest))
	_, err := s.Submit(context.Background(), 7)
	require.NoError(t, err)

	assert.ErrorIs(t, s.SetReason(domain.ReasonOther), ErrSessionClosed)
	assert.ErrorIs(t, s.SetRefundAmount(1), ErrSessionClosed)
	assert.ErrorIs(t, s.SetDetails("x"), ErrSessionClosed)

	_, err = s.Submit(context.Background(), 7)
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestSession_ResubmitAfterRejectionKeepsFormState(t *testing.T) {
	client := &fakeCancelClient{err: fmt.Errorf("%w: ledger locked", cancelservice.ErrRejected)}
	s := newTestSession(8, client)

	require.NoError(t, s.SetReason(domain.ReasonGuestRequest))
	require.NoError(t, s.SetRefundAmount(4000))
	require.NoError(t, s.SetDetails("partial refund agreed with guest"))

	_, err := s.Submit(context.Background(), 7)
	require.ErrorIs(t, err, ErrSubmissionRejected)

	// После failed сессия снова редактируема
	require.NoError(t, s.SetReason(domain.ReasonHotelFault))

	view := s.View()
	assert.Equal(t, 4000.0, view.RefundAmount)
	assert.Equal(t, "partial refund agreed with guest", view.Details)

	client.err = nil
	client.receipt = &cancelservice.Receipt{RefundAmount: 4000, RefundType: "Full Refund (Hotel Fault)"}

	_, err = s.Submit(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "hotel_fault", client.lastCall().req.CancellationReason)
	assert.Equal(t, 4000.0, client.lastCall().req.RefundAmount)
}

func TestSession_ValidationErrorsAreLocal(t *testing.T) {
	err := validateSubmit(domain.ReasonUnset, 100, "", 7)
	assert.True(t, errors.Is(err, ErrValidation))

	err = validateSubmit(domain.ReasonGuestRequest, 100, "", 7)
	assert.NoError(t, err)
}
