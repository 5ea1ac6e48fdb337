package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/m04kA/HMS-CancellationService/internal/domain"
	"github.com/m04kA/HMS-CancellationService/internal/integrations/cancelservice"
)

// Session сессия отмены одного бронирования
//
// Владеет всем изменяемым состоянием одной попытки отмены: выбранной причиной,
// комментарием, суммой возврата и актуальным расчетом по политике. Расчет
// пересчитывается при каждой смене причины; сумма возврата следует за
// рассчитанным максимумом, пока оператор не задал ее явно
type Session struct {
	mu sync.Mutex

	booking domain.BookingSnapshot
	state   domain.SessionState

	reason  domain.CancellationReason
	details string
	calc    domain.RefundCalculation

	refundAmount     float64
	amountOverridden bool

	// requestID ключ идемпотентности: назначается при первой отправке
	// и переиспользуется при повторах после сетевых ошибок
	requestID  string
	generation uint64
	abandoned  bool

	receipt   *domain.CancellationReceipt
	lastError string

	cancelClient CancelServiceClient
	timeProvider TimeProvider
	logger       Logger
}

// NewSession создает сессию по срезу бронирования и сразу выполняет
// первичный расчет с невыбранной причиной (базовый тариф без переопределений)
func NewSession(
	booking domain.BookingSnapshot,
	cancelClient CancelServiceClient,
	timeProvider TimeProvider,
	logger Logger,
) *Session {
	calc := domain.ComputeRefund(booking.CheckInAt, timeProvider.Now(), domain.ReasonUnset, booking.TotalAmount)

	logger.Info("Session: created for booking_id=%d, hours_until_check_in=%.2f, max_refund=%.2f",
		booking.ID, calc.HoursUntilCheckIn, calc.MaxRefundAmount)

	return &Session{
		booking:      booking,
		state:        domain.SessionLoaded,
		calc:         calc,
		refundAmount: calc.MaxRefundAmount,
		cancelClient: cancelClient,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// SetReason выбирает причину отмены и пересчитывает расчет возврата
// Если оператор не переопределял сумму, она заново выводится из нового максимума
func (s *Session) SetReason(reason domain.CancellationReason) error {
	if !reason.Valid() {
		return ErrInvalidReason
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkEditable(); err != nil {
		return err
	}

	s.reason = reason
	s.calc = domain.ComputeRefund(s.booking.CheckInAt, s.timeProvider.Now(), reason, s.booking.TotalAmount)
	s.state = domain.SessionEditing

	if !s.amountOverridden {
		s.refundAmount = s.calc.MaxRefundAmount
	}

	s.logger.Info("Session: reason=%s for booking_id=%d, refund=%d%%, max_refund=%.2f",
		reason, s.booking.ID, s.calc.RefundPercentage, s.calc.MaxRefundAmount)

	return nil
}

// SetRefundAmount фиксирует сумму возврата, заданную оператором явно
// Проценты не пересчитываются; сумма перестает следовать за максимумом
func (s *Session) SetRefundAmount(amount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkEditable(); err != nil {
		return err
	}

	s.refundAmount = amount
	s.amountOverridden = true
	s.state = domain.SessionEditing

	s.logger.Info("Session: refund amount overridden to %.2f for booking_id=%d (policy max %.2f)",
		amount, s.booking.ID, s.calc.MaxRefundAmount)

	return nil
}

// SetDetails записывает свободный комментарий к причине отмены
func (s *Session) SetDetails(details string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkEditable(); err != nil {
		return err
	}

	s.details = details
	s.state = domain.SessionEditing

	return nil
}

// Submit валидирует запрос и отправляет его во внешний сервис отмен
//
// Пока отправка в полете, повторный Submit отклоняется: на одно бронирование
// допускается не больше одной отправки одновременно. Результат применяется
// к состоянию сессии только если она к этому моменту не демонтирована
func (s *Session) Submit(ctx context.Context, cancelledBy int64) (*domain.CancellationReceipt, error) {
	s.mu.Lock()

	if s.abandoned || s.state == domain.SessionCompleted {
		s.mu.Unlock()
		return nil, ErrSessionClosed
	}
	if s.state == domain.SessionSubmitting {
		s.mu.Unlock()
		return nil, ErrSubmitInFlight
	}

	if err := validateSubmit(s.reason, s.refundAmount, s.details, cancelledBy); err != nil {
		s.mu.Unlock()
		s.logger.Warn("Session: validation failed for booking_id=%d: %v", s.booking.ID, err)
		return nil, err
	}

	if s.requestID == "" {
		s.requestID = uuid.NewString()
	}

	req := &cancelservice.CancelRequest{
		BookingID:           s.booking.ID,
		CancellationReason:  string(s.reason),
		CancellationDetails: s.details,
		CancelledBy:         cancelledBy,
		RefundAmount:        s.refundAmount,
	}
	requestID := s.requestID

	s.state = domain.SessionSubmitting
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	receipt, err := s.cancelClient.Cancel(ctx, requestID, req)

	s.mu.Lock()
	defer s.mu.Unlock()

	// Сессия могла быть демонтирована, пока ответ шел по сети:
	// поздний результат к ней не применяется
	if s.abandoned || s.generation != gen {
		s.logger.Warn("Session: dropping stale submit result for booking_id=%d, request_id=%s",
			s.booking.ID, requestID)
		return nil, ErrSessionClosed
	}

	if err != nil {
		s.state = domain.SessionFailed
		s.lastError = err.Error()

		switch {
		case errors.Is(err, cancelservice.ErrServiceUnavailable):
			s.logger.Error("Session: submit transport failure for booking_id=%d: %v", s.booking.ID, err)
			return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
		case errors.Is(err, cancelservice.ErrRejected):
			s.logger.Warn("Session: submit rejected for booking_id=%d: %v", s.booking.ID, err)
			return nil, fmt.Errorf("%w: %v", ErrSubmissionRejected, err)
		default:
			s.logger.Error("Session: submit failed for booking_id=%d: %v", s.booking.ID, err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	s.state = domain.SessionCompleted
	s.receipt = &domain.CancellationReceipt{
		RefundAmount:    receipt.RefundAmount,
		CancellationFee: receipt.CancellationFee,
		RefundType:      receipt.RefundType,
	}
	s.lastError = ""

	s.logger.Info("Session: cancellation completed for booking_id=%d, refund=%.2f, fee=%.2f",
		s.booking.ID, s.receipt.RefundAmount, s.receipt.CancellationFee)

	return s.receipt, nil
}

// Abandon демонтирует сессию: дальнейшие операции отклоняются,
// поздние результаты отправки отбрасываются
func (s *Session) Abandon() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.abandoned = true
	s.logger.Info("Session: abandoned for booking_id=%d", s.booking.ID)
}

// View возвращает снимок текущего состояния сессии
func (s *Session) View() *View {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := &View{
		BookingID:        s.booking.ID,
		State:            s.state,
		Booking:          s.booking,
		Reason:           s.reason,
		Details:          s.details,
		Calculation:      s.calc,
		RefundAmount:     s.refundAmount,
		AmountOverridden: s.amountOverridden,
		RequestID:        s.requestID,
		LastError:        s.lastError,
	}

	if s.receipt != nil {
		receipt := *s.receipt
		view.Receipt = &receipt
	}

	return view
}

// MaxRefundAmount возвращает актуальный рассчитанный максимум возврата
func (s *Session) MaxRefundAmount() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calc.MaxRefundAmount
}

func (s *Session) checkEditable() error {
	if s.abandoned || s.state == domain.SessionCompleted {
		return ErrSessionClosed
	}
	if s.state == domain.SessionSubmitting {
		return ErrSubmitInFlight
	}
	return nil
}
