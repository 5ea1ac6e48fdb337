package cancellations

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/m04kA/HMS-CancellationService/internal/domain"
	hotelClient "github.com/m04kA/HMS-CancellationService/internal/integrations/hotelservice"
	"github.com/m04kA/HMS-CancellationService/internal/service/cancellations/models"
	"github.com/m04kA/HMS-CancellationService/internal/usecase/cancel_booking"
	"github.com/m04kA/HMS-CancellationService/pkg/metrics"
)

// Service реестр сессий отмены: не больше одной активной сессии на бронирование
//
// Сессии живут в памяти процесса. Завершенная сессия вычищается из реестра
// после записи аудита, демонтированная - сразу
type Service struct {
	mu       sync.RWMutex
	sessions map[int64]*cancel_booking.Session

	hotelClient  HotelServiceClient
	cancelClient CancelServiceClient
	auditRepo    CancellationRepository
	txManager    TransactionManager
	submissions  SubmissionMetrics
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса отмен
// submissions может быть nil, если метрики выключены
func NewService(
	hotelClient HotelServiceClient,
	cancelClient CancelServiceClient,
	auditRepo CancellationRepository,
	txManager TransactionManager,
	submissions SubmissionMetrics,
	logger Logger,
) *Service {
	return &Service{
		sessions:     make(map[int64]*cancel_booking.Session),
		hotelClient:  hotelClient,
		cancelClient: cancelClient,
		auditRepo:    auditRepo,
		txManager:    txManager,
		submissions:  submissions,
		timeProvider: &cancel_booking.RealTimeProvider{},
		logger:       logger,
	}
}

// Start загружает бронирование из booking store и открывает сессию отмены
func (s *Service) Start(ctx context.Context, bookingID int64) (*models.SessionResponse, error) {
	s.logger.Info("Start: loading booking id=%d", bookingID)

	s.mu.RLock()
	_, exists := s.sessions[bookingID]
	s.mu.RUnlock()
	if exists {
		s.logger.Warn("Start: session already exists for booking id=%d", bookingID)
		return nil, ErrSessionExists
	}

	booking, err := s.hotelClient.GetBooking(ctx, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, hotelClient.ErrBookingNotFound):
			s.logger.Warn("Start: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		case errors.Is(err, hotelClient.ErrServiceUnavailable):
			s.logger.Error("Start: hotel service unavailable for booking id=%d: %v", bookingID, err)
			return nil, fmt.Errorf("%w: %v", ErrHotelServiceUnavailable, err)
		default:
			s.logger.Error("Start: failed to load booking id=%d: %v", bookingID, err)
			return nil, fmt.Errorf("%w: Start - failed to load booking: %v", ErrInternal, err)
		}
	}

	snapshot := domain.BookingSnapshot{
		ID:          booking.ID,
		CheckInAt:   booking.CheckInAt,
		TotalAmount: booking.TotalAmount,
		Status:      domain.BookingStatus(booking.Status),
	}

	if !snapshot.CanBeCancelled() {
		s.logger.Warn("Start: booking id=%d cannot be cancelled, status=%s", bookingID, snapshot.Status)
		return nil, ErrCannotCancel
	}

	session := cancel_booking.NewSession(snapshot, s.cancelClient, s.timeProvider, s.logger)

	s.mu.Lock()
	if _, exists := s.sessions[bookingID]; exists {
		s.mu.Unlock()
		s.logger.Warn("Start: concurrent session creation for booking id=%d", bookingID)
		return nil, ErrSessionExists
	}
	s.sessions[bookingID] = session
	s.mu.Unlock()

	s.logger.Info("Start: session opened for booking id=%d", bookingID)
	return models.FromView(session.View()), nil
}

// Get возвращает состояние активной сессии отмены
func (s *Service) Get(ctx context.Context, bookingID int64) (*models.SessionResponse, error) {
	session, err := s.session(bookingID)
	if err != nil {
		return nil, err
	}
	return models.FromView(session.View()), nil
}

// SetReason выбирает причину отмены и пересчитывает расчет возврата
func (s *Service) SetReason(ctx context.Context, bookingID int64, req *models.SetReasonRequest) (*models.SessionResponse, error) {
	session, err := s.session(bookingID)
	if err != nil {
		return nil, err
	}

	if err := session.SetReason(domain.CancellationReason(req.Reason)); err != nil {
		return nil, err
	}

	if req.Details != nil {
		if err := session.SetDetails(*req.Details); err != nil {
			return nil, err
		}
	}

	return models.FromView(session.View()), nil
}

// SetRefundAmount фиксирует явно заданную оператором сумму возврата
func (s *Service) SetRefundAmount(ctx context.Context, bookingID int64, req *models.SetRefundAmountRequest) (*models.SessionResponse, error) {
	session, err := s.session(bookingID)
	if err != nil {
		return nil, err
	}

	if err := session.SetRefundAmount(req.Amount); err != nil {
		return nil, err
	}

	return models.FromView(session.View()), nil
}

// Submit валидирует и отправляет отмену во внешний сервис отмен
// После успеха пишет аудит-запись и закрывает сессию
func (s *Service) Submit(ctx context.Context, bookingID int64, req *models.SubmitRequest) (*models.SessionResponse, error) {
	session, err := s.session(bookingID)
	if err != nil {
		return nil, err
	}

	if req.Details != nil {
		if err := session.SetDetails(*req.Details); err != nil {
			return nil, err
		}
	}

	receipt, err := session.Submit(ctx, req.CancelledBy)
	if err != nil {
		s.countSubmission(err)
		return nil, err
	}
	s.countSubmission(nil)

	view := session.View()

	if err := s.writeAudit(ctx, view, req.CancelledBy, receipt); err != nil {
		// Аудит не входит в контракт отмены: сбой записи не отменяет
		// уже принятую сервисом отмен операцию
		s.logger.Error("Submit: failed to write audit record for booking id=%d: %v", bookingID, err)
	}

	s.mu.Lock()
	delete(s.sessions, bookingID)
	s.mu.Unlock()

	s.logger.Info("Submit: cancellation completed for booking id=%d, refund=%.2f", bookingID, receipt.RefundAmount)
	return models.FromView(view), nil
}

// History возвращает аудит-записи отмен по бронированию
func (s *Service) History(ctx context.Context, bookingID int64) ([]*models.CancellationRecordResponse, error) {
	records, err := s.auditRepo.GetByBookingID(ctx, bookingID)
	if err != nil {
		s.logger.Error("History: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: History - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRecords(records), nil
}

// Abandon демонтирует сессию отмены (оператор ушел со страницы)
func (s *Service) Abandon(ctx context.Context, bookingID int64) error {
	s.mu.Lock()
	session, ok := s.sessions[bookingID]
	if ok {
		delete(s.sessions, bookingID)
	}
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}

	session.Abandon()
	s.logger.Info("Abandon: session closed for booking id=%d", bookingID)
	return nil
}

func (s *Service) session(bookingID int64) (*cancel_booking.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[bookingID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *Service) writeAudit(ctx context.Context, view *cancel_booking.View, cancelledBy int64, receipt *domain.CancellationReceipt) error {
	record := &domain.CancellationRecord{
		BookingID:       view.BookingID,
		Reason:          view.Reason,
		CancelledBy:     cancelledBy,
		RefundAmount:    view.RefundAmount,
		MaxRefundAmount: view.Calculation.MaxRefundAmount,
		ServerRefund:    receipt.RefundAmount,
		ServerFee:       receipt.CancellationFee,
		RefundType:      receipt.RefundType,
		RequestID:       view.RequestID,
	}
	if view.Details != "" {
		details := view.Details
		record.Details = &details
	}

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		_, err := s.auditRepo.Create(txCtx, record)
		return err
	})
}

func (s *Service) countSubmission(err error) {
	if s.submissions == nil {
		return
	}

	switch {
	case err == nil:
		s.submissions.IncSubmission(metrics.SubmissionResultCompleted)
	case errors.Is(err, cancel_booking.ErrValidation):
		s.submissions.IncSubmission(metrics.SubmissionResultValidation)
	case errors.Is(err, cancel_booking.ErrServiceUnavailable):
		s.submissions.IncSubmission(metrics.SubmissionResultTransport)
	case errors.Is(err, cancel_booking.ErrSubmissionRejected):
		s.submissions.IncSubmission(metrics.SubmissionResultRejected)
	}
}
