package cancellation

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/HMS-CancellationService/internal/domain"
	"github.com/m04kA/HMS-CancellationService/pkg/psqlbuilder"
	"github.com/m04kA/HMS-CancellationService/pkg/txmanager"
)

// Repository репозиторий аудит-записей отмен
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отмен
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет аудит-запись о принятой отмене
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, record *domain.CancellationRecord) (*domain.CancellationRecord, error) {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Insert("cancellation_records").
		Columns(
			"booking_id",
			"reason",
			"details",
			"cancelled_by",
			"refund_amount",
			"max_refund_amount",
			"server_refund_amount",
			"server_cancellation_fee",
			"refund_type",
			"request_id",
		).
		Values(
			record.BookingID,
			record.Reason,
			record.Details,
			record.CancelledBy,
			record.RefundAmount,
			record.MaxRefundAmount,
			record.ServerRefund,
			record.ServerFee,
			record.RefundType,
			record.RequestID,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&record.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	record.CreatedAt = createdAt.Time

	return record, nil
}

// GetByBookingID возвращает аудит-записи отмен по бронированию
// Последние записи идут первыми
func (r *Repository) GetByBookingID(ctx context.Context, bookingID int64) ([]*domain.CancellationRecord, error) {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"booking_id",
		"reason",
		"details",
		"cancelled_by",
		"refund_amount",
		"max_refund_amount",
		"server_refund_amount",
		"server_cancellation_fee",
		"refund_type",
		"request_id",
		"created_at",
	).
		From("cancellation_records").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var records []*domain.CancellationRecord

	for rows.Next() {
		var record domain.CancellationRecord
		var createdAt sql.NullTime

		err = rows.Scan(
			&record.ID,
			&record.BookingID,
			&record.Reason,
			&record.Details,
			&record.CancelledBy,
			&record.RefundAmount,
			&record.MaxRefundAmount,
			&record.ServerRefund,
			&record.ServerFee,
			&record.RefundType,
			&record.RequestID,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByBookingID - scan record: %v", ErrScanRow, err)
		}

		record.CreatedAt = createdAt.Time
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - rows iteration: %v", ErrScanRow, err)
	}

	return records, nil
}
