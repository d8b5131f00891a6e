package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/clinicbook/booking-service/internal/domain"
	"github.com/clinicbook/booking-service/pkg/dbmetrics"
	"github.com/clinicbook/booking-service/pkg/psqlbuilder"
)

// uniqueViolation код ошибки PostgreSQL для нарушения уникальности
const uniqueViolation = "23505"

var paymentColumns = []string{
	"id",
	"booking_id",
	"amount",
	"method",
	"status",
	"paid_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с платежами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый платёж
// Уникальное ограничение на booking_id гарантирует не более одного платежа
// на бронирование: нарушение возвращается как ErrPaymentExists
func (r *Repository) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payments").
		Columns(
			"booking_id",
			"amount",
			"method",
			"status",
			"paid_at",
		).
		Values(
			p.BookingID,
			p.Amount,
			p.Method,
			p.Status,
			p.PaidAt,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrPaymentExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return p, nil
}

// GetByID получает платёж по ID
// Внутри транзакции блокирует строку (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, "GetByID")
}

// GetByBookingID получает платёж бронирования
func (r *Repository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	return r.getOne(ctx, squirrel.Eq{"booking_id": bookingID}, "GetByBookingID")
}

func (r *Repository) getOne(ctx context.Context, cond squirrel.Eq, op string) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(paymentColumns...).
		From("payments").
		Where(cond)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	var p domain.Payment
	var paidAt, createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.BookingID,
		&p.Amount,
		&p.Method,
		&p.Status,
		&paidAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan payment: %w", ErrScanRow, op, err)
	}

	if paidAt.Valid {
		p.PaidAt = &paidAt.Time
	}
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}

// GetByPatientID получает платежи пациента через его бронирования
func (r *Repository) GetByPatientID(ctx context.Context, patientID int64) ([]*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"p.id",
		"p.booking_id",
		"p.amount",
		"p.method",
		"p.status",
		"p.paid_at",
		"p.created_at",
		"p.updated_at",
	).
		From("payments p").
		Join("bookings b ON b.id = p.booking_id").
		Where(squirrel.Eq{"b.patient_id": patientID}).
		OrderBy("p.created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByPatientID - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPatientID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	payments := make([]*domain.Payment, 0)
	for rows.Next() {
		var p domain.Payment
		var paidAt, createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&p.ID,
			&p.BookingID,
			&p.Amount,
			&p.Method,
			&p.Status,
			&paidAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: GetByPatientID - scan row: %w", ErrScanRow, err)
		}

		if paidAt.Valid {
			p.PaidAt = &paidAt.Time
		}
		p.CreatedAt = createdAt.Time
		p.UpdatedAt = updatedAt.Time

		payments = append(payments, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByPatientID - rows error: %w", ErrScanRow, err)
	}

	return payments, nil
}

// UpdateStatus обновляет статус платежа
// paidAt записывается, когда платёж переходит в completed
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus, paidAt *time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("payments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if paidAt != nil {
		updateBuilder = updateBuilder.Set("paid_at", *paidAt)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrPaymentNotFound
	}

	return nil
}
