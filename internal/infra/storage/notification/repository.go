package notification

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/clinicbook/booking-service/internal/domain"
	"github.com/clinicbook/booking-service/pkg/dbmetrics"
	"github.com/clinicbook/booking-service/pkg/psqlbuilder"
)

// Repository репозиторий для работы с уведомлениями
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория уведомлений
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое уведомление
// Уведомления намеренно пишутся вне транзакций движка бронирований:
// сбой доставки не должен откатывать смену статуса
func (r *Repository) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	query, args, err := psqlbuilder.Insert("notifications").
		Columns("user_id", "message").
		Values(n.UserID, n.Message).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&n.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	n.CreatedAt = createdAt.Time

	return n, nil
}

// GetByID получает уведомление по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Notification, error) {
	query, args, err := psqlbuilder.Select("id", "user_id", "message", "is_read", "created_at").
		From("notifications").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	var n domain.Notification
	var createdAt sql.NullTime

	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&n.ID,
		&n.UserID,
		&n.Message,
		&n.IsRead,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotificationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan notification: %w", ErrScanRow, err)
	}

	n.CreatedAt = createdAt.Time

	return &n, nil
}

// GetAllByUserID получает все уведомления пользователя, новые первыми
func (r *Repository) GetAllByUserID(ctx context.Context, userID int64) ([]*domain.Notification, error) {
	query, args, err := psqlbuilder.Select("id", "user_id", "message", "is_read", "created_at").
		From("notifications").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByUserID - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByUserID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	notifications := make([]*domain.Notification, 0)
	for rows.Next() {
		var n domain.Notification
		var createdAt sql.NullTime

		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.IsRead, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: GetAllByUserID - scan row: %w", ErrScanRow, err)
		}

		n.CreatedAt = createdAt.Time
		notifications = append(notifications, &n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAllByUserID - rows error: %w", ErrScanRow, err)
	}

	return notifications, nil
}

// MarkRead помечает уведомление прочитанным
func (r *Repository) MarkRead(ctx context.Context, id int64) error {
	query, args, err := psqlbuilder.Update("notifications").
		Set("is_read", true).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkRead - build update query: %w", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkRead - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkRead - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

// Delete удаляет уведомление
func (r *Repository) Delete(ctx context.Context, id int64) error {
	query, args, err := psqlbuilder.Delete("notifications").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrNotificationNotFound
	}

	return nil
}
