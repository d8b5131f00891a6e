package feedback

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/clinicbook/booking-service/internal/domain"
	"github.com/clinicbook/booking-service/pkg/dbmetrics"
	"github.com/clinicbook/booking-service/pkg/psqlbuilder"
)

// Repository репозиторий для работы с отзывами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория отзывов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый отзыв
func (r *Repository) Create(ctx context.Context, f *domain.Feedback) (*domain.Feedback, error) {
	query, args, err := psqlbuilder.Insert("feedback").
		Columns("doctor_id", "patient_id", "rating", "comment").
		Values(f.DoctorID, f.PatientID, f.Rating, f.Comment).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&f.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	f.CreatedAt = createdAt.Time

	return f, nil
}

// GetByDoctorID получает отзывы о враче, новые первыми
func (r *Repository) GetByDoctorID(ctx context.Context, doctorID int64) ([]*domain.Feedback, error) {
	query, args, err := psqlbuilder.Select("id", "doctor_id", "patient_id", "rating", "comment", "created_at").
		From("feedback").
		Where(squirrel.Eq{"doctor_id": doctorID}).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDoctorID - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDoctorID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	feedbacks := make([]*domain.Feedback, 0)
	for rows.Next() {
		var f domain.Feedback
		var createdAt sql.NullTime

		if err := rows.Scan(&f.ID, &f.DoctorID, &f.PatientID, &f.Rating, &f.Comment, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: GetByDoctorID - scan row: %w", ErrScanRow, err)
		}

		f.CreatedAt = createdAt.Time
		feedbacks = append(feedbacks, &f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByDoctorID - rows error: %w", ErrScanRow, err)
	}

	return feedbacks, nil
}

// Delete удаляет отзыв
func (r *Repository) Delete(ctx context.Context, id int64) error {
	query, args, err := psqlbuilder.Delete("feedback").
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
		return ErrFeedbackNotFound
	}

	return nil
}
