package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/clinicbook/booking-service/internal/domain"
	"github.com/clinicbook/booking-service/pkg/dbmetrics"
	"github.com/clinicbook/booking-service/pkg/psqlbuilder"
)

// uniqueViolation код ошибки PostgreSQL для нарушения уникальности
const uniqueViolation = "23505"

var serviceColumns = []string{
	"id",
	"title",
	"description",
	"price",
	"duration_minutes",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий справочных данных: услуги и специальности
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateService создает новую услугу
// Дубликат названия возвращается как ErrDuplicateTitle
func (r *Repository) CreateService(ctx context.Context, s *domain.Service) (*domain.Service, error) {
	query, args, err := psqlbuilder.Insert("services").
		Columns("title", "description", "price", "duration_minutes", "status").
		Values(s.Title, s.Description, s.Price, s.DurationMinutes, s.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateService - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&s.ID, &createdAt, &updatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrDuplicateTitle
		}
		return nil, fmt.Errorf("%w: CreateService - execute insert: %w", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// SeedService идемпотентно создает услугу при инициализации
// Существующая услуга с тем же названием не перезаписывается
func (r *Repository) SeedService(ctx context.Context, s *domain.Service) error {
	query, args, err := psqlbuilder.Insert("services").
		Columns("title", "description", "price", "duration_minutes", "status").
		Values(s.Title, s.Description, s.Price, s.DurationMinutes, s.Status).
		Suffix("ON CONFLICT (title) DO NOTHING").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SeedService - build insert query: %w", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SeedService - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// GetServiceByID получает услугу по ID
func (r *Repository) GetServiceByID(ctx context.Context, id int64) (*domain.Service, error) {
	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - build select query: %w", ErrBuildQuery, err)
	}

	var s domain.Service
	var createdAt, updatedAt sql.NullTime

	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.Title,
		&s.Description,
		&s.Price,
		&s.DurationMinutes,
		&s.Status,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - scan service: %w", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// GetAllServices получает все услуги каталога
func (r *Repository) GetAllServices(ctx context.Context) ([]*domain.Service, error) {
	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		OrderBy("title ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAllServices - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllServices - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		var s domain.Service
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&s.ID,
			&s.Title,
			&s.Description,
			&s.Price,
			&s.DurationMinutes,
			&s.Status,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: GetAllServices - scan row: %w", ErrScanRow, err)
		}

		s.CreatedAt = createdAt.Time
		s.UpdatedAt = updatedAt.Time

		services = append(services, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAllServices - rows error: %w", ErrScanRow, err)
	}

	return services, nil
}

// UpdateService обновляет услугу
func (r *Repository) UpdateService(ctx context.Context, s *domain.Service) error {
	query, args, err := psqlbuilder.Update("services").
		Set("title", s.Title).
		Set("description", s.Description).
		Set("price", s.Price).
		Set("duration_minutes", s.DurationMinutes).
		Set("status", s.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": s.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateService - build update query: %w", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrDuplicateTitle
		}
		return fmt.Errorf("%w: UpdateService - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateService - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrServiceNotFound
	}

	return nil
}

// DeleteService удаляет услугу
func (r *Repository) DeleteService(ctx context.Context, id int64) error {
	query, args, err := psqlbuilder.Delete("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteService - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteService - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteService - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrServiceNotFound
	}

	return nil
}

// SeedSpecialty идемпотентно создает специальность при инициализации
func (r *Repository) SeedSpecialty(ctx context.Context, sp *domain.Specialty) error {
	query, args, err := psqlbuilder.Insert("specialties").
		Columns("name", "description").
		Values(sp.Name, sp.Description).
		Suffix("ON CONFLICT (name) DO NOTHING").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SeedSpecialty - build insert query: %w", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SeedSpecialty - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// GetAllSpecialties получает все специальности
func (r *Repository) GetAllSpecialties(ctx context.Context) ([]*domain.Specialty, error) {
	query, args, err := psqlbuilder.Select("id", "name", "description", "created_at").
		From("specialties").
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAllSpecialties - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllSpecialties - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	specialties := make([]*domain.Specialty, 0)
	for rows.Next() {
		var sp domain.Specialty
		var createdAt sql.NullTime

		if err := rows.Scan(&sp.ID, &sp.Name, &sp.Description, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: GetAllSpecialties - scan row: %w", ErrScanRow, err)
		}

		sp.CreatedAt = createdAt.Time
		specialties = append(specialties, &sp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAllSpecialties - rows error: %w", ErrScanRow, err)
	}

	return specialties, nil
}

// GetSpecialtyByID получает специальность по ID
func (r *Repository) GetSpecialtyByID(ctx context.Context, id int64) (*domain.Specialty, error) {
	query, args, err := psqlbuilder.Select("id", "name", "description", "created_at").
		From("specialties").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSpecialtyByID - build select query: %w", ErrBuildQuery, err)
	}

	var sp domain.Specialty
	var createdAt sql.NullTime

	err = r.db.QueryRowContext(ctx, query, args...).Scan(&sp.ID, &sp.Name, &sp.Description, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrSpecialtyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSpecialtyByID - scan specialty: %w", ErrScanRow, err)
	}

	sp.CreatedAt = createdAt.Time

	return &sp, nil
}
