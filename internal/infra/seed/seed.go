package seed

import (
	"context"
	"fmt"

	"github.com/clinicbook/booking-service/internal/domain"
	"github.com/clinicbook/booking-service/pkg/ptr"
)

// CatalogRepository интерфейс репозитория каталога для посева справочников
type CatalogRepository interface {
	SeedSpecialty(ctx context.Context, sp *domain.Specialty) error
	SeedService(ctx context.Context, s *domain.Service) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// specialties стартовый справочник специальностей
var specialties = []*domain.Specialty{
	{Name: "Терапевт", Description: ptr.Ptr("Врач общей практики")},
	{Name: "Кардиолог", Description: ptr.Ptr("Диагностика и лечение заболеваний сердца")},
	{Name: "Невролог", Description: ptr.Ptr("Диагностика и лечение заболеваний нервной системы")},
	{Name: "Офтальмолог", Description: ptr.Ptr("Диагностика и лечение заболеваний глаз")},
	{Name: "Стоматолог", Description: ptr.Ptr("Лечение зубов и полости рта")},
}

// services стартовый каталог услуг
var services = []*domain.Service{
	{Title: "Первичный приём терапевта", Description: "Осмотр, сбор анамнеза, назначение обследований", Price: 2000, DurationMinutes: 30, Status: domain.ServiceActive},
	{Title: "Повторный приём терапевта", Description: "Оценка результатов обследований, корректировка лечения", Price: 1500, DurationMinutes: 20, Status: domain.ServiceActive},
	{Title: "Консультация кардиолога", Description: "Приём с ЭКГ и расшифровкой", Price: 3000, DurationMinutes: 40, Status: domain.ServiceActive},
	{Title: "Консультация невролога", Description: "Неврологический осмотр", Price: 2800, DurationMinutes: 40, Status: domain.ServiceActive},
	{Title: "Проверка зрения", Description: "Определение остроты зрения, подбор коррекции", Price: 1800, DurationMinutes: 30, Status: domain.ServiceActive},
}

// Run выполняет идемпотентный посев справочных данных.
// Повторный запуск не создаёт дублей: вставки игнорируют конфликты
// по уникальным ключам
func Run(ctx context.Context, repo CatalogRepository, log Logger) error {
	for _, sp := range specialties {
		if err := repo.SeedSpecialty(ctx, sp); err != nil {
			return fmt.Errorf("seed: specialty %q: %w", sp.Name, err)
		}
	}

	for _, s := range services {
		if err := repo.SeedService(ctx, s); err != nil {
			return fmt.Errorf("seed: service %q: %w", s.Title, err)
		}
	}

	log.Info("Seed: reference data ensured (%d specialties, %d services)", len(specialties), len(services))
	return nil
}
