package catalog

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("catalog.repository: service not found")

	// ErrSpecialtyNotFound возвращается, когда специальность не найдена
	ErrSpecialtyNotFound = errors.New("catalog.repository: specialty not found")

	// ErrDuplicateTitle возвращается при попытке создать услугу
	// с уже существующим названием
	ErrDuplicateTitle = errors.New("catalog.repository: service title already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catalog.repository: failed to scan row")
)
