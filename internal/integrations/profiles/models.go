package profiles

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Doctor профиль врача из ProfileService
type Doctor struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"user_id"`
	FullName    string `json:"full_name"`
	SpecialtyID int64  `json:"specialty_id"`
}

// Patient профиль пациента из ProfileService
type Patient struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"user_id"`
	FullName string `json:"full_name"`
}

// ErrorResponse модель ошибки от ProfileService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
