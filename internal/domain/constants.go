package domain

// Business validation constants
const (
	MinServiceDurationMinutes = 1
	MaxServiceDurationMinutes = 1440 // 24 hours

	MaxServiceTitleLength       = 100
	MaxServiceDescriptionLength = 500

	MaxNotificationMessageLength = 1000

	MinFeedbackRating        = 1
	MaxFeedbackRating        = 5
	MaxFeedbackCommentLength = 1000
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveBookingStatuses статусы бронирований, удерживающих слот расписания
// Используется при проверке зависимостей перед удалением расписания или услуги
var ActiveBookingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
