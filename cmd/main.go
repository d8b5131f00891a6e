package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	createBookingHandler "github.com/clinicbook/booking-service/internal/api/handlers/create_booking"
	createFeedbackHandler "github.com/clinicbook/booking-service/internal/api/handlers/create_feedback"
	createPaymentHandler "github.com/clinicbook/booking-service/internal/api/handlers/create_payment"
	createScheduleHandler "github.com/clinicbook/booking-service/internal/api/handlers/create_schedule"
	createServiceHandler "github.com/clinicbook/booking-service/internal/api/handlers/create_service"
	deleteBookingHandler "github.com/clinicbook/booking-service/internal/api/handlers/delete_booking"
	deleteNotificationHandler "github.com/clinicbook/booking-service/internal/api/handlers/delete_notification"
	getBookingHandler "github.com/clinicbook/booking-service/internal/api/handlers/get_booking"
	getBookingPaymentHandler "github.com/clinicbook/booking-service/internal/api/handlers/get_booking_payment"
	getDoctorFeedbackHandler "github.com/clinicbook/booking-service/internal/api/handlers/get_doctor_feedback"
	getDoctorSchedulesHandler "github.com/clinicbook/booking-service/internal/api/handlers/get_doctor_schedules"
	getPatientBookingsHandler "github.com/clinicbook/booking-service/internal/api/handlers/get_patient_bookings"
	getPatientPaymentsHandler "github.com/clinicbook/booking-service/internal/api/handlers/get_patient_payments"
	getServicesHandler "github.com/clinicbook/booking-service/internal/api/handlers/get_services"
	getUserNotificationsHandler "github.com/clinicbook/booking-service/internal/api/handlers/get_user_notifications"
	markNotificationReadHandler "github.com/clinicbook/booking-service/internal/api/handlers/mark_notification_read"
	updateBookingStatusHandler "github.com/clinicbook/booking-service/internal/api/handlers/update_booking_status"
	updatePaymentStatusHandler "github.com/clinicbook/booking-service/internal/api/handlers/update_payment_status"
	"github.com/clinicbook/booking-service/internal/api/middleware"
	"github.com/clinicbook/booking-service/internal/config"
	"github.com/clinicbook/booking-service/internal/infra/seed"
	bookingRepo "github.com/clinicbook/booking-service/internal/infra/storage/booking"
	catalogRepo "github.com/clinicbook/booking-service/internal/infra/storage/catalog"
	feedbackRepo "github.com/clinicbook/booking-service/internal/infra/storage/feedback"
	notificationRepo "github.com/clinicbook/booking-service/internal/infra/storage/notification"
	paymentRepo "github.com/clinicbook/booking-service/internal/infra/storage/payment"
	scheduleRepo "github.com/clinicbook/booking-service/internal/infra/storage/schedule"
	notifyHubClient "github.com/clinicbook/booking-service/internal/integrations/notifyhub"
	profilesClient "github.com/clinicbook/booking-service/internal/integrations/profiles"
	bookingsService "github.com/clinicbook/booking-service/internal/service/bookings"
	catalogService "github.com/clinicbook/booking-service/internal/service/catalog"
	feedbackService "github.com/clinicbook/booking-service/internal/service/feedback"
	notificationsService "github.com/clinicbook/booking-service/internal/service/notifications"
	paymentsService "github.com/clinicbook/booking-service/internal/service/payments"
	schedulesService "github.com/clinicbook/booking-service/internal/service/schedules"
	createBookingUC "github.com/clinicbook/booking-service/internal/usecase/create_booking"
	"github.com/clinicbook/booking-service/pkg/dbmetrics"
	"github.com/clinicbook/booking-service/pkg/logger"
	"github.com/clinicbook/booking-service/pkg/metrics"
	"github.com/clinicbook/booking-service/pkg/simpletxmanager"
	"github.com/clinicbook/booking-service/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting ClinicBook BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем интеграционных клиентов
	profiles := profilesClient.NewClient(
		cfg.Profiles.URL,
		time.Duration(cfg.Profiles.Timeout)*time.Second,
		log,
	)
	notifyHub := notifyHubClient.NewClient(
		cfg.NotifyHub.URL,
		time.Duration(cfg.NotifyHub.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (ProfileService=%s timeout=%ds, NotifyHub=%s timeout=%ds)",
		cfg.Profiles.URL, cfg.Profiles.Timeout, cfg.NotifyHub.URL, cfg.NotifyHub.Timeout)

	// Интерфейс transaction manager, общий для сервисов и use cases
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository      *bookingRepo.Repository
		scheduleRepository     *scheduleRepo.Repository
		paymentRepository      *paymentRepo.Repository
		notificationRepository *notificationRepo.Repository
		catalogRepository      *catalogRepo.Repository
		feedbackRepository     *feedbackRepo.Repository
		txMgr                  TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		paymentRepository = paymentRepo.NewRepository(wrappedDB)
		notificationRepository = notificationRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		feedbackRepository = feedbackRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		paymentRepository = paymentRepo.NewRepository(db)
		notificationRepository = notificationRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		feedbackRepository = feedbackRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Посев справочных данных, идемпотентен при рестартах
	seedCtx, seedCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := seed.Run(seedCtx, catalogRepository, log); err != nil {
		seedCancel()
		log.Fatal("Failed to seed reference data: %v", err)
	}
	seedCancel()

	// Инициализируем сервисы
	notificationSvc := notificationsService.NewService(notificationRepository, notifyHub, log)

	bookingSvc := bookingsService.NewService(
		bookingRepository,
		scheduleRepository,
		paymentRepository,
		profiles,
		notificationSvc,
		txMgr,
		&bookingsService.RealTimeProvider{},
		log,
		cfg.Booking.StrictTransitions,
	)
	if cfg.Booking.StrictTransitions {
		log.Info("Strict status transition policy enabled")
	}

	paymentSvc := paymentsService.NewService(
		paymentRepository,
		bookingRepository,
		scheduleRepository,
		profiles,
		notificationSvc,
		txMgr,
		&paymentsService.RealTimeProvider{},
		log,
	)

	scheduleSvc := schedulesService.NewService(scheduleRepository, bookingRepository, txMgr, log)
	catalogSvc := catalogService.NewService(catalogRepository, bookingRepository, txMgr, log)
	feedbackSvc := feedbackService.NewService(feedbackRepository, bookingRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		catalogRepository,
		profiles,
		notificationSvc,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	getPatientBookings := getPatientBookingsHandler.NewHandler(bookingSvc, log)
	createPayment := createPaymentHandler.NewHandler(paymentSvc, log)
	updatePaymentStatus := updatePaymentStatusHandler.NewHandler(paymentSvc, log)
	getBookingPayment := getBookingPaymentHandler.NewHandler(paymentSvc, log)
	getPatientPayments := getPatientPaymentsHandler.NewHandler(paymentSvc, log)
	createSchedule := createScheduleHandler.NewHandler(scheduleSvc, log)
	getDoctorSchedules := getDoctorSchedulesHandler.NewHandler(scheduleSvc, log)
	getUserNotifications := getUserNotificationsHandler.NewHandler(notificationSvc, log)
	markNotificationRead := markNotificationReadHandler.NewHandler(notificationSvc, log)
	deleteNotification := deleteNotificationHandler.NewHandler(notificationSvc, log)
	createFeedback := createFeedbackHandler.NewHandler(feedbackSvc, log)
	getDoctorFeedback := getDoctorFeedbackHandler.NewHandler(feedbackSvc, log)
	getServices := getServicesHandler.NewHandler(catalogSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог услуг
	api.HandleFunc("/services", getServices.Handle).Methods(http.MethodGet)

	// Расписание врача (с фильтром available=true для свободных слотов)
	api.HandleFunc("/doctors/{doctorId}/schedules", getDoctorSchedules.Handle).Methods(http.MethodGet)

	// Отзывы о враче
	api.HandleFunc("/doctors/{doctorId}/feedback", getDoctorFeedback.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/patients/{patientId}/bookings", getPatientBookings.Handle).Methods(http.MethodGet)

	// --- Платежи ---
	protected.HandleFunc("/payments", createPayment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/payments/{paymentId}/status", updatePaymentStatus.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/payments/booking/{bookingId}", getBookingPayment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{patientId}/payments", getPatientPayments.Handle).Methods(http.MethodGet)

	// --- Расписания ---
	protected.HandleFunc("/schedules", createSchedule.Handle).Methods(http.MethodPost)

	// --- Уведомления ---
	protected.HandleFunc("/users/{userId}/notifications", getUserNotifications.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/{notificationId}/read", markNotificationRead.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/notifications/{notificationId}", deleteNotification.Handle).Methods(http.MethodDelete)

	// --- Отзывы и каталог (административные операции) ---
	protected.HandleFunc("/feedback", createFeedback.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
