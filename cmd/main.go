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

	cancelAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/create_appointment"
	createSalonConfigHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/create_salon_config"
	getAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_appointment"
	getCustomerAppointmentsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_customer_appointments"
	getDayAvailabilityHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_day_availability"
	getSalonAppointmentsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_salon_appointments"
	getSalonConfigHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_salon_config"
	getSlotsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_slots"
	updateSalonConfigHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_salon_config"
	validateBookingHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/validate_booking"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/config"
	"github.com/m04kA/SMC-SalonService/internal/infra/cache"
	apptRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	configRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/config"
	salonServiceClient "github.com/m04kA/SMC-SalonService/internal/integrations/salonservice"
	appointmentsService "github.com/m04kA/SMC-SalonService/internal/service/appointments"
	configService "github.com/m04kA/SMC-SalonService/internal/service/config"
	createAppointmentUC "github.com/m04kA/SMC-SalonService/internal/usecase/create_appointment"
	getDayAvailabilityUC "github.com/m04kA/SMC-SalonService/internal/usecase/get_day_availability"
	getSlotsUC "github.com/m04kA/SMC-SalonService/internal/usecase/get_slots"
	validateBookingUC "github.com/m04kA/SMC-SalonService/internal/usecase/validate_booking"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/metrics"
	"github.com/m04kA/SMC-SalonService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-SalonService/pkg/txmanager"
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

	log.Info("Starting SMC-SalonService...")
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

	// Подключаемся к Redis (если включен кэш сводок занятости)
	var availabilityCache getDayAvailabilityUC.AvailabilityCache
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewAvailabilityCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("Failed to connect to redis: %v", err)
		}
		defer redisCache.Close()
		availabilityCache = redisCache
		log.Info("Availability cache enabled (redis=%s, ttl=%s)", cfg.Redis.Addr, cache.AvailabilityTTL)
	} else {
		log.Info("Availability cache disabled, summaries are recomputed on every request")
	}

	// Инициализируем интеграционного клиента
	salonClient := salonServiceClient.NewClient(
		cfg.SalonService.URL,
		time.Duration(cfg.SalonService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (SalonService=%s timeout=%ds)",
		cfg.SalonService.URL, cfg.SalonService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *apptRepo.Repository
		configRepository      *configRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = apptRepo.NewRepository(wrappedDB)
		configRepository = configRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = apptRepo.NewRepository(db)
		configRepository = configRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		salonClient,
		log,
	)
	configSvc := configService.NewService(
		configRepository,
		salonClient,
		log,
	)

	// Инициализируем use cases
	getSlotsUseCase := getSlotsUC.NewUseCase(
		appointmentRepository,
		configRepository,
		salonClient,
		log,
	)

	getDayAvailabilityUseCase := getDayAvailabilityUC.NewUseCase(
		appointmentRepository,
		configRepository,
		salonClient,
		availabilityCache,
		log,
	)

	validateBookingUseCase := validateBookingUC.NewUseCase(
		appointmentRepository,
		configRepository,
		salonClient,
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		configRepository,
		salonClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getSlots := getSlotsHandler.NewHandler(getSlotsUseCase, log)
	getDayAvailability := getDayAvailabilityHandler.NewHandler(getDayAvailabilityUseCase, log)
	validateBooking := validateBookingHandler.NewHandler(validateBookingUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	getCustomerAppointments := getCustomerAppointmentsHandler.NewHandler(appointmentSvc, log)
	getSalonAppointments := getSalonAppointmentsHandler.NewHandler(appointmentSvc, log)
	getSalonConfig := getSalonConfigHandler.NewHandler(configSvc, log)
	createSalonConfig := createSalonConfigHandler.NewHandler(configSvc, log)
	updateSalonConfig := updateSalonConfigHandler.NewHandler(configSvc, log)

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

	// Слоты мастера на день
	api.HandleFunc("/salons/{salonId}/employees/{employeeId}/slots",
		getSlots.Handle).Methods(http.MethodGet)

	// Сводка занятости по дням (конкретный мастер или "любой мастер")
	api.HandleFunc("/salons/{salonId}/availability",
		getDayAvailability.Handle).Methods(http.MethodGet)

	// Предварительная проверка бронирования
	api.HandleFunc("/bookings/validate", validateBooking.Handle).Methods(http.MethodPost)

	// Получение конфигурации слотов салона
	api.HandleFunc("/salons/{salonId}/config",
		getSalonConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи на услуги ---
	// Создание записи
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// История записей клиента
	protected.HandleFunc("/users/{userId}/appointments", getCustomerAppointments.Handle).Methods(http.MethodGet)

	// --- Управление салоном (для менеджеров) ---
	// Список записей салона
	protected.HandleFunc("/salons/{salonId}/appointments", getSalonAppointments.Handle).Methods(http.MethodGet)

	// Создание конфигурации салона
	protected.HandleFunc("/salons/{salonId}/config", createSalonConfig.Handle).Methods(http.MethodPost)

	// Обновление конфигурации салона
	protected.HandleFunc("/salons/{salonId}/config", updateSalonConfig.Handle).Methods(http.MethodPut)

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
