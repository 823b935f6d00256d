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
	"github.com/redis/go-redis/v9"

	cancelAppointmentHandler "github.com/m04kA/SMC-AgendaService/internal/api/handlers/cancel_appointment"
	confirmAppointmentHandler "github.com/m04kA/SMC-AgendaService/internal/api/handlers/confirm_appointment"
	createAppointmentHandler "github.com/m04kA/SMC-AgendaService/internal/api/handlers/create_appointment"
	createBlockHandler "github.com/m04kA/SMC-AgendaService/internal/api/handlers/create_block"
	deleteBlockHandler "github.com/m04kA/SMC-AgendaService/internal/api/handlers/delete_block"
	getAppointmentHandler "github.com/m04kA/SMC-AgendaService/internal/api/handlers/get_appointment"
	getAvailabilityHandler "github.com/m04kA/SMC-AgendaService/internal/api/handlers/get_availability"
	getAvailableSlotsHandler "github.com/m04kA/SMC-AgendaService/internal/api/handlers/get_available_slots"
	getAppointmentByTokenHandler "github.com/m04kA/SMC-AgendaService/internal/api/handlers/get_appointment_by_token"
	issueJoinTokenHandler "github.com/m04kA/SMC-AgendaService/internal/api/handlers/issue_join_token"
	joinAppointmentHandler "github.com/m04kA/SMC-AgendaService/internal/api/handlers/join_appointment"
	listAppointmentsHandler "github.com/m04kA/SMC-AgendaService/internal/api/handlers/list_appointments"
	listBlocksHandler "github.com/m04kA/SMC-AgendaService/internal/api/handlers/list_blocks"
	markConfirmationEmailHandler "github.com/m04kA/SMC-AgendaService/internal/api/handlers/mark_confirmation_email"
	updateAvailabilityHandler "github.com/m04kA/SMC-AgendaService/internal/api/handlers/update_availability"
	"github.com/m04kA/SMC-AgendaService/internal/api/middleware"
	"github.com/m04kA/SMC-AgendaService/internal/config"
	availabilityCache "github.com/m04kA/SMC-AgendaService/internal/infra/cache/availability"
	appointmentRepo "github.com/m04kA/SMC-AgendaService/internal/infra/storage/appointment"
	availabilityRepo "github.com/m04kA/SMC-AgendaService/internal/infra/storage/availability"
	blockRepo "github.com/m04kA/SMC-AgendaService/internal/infra/storage/block"
	productRepo "github.com/m04kA/SMC-AgendaService/internal/infra/storage/product"
	"github.com/m04kA/SMC-AgendaService/internal/scheduling"
	appointmentsService "github.com/m04kA/SMC-AgendaService/internal/service/appointments"
	availabilityService "github.com/m04kA/SMC-AgendaService/internal/service/availability"
	createAppointmentUC "github.com/m04kA/SMC-AgendaService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-AgendaService/internal/usecase/get_available_slots"
	joinAppointmentUC "github.com/m04kA/SMC-AgendaService/internal/usecase/join_appointment"
	"github.com/m04kA/SMC-AgendaService/internal/worker/pendingreaper"
	"github.com/m04kA/SMC-AgendaService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AgendaService/pkg/logger"
	"github.com/m04kA/SMC-AgendaService/pkg/metrics"
	"github.com/m04kA/SMC-AgendaService/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		configPath = path
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-AgendaService...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Scheduling.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %s: %v", cfg.Scheduling.Timezone, err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// Обёртка над пулом: без коллектора работает как обычный *sql.DB
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	availabilityRepository := availabilityRepo.NewRepository(wrappedDB)
	blockRepository := blockRepo.NewRepository(wrappedDB)
	productRepository := productRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Кэш расписаний (если включен Redis)
	var (
		availabilitySource getAvailableSlotsUC.AvailabilityRepository = availabilityRepository
		cacheInvalidator   availabilityService.CacheInvalidator
		redisClient        *redis.Client
	)

	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			// Кэш деградирует до чтения из БД, сервис продолжает работу
			log.Warn("Redis is unavailable at %s: %v", cfg.Redis.Addr, err)
		}
		cancelPing()

		cache := availabilityCache.NewCache(redisClient, availabilityRepository, cfg.Redis.CacheTTL(), metricsCollector, log)
		availabilitySource = cache
		cacheInvalidator = cache
		log.Info("Availability cache enabled (addr=%s, ttl=%s)", cfg.Redis.Addr, cfg.Redis.CacheTTL())
	}

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		txMgr,
		log,
	)
	availabilitySvc := availabilityService.NewService(
		availabilitySource,
		availabilityRepository,
		cacheInvalidator,
		blockRepository,
		location,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		productRepository,
		availabilitySource,
		appointmentRepository,
		blockRepository,
		getAvailableSlotsUC.Settings{
			Location:                location,
			MinBookingNoticeMinutes: cfg.Scheduling.MinBookingNoticeMinutes,
		},
		metricsCollector,
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		productRepository,
		availabilitySource,
		createAppointmentUC.Settings{
			MinBookingNoticeMinutes: cfg.Scheduling.MinBookingNoticeMinutes,
		},
		metricsCollector,
		log,
	)

	joinAppointmentUseCase := joinAppointmentUC.NewUseCase(
		appointmentRepository,
		scheduling.NewJoinWindow(cfg.Scheduling.JoinNotBeforeMinutes, cfg.Scheduling.JoinNotAfterMinutes),
		log,
	)

	// Фоновая задача: просроченные неоплаченные записи освобождают слоты
	reaper := pendingreaper.NewReaper(appointmentRepository, cfg.Scheduling.PendingTTL(), metricsCollector, log)
	if err := reaper.Start(cfg.Scheduling.ReaperSchedule); err != nil {
		log.Fatal("Failed to start pending reaper: %v", err)
	}

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	joinAppointment := joinAppointmentHandler.NewHandler(joinAppointmentUseCase, log)
	issueJoinToken := issueJoinTokenHandler.NewHandler(appointmentsSvc, log)
	getAppointmentByToken := getAppointmentByTokenHandler.NewHandler(appointmentsSvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	confirmAppointment := confirmAppointmentHandler.NewHandler(appointmentsSvc, log)
	markConfirmationEmail := markConfirmationEmailHandler.NewHandler(appointmentsSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	updateAvailability := updateAvailabilityHandler.NewHandler(availabilitySvc, log)
	createBlock := createBlockHandler.NewHandler(availabilitySvc, log)
	listBlocks := listBlocksHandler.NewHandler(availabilitySvc, log)
	deleteBlock := deleteBlockHandler.NewHandler(availabilitySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Расчет слотов и создание записи ограничены по частоте
	limited := api.PathPrefix("").Subrouter()
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.TrustForwarded)
		limited.Use(limiter.Middleware)
		log.Info("Rate limiting enabled (rps=%.2f, burst=%d, trust_forwarded=%t)",
			cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.TrustForwarded)
	}

	// Свободные слоты провайдера на дату
	limited.HandleFunc("/providers/{providerId}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Создание записи клиентом
	limited.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Просмотр записи по токену из ссылки клиента
	limited.HandleFunc("/appointments/by-token/{token}", getAppointmentByToken.Handle).Methods(http.MethodGet)

	// Переход в видеосессию
	api.HandleFunc("/appointments/{appointmentId}/join", joinAppointment.Handle).Methods(http.MethodGet)

	// Выдача токена подключения
	api.HandleFunc("/appointments/{appointmentId}/join-token", issueJoinToken.Handle).Methods(http.MethodPost)

	// Недельное расписание провайдера
	api.HandleFunc("/providers/{providerId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Provider-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Расписание ---
	protected.HandleFunc("/providers/{providerId}/availability", updateAvailability.Handle).Methods(http.MethodPut)

	// --- Блокировки ---
	protected.HandleFunc("/providers/{providerId}/blocks", listBlocks.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/providers/{providerId}/blocks", createBlock.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/providers/{providerId}/blocks/{blockId}", deleteBlock.Handle).Methods(http.MethodDelete)

	// --- Записи ---
	protected.HandleFunc("/providers/{providerId}/appointments", listAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// ============================================================
	// INTERNAL ROUTES (межсервисные вызовы)
	// ============================================================

	internal := r.PathPrefix("/internal").Subrouter()
	internal.Use(middleware.InternalAuth(cfg.Server.InternalToken))
	if cfg.Server.InternalToken == "" {
		log.Warn("Internal token is empty, /internal routes are not protected")
	}

	// Подтверждение записи после оплаты
	internal.HandleFunc("/appointments/{appointmentId}/confirm", confirmAppointment.Handle).Methods(http.MethodPost)

	// Отметка об отправке письма-подтверждения
	internal.HandleFunc("/appointments/{appointmentId}/confirmation-email-sent", markConfirmationEmail.Handle).Methods(http.MethodPost)

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Дожидаемся текущего прохода reaper
	reaper.Stop(shutdownCtx)

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	log.Info("Server stopped gracefully")
}
