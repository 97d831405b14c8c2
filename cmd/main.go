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

	cancelReservationHandler "github.com/shuchan/DH-ReservationService/internal/api/handlers/cancel_reservation"
	createMenuHandler "github.com/shuchan/DH-ReservationService/internal/api/handlers/create_menu"
	createReservationHandler "github.com/shuchan/DH-ReservationService/internal/api/handlers/create_reservation"
	deleteMenuHandler "github.com/shuchan/DH-ReservationService/internal/api/handlers/delete_menu"
	getBusinessDayHandler "github.com/shuchan/DH-ReservationService/internal/api/handlers/get_business_day"
	getBusinessDaysHandler "github.com/shuchan/DH-ReservationService/internal/api/handlers/get_business_days"
	getDateMenusHandler "github.com/shuchan/DH-ReservationService/internal/api/handlers/get_date_menus"
	getDateReservationsHandler "github.com/shuchan/DH-ReservationService/internal/api/handlers/get_date_reservations"
	getReservationHandler "github.com/shuchan/DH-ReservationService/internal/api/handlers/get_reservation"
	getTimeSlotsHandler "github.com/shuchan/DH-ReservationService/internal/api/handlers/get_time_slots"
	getUserReservationsHandler "github.com/shuchan/DH-ReservationService/internal/api/handlers/get_user_reservations"
	resumeDraftHandler "github.com/shuchan/DH-ReservationService/internal/api/handlers/resume_draft"
	saveDraftHandler "github.com/shuchan/DH-ReservationService/internal/api/handlers/save_draft"
	updateMenuHandler "github.com/shuchan/DH-ReservationService/internal/api/handlers/update_menu"
	upsertBusinessDayHandler "github.com/shuchan/DH-ReservationService/internal/api/handlers/upsert_business_day"
	"github.com/shuchan/DH-ReservationService/internal/api/middleware"
	"github.com/shuchan/DH-ReservationService/internal/config"
	"github.com/shuchan/DH-ReservationService/internal/infra/events"
	calendarRepo "github.com/shuchan/DH-ReservationService/internal/infra/storage/calendar"
	draftStore "github.com/shuchan/DH-ReservationService/internal/infra/storage/draft"
	menuRepo "github.com/shuchan/DH-ReservationService/internal/infra/storage/menu"
	reservationRepo "github.com/shuchan/DH-ReservationService/internal/infra/storage/reservation"
	calendarService "github.com/shuchan/DH-ReservationService/internal/service/calendar"
	draftsService "github.com/shuchan/DH-ReservationService/internal/service/drafts"
	menusService "github.com/shuchan/DH-ReservationService/internal/service/menus"
	reservationsService "github.com/shuchan/DH-ReservationService/internal/service/reservations"
	cancelReservationUC "github.com/shuchan/DH-ReservationService/internal/usecase/cancel_reservation"
	createReservationUC "github.com/shuchan/DH-ReservationService/internal/usecase/create_reservation"
	getTimeSlotsUC "github.com/shuchan/DH-ReservationService/internal/usecase/get_time_slots"
	"github.com/shuchan/DH-ReservationService/pkg/dbmetrics"
	"github.com/shuchan/DH-ReservationService/pkg/logger"
	"github.com/shuchan/DH-ReservationService/pkg/metrics"
	"github.com/shuchan/DH-ReservationService/pkg/simpletxmanager"
	"github.com/shuchan/DH-ReservationService/pkg/txmanager"
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

	log.Info("Starting DH-ReservationService...")
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

	// Инициализируем репозитории (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		menuRepository        *menuRepo.Repository
		calendarRepository    *calendarRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		menuRepository = menuRepo.NewRepository(wrappedDB)
		calendarRepository = calendarRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		menuRepository = menuRepo.NewRepository(db)
		calendarRepository = calendarRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем publisher событий
	var publisher events.Publisher
	if cfg.Kafka.Enabled {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		log.Info("Kafka event publisher initialized (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	} else {
		publisher = events.NewLogPublisher(log)
		log.Info("Kafka disabled, events will be logged")
	}
	defer publisher.Close()

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		menuRepository,
		calendarRepository,
		publisher,
		txMgr,
		log,
		cfg.Booking.MinLeadDays,
	)

	cancelReservationUseCase := cancelReservationUC.NewUseCase(
		reservationRepository,
		menuRepository,
		publisher,
		txMgr,
		log,
		cfg.Booking.CancelCutoffHour,
	)

	getTimeSlotsUseCase := getTimeSlotsUC.NewUseCase(calendarRepository, log)

	// Инициализируем сервисы
	menusSvc := menusService.NewService(menuRepository, reservationRepository, txMgr, log)
	reservationsSvc := reservationsService.NewService(reservationRepository, log)
	calendarSvc := calendarService.NewService(calendarRepository, log)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	cancelReservation := cancelReservationHandler.NewHandler(cancelReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationsSvc, log)
	getDateReservations := getDateReservationsHandler.NewHandler(reservationsSvc, log)
	getTimeSlots := getTimeSlotsHandler.NewHandler(getTimeSlotsUseCase, log)
	getDateMenus := getDateMenusHandler.NewHandler(menusSvc, log)
	createMenu := createMenuHandler.NewHandler(menusSvc, log)
	updateMenu := updateMenuHandler.NewHandler(menusSvc, log)
	deleteMenu := deleteMenuHandler.NewHandler(menusSvc, log)
	getBusinessDays := getBusinessDaysHandler.NewHandler(calendarSvc, log)
	getBusinessDay := getBusinessDayHandler.NewHandler(calendarSvc, log)
	upsertBusinessDay := upsertBusinessDayHandler.NewHandler(calendarSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Сетка слотов на дату
	api.HandleFunc("/time-slots/{date}", getTimeSlots.Handle).Methods(http.MethodGet)

	// Меню, доступные для бронирования на дату
	api.HandleFunc("/dates/{date}/menus", getDateMenus.Handle).Methods(http.MethodGet)

	// Календарь рабочих дней
	api.HandleFunc("/business-days", getBusinessDays.Handle).Methods(http.MethodGet)
	api.HandleFunc("/business-days/{date}", getBusinessDay.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}", cancelReservation.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// --- Администрирование (кухня) ---
	protected.HandleFunc("/dates/{date}/reservations", getDateReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/menus", createMenu.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/menus/{menuId}", updateMenu.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/menus/{menuId}", deleteMenu.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/business-days/{date}", upsertBusinessDay.Handle).Methods(http.MethodPut)

	// --- Черновики (если включен Redis) ---
	if cfg.Draft.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Draft.Addr,
			Password: cfg.Draft.Password,
			DB:       cfg.Draft.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		log.Info("Successfully connected to redis (addr=%s)", cfg.Draft.Addr)

		store := draftStore.NewStore(redisClient, time.Duration(cfg.Draft.TTLMinutes)*time.Minute)
		draftsSvc := draftsService.NewService(store, createReservationUseCase, log, time.Duration(cfg.Draft.TTLMinutes)*time.Minute)

		saveDraft := saveDraftHandler.NewHandler(draftsSvc, log)
		resumeDraft := resumeDraftHandler.NewHandler(draftsSvc, log)

		protected.HandleFunc("/drafts", saveDraft.Handle).Methods(http.MethodPost)
		protected.HandleFunc("/drafts/{token}/confirm", resumeDraft.Handle).Methods(http.MethodPost)
		log.Info("Draft reservations enabled (ttl=%dm)", cfg.Draft.TTLMinutes)
	}

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
