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

	cancelBookingHandler "github.com/m04kA/SMC-HotelBookingService/internal/api/handlers/cancel_booking"
	checkAvailabilityHandler "github.com/m04kA/SMC-HotelBookingService/internal/api/handlers/check_availability"
	createBookingHandler "github.com/m04kA/SMC-HotelBookingService/internal/api/handlers/create_booking"
	getBookingHandler "github.com/m04kA/SMC-HotelBookingService/internal/api/handlers/get_booking"
	getHotelBookingsHandler "github.com/m04kA/SMC-HotelBookingService/internal/api/handlers/get_hotel_bookings"
	getUserBookingsHandler "github.com/m04kA/SMC-HotelBookingService/internal/api/handlers/get_user_bookings"
	toggleRoomAvailabilityHandler "github.com/m04kA/SMC-HotelBookingService/internal/api/handlers/toggle_room_availability"
	updatePaymentStatusHandler "github.com/m04kA/SMC-HotelBookingService/internal/api/handlers/update_payment_status"
	"github.com/m04kA/SMC-HotelBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-HotelBookingService/internal/config"
	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/internal/infra/lock/roomlock"
	bookingRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/booking"
	hotelRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/hotel"
	roomRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/room"
	"github.com/m04kA/SMC-HotelBookingService/internal/integrations/eventbus"
	bookingsService "github.com/m04kA/SMC-HotelBookingService/internal/service/bookings"
	roomsService "github.com/m04kA/SMC-HotelBookingService/internal/service/rooms"
	checkAvailabilityUC "github.com/m04kA/SMC-HotelBookingService/internal/usecase/check_availability"
	createBookingUC "github.com/m04kA/SMC-HotelBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-HotelBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-HotelBookingService/pkg/logger"
	"github.com/m04kA/SMC-HotelBookingService/pkg/metrics"
	"github.com/m04kA/SMC-HotelBookingService/pkg/txmanager"
)

type publisher interface {
	PublishBookingCreated(ctx context.Context, booking *domain.Booking) error
	Close() error
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	logOpts := logger.Options{
		Level:   cfg.Logs.Level,
		Format:  cfg.Logs.Format,
		Service: cfg.Metrics.ServiceName,
	}
	if cfg.Logs.File != "" {
		logOpts.Output = "file"
		logOpts.FilePath = cfg.Logs.File
	}
	log, err := logger.NewWithOptions(logOpts)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-HotelBookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var (
		metricsCollector *metrics.Metrics
		dbObserver       dbmetrics.Observer
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		dbObserver = metricsCollector
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

	// Обёртка замеряет запросы, если метрики включены; без observer работает как прокси
	wrappedDB := dbmetrics.WrapWithDefault(db, dbObserver, stopMetricsCh)

	// Проверяем соединение
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	err = wrappedDB.PingContext(pingCtx)
	cancelPing()
	if err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	retryPolicy := txmanager.DefaultRetryPolicy
	retryPolicy.MaxRetries = cfg.Booking.TxMaxRetries
	txMgr := txmanager.NewTransactionManager(wrappedDB, txmanager.WithRetryPolicy(retryPolicy))

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	roomRepository := roomRepo.NewRepository(wrappedDB)
	hotelRepository := hotelRepo.NewRepository(wrappedDB)

	// Блокировка номеров: Redis для нескольких инстансов, иначе in-process
	var (
		locker      createBookingUC.RoomLocker
		redisClient *redis.Client
	)
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Address, err)
		}

		locker = roomlock.NewRedis(redisClient, cfg.Booking.LockTTL(), log)
		log.Info("Room lock: redis (addr=%s, ttl=%s)", cfg.Redis.Address, cfg.Booking.LockTTL())
	} else {
		locker = roomlock.NewLocal()
		log.Info("Room lock: in-process")
	}

	// Публикация событий
	var events publisher = eventbus.Noop{}
	if cfg.RabbitMQ.Enabled {
		p, err := eventbus.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue, log)
		if err != nil {
			log.Fatal("Failed to connect to rabbitmq: %v", err)
		}
		events = p
		log.Info("Event publisher connected (queue=%s)", cfg.RabbitMQ.Queue)
	}

	policy := domain.OverlapInclusive
	if cfg.Booking.AllowSameDayTurnover {
		policy = domain.OverlapHalfOpen
	}
	log.Info("Booking overlap policy: %s", policy)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		hotelRepository,
		txMgr,
		cfg.Booking.StoreTimeout(),
		log,
	)
	roomSvc := roomsService.NewService(roomRepository, cfg.Booking.StoreTimeout(), log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		roomRepository,
		locker,
		txMgr,
		events,
		metricsCollector,
		createBookingUC.Options{
			Policy:          policy,
			StoreTimeout:    cfg.Booking.StoreTimeout(),
			LockWaitTimeout: cfg.Booking.LockWaitTimeout(),
		},
		log,
	)

	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		bookingRepository,
		roomRepository,
		policy,
		cfg.Booking.StoreTimeout(),
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getHotelBookings := getHotelBookingsHandler.NewHandler(bookingSvc, log)
	updatePaymentStatus := updatePaymentStatusHandler.NewHandler(bookingSvc, log)
	toggleRoomAvailability := toggleRoomAvailabilityHandler.NewHandler(roomSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.LoggingMiddleware(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации, лимит по IP)
	// ============================================================

	public := api.PathPrefix("").Subrouter()

	// Проверка доступности номера с предварительной стоимостью
	public.HandleFunc("/bookings/check-availability", checkAvailability.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют Authorization: Bearer <JWT>, лимит по пользователю)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(cfg.Auth.JWTSecret, cfg.Auth.Issuer))

	// Лимитер ставится после Auth, иначе ID пользователя в контексте еще нет
	if cfg.RateLimit.Enabled {
		public.Use(middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst).Middleware())
		protected.Use(middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst).Middleware())
		log.Info("Rate limit enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Статические пути регистрируются раньше /bookings/{bookingId}
	protected.HandleFunc("/bookings/user", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/hotel", getHotelBookings.Handle).Methods(http.MethodGet)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Отметка об оплате
	protected.HandleFunc("/bookings/{bookingId}/payment", updatePaymentStatus.Handle).Methods(http.MethodPatch)

	// --- Номера (для владельцев отелей) ---
	protected.HandleFunc("/rooms/{roomId}/toggle-availability", toggleRoomAvailability.Handle).Methods(http.MethodPost)

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

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	if err := events.Close(); err != nil {
		log.Error("Failed to close event publisher: %v", err)
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}
