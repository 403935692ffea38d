package main

import (
	"context"
	"database/sql"
	"flag"
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

	checkAvailabilityHandler "github.com/m04kA/SMC-CarRental/internal/api/handlers/check_availability"
	createBookingHandler "github.com/m04kA/SMC-CarRental/internal/api/handlers/create_booking"
	createCarHandler "github.com/m04kA/SMC-CarRental/internal/api/handlers/create_car"
	deleteBookingHandler "github.com/m04kA/SMC-CarRental/internal/api/handlers/delete_booking"
	deleteCarHandler "github.com/m04kA/SMC-CarRental/internal/api/handlers/delete_car"
	getAllBookingsHandler "github.com/m04kA/SMC-CarRental/internal/api/handlers/get_all_bookings"
	getBookingHandler "github.com/m04kA/SMC-CarRental/internal/api/handlers/get_booking"
	getCarHandler "github.com/m04kA/SMC-CarRental/internal/api/handlers/get_car"
	getMyBookingsHandler "github.com/m04kA/SMC-CarRental/internal/api/handlers/get_my_bookings"
	listCarsHandler "github.com/m04kA/SMC-CarRental/internal/api/handlers/list_cars"
	toggleCarAvailabilityHandler "github.com/m04kA/SMC-CarRental/internal/api/handlers/toggle_car_availability"
	updateBookingStatusHandler "github.com/m04kA/SMC-CarRental/internal/api/handlers/update_booking_status"
	updateCarHandler "github.com/m04kA/SMC-CarRental/internal/api/handlers/update_car"
	updatePaymentStatusHandler "github.com/m04kA/SMC-CarRental/internal/api/handlers/update_payment_status"
	"github.com/m04kA/SMC-CarRental/internal/api/middleware"
	"github.com/m04kA/SMC-CarRental/internal/config"
	"github.com/m04kA/SMC-CarRental/internal/domain"
	carCache "github.com/m04kA/SMC-CarRental/internal/infra/cache/car"
	bookingRepo "github.com/m04kA/SMC-CarRental/internal/infra/storage/booking"
	carRepo "github.com/m04kA/SMC-CarRental/internal/infra/storage/car"
	"github.com/m04kA/SMC-CarRental/internal/infra/storage/memory"
	"github.com/m04kA/SMC-CarRental/internal/integrations/events"
	availabilityService "github.com/m04kA/SMC-CarRental/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-CarRental/internal/service/bookings"
	carsService "github.com/m04kA/SMC-CarRental/internal/service/cars"
	createBookingUC "github.com/m04kA/SMC-CarRental/internal/usecase/create_booking"
	"github.com/m04kA/SMC-CarRental/pkg/dbmetrics"
	"github.com/m04kA/SMC-CarRental/pkg/keylock"
	"github.com/m04kA/SMC-CarRental/pkg/logger"
	"github.com/m04kA/SMC-CarRental/pkg/metrics"
	"github.com/m04kA/SMC-CarRental/pkg/txmanager"
)

// bookingStore все операции над бронированиями, которые нужны сервисам
type bookingStore interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	FindOverlapping(ctx context.Context, carID int64, start, end time.Time, statuses []domain.BookingStatus) ([]*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64) ([]*domain.Booking, error)
	GetAll(ctx context.Context) ([]*domain.Booking, error)
	ExistsForCar(ctx context.Context, carID int64) (bool, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) (*domain.Booking, error)
	UpdatePaymentStatus(ctx context.Context, id int64, from, to domain.PaymentStatus) (*domain.Booking, error)
	Delete(ctx context.Context, id int64) error
}

type txManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type publisher interface {
	Publish(ctx context.Context, event events.Event) error
}

func main() {
	configPath := flag.String("config", "config.toml", "path to the TOML config file")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
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

	log.Info("Starting SMC-CarRental...")
	log.Info("Configuration loaded from %s (database driver=%s)", *configPath, cfg.Database.Driver)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Инициализируем хранилище
	var (
		cars     carCache.Repository
		bookings bookingStore
		txMgr    txManager
	)

	switch cfg.Database.Driver {
	case config.DriverMemory:
		store := memory.NewStore()
		cars, bookings, txMgr = store.Cars(), store.Bookings(), memory.TxManager{}
		log.Warn("Using in-memory storage: data is lost on restart")

	default:
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

		// С выключенными метриками обертка работает как прозрачный прокси
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		cars = carRepo.NewRepository(wrappedDB)
		bookings = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	}

	// Кэш автомобилей в Redis
	if cfg.Redis.Enabled {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal("Invalid redis url: %v", err)
		}
		client := redis.NewClient(opts)
		defer client.Close()

		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}

		cars = carCache.NewCachedRepository(cars, client, time.Duration(cfg.Redis.CarTTL)*time.Second, log)
		log.Info("Car cache enabled (ttl=%ds)", cfg.Redis.CarTTL)
	}

	// Публикация событий бронирований
	var eventPublisher publisher = events.NopPublisher{}
	if cfg.Events.Enabled {
		amqpPublisher, err := events.Dial(cfg.Events.URL, cfg.Events.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to message broker: %v", err)
		}
		defer amqpPublisher.Close()

		eventPublisher = amqpPublisher
		log.Info("Booking events are published to exchange %s", cfg.Events.Exchange)
	}

	carLocks := keylock.New()

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(cars, bookings, log)
	bookingSvc := bookingsService.NewService(bookings, eventPublisher, log)
	carSvc := carsService.NewService(cars, bookings, txMgr, carLocks, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		cars,
		bookings,
		availabilitySvc,
		txMgr,
		carLocks,
		eventPublisher,
		log,
	)

	// Инициализируем handlers
	listCars := listCarsHandler.NewHandler(carSvc, log)
	getCar := getCarHandler.NewHandler(carSvc, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(availabilitySvc, log)
	createCar := createCarHandler.NewHandler(carSvc, log)
	updateCar := updateCarHandler.NewHandler(carSvc, log)
	deleteCar := deleteCarHandler.NewHandler(carSvc, log)
	toggleCarAvailability := toggleCarAvailabilityHandler.NewHandler(carSvc, log)

	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getMyBookings := getMyBookingsHandler.NewHandler(bookingSvc, log)
	getAllBookings := getAllBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	updatePaymentStatus := updatePaymentStatusHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/cars", listCars.Handle).Methods(http.MethodGet)
	api.HandleFunc("/cars/{carId:[0-9]+}", getCar.Handle).Methods(http.MethodGet)
	api.HandleFunc("/cars/{carId:[0-9]+}/availability", checkAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Authorization: Bearer <token>)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(cfg.Auth.JWTSecret, cfg.Auth.Issuer, log))

	// --- Каталог (для администратора) ---
	protected.HandleFunc("/cars", createCar.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/cars/{carId:[0-9]+}", updateCar.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/cars/{carId:[0-9]+}", deleteCar.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/cars/{carId:[0-9]+}/toggle-availability", toggleCarAvailability.Handle).Methods(http.MethodPatch)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", getAllBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/me", getMyBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}/status", updateBookingStatus.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}/payment", updatePaymentStatus.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}", deleteBooking.Handle).Methods(http.MethodDelete)

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
	close(stopMetricsCh)

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
