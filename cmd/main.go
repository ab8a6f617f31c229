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

	accruePointsHandler "github.com/avlebedev/carservice-admin/internal/api/handlers/accrue_points"
	cancelBookingHandler "github.com/avlebedev/carservice-admin/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/avlebedev/carservice-admin/internal/api/handlers/create_booking"
	createClientHandler "github.com/avlebedev/carservice-admin/internal/api/handlers/create_client"
	createServiceHandler "github.com/avlebedev/carservice-admin/internal/api/handlers/create_service"
	createVehicleHandler "github.com/avlebedev/carservice-admin/internal/api/handlers/create_vehicle"
	deleteClientHandler "github.com/avlebedev/carservice-admin/internal/api/handlers/delete_client"
	deleteServiceHandler "github.com/avlebedev/carservice-admin/internal/api/handlers/delete_service"
	deleteVehicleHandler "github.com/avlebedev/carservice-admin/internal/api/handlers/delete_vehicle"
	getAvailableSlotsHandler "github.com/avlebedev/carservice-admin/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/avlebedev/carservice-admin/internal/api/handlers/get_booking"
	getClientHandler "github.com/avlebedev/carservice-admin/internal/api/handlers/get_client"
	getClientsHandler "github.com/avlebedev/carservice-admin/internal/api/handlers/get_clients"
	getCompanyBookingsHandler "github.com/avlebedev/carservice-admin/internal/api/handlers/get_company_bookings"
	getCompanySettingsHandler "github.com/avlebedev/carservice-admin/internal/api/handlers/get_company_settings"
	getLoyaltyHistoryHandler "github.com/avlebedev/carservice-admin/internal/api/handlers/get_loyalty_history"
	getScheduleHandler "github.com/avlebedev/carservice-admin/internal/api/handlers/get_schedule"
	getServiceHandler "github.com/avlebedev/carservice-admin/internal/api/handlers/get_service"
	getServicesHandler "github.com/avlebedev/carservice-admin/internal/api/handlers/get_services"
	getVehicleHandler "github.com/avlebedev/carservice-admin/internal/api/handlers/get_vehicle"
	getVehiclesHandler "github.com/avlebedev/carservice-admin/internal/api/handlers/get_vehicles"
	loginHandler "github.com/avlebedev/carservice-admin/internal/api/handlers/login"
	logoutHandler "github.com/avlebedev/carservice-admin/internal/api/handlers/logout"
	redeemPointsHandler "github.com/avlebedev/carservice-admin/internal/api/handlers/redeem_points"
	searchVehiclesHandler "github.com/avlebedev/carservice-admin/internal/api/handlers/search_vehicles"
	updateBookingStatusHandler "github.com/avlebedev/carservice-admin/internal/api/handlers/update_booking_status"
	updateClientHandler "github.com/avlebedev/carservice-admin/internal/api/handlers/update_client"
	updateCompanySettingsHandler "github.com/avlebedev/carservice-admin/internal/api/handlers/update_company_settings"
	updateServiceHandler "github.com/avlebedev/carservice-admin/internal/api/handlers/update_service"
	updateVehicleHandler "github.com/avlebedev/carservice-admin/internal/api/handlers/update_vehicle"
	"github.com/avlebedev/carservice-admin/internal/api/middleware"
	"github.com/avlebedev/carservice-admin/internal/config"
	"github.com/avlebedev/carservice-admin/internal/infra/cache"
	bookingRepo "github.com/avlebedev/carservice-admin/internal/infra/storage/booking"
	catalogRepo "github.com/avlebedev/carservice-admin/internal/infra/storage/catalog"
	clientRepo "github.com/avlebedev/carservice-admin/internal/infra/storage/client"
	loyaltyRepo "github.com/avlebedev/carservice-admin/internal/infra/storage/loyalty"
	settingsRepo "github.com/avlebedev/carservice-admin/internal/infra/storage/settings"
	userRepo "github.com/avlebedev/carservice-admin/internal/infra/storage/user"
	vehicleRepo "github.com/avlebedev/carservice-admin/internal/infra/storage/vehicle"
	"github.com/avlebedev/carservice-admin/internal/jobs"
	authService "github.com/avlebedev/carservice-admin/internal/service/auth"
	bookingsService "github.com/avlebedev/carservice-admin/internal/service/bookings"
	catalogService "github.com/avlebedev/carservice-admin/internal/service/catalog"
	clientsService "github.com/avlebedev/carservice-admin/internal/service/clients"
	loyaltyService "github.com/avlebedev/carservice-admin/internal/service/loyalty"
	settingsService "github.com/avlebedev/carservice-admin/internal/service/settings"
	vehiclesService "github.com/avlebedev/carservice-admin/internal/service/vehicles"
	createBookingUC "github.com/avlebedev/carservice-admin/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/avlebedev/carservice-admin/internal/usecase/get_available_slots"
	getScheduleUC "github.com/avlebedev/carservice-admin/internal/usecase/get_schedule"
	"github.com/avlebedev/carservice-admin/pkg/dbmetrics"
	"github.com/avlebedev/carservice-admin/pkg/logger"
	"github.com/avlebedev/carservice-admin/pkg/metrics"
	"github.com/avlebedev/carservice-admin/pkg/simpletxmanager"
	"github.com/avlebedev/carservice-admin/pkg/txmanager"
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

	log.Info("Starting carservice-admin...")
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

	// Подключаемся к Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		// Кэш не критичен для работы сервиса - стартуем и без него
		log.Warn("Failed to ping Redis, cache degraded: %v", err)
	} else {
		log.Info("Successfully connected to Redis (addr=%s)", cfg.Redis.Addr)
	}
	cancelPing()

	appCache := cache.New(redisClient)

	// Инициализируем репозитории и сервисы (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		catalogRepository  *catalogRepo.Repository
		clientRepository   *clientRepo.Repository
		loyaltyRepository  *loyaltyRepo.Repository
		settingsRepository *settingsRepo.Repository
		userRepository     *userRepo.Repository
		vehicleRepository  *vehicleRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		clientRepository = clientRepo.NewRepository(wrappedDB)
		loyaltyRepository = loyaltyRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		userRepository = userRepo.NewRepository(wrappedDB)
		vehicleRepository = vehicleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		clientRepository = clientRepo.NewRepository(db)
		loyaltyRepository = loyaltyRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
		userRepository = userRepo.NewRepository(db)
		vehicleRepository = vehicleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	authSvc := authService.NewService(
		userRepository,
		appCache,
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute,
		log,
	)
	settingsSvc := settingsService.NewService(settingsRepository, appCache, log)
	loyaltySvc := loyaltyService.NewService(loyaltyRepository, clientRepository, txMgr, log)
	bookingSvc := bookingsService.NewService(bookingRepository, appCache, loyaltySvc, log)
	clientsSvc := clientsService.NewService(clientRepository, vehicleRepository, log)
	vehiclesSvc := vehiclesService.NewService(vehicleRepository, clientRepository, log)
	catalogSvc := catalogService.NewService(catalogRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		clientRepository,
		vehicleRepository,
		settingsSvc,
		appCache,
		txMgr,
		log,
	)
	getScheduleUseCase := getScheduleUC.NewUseCase(
		bookingRepository,
		settingsSvc,
		appCache,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		settingsSvc,
		log,
	)

	// Инициализируем handlers
	login := loginHandler.NewHandler(authSvc, log)
	logout := logoutHandler.NewHandler(authSvc, log)

	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getCompanyBookings := getCompanyBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)

	getSchedule := getScheduleHandler.NewHandler(getScheduleUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)

	createClient := createClientHandler.NewHandler(clientsSvc, log)
	getClient := getClientHandler.NewHandler(clientsSvc, log)
	getClients := getClientsHandler.NewHandler(clientsSvc, log)
	updateClient := updateClientHandler.NewHandler(clientsSvc, log)
	deleteClient := deleteClientHandler.NewHandler(clientsSvc, log)

	createVehicle := createVehicleHandler.NewHandler(vehiclesSvc, log)
	getVehicle := getVehicleHandler.NewHandler(vehiclesSvc, log)
	getVehicles := getVehiclesHandler.NewHandler(vehiclesSvc, log)
	updateVehicle := updateVehicleHandler.NewHandler(vehiclesSvc, log)
	deleteVehicle := deleteVehicleHandler.NewHandler(vehiclesSvc, log)
	searchVehicles := searchVehiclesHandler.NewHandler(vehiclesSvc, log)

	createService := createServiceHandler.NewHandler(catalogSvc, log)
	getService := getServiceHandler.NewHandler(catalogSvc, log)
	getServices := getServicesHandler.NewHandler(catalogSvc, log)
	updateService := updateServiceHandler.NewHandler(catalogSvc, log)
	deleteService := deleteServiceHandler.NewHandler(catalogSvc, log)

	accruePoints := accruePointsHandler.NewHandler(loyaltySvc, log)
	redeemPoints := redeemPointsHandler.NewHandler(loyaltySvc, log)
	getLoyaltyHistory := getLoyaltyHistoryHandler.NewHandler(loyaltySvc, log)

	getCompanySettings := getCompanySettingsHandler.NewHandler(settingsSvc, log)
	updateCompanySettings := updateCompanySettingsHandler.NewHandler(settingsSvc, log)

	// Запускаем фоновый обход статусов бронирований
	var sweeper *jobs.Sweeper
	if cfg.Scheduler.Enabled {
		sweeper = jobs.NewSweeper(
			bookingRepository,
			loyaltySvc,
			appCache,
			time.Duration(cfg.Scheduler.IntervalSeconds)*time.Second,
			log,
		)
		if err := sweeper.Start(); err != nil {
			log.Fatal("Failed to start status sweeper: %v", err)
		}
	}

	// Настраиваем роутер
	r := mux.NewRouter()

	r.Use(middleware.CORS(cfg.Server.CORSAllowedOrigin))
	// Preflight запросы должны попадать в CORS middleware
	r.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(http.ResponseWriter, *http.Request) {})

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

	api.HandleFunc("/auth/login", login.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer токен)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(authSvc, log))

	protected.HandleFunc("/auth/logout", logout.Handle).Methods(http.MethodPost)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", getCompanyBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// --- Расписание ---
	protected.HandleFunc("/availability/schedule", getSchedule.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/availability/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Клиенты ---
	protected.HandleFunc("/clients", createClient.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/clients", getClients.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/clients/{clientId}", getClient.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/clients/{clientId}", updateClient.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/clients/{clientId}", deleteClient.Handle).Methods(http.MethodDelete)

	// --- Программа лояльности ---
	protected.HandleFunc("/clients/{clientId}/loyalty", getLoyaltyHistory.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/clients/{clientId}/loyalty/accrue", accruePoints.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/clients/{clientId}/loyalty/redeem", redeemPoints.Handle).Methods(http.MethodPost)

	// --- Автомобили ---
	protected.HandleFunc("/vehicles", createVehicle.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/vehicles", getVehicles.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/vehicles/search", searchVehicles.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/vehicles/{vehicleId}", getVehicle.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/vehicles/{vehicleId}", updateVehicle.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/vehicles/{vehicleId}", deleteVehicle.Handle).Methods(http.MethodDelete)

	// --- Каталог услуг ---
	protected.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/services", getServices.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/services/{serviceId}", getService.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/services/{serviceId}", updateService.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/services/{serviceId}", deleteService.Handle).Methods(http.MethodDelete)

	// --- Настройки компании ---
	protected.HandleFunc("/settings", getCompanySettings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/settings", updateCompanySettings.Handle).Methods(http.MethodPut)

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

	// Останавливаем фоновые задачи
	if sweeper != nil {
		sweeper.Stop()
	}

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
