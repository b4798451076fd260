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

	cancelBookingHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_booking"
	getCustomerBookingsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_customer_bookings"
	getScheduleConfigHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_schedule_config"
	getStaffBookingsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_staff_bookings"
	listServicesHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/list_services"
	manageCouponsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/manage_coupons"
	manageScheduleConfigHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/manage_schedule_config"
	updateBookingHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_booking"
	updateBookingStatusHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_booking_status"
	validateCouponHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/validate_coupon"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/config"
	couponCache "github.com/m04kA/SMC-SalonService/internal/infra/cache/coupon"
	bookingRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/catalog"
	configRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/config"
	couponRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/coupon"
	notificationServiceClient "github.com/m04kA/SMC-SalonService/internal/integrations/notificationservice"
	bookingsService "github.com/m04kA/SMC-SalonService/internal/service/bookings"
	couponsService "github.com/m04kA/SMC-SalonService/internal/service/coupons"
	scheduleService "github.com/m04kA/SMC-SalonService/internal/service/schedule"
	createBookingUC "github.com/m04kA/SMC-SalonService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
	updateBookingUC "github.com/m04kA/SMC-SalonService/internal/usecase/update_booking"
	validateCouponUC "github.com/m04kA/SMC-SalonService/internal/usecase/validate_coupon"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/metrics"
	"github.com/m04kA/SMC-SalonService/pkg/txmanager"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
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

	log.Info("Starting SMC-SalonService...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Business.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Business.Timezone, err)
	}

	// Инициализируем метрики (если включены)
	// При выключенных метриках collector остается nil, все его методы - no-op
	var metricsCollector *metrics.Metrics
	stopBackgroundCh := make(chan struct{})

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

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopBackgroundCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil, cfg.Metrics.ServiceName)
	}

	txMgr := txmanager.NewTransactionManager(wrappedDB, txmanager.WithRetryObserver(metricsCollector))

	// Redis для кэша купонов (опционально)
	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			// Кэш не обязателен: купоны читаются из БД при недоступном Redis
			log.Warn("Redis is unavailable at %s, coupon cache works in degraded mode: %v", cfg.Redis.Address, err)
		} else {
			log.Info("Connected to Redis at %s (coupon ttl=%s)", cfg.Redis.Address, cfg.Redis.CouponTTL())
		}
		cancel()
	}
	coupons := couponCache.NewCache(redisClient, cfg.Redis.CouponTTL())

	// Инициализируем интеграционных клиентов
	notificationURL := ""
	if cfg.NotificationService.Enabled {
		notificationURL = cfg.NotificationService.URL
	}
	notifier := notificationServiceClient.NewClient(
		notificationURL,
		time.Duration(cfg.NotificationService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (NotificationService enabled=%t)", notifier.Enabled())

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	configRepository := configRepo.NewRepository(wrappedDB)
	couponRepository := couponRepo.NewRepository(wrappedDB)

	// Значения расписания по умолчанию (уже провалидированы в config.Validate)
	openTime, _ := types.NewTimeStringFromString(cfg.Business.OpenTime)
	closeTime, _ := types.NewTimeStringFromString(cfg.Business.CloseTime)
	defaults := scheduleService.Defaults{
		OpenTime:                openTime,
		CloseTime:               closeTime,
		SlotGranularityMinutes:  cfg.Business.SlotGranularityMinutes,
		AdvanceBookingDays:      cfg.Business.AdvanceBookingDays,
		MinBookingNoticeMinutes: cfg.Business.MinBookingNoticeMinutes,
	}

	// Инициализируем сервисы
	scheduleSvc := scheduleService.NewService(configRepository, defaults, log)
	bookingSvc := bookingsService.NewService(bookingRepository, notifier, txMgr, log)
	couponSvc := couponsService.NewService(couponRepository, coupons, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		couponRepository,
		scheduleSvc,
		notifier,
		txMgr,
		metricsCollector,
		location,
		log,
	)

	updateBookingUseCase := updateBookingUC.NewUseCase(
		bookingRepository,
		scheduleSvc,
		notifier,
		txMgr,
		metricsCollector,
		location,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		scheduleSvc,
		location,
		log,
	)

	validateCouponUseCase := validateCouponUC.NewUseCase(
		couponRepository,
		coupons,
		catalogRepository,
		txMgr,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	updateBooking := updateBookingHandler.NewHandler(updateBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, location, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	getStaffBookings := getStaffBookingsHandler.NewHandler(bookingSvc, location, log)
	getScheduleConfig := getScheduleConfigHandler.NewHandler(scheduleSvc, location, log)
	manageScheduleConfig := manageScheduleConfigHandler.NewHandler(scheduleSvc, log)
	validateCoupon := validateCouponHandler.NewHandler(validateCouponUseCase, log)
	manageCoupons := manageCouponsHandler.NewHandler(couponSvc, log)
	listServices := listServicesHandler.NewHandler(catalogRepository, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

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

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(
			cfg.RateLimit.RPS,
			cfg.RateLimit.Burst,
			time.Duration(cfg.RateLimit.IdleTimeout)*time.Second,
		)
		go limiter.Run(time.Duration(cfg.RateLimit.CleanupInterval)*time.Second, stopBackgroundCh)
		api.Use(limiter.Middleware)
		log.Info("Rate limiting enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог услуг
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)

	// Свободные слоты мастера на день
	api.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Действующее расписание мастера на день недели
	api.HandleFunc("/schedule", getScheduleConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)
	protected.Use(middleware.Roles(cfg.Server.AdminUserIDs))

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/reference/{reference}", getBooking.HandleByReference).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований клиента
	protected.HandleFunc("/customers/{customerId}/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)

	// Предпросмотр скидки по купону
	protected.HandleFunc("/coupons/validate", validateCoupon.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (X-User-ID из server.admin_user_ids)
	// ============================================================

	admin := protected.PathPrefix("").Subrouter()
	admin.Use(middleware.RequireAdmin)

	// --- Бронирования салона ---
	admin.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/staff/{staffId}/bookings", getStaffBookings.Handle).Methods(http.MethodGet)

	// --- Расписание ---
	admin.HandleFunc("/schedule-configs", getScheduleConfig.HandleList).Methods(http.MethodGet)
	admin.HandleFunc("/schedule-configs", manageScheduleConfig.HandleCreate).Methods(http.MethodPost)
	admin.HandleFunc("/schedule-configs/{configId}", manageScheduleConfig.HandleUpdate).Methods(http.MethodPut)
	admin.HandleFunc("/schedule-configs/{configId}", manageScheduleConfig.HandleDelete).Methods(http.MethodDelete)

	// --- Купоны ---
	admin.HandleFunc("/coupons", manageCoupons.HandleCreate).Methods(http.MethodPost)
	admin.HandleFunc("/coupons/{code}", manageCoupons.HandleGet).Methods(http.MethodGet)
	admin.HandleFunc("/coupons/{code}/active", manageCoupons.HandleSetActive).Methods(http.MethodPatch)

	// --- Каталог (включая снятые с продажи услуги) ---
	admin.HandleFunc("/admin/services", listServices.Handle).Methods(http.MethodGet)

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

	// Останавливаем фоновые задачи: метрики connection pool и очистку rate limiter
	close(stopBackgroundCh)

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
