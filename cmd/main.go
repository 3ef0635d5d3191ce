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

	cancelBookingHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/create_booking"
	createPricingRuleHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/create_pricing_rule"
	deleteSlotHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/delete_slot"
	deleteSlotConfigHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/delete_slot_config"
	getAvailableSlotsHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/get_booking"
	getPricingRuleHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/get_pricing_rule"
	getRoomSlotsHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/get_room_slots"
	getSlotHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/get_slot"
	getSlotConfigHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/get_slot_config"
	getUserBookingsHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/get_user_bookings"
	listPricingRulesHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/list_pricing_rules"
	listSlotConfigsHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/list_slot_configs"
	quotePriceHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/quote_price"
	rescheduleBookingHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/reschedule_booking"
	setPricingRuleActiveHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/set_pricing_rule_active"
	updateSlotStatusHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/update_slot_status"
	upsertSlotConfigHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/upsert_slot_config"
	"github.com/m04kA/SMC-VenueBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-VenueBookingService/internal/config"
	bookingRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/booking"
	configRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/config"
	pricingRuleRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/pricingrule"
	slotRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/slot"
	catalogServiceClient "github.com/m04kA/SMC-VenueBookingService/internal/integrations/catalogservice"
	bookingsService "github.com/m04kA/SMC-VenueBookingService/internal/service/bookings"
	configService "github.com/m04kA/SMC-VenueBookingService/internal/service/config"
	pricingRulesService "github.com/m04kA/SMC-VenueBookingService/internal/service/pricingrules"
	slotsService "github.com/m04kA/SMC-VenueBookingService/internal/service/slots"
	createBookingUC "github.com/m04kA/SMC-VenueBookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-VenueBookingService/internal/usecase/get_available_slots"
	quotePriceUC "github.com/m04kA/SMC-VenueBookingService/internal/usecase/quote_price"
	rescheduleBookingUC "github.com/m04kA/SMC-VenueBookingService/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-VenueBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-VenueBookingService/pkg/logger"
	"github.com/m04kA/SMC-VenueBookingService/pkg/metrics"
	"github.com/m04kA/SMC-VenueBookingService/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
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

	log.Info("Starting SMC-VenueBookingService...")
	log.Info("Configuration loaded from %s", configPath)

	// Метрики: nil означает, что сбор выключен
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

	// Обертка снимает метрики запросов; без коллектора работает как обычный *sql.DB
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем интеграционных клиентов
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CatalogService=%s timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	slotRepository := slotRepo.NewRepository(wrappedDB)
	configRepository := configRepo.NewRepository(wrappedDB)
	ruleRepository := pricingRuleRepo.NewRepository(wrappedDB)

	defaultGrid := cfg.Booking.DefaultGrid
	staffIDs := cfg.Booking.StaffUserIDs
	log.Info("Default slot grid %s-%s every %d min, %d staff users",
		cfg.Booking.GridStart, cfg.Booking.GridEnd, cfg.Booking.IntervalMinutes, len(staffIDs))

	// Инициализируем сервисы
	slotSvc := slotsService.NewService(
		slotRepository,
		bookingRepository,
		txMgr,
		staffIDs,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		slotRepository,
		slotSvc,
		staffIDs,
		log,
	)
	configSvc := configService.NewService(
		configRepository,
		catalogClient,
		defaultGrid,
		staffIDs,
		log,
	)
	ruleSvc := pricingRulesService.NewService(
		ruleRepository,
		staffIDs,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		slotRepository,
		configRepository,
		catalogClient,
		defaultGrid,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		slotRepository,
		configRepository,
		ruleRepository,
		catalogClient,
		defaultGrid,
		txMgr,
		metricsCollector,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		slotRepository,
		configRepository,
		defaultGrid,
		txMgr,
		metricsCollector,
		log,
	)
	quotePriceUseCase := quotePriceUC.NewUseCase(
		ruleRepository,
		catalogClient,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	quotePrice := quotePriceHandler.NewHandler(quotePriceUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getSlot := getSlotHandler.NewHandler(slotSvc, log)
	updateSlotStatus := updateSlotStatusHandler.NewHandler(slotSvc, log)
	deleteSlot := deleteSlotHandler.NewHandler(slotSvc, log)
	getRoomSlots := getRoomSlotsHandler.NewHandler(slotSvc, log)
	getSlotConfig := getSlotConfigHandler.NewHandler(configSvc, log)
	listSlotConfigs := listSlotConfigsHandler.NewHandler(configSvc, log)
	upsertSlotConfig := upsertSlotConfigHandler.NewHandler(configSvc, log)
	deleteSlotConfig := deleteSlotConfigHandler.NewHandler(configSvc, log)
	createPricingRule := createPricingRuleHandler.NewHandler(ruleSvc, log)
	listPricingRules := listPricingRulesHandler.NewHandler(ruleSvc, log)
	getPricingRule := getPricingRuleHandler.NewHandler(ruleSvc, log)
	setPricingRuleActive := setPricingRuleActiveHandler.NewHandler(ruleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover(log), middleware.AccessLog(log))

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

	// Свободные слоты комнаты и проверка конкретного времени
	api.HandleFunc("/rooms/{roomId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Расчет цены со скидками и сборами
	api.HandleFunc("/pricing/quote", quotePrice.Handle).Methods(http.MethodPost)

	// Сетка слотов пакета
	api.HandleFunc("/packages/{packageId}/slot-config", getSlotConfig.Handle).Methods(http.MethodGet)
	api.HandleFunc("/packages/{packageId}/slot-configs", listSlotConfigs.Handle).Methods(http.MethodGet)

	// Правила ценообразования
	api.HandleFunc("/pricing-rules", listPricingRules.Handle).Methods(http.MethodGet)
	api.HandleFunc("/pricing-rules/{ruleId}", getPricingRule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/me/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Слоты (сотрудники площадки) ---
	protected.HandleFunc("/slots/{slotId}", getSlot.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/slots/{slotId}/status", updateSlotStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/slots/{slotId}", deleteSlot.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/rooms/{roomId}/slots", getRoomSlots.Handle).Methods(http.MethodGet)

	// --- Настройки (сотрудники площадки) ---
	protected.HandleFunc("/packages/{packageId}/slot-config", upsertSlotConfig.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/packages/{packageId}/slot-config", deleteSlotConfig.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/pricing-rules", createPricingRule.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/pricing-rules/{ruleId}/active", setPricingRuleActive.Handle).Methods(http.MethodPatch)

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
