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
	"golang.org/x/time/rate"

	cancelBookingHandler "github.com/studiokita/booking-service/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/studiokita/booking-service/internal/api/handlers/create_booking"
	exportBookingsHandler "github.com/studiokita/booking-service/internal/api/handlers/export_bookings"
	getAvailableSlotsHandler "github.com/studiokita/booking-service/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/studiokita/booking-service/internal/api/handlers/get_booking"
	getFeaturesHandler "github.com/studiokita/booking-service/internal/api/handlers/get_features"
	getStudioBookingsHandler "github.com/studiokita/booking-service/internal/api/handlers/get_studio_bookings"
	getStudioConfigHandler "github.com/studiokita/booking-service/internal/api/handlers/get_studio_config"
	layoutsHandler "github.com/studiokita/booking-service/internal/api/handlers/layouts"
	sendBlastHandler "github.com/studiokita/booking-service/internal/api/handlers/send_blast"
	staffHandler "github.com/studiokita/booking-service/internal/api/handlers/staff"
	updateBookingStatusHandler "github.com/studiokita/booking-service/internal/api/handlers/update_booking_status"
	updateStudioConfigHandler "github.com/studiokita/booking-service/internal/api/handlers/update_studio_config"
	whatsappAdminHandler "github.com/studiokita/booking-service/internal/api/handlers/whatsapp_admin"
	"github.com/studiokita/booking-service/internal/api/middleware"
	"github.com/studiokita/booking-service/internal/config"
	"github.com/studiokita/booking-service/internal/infra/slotlock"
	bookingRepo "github.com/studiokita/booking-service/internal/infra/storage/booking"
	studioRepo "github.com/studiokita/booking-service/internal/infra/storage/studio"
	"github.com/studiokita/booking-service/internal/integrations/gcalendar"
	"github.com/studiokita/booking-service/internal/integrations/whatsapp"
	"github.com/studiokita/booking-service/internal/notify"
	"github.com/studiokita/booking-service/internal/receipts"
	bookingsService "github.com/studiokita/booking-service/internal/service/bookings"
	reportsService "github.com/studiokita/booking-service/internal/service/reports"
	studiosService "github.com/studiokita/booking-service/internal/service/studios"
	createBookingUC "github.com/studiokita/booking-service/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/studiokita/booking-service/internal/usecase/get_available_slots"
	sendBlastUC "github.com/studiokita/booking-service/internal/usecase/send_blast"
	"github.com/studiokita/booking-service/pkg/dbmetrics"
	"github.com/studiokita/booking-service/pkg/logger"
	"github.com/studiokita/booking-service/pkg/metrics"
	"github.com/studiokita/booking-service/pkg/simpletxmanager"
	"github.com/studiokita/booking-service/pkg/txmanager"
)

// blastMessagesPerSecond paces outgoing WhatsApp blasts so the gateway is
// never flooded by a single studio.
const blastMessagesPerSecond = 1

func main() {
	// Load configuration
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting booking-service...")
	log.Info("Configuration loaded from config.toml")

	// Initialize metrics (when enabled)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Connect to the database
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Configure connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Verify the connection
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Initialize repositories (with metrics wrapping or without)
	var (
		bookingRepository *bookingRepo.Repository
		studioRepository  *studioRepo.Repository
	)

	// Transaction manager interface used by usecases and services
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		studioRepository = studioRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		studioRepository = studioRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Optional collaborators. Each stays a nil interface when its feature is
	// disabled so the consumers skip it cleanly.
	var slotLocker createBookingUC.SlotLocker
	if cfg.Redis.Enabled {
		redisClient := slotlock.NewClient(cfg.Redis)
		locker := slotlock.NewLocker(redisClient, time.Duration(cfg.Redis.LockTTLSecs)*time.Second)
		if err := locker.Ping(context.Background()); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		slotLocker = locker
		log.Info("Redis slot lock enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.LockTTLSecs)
	}

	var waClient *whatsapp.Client
	var notifySender notify.MessageSender
	if cfg.WhatsApp.Enabled {
		waClient = whatsapp.NewClient(cfg.WhatsApp.URL, time.Duration(cfg.WhatsApp.Timeout)*time.Second, log)
		notifySender = waClient
		log.Info("WhatsApp gateway client initialized (url=%s, timeout=%ds)", cfg.WhatsApp.URL, cfg.WhatsApp.Timeout)
	}

	var calendarClient notify.CalendarClient
	if cfg.Calendar.Enabled {
		gcal, err := gcalendar.NewClient(context.Background(), cfg.Calendar.CredentialsFile, log)
		if err != nil {
			log.Fatal("Failed to initialize Google Calendar client: %v", err)
		}
		calendarClient = gcal
		log.Info("Google Calendar sync enabled (credentials=%s)", cfg.Calendar.CredentialsFile)
	}

	var receiptGenerator notify.ReceiptGenerator
	if cfg.Receipts.Enabled {
		gen, err := receipts.NewGenerator(cfg.Receipts, log)
		if err != nil {
			log.Fatal("Failed to initialize receipt generator: %v", err)
		}
		receiptGenerator = gen
		log.Info("PDF receipts enabled (spool=%s)", cfg.Receipts.SpoolDir)
	}

	// Metrics are optional everywhere; keep nil interfaces when disabled so
	// consumers do not call through a typed nil pointer.
	var (
		notifyMetrics    notify.MetricsCollector
		bookingMetrics   createBookingUC.MetricsCollector
		availabilityMets getAvailableSlotsUC.MetricsCollector
		blastMetrics     sendBlastUC.MetricsCollector
	)
	if cfg.Metrics.Enabled {
		notifyMetrics = metricsCollector
		bookingMetrics = metricsCollector
		availabilityMets = metricsCollector
		blastMetrics = metricsCollector
	}

	notifier := notify.NewNotifier(
		notifySender,
		receiptGenerator,
		calendarClient,
		bookingRepository,
		notifyMetrics,
		notify.RetryPolicy{},
		log,
	)

	// Initialize services
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		studioRepository,
		notifier,
		log,
	)
	studioSvc := studiosService.NewService(studioRepository, txMgr, log)
	reportSvc := reportsService.NewService(bookingRepository, studioRepository, log)

	// Initialize use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		studioRepository,
		slotLocker,
		notifier,
		txMgr,
		bookingMetrics,
		cfg.WhatsApp.CountryCode,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		studioRepository,
		availabilityMets,
		cfg.Availability.FailOpen,
		log,
	)
	if cfg.Availability.FailOpen {
		log.Info("Availability degradation policy: fail open")
	} else {
		log.Info("Availability degradation policy: fail closed")
	}

	// Initialize handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getStudioBookings := getStudioBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	exportBookings := exportBookingsHandler.NewHandler(reportSvc, log)
	getStudioConfig := getStudioConfigHandler.NewHandler(studioSvc, log)
	updateStudioConfig := updateStudioConfigHandler.NewHandler(studioSvc, log)
	layouts := layoutsHandler.NewHandler(studioSvc, log)
	staff := staffHandler.NewHandler(studioSvc, log)
	getFeatures := getFeaturesHandler.NewHandler(studioSvc, log)

	// Set up the router
	r := mux.NewRouter()

	// Metrics middleware (when enabled)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (public, no authentication)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (no authentication, rate limited)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	public.Use(middleware.OptionalAuth)
	if cfg.RateLimit.Enabled {
		public.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		log.Info("Public rate limit enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// Available slots for one layout and date
	public.HandleFunc("/studios/{studioId}/layouts/{layoutId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Booking submission by customers
	public.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Booking lookup and cancellation by reference code
	public.HandleFunc("/bookings/reference/{reference}",
		getBooking.HandleByReference).Methods(http.MethodGet)
	public.HandleFunc("/bookings/reference/{reference}/cancel",
		cancelBooking.HandleByReference).Methods(http.MethodPost)

	// Layout catalog
	public.HandleFunc("/studios/{studioId}/layouts", layouts.HandleList).Methods(http.MethodGet)
	public.HandleFunc("/studios/{studioId}/layouts/{layoutId}", layouts.HandleGet).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (require X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Bookings (staff) ---
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/studios/{studioId}/bookings", getStudioBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/studios/{studioId}/bookings/export", exportBookings.Handle).Methods(http.MethodGet)

	// --- Studio management ---
	protected.HandleFunc("/studios/{studioId}/config", getStudioConfig.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/studios/{studioId}/config", updateStudioConfig.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/studios/{studioId}/layouts", layouts.HandleCreate).Methods(http.MethodPost)
	protected.HandleFunc("/studios/{studioId}/layouts/{layoutId}", layouts.HandleUpdate).Methods(http.MethodPut)
	protected.HandleFunc("/studios/{studioId}/staff", staff.HandleAdd).Methods(http.MethodPost)
	protected.HandleFunc("/studios/{studioId}/staff/{userId}", staff.HandleRemove).Methods(http.MethodDelete)
	protected.HandleFunc("/studios/{studioId}/features", getFeatures.Handle).Methods(http.MethodGet)

	// --- WhatsApp (when the gateway is configured) ---
	if cfg.WhatsApp.Enabled {
		blastLimiter := rate.NewLimiter(rate.Limit(blastMessagesPerSecond), 1)
		sendBlastUseCase := sendBlastUC.NewUseCase(
			bookingRepository,
			studioRepository,
			waClient,
			blastLimiter,
			blastMetrics,
			log,
		)
		sendBlast := sendBlastHandler.NewHandler(sendBlastUseCase, log)
		whatsappAdmin := whatsappAdminHandler.NewHandler(waClient, log)

		protected.HandleFunc("/studios/{studioId}/blast", sendBlast.Handle).Methods(http.MethodPost)
		protected.HandleFunc("/whatsapp/session/connect", whatsappAdmin.HandleConnect).Methods(http.MethodPost)
		protected.HandleFunc("/whatsapp/session/disconnect", whatsappAdmin.HandleDisconnect).Methods(http.MethodPost)
		protected.HandleFunc("/whatsapp/session/status", whatsappAdmin.HandleStatus).Methods(http.MethodGet)
		protected.HandleFunc("/whatsapp/session/qr", whatsappAdmin.HandleQR).Methods(http.MethodGet)
		log.Info("WhatsApp blast and session routes registered")
	}

	// Create the HTTP server
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

	// Wait for a termination signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Stop connection pool metrics collection
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
