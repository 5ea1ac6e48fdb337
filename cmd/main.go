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

	abandonCancellationHandler "github.com/m04kA/HMS-CancellationService/internal/api/handlers/abandon_cancellation"
	getCancellationHandler "github.com/m04kA/HMS-CancellationService/internal/api/handlers/get_cancellation"
	getCancellationHistoryHandler "github.com/m04kA/HMS-CancellationService/internal/api/handlers/get_cancellation_history"
	setReasonHandler "github.com/m04kA/HMS-CancellationService/internal/api/handlers/set_reason"
	setRefundAmountHandler "github.com/m04kA/HMS-CancellationService/internal/api/handlers/set_refund_amount"
	startCancellationHandler "github.com/m04kA/HMS-CancellationService/internal/api/handlers/start_cancellation"
	submitCancellationHandler "github.com/m04kA/HMS-CancellationService/internal/api/handlers/submit_cancellation"
	"github.com/m04kA/HMS-CancellationService/internal/api/middleware"
	"github.com/m04kA/HMS-CancellationService/internal/config"
	cancellationRepo "github.com/m04kA/HMS-CancellationService/internal/infra/storage/cancellation"
	cancelServiceClient "github.com/m04kA/HMS-CancellationService/internal/integrations/cancelservice"
	hotelServiceClient "github.com/m04kA/HMS-CancellationService/internal/integrations/hotelservice"
	cancellationsService "github.com/m04kA/HMS-CancellationService/internal/service/cancellations"
	"github.com/m04kA/HMS-CancellationService/pkg/logger"
	"github.com/m04kA/HMS-CancellationService/pkg/metrics"
	"github.com/m04kA/HMS-CancellationService/pkg/txmanager"
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

	log.Info("Starting HMS-CancellationService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var submissionMetrics cancellationsService.SubmissionMetrics

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		submissionMetrics = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных (аудит отмен)
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
	hotelClient := hotelServiceClient.NewClient(
		cfg.HotelService.URL,
		time.Duration(cfg.HotelService.Timeout)*time.Second,
		log,
	)
	cancelClient := cancelServiceClient.NewClient(
		cfg.CancellationService.URL,
		time.Duration(cfg.CancellationService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (HotelService=%s timeout=%ds, CancellationService=%s timeout=%ds)",
		cfg.HotelService.URL, cfg.HotelService.Timeout, cfg.CancellationService.URL, cfg.CancellationService.Timeout)

	// Инициализируем репозиторий и transaction manager
	cancellationRepository := cancellationRepo.NewRepository(db)
	txMgr := txmanager.NewTransactionManager(db)

	// Инициализируем сервис отмен
	cancellationSvc := cancellationsService.NewService(
		hotelClient,
		cancelClient,
		cancellationRepository,
		txMgr,
		submissionMetrics,
		log,
	)

	// Инициализируем handlers
	startCancellation := startCancellationHandler.NewHandler(cancellationSvc, log)
	getCancellation := getCancellationHandler.NewHandler(cancellationSvc, log)
	setReason := setReasonHandler.NewHandler(cancellationSvc, log)
	setRefundAmount := setRefundAmountHandler.NewHandler(cancellationSvc, log)
	submitCancellation := submitCancellationHandler.NewHandler(cancellationSvc, log)
	abandonCancellation := abandonCancellationHandler.NewHandler(cancellationSvc, log)
	getCancellationHistory := getCancellationHistoryHandler.NewHandler(cancellationSvc, log)

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
	// PROTECTED ROUTES (требуют X-Staff-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Сессия отмены бронирования ---
	// Открытие сессии отмены
	protected.HandleFunc("/bookings/{bookingId}/cancellation",
		startCancellation.Handle).Methods(http.MethodPost)

	// Текущее состояние сессии
	protected.HandleFunc("/bookings/{bookingId}/cancellation",
		getCancellation.Handle).Methods(http.MethodGet)

	// Выбор причины отмены
	protected.HandleFunc("/bookings/{bookingId}/cancellation/reason",
		setReason.Handle).Methods(http.MethodPatch)

	// Ручная корректировка суммы возврата
	protected.HandleFunc("/bookings/{bookingId}/cancellation/amount",
		setRefundAmount.Handle).Methods(http.MethodPatch)

	// Отправка отмены в сервис отмен
	protected.HandleFunc("/bookings/{bookingId}/cancellation/submit",
		submitCancellation.Handle).Methods(http.MethodPost)

	// Закрытие сессии без отмены
	protected.HandleFunc("/bookings/{bookingId}/cancellation",
		abandonCancellation.Handle).Methods(http.MethodDelete)

	// --- Аудит ---
	// История завершенных отмен бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancellation/records",
		getCancellationHistory.Handle).Methods(http.MethodGet)

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

	log.Info("Server stopped gracefully")
}
