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

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	changeStatusHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/change_status"
	createAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_appointment"
	deleteAppointmentsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/delete_appointments"
	getAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_appointment"
	getAvailabilityHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_availability"
	getShippingOptionsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_shipping_options"
	healthHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/health"
	listAppointmentsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_appointments"
	updateAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/migrations"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/ratelimit"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	windowRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/window"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/mailer"
	appointmentsService "github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	"github.com/m04kA/SMC-AppointmentService/internal/service/notifications"
	shippingService "github.com/m04kA/SMC-AppointmentService/internal/service/shipping"
	changeStatusUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/change_status"
	createAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
	deleteAppointmentsUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/delete_appointments"
	getAvailabilityUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_availability"
	updateAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/update_appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/worker/reminders"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		configPath = v
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

	log.Info("Starting SMC-AppointmentService...")
	log.Info("Configuration loaded from %s", configPath)

	loc, err := cfg.App.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.App.Timezone, err)
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

	// Накатываем миграции (если задан каталог)
	if cfg.Database.MigrationsDir != "" {
		if err := migrations.Apply(context.Background(), db, cfg.Database.MigrationsDir, log.With("migrations")); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	} else {
		log.Warn("Migrations dir not set: schema is expected to exist")
	}

	// С nil-метриками обёртка работает как прозрачный прокси
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	windowRepository := windowRepo.NewRepository(wrappedDB)
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)

	// Почтовый шлюз
	var gateway notifications.Gateway
	if cfg.Mail.Enabled {
		gateway = mailer.NewClient(mailer.Config{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			Username: cfg.Mail.Username,
			Password: cfg.Mail.Password,
			From:     cfg.Mail.From,
			ReplyTo:  cfg.Mail.ReplyTo,
		}, log.With("mailer"))
		log.Info("SMTP gateway initialized (host=%s, port=%d)", cfg.Mail.Host, cfg.Mail.Port)
	} else {
		gateway = mailer.NewLogClient(log.With("mailer"))
		log.Warn("Mail disabled: notifications will only be logged")
	}

	// Очередь уведомлений
	composer := notifications.NewComposer(cfg.Mail.Brand, cfg.Mail.AdminNotify)
	outbox := notifications.NewService(gateway, composer, metricsCollector, log.With("outbox"), notifications.Options{
		QueueSize:   cfg.Mail.QueueSize,
		Workers:     cfg.Mail.Workers,
		SendTimeout: time.Duration(cfg.Mail.SendTimeout) * time.Second,
	})
	outbox.Start()

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(appointmentRepository, log)
	shippingSvc := shippingService.NewService(cfg.Shipping.LocalCities...)

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		windowRepository,
		appointmentRepository,
		txMgr,
		&getAvailabilityUC.RealTimeProvider{Location: loc},
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		windowRepository,
		appointmentRepository,
		txMgr,
		outbox,
		metricsCollector,
		log,
		createAppointmentUC.Options{
			ShippingWeekLimit: cfg.Booking.ShippingWeekLimit,
			WeekStart:         cfg.Booking.WeekStartDay(),
		},
	)

	changeStatusUseCase := changeStatusUC.NewUseCase(appointmentRepository, outbox, log)
	updateAppointmentUseCase := updateAppointmentUC.NewUseCase(appointmentRepository, txMgr, log)
	deleteAppointmentsUseCase := deleteAppointmentsUC.NewUseCase(appointmentRepository, txMgr, log)

	// Воркер напоминаний
	workerCtx, stopWorker := context.WithCancel(context.Background())
	workerDone := make(chan struct{})
	if cfg.Reminders.Enabled {
		reminderWorker := reminders.NewWorker(
			appointmentRepository,
			composer,
			gateway,
			metricsCollector,
			&reminders.RealTimeProvider{},
			log.With("reminders"),
			reminders.Config{
				Buckets:     cfg.Reminders.DomainBuckets(),
				Interval:    time.Duration(cfg.Reminders.IntervalSeconds) * time.Second,
				SendTimeout: time.Duration(cfg.Reminders.SendTimeout) * time.Second,
				Location:    loc,
				RunOnStart:  cfg.Reminders.RunOnStart,
			},
		)
		go func() {
			defer close(workerDone)
			reminderWorker.Start(workerCtx)
		}()
	} else {
		close(workerDone)
		log.Warn("Reminder worker disabled")
	}

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getShippingOptions := getShippingOptionsHandler.NewHandler(shippingSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentSvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	changeStatus := changeStatusHandler.NewHandler(changeStatusUseCase, log)
	updateAppointment := updateAppointmentHandler.NewHandler(updateAppointmentUseCase, log)
	deleteAppointments := deleteAppointmentsHandler.NewHandler(deleteAppointmentsUseCase, log)
	health := healthHandler.NewHandler(wrappedDB, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	// Свободные слоты на дату
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Перевозчики для города доставки
	api.HandleFunc("/shipping-options", getShippingOptions.Handle).Methods(http.MethodGet)

	// Ограничители частоты поверх Redis
	var (
		createIPLimiter      *ratelimit.Limiter
		createLimiter        *ratelimit.Limiter
		adminFailuresLimiter *ratelimit.Limiter
	)
	if cfg.RateLimit.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RateLimit.RedisAddr,
			Password: cfg.RateLimit.RedisPassword,
			DB:       cfg.RateLimit.RedisDB,
		})
		defer rdb.Close()

		rl := cfg.RateLimit
		createIPLimiter = ratelimit.NewLimiter(rdb, rl.CreateIP.Limit, rl.CreateIP.Window(), rl.Prefix+":create_ip")
		createLimiter = ratelimit.NewLimiter(rdb, rl.Create.Limit, rl.Create.Window(), rl.Prefix+":create")
		adminFailuresLimiter = ratelimit.NewLimiter(rdb, rl.AdminFailures.Limit, rl.AdminFailures.Window(), rl.Prefix+":admin")
		log.Info("Rate limiting enabled (redis=%s, create_ip=%d/%s, create=%d/%s, admin_failures=%d/%s)",
			rl.RedisAddr,
			rl.CreateIP.Limit, rl.CreateIP.Window(),
			rl.Create.Limit, rl.Create.Window(),
			rl.AdminFailures.Limit, rl.AdminFailures.Window())
	} else {
		log.Warn("Rate limiting disabled")
	}

	// Создание записи (с ограничением частоты по IP)
	var createRoute http.Handler = http.HandlerFunc(createAppointment.Handle)
	if cfg.RateLimit.Enabled {
		createRoute = middleware.RateLimit(createLimiter, "", log)(createRoute)
		createRoute = middleware.RateLimit(createIPLimiter, middleware.ScopeIP, log)(createRoute)
	}
	api.Handle("/appointments", createRoute).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Token header)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	if cfg.RateLimit.Enabled {
		// до AdminAuth: считаются только отказы в доступе
		admin.Use(middleware.AdminBruteforce(adminFailuresLimiter, log))
	}
	admin.Use(middleware.AdminAuth(cfg.Admin.Token, log))

	// Записи за день
	admin.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)

	// Запись по ID
	admin.HandleFunc("/appointments/{id}", getAppointment.Handle).Methods(http.MethodGet)

	// Правка полей записи
	admin.HandleFunc("/appointments/{id}", updateAppointment.Handle).Methods(http.MethodPatch)

	// Массовое удаление
	admin.HandleFunc("/appointments", deleteAppointments.Handle).Methods(http.MethodDelete)

	// Смена статуса
	admin.HandleFunc("/appointments/{id}/status", changeStatus.Handle).Methods(http.MethodPatch)

	// Recovery и CORS поверх роутера
	handler := gorillaHandlers.RecoveryHandler(
		gorillaHandlers.RecoveryLogger(log),
		gorillaHandlers.PrintRecoveryStack(true),
	)(r)
	if len(cfg.CORS.AllowedOrigins) > 0 {
		handler = gorillaHandlers.CORS(
			gorillaHandlers.AllowedOrigins(cfg.CORS.AllowedOrigins),
			gorillaHandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions}),
			gorillaHandlers.AllowedHeaders([]string{"Content-Type", middleware.AdminTokenHeader}),
		)(handler)
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
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

	// Останавливаем воркер напоминаний и дожидаемся текущего тика
	stopWorker()
	<-workerDone

	// Досылаем письма из очереди
	if err := outbox.Shutdown(shutdownCtx); err != nil {
		log.Warn("Notification outbox not drained: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
