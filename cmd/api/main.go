package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	_ "github.com/ShashankMk031/ZenAI-AI-Backend/docs"
	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/adapter/handler"
	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/adapter/repository"
	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/infrastructure/cache"
	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/infrastructure/database"
	httpmw "github.com/ShashankMk031/ZenAI-AI-Backend/internal/infrastructure/http/middleware"
	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/infrastructure/scheduler"
	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/infrastructure/storage"
	aiuse "github.com/ShashankMk031/ZenAI-AI-Backend/internal/usecase/ai"
	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/usecase/meeting"
	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/usecase/monitor"
	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/usecase/notify"
	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/usecase/report"
	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/usecase/tasksync"
	pkgai "github.com/ShashankMk031/ZenAI-AI-Backend/pkg/ai"
	"github.com/ShashankMk031/ZenAI-AI-Backend/pkg/config"
	"github.com/ShashankMk031/ZenAI-AI-Backend/pkg/jwt"
	"github.com/ShashankMk031/ZenAI-AI-Backend/pkg/mailer"
	"github.com/ShashankMk031/ZenAI-AI-Backend/pkg/notion"
	pkgvalidator "github.com/ShashankMk031/ZenAI-AI-Backend/pkg/validator"
)

// @title           ZenAI API
// @version         1.0
// @description     Meeting analysis, task synchronization, deadline monitoring and notifications

// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HideBanner = true
	e.HidePort = false

	e.Use(middleware.RequestID())
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${id} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, echo.HeaderXRequestID},
	}))

	logger.Info("🔧 Initializing dependencies...")
	checks := map[string]handler.HealthCheck{}

	// Database
	logger.Info("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)
	checks["database"] = func(context.Context) error { return database.Ping(db) }

	if cfg.Database.AutoMigrate {
		if cfg.IsProduction() {
			logger.Fatal("DB_AUTO_MIGRATE is enabled in production. Disable it and run cmd/migrate instead.")
		}
		n, err := database.Migrate(db, false, 0, logger)
		if err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
		logger.Info("🔄 Migrations applied", zap.Int("count", n))
	}

	// Key-value store: Redis when enabled, in-process otherwise
	kv := newKV(cfg, logger, checks)

	// Repositories
	meetingRepo := repository.NewMeetingRecordRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// AI
	logger.Info("🤖 Initializing AI components...")
	groqClient := pkgai.NewGroqClient(&cfg.Groq)
	var transcriber aiuse.Transcriber
	if cfg.AssemblyAI.APIKey != "" {
		transcriber = pkgai.NewAssemblyAIClient(&cfg.AssemblyAI)
	} else {
		logger.Warn("⚠️ ASSEMBLYAI_API_KEY not set, audio analysis disabled")
	}
	analyzer := aiuse.NewAnalyzer(groqClient, cfg.Groq.ModelPreferences, transcriber, logger)

	// Task store
	var (
		syncer      meeting.TaskSyncer
		taskMonitor *monitor.Monitor
	)
	if cfg.NotionEnabled() {
		notionClient := notion.NewClient(&cfg.Notion)
		syncer = tasksync.NewSynchronizer(notionClient, cfg.Sync.Concurrency, logger)
		taskMonitor = monitor.NewMonitor(notionClient, logger)
		logger.Info("🗂️ Notion task store configured")
	} else {
		logger.Warn("⚠️ NOTION_API_KEY or NOTION_DATABASE_ID not set, task sync and monitoring disabled")
	}

	// Mail
	var mail interface {
		notify.Transport
		report.AttachmentMailer
	}
	if cfg.SMTPEnabled() {
		mail = mailer.NewSMTPMailer(cfg.SMTP, logger)
	} else {
		logger.Warn("⚠️ SMTP_HOST or SMTP_FROM not set, email is logged instead of sent")
		mail = mailer.NewLogMailer(logger)
	}
	dispatcher := notify.NewDispatcher(mail,
		cache.NewClaimer(kv, "alert:", cfg.Notify.DedupTTL),
		notify.Options{
			DefaultRecipient: cfg.Notify.DefaultRecipient,
			DigestRecipients: cfg.Notify.DigestRecipients,
			Concurrency:      cfg.Notify.Concurrency,
		}, logger)

	// Object storage
	var archive meeting.AudioArchive
	if cfg.Storage.Enabled {
		minioClient, err := storage.NewMinIOClient(context.Background(), &cfg.Storage)
		if err != nil {
			logger.Fatal("Failed to initialize MinIO", zap.Error(err))
		}
		archive = minioClient
		checks["storage"] = minioClient.Ping
	}

	// Services
	meetingSvc := meeting.NewService(meeting.Deps{
		Analyzer: analyzer,
		Records:  meetingRepo,
		Syncer:   syncer,
		Archive:  archive,
		Logger:   logger,
	})

	reportDeps := report.Deps{
		Reports:    reportRepo,
		Cache:      cache.NewReportCache(kv),
		Dispatcher: dispatcher,
		Mailer:     mail,
		CacheTTL:   cfg.Report.CacheTTL,
		Logger:     logger,
	}
	var (
		taskHandler  *handler.Task
		alertService *notify.AlertService
		alertRunner  handler.AlertRunner
		schedAlerts  scheduler.AlertRunner
	)
	if taskMonitor != nil {
		reportDeps.Monitor = taskMonitor
		alertService = notify.NewAlertService(taskMonitor, dispatcher, logger)
		alertRunner = alertService
		schedAlerts = alertService
		taskHandler = handler.NewTaskHandler(taskMonitor, logger)
	} else {
		taskHandler = handler.NewTaskHandler(nil, logger)
	}
	reportSvc := report.NewService(reportDeps)

	// Scheduler
	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched = newScheduler(cfg, schedAlerts, reportSvc, kv, taskMonitor != nil, logger)
		sched.Start()
	}

	// Auth
	var tokens httpmw.TokenValidator
	if cfg.JWT.Secret != "" {
		tokens = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer)
	} else {
		logger.Warn("⚠️ JWT_SECRET not set, API authentication disabled")
	}

	logger.Info("🛣️ Setting up routes...")
	router := handler.NewRouter(cfg, handler.Handlers{
		Meeting:      handler.NewMeetingHandler(meetingSvc, logger),
		Task:         taskHandler,
		Report:       handler.NewReportHandler(reportSvc, logger),
		Notification: handler.NewNotificationHandler(alertRunner, reportSvc, logger),
	}, httpmw.EchoAuth(tokens), checks, logger)
	router.Setup(e)

	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		logger.Info("🚀 Starting server",
			zap.String("addr", addr),
			zap.String("environment", cfg.Server.Environment),
		)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if sched != nil {
		sched.Stop(ctx)
	}
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("❌ Server forced to shutdown", zap.Error(err))
		return
	}

	logger.Info("✅ Server stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// newKV connects to Redis, falling back to the in-process store when Redis
// is disabled. Dedup and slot locks are then only valid for this process.
func newKV(cfg *config.Config, logger *zap.Logger, checks map[string]handler.HealthCheck) cache.KV {
	if !cfg.Redis.Enabled {
		logger.Warn("⚠️ Redis disabled, using in-memory store")
		return cache.NewMemoryStore()
	}

	logger.Info("📦 Connecting to Redis...")
	client, err := cache.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	return cache.NewRedisKV(client)
}

func newScheduler(cfg *config.Config, alerts scheduler.AlertRunner, digest scheduler.DigestSender, kv cache.KV, taskStore bool, logger *zap.Logger) *scheduler.Scheduler {
	loc, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		logger.Fatal("Invalid SCHEDULER_TIMEZONE", zap.String("timezone", cfg.Scheduler.Timezone), zap.Error(err))
	}

	opts := scheduler.Options{
		AlertSpec:  cfg.Scheduler.AlertSpec,
		DigestSpec: cfg.Scheduler.DigestSpec,
		Location:   loc,
		MaxRetries: cfg.Scheduler.MaxRetries,
	}
	if !taskStore {
		// Both jobs read the task store
		opts.AlertSpec, opts.DigestSpec = "", ""
	}

	s, err := scheduler.New(alerts, digest, cache.NewClaimer(kv, "lock:", 24*time.Hour), opts, logger)
	if err != nil {
		logger.Fatal("Failed to configure scheduler", zap.Error(err))
	}
	return s
}
