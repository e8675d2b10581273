package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/salescrm/backend/internal/application/assistant"
	contactapp "github.com/salescrm/backend/internal/application/contact"
	emailapp "github.com/salescrm/backend/internal/application/email"
	engagementapp "github.com/salescrm/backend/internal/application/engagement"
	identityapp "github.com/salescrm/backend/internal/application/identity"
	reportapp "github.com/salescrm/backend/internal/application/report"
	salesapp "github.com/salescrm/backend/internal/application/sales"
	"github.com/salescrm/backend/internal/infrastructure/auth"
	"github.com/salescrm/backend/internal/infrastructure/cache"
	"github.com/salescrm/backend/internal/infrastructure/config"
	"github.com/salescrm/backend/internal/infrastructure/event"
	"github.com/salescrm/backend/internal/infrastructure/llm"
	"github.com/salescrm/backend/internal/infrastructure/logger"
	"github.com/salescrm/backend/internal/infrastructure/mail"
	"github.com/salescrm/backend/internal/infrastructure/persistence"
	"github.com/salescrm/backend/internal/infrastructure/persistence/workspace"
	"github.com/salescrm/backend/internal/infrastructure/queue"
	"github.com/salescrm/backend/internal/infrastructure/storage"
	"github.com/salescrm/backend/internal/infrastructure/telemetry"
	"github.com/salescrm/backend/internal/interfaces/http/handler"
	"github.com/salescrm/backend/internal/interfaces/http/middleware"
	"github.com/salescrm/backend/internal/interfaces/http/router"
	"go.uber.org/zap"

	_ "github.com/salescrm/backend/docs"
)

const version = "1.0.0"

//	@title			Sales CRM API
//	@version		1.0
//	@description	Multi-tenant sales CRM: pipelines, deals, contacts, tasks, email and reports.

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token from the auth provider. Format: "Bearer {token}". Send X-Workspace-ID with it.

//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						X-API-Key
//	@description				Workspace API key (crm_...)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	baseLog, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	providers, err := telemetry.Setup(ctx, cfg.Telemetry, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		if err := providers.Shutdown(context.Background()); err != nil {
			baseLog.Error("Error shutting down telemetry", zap.Error(err))
		}
	}()
	log := providers.BridgeLogger(baseLog)
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting CRM backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	if cfg.Telemetry.ProfilingEnabled {
		profiler, err := telemetry.StartProfiler(cfg.Telemetry.ServiceName, cfg.Telemetry.PyroscopeServer, log)
		if err != nil {
			log.Warn("Profiler not started", zap.Error(err))
		} else {
			providers.EnableSpanProfiles()
			defer func() {
				if err := profiler.Stop(); err != nil {
					log.Error("Error stopping profiler", zap.Error(err))
				}
			}()
		}
	}

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh),
	)
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := workspace.Register(db.DB, false); err != nil {
		log.Fatal("Failed to register workspace guard", zap.Error(err))
	}
	if err := telemetry.InstrumentDB(db.DB, cfg.Telemetry, cfg.Database.DBName, log); err != nil {
		log.Warn("Database tracing disabled", zap.Error(err))
	}
	if cfg.Database.Driver == "sqlite" {
		if err := persistence.AutoMigrate(db.DB); err != nil {
			log.Fatal("Failed to migrate sqlite database", zap.Error(err))
		}
	}
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	caches, err := cache.New(ctx, cfg.Redis,
		cache.WithLogger(log),
		cache.WithReportTTL(cfg.Report.CacheTTL),
		cache.WithInMemoryFallback(!cfg.IsProduction()),
	)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := caches.Close(); err != nil {
			log.Error("Error closing caches", zap.Error(err))
		}
	}()

	// Repositories
	workspaceRepo := persistence.NewGormWorkspaceRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	memberRepo := persistence.NewGormMemberRepository(db.DB)
	apiKeyRepo := persistence.NewGormAPIKeyRepository(db.DB)
	pipelineRepo := persistence.NewGormPipelineRepository(db.DB)
	stageRepo := persistence.NewGormStageRepository(db.DB)
	dealRepo := persistence.NewGormDealRepository(db.DB)
	dealEventRepo := persistence.NewGormDealEventRepository(db.DB)
	transcriptRepo := persistence.NewGormTranscriptRepository(db.DB)
	revenueItemRepo := persistence.NewGormRevenueItemRepository(db.DB)
	contactRepo := persistence.NewGormContactRepository(db.DB)
	companyRepo := persistence.NewGormCompanyRepository(db.DB)
	taskRepo := persistence.NewGormTaskRepository(db.DB)
	noteRepo := persistence.NewGormNoteRepository(db.DB)
	activityRepo := persistence.NewGormActivityRepository(db.DB)
	fileRepo := persistence.NewGormFileRepository(db.DB)
	templateRepo := persistence.NewGormEmailTemplateRepository(db.DB)
	emailLogRepo := persistence.NewGormEmailLogRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Metrics
	meter := providers.Meter("crm")
	crmMetrics, err := telemetry.NewCRMMetrics(meter)
	if err != nil {
		log.Fatal("Failed to create CRM metrics", zap.Error(err))
	}
	httpMetrics, err := middleware.NewHTTPMetrics(meter)
	if err != nil {
		log.Fatal("Failed to create HTTP metrics", zap.Error(err))
	}

	// Event bus
	eventBus := event.NewInMemoryEventBus(log, event.WithAsyncDelivery())
	eventBus.Subscribe(event.NewIdempotentHandler("activity_recorder",
		engagementapp.NewActivityRecorder(activityRepo), caches.Idempotency, log))
	eventBus.Subscribe(reportapp.NewCacheInvalidationHandler(caches.Reports))
	eventBus.Subscribe(crmMetrics)
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Object storage
	var objects engagementapp.ObjectStorage
	if cfg.Storage.Enabled {
		s3, err := storage.NewS3Storage(ctx, cfg.Storage)
		if err != nil {
			log.Fatal("Failed to configure object storage", zap.Error(err))
		}
		if err := s3.EnsureBucket(ctx); err != nil {
			log.Warn("Bucket check failed", zap.String("bucket", s3.Bucket()), zap.Error(err))
		}
		objects = s3
	} else {
		log.Warn("Object storage disabled, file URLs will not resolve")
		objects = storage.NewStubStorage()
	}

	// Language model
	var model assistant.Model
	if cfg.LLM.APIKey != "" {
		client, err := llm.NewClient(cfg.LLM, log)
		if err != nil {
			log.Fatal("Failed to configure language model", zap.Error(err))
		}
		model = client
	} else {
		log.Warn("LLM API key not set, assistant and transcript analysis are disabled")
	}

	// Email delivery
	sender, err := mail.NewSender(cfg.Mail, log)
	if err != nil {
		log.Fatal("Failed to configure mail sender", zap.Error(err))
	}
	deliverer := emailapp.NewDeliverer(emailLogRepo, sender, caches.Idempotency, eventBus, log)

	var dispatcher emailapp.Dispatcher
	if cfg.RabbitMQ.Enabled() {
		broker, err := queue.DialRabbitMQ(cfg.RabbitMQ, log)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ", zap.Error(err))
		}
		defer func() {
			if err := broker.Close(); err != nil {
				log.Error("Error closing RabbitMQ", zap.Error(err))
			}
		}()
		if err := broker.Consume(ctx, deliverer.Deliver); err != nil {
			log.Fatal("Failed to start email workers", zap.Error(err))
		}
		dispatcher = broker
	} else {
		local := queue.NewLocalDispatcher(deliverer.Deliver, cfg.RabbitMQ.Workers, 256, log)
		local.Start(ctx)
		defer func() {
			if err := local.Stop(context.Background()); err != nil {
				log.Error("Error stopping email workers", zap.Error(err))
			}
		}()
		dispatcher = local
	}

	// Application services
	salesRepos := salesapp.Repositories{
		Pipelines:    pipelineRepo,
		Stages:       stageRepo,
		Deals:        dealRepo,
		DealEvents:   dealEventRepo,
		RevenueItems: revenueItemRepo,
	}
	workspaceService := identityapp.NewWorkspaceService(workspaceRepo, memberRepo, userRepo, txScope.Identity(), eventBus)
	apiKeyService := identityapp.NewAPIKeyService(apiKeyRepo, auth.NewBcryptHasher(cfg.APIKey.BcryptCost))
	userService := identityapp.NewUserService(userRepo)
	pipelineService := salesapp.NewPipelineService(salesRepos, txScope, eventBus)
	dealService := salesapp.NewDealService(salesRepos, txScope, eventBus)
	revenueItemService := salesapp.NewRevenueItemService(salesRepos, txScope, eventBus)
	transcriptService := salesapp.NewTranscriptService(dealRepo, transcriptRepo,
		assistant.NewTranscriptAnalyzer(model, cfg.LLM.MaxTokens))
	contactService := contactapp.NewContactService(contactRepo, companyRepo)
	companyService := contactapp.NewCompanyService(companyRepo)
	taskService := engagementapp.NewTaskService(taskRepo, eventBus)
	noteService := engagementapp.NewNoteService(noteRepo)
	activityService := engagementapp.NewActivityService(activityRepo)
	fileService := engagementapp.NewFileService(fileRepo, objects)
	emailService := emailapp.NewEmailService(templateRepo, emailLogRepo, dispatcher)
	reportService := reportapp.NewReportService(dealRepo, pipelineRepo, stageRepo, revenueItemRepo, taskRepo, activityRepo, caches.Reports)
	toolbox := assistant.NewToolbox(dealRepo, stageRepo, contactRepo, activityRepo, reportService)
	chatService := assistant.NewChatService(model, toolbox,
		assistant.WithMaxIterations(cfg.LLM.MaxIterations),
		assistant.WithMaxTokens(cfg.LLM.MaxTokens),
		assistant.WithToolMetrics(crmMetrics),
	)

	// HTTP
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	system := handler.NewSystemHandler(version).
		AddCheck("database", db.Ping).
		AddCheck("cache", caches.Ping)

	authn := middleware.NewAuthenticator(apiKeyService, auth.NewSessionValidator(cfg.JWT), userService, workspaceService, log)
	engine := router.NewEngine(router.Options{
		ServiceName:    cfg.Telemetry.ServiceName,
		HTTP:           cfg.HTTP,
		SwaggerEnabled: cfg.Swagger.Enabled,
		HSTS:           cfg.IsProduction(),
		Profiling:      cfg.Telemetry.ProfilingEnabled,
		Logger:         log,
		Auth:           authn,
		RateLimiter:    caches.RateLimits,
		Metrics:        httpMetrics,
	}, router.Handlers{
		System:     system,
		Users:      handler.NewUserHandler(userService),
		Workspaces: handler.NewWorkspaceHandler(workspaceService, apiKeyService),
		Pipelines:  handler.NewPipelineHandler(pipelineService),
		Deals:      handler.NewDealHandler(dealService, transcriptService, revenueItemService),
		Contacts:   handler.NewContactHandler(contactService, companyService),
		Tasks:      handler.NewTaskHandler(taskService),
		Notes:      handler.NewNoteHandler(noteService, activityService),
		Files:      handler.NewFileHandler(fileService),
		Email:      handler.NewEmailHandler(emailService),
		Reports:    handler.NewReportHandler(reportService),
		Assistant:  handler.NewAssistantHandler(chatService),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited gracefully")
}
