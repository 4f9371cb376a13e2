package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	producerapp "github.com/agro/backend/internal/application/producer"
	reportapp "github.com/agro/backend/internal/application/report"
	"github.com/agro/backend/internal/infrastructure/cache"
	"github.com/agro/backend/internal/infrastructure/config"
	"github.com/agro/backend/internal/infrastructure/event"
	"github.com/agro/backend/internal/infrastructure/logger"
	"github.com/agro/backend/internal/infrastructure/persistence"
	"github.com/agro/backend/internal/infrastructure/persistence/models"
	"github.com/agro/backend/internal/infrastructure/scheduler"
	"github.com/agro/backend/internal/infrastructure/telemetry"
	"github.com/agro/backend/internal/interfaces/http/handler"
	"github.com/agro/backend/internal/interfaces/http/middleware"
	"github.com/agro/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/agro/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			Agro Backend API
//	@version		1.0
//	@description	Rural producer registry with harvest tracking and a farm dashboard

//	@host		localhost:8080
//	@BasePath	/api/v1

const meterName = "github.com/agro/backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}
	bootLog, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()

	// OTLP log export has to exist before the application logger so the
	// bridge core can be teed in.
	logProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    cfg.App.Version,
		Insecure:          cfg.Telemetry.Insecure,
	}, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize log export", zap.Error(err))
	}

	log, err := logger.New(logCfg, logProvider.ZapCore(logger.ParseLevel(cfg.Log.Level)))
	if err != nil {
		bootLog.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer logger.Sync(log)

	log.Info("Starting Agro Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", cfg.App.Version),
	)

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    cfg.App.Version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    cfg.App.Version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	meter := meterProvider.Meter(meterName)

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:           cfg.Profiling.Enabled,
		ServerAddress:     cfg.Profiling.ServerAddress,
		ApplicationName:   cfg.Profiling.ApplicationName,
		BasicAuthUser:     cfg.Profiling.BasicAuthUser,
		BasicAuthPassword: cfg.Profiling.BasicAuthPassword,
		Environment:       cfg.App.Env,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() && tracerProvider.IsEnabled() {
		if err := tracerProvider.EnableSpanProfiles(); err != nil {
			log.Warn("Failed to enable span profiles", zap.Error(err))
		}
	}

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connected", zap.String("driver", db.Driver))

	// Postgres schemas are owned by cmd/migrate; sqlite is only used for
	// local runs and tests.
	if cfg.Database.AutoMigrate || db.Driver == persistence.DriverSQLite {
		if err := db.DB.AutoMigrate(models.AllModels()...); err != nil {
			log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBName:          cfg.Database.DBName,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	var poolMetrics *telemetry.DBPoolMetrics
	if sqlDB, err := db.DB.DB(); err == nil {
		poolMetrics, err = telemetry.RegisterDBPoolMetrics(meter, sqlDB, log)
		if err != nil {
			log.Warn("Failed to register database pool metrics", zap.Error(err))
		}
	}

	producerMetrics, err := telemetry.NewProducerMetrics(meter)
	if err != nil {
		log.Fatal("Failed to create producer metrics", zap.Error(err))
	}

	// Dashboard cache
	dashboardCache, err := cache.NewDashboardCache(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize dashboard cache", zap.Error(err))
	}

	// Application services
	producerRepo := persistence.NewGormProducerRepository(db.DB)

	producerService := producerapp.NewProducerService(producerRepo, log)
	producerService.SetMetrics(producerMetrics)

	dashboardOpts := []reportapp.DashboardServiceOption{
		reportapp.WithLogger(log),
		reportapp.WithSummaryMetrics(producerMetrics),
		reportapp.WithComputeTimeout(cfg.Cache.ComputeTimeout),
	}
	if dashboardCache != nil {
		dashboardOpts = append(dashboardOpts, reportapp.WithSummaryCache(dashboardCache, cfg.Cache.TTL))
	}
	dashboardService := reportapp.NewDashboardService(producerRepo, dashboardOpts...)

	// Events: every producer change drops the cached dashboard
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(reportapp.NewCacheInvalidationHandler(dashboardService, log))
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	producerService.SetEventPublisher(eventBus)

	var warmer *scheduler.DashboardWarmer
	if cfg.Scheduler.Enabled {
		warmer, err = scheduler.NewDashboardWarmer(dashboardService, scheduler.DashboardWarmerConfig{
			Schedule:    cfg.Scheduler.DashboardCron,
			JobTimeout:  cfg.Scheduler.JobTimeout,
			WarmOnStart: true,
		}, log)
		if err != nil {
			log.Fatal("Failed to create dashboard warmer", zap.Error(err))
		}
		if err := warmer.Start(ctx); err != nil {
			log.Fatal("Failed to start dashboard warmer", zap.Error(err))
		}
	}

	// HTTP
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Order matters: the request id has to exist before recovery and
	// logging, and the span before the enricher and the logger.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     tracerProvider.IsEnabled(),
	}))
	engine.Use(middleware.SpanEnricher())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.HTTPMetrics(meter))
	engine.Use(middleware.Secure(middleware.DefaultSecurityConfig()))
	engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{middleware.RequestIDHeader, "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	systemHandler := handler.NewSystemHandler(cfg.App.Name, cfg.App.Version, db)
	engine.GET("/health", systemHandler.Health)

	if cfg.Swagger.Enabled {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Mount("producers", "/producers", handler.NewProducerHandler(producerService))
	r.Mount("dashboard", "/dashboard", handler.NewDashboardHandler(dashboardService))
	r.Mount("system", "/system", systemHandler)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if warmer != nil {
		if err := warmer.Stop(shutdownCtx); err != nil {
			log.Warn("Dashboard warmer did not stop cleanly", zap.Error(err))
		}
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Warn("Event bus did not stop cleanly", zap.Error(err))
	}
	published, failed := eventBus.Stats()
	log.Info("Event bus totals", zap.Int64("published", published), zap.Int64("handler_failures", failed))
	if counted, ok := dashboardCache.(cache.StatsReporter); ok {
		hits, misses := counted.Stats()
		log.Info("Dashboard cache totals", zap.Int64("hits", hits), zap.Int64("misses", misses))
	}
	if closer, ok := dashboardCache.(cache.Closer); ok {
		if err := closer.Close(); err != nil {
			log.Warn("Error closing dashboard cache", zap.Error(err))
		}
	}
	if err := poolMetrics.Unregister(); err != nil {
		log.Warn("Error unregistering pool metrics", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		log.Error("Error closing database", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Warn("Error stopping profiler", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Error shutting down tracer provider", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Error shutting down meter provider", zap.Error(err))
	}
	if err := logProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Error shutting down logger provider", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
