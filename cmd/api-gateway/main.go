package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/haitham-dev/hudur-api/api/swagger"
	"github.com/haitham-dev/hudur-api/internal/dto"
	"github.com/haitham-dev/hudur-api/internal/handler"
	"github.com/haitham-dev/hudur-api/internal/middleware"
	"github.com/haitham-dev/hudur-api/internal/parser"
	"github.com/haitham-dev/hudur-api/internal/repository"
	"github.com/haitham-dev/hudur-api/internal/service"
	"github.com/haitham-dev/hudur-api/internal/store"
	"github.com/haitham-dev/hudur-api/pkg/cache"
	"github.com/haitham-dev/hudur-api/pkg/config"
	"github.com/haitham-dev/hudur-api/pkg/database"
	"github.com/haitham-dev/hudur-api/pkg/jobs"
	"github.com/haitham-dev/hudur-api/pkg/logger"
	corsmiddleware "github.com/haitham-dev/hudur-api/pkg/middleware/cors"
	reqidmiddleware "github.com/haitham-dev/hudur-api/pkg/middleware/requestid"
	"github.com/haitham-dev/hudur-api/pkg/storage"
)

// @title Hudur API
// @version 1.0.0
// @description School attendance delay tracking service
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	recordStore := store.New()

	snapshotRepo, err := buildSnapshotRepository(cfg)
	if err != nil {
		logr.Sugar().Fatalw("failed to init snapshot backend", "backend", cfg.Snapshot.Backend, "error", err)
	}

	snapshots := service.NewSnapshotService(snapshotRepo, recordStore, logr, jobs.QueueConfig{
		MaxRetries: cfg.Snapshot.SaveRetry,
		RetryDelay: cfg.Snapshot.RetryDelay,
	})
	snapshots.Start(ctx)
	defer snapshots.Stop()

	if err := snapshots.Load(ctx); err != nil {
		logr.Sugar().Fatalw("failed to restore persisted state", "error", err)
	}

	metrics := service.NewMetricsService()

	var statsCache *service.CacheService
	if cfg.Stats.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, stats cache disabled", "error", err)
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			defer cacheRepo.Close() //nolint:errcheck
			statsCache = service.NewCacheService(cacheRepo, metrics, cfg.Stats.CacheTTL, logr, true)
		}
	}

	exportStorage, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init export storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)

	attendance := service.NewAttendanceService(recordStore, parser.NewAttendanceLogParser(cfg.School.StartTime), snapshots, metrics, statsCache, logr)
	roster := service.NewRosterService(recordStore, parser.NewRosterWorkbookParser(), snapshots, statsCache, logr)
	stats := service.NewStatsService(recordStore, statsCache, logr, service.StatsServiceConfig{
		TopOffendersLimit: cfg.School.TopOffendersLimit,
		CacheTTL:          cfg.Stats.CacheTTL,
	})
	notices := service.NewNoticeService(recordStore, snapshots, logr, cfg.School.NoticeThreshold)
	exports := service.NewExportService(recordStore, exportStorage, signer, service.ExportConfig{
		APIPrefix: cfg.APIPrefix,
		ResultTTL: cfg.Exports.SignedURLTTL,
	}, logr, nil, nil)
	auth := service.NewAuthService(logr, service.AuthServiceConfig{
		AdminUsername:     cfg.Auth.AdminUsername,
		AdminPasswordHash: cfg.Auth.AdminPasswordHash,
		TokenSecret:       cfg.JWT.Secret,
		TokenExpiry:       cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})

	go exportCleanupLoop(ctx, exports, cfg.Exports.CleanupInterval, logr)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	dto.RegisterValidators()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	metricsHandler := handler.NewMetricsHandler(metrics, recordStore)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	registerRoutes(r, cfg, handlers{
		auth:    handler.NewAuthHandler(auth),
		uploads: handler.NewUploadHandler(attendance, roster),
		records: handler.NewRecordHandler(attendance, logr),
		student: handler.NewStudentHandler(roster, attendance),
		stats:   handler.NewStatsHandler(stats),
		notices: handler.NewNoticeHandler(notices),
		exports: handler.NewExportHandler(exports),
		metrics: metricsHandler,
	}, auth)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "snapshot_backend", cfg.Snapshot.Backend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("server shutdown failed", "error", err)
	}
}

type handlers struct {
	auth    *handler.AuthHandler
	uploads *handler.UploadHandler
	records *handler.RecordHandler
	student *handler.StudentHandler
	stats   *handler.StatsHandler
	notices *handler.NoticeHandler
	exports *handler.ExportHandler
	metrics *handler.MetricsHandler
}

func registerRoutes(r *gin.Engine, cfg *config.Config, h handlers, auth *service.AuthService) {
	api := r.Group(cfg.APIPrefix)

	api.POST("/auth/login", h.auth.Login)

	// Signed token downloads carry their own authorization.
	api.GET("/exports/download/:token", h.exports.Download)

	read := api.Group("")
	read.Use(middleware.OptionalJWT(auth))
	{
		read.GET("/records", h.records.List)
		read.GET("/students", h.student.List)
		read.GET("/students/:id/report", h.student.Report)
		read.GET("/stats/overview", h.stats.Overview)
		read.GET("/stats/monthly", h.stats.Monthly)
		read.GET("/stats/daily", h.stats.Daily)
		read.GET("/stats/weekdays", h.stats.Weekdays)
		read.GET("/stats/classes", h.stats.Classes)
		read.GET("/notices/candidates", h.notices.Candidates)
		read.GET("/metrics/system", h.metrics.System)
	}

	write := api.Group("")
	write.Use(middleware.JWT(auth))
	{
		write.POST("/uploads/attendance", h.uploads.Attendance)
		write.POST("/uploads/roster", h.uploads.Roster)
		write.DELETE("/records", h.records.Clear)
		write.DELETE("/records/:studentId/:date", h.records.Delete)
		write.DELETE("/students", h.student.Clear)
		write.DELETE("/students/:id", h.student.Delete)
		write.POST("/notices/ack", h.notices.Ack)
		write.POST("/exports/records.csv", h.exports.RecordsCSV)
		write.POST("/exports/monthly.pdf", h.exports.MonthlyPDF)
	}
}

func buildSnapshotRepository(cfg *config.Config) (repository.SnapshotRepository, error) {
	switch cfg.Snapshot.Backend {
	case config.SnapshotBackendPostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, err
		}
		repo := repository.NewPostgresSnapshotRepository(db)
		if err := repo.EnsureSchema(context.Background()); err != nil {
			return nil, err
		}
		return repo, nil
	case config.SnapshotBackendFile:
		localStore, err := storage.NewLocalStorage(cfg.Snapshot.Dir)
		if err != nil {
			return nil, err
		}
		return repository.NewFileSnapshotRepository(localStore), nil
	default:
		return nil, fmt.Errorf("unknown snapshot backend %q", cfg.Snapshot.Backend)
	}
}

func exportCleanupLoop(ctx context.Context, exports *service.ExportService, interval time.Duration, logr *zap.Logger) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := exports.Cleanup(0)
			if err != nil {
				logr.Sugar().Warnw("export cleanup failed", "error", err)
				continue
			}
			if len(removed) > 0 {
				logr.Sugar().Infow("expired exports removed", "count", len(removed))
			}
		}
	}
}
