package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	dbadapter "contenthub/internal/adapters/database"
	"contenthub/internal/adapters/httpapi"
	natsadapter "contenthub/internal/adapters/nats"
	redisadapter "contenthub/internal/adapters/redis"
	"contenthub/internal/adapters/storage"
	"contenthub/internal/config"
	contentapp "contenthub/internal/core/content/service"
	credentialapp "contenthub/internal/core/credential/service"
	outboxapp "contenthub/internal/core/outbox/service"
	ratingapp "contenthub/internal/core/rating/service"
	userapp "contenthub/internal/core/user/service"
	sessionPort "contenthub/internal/ports/session"
	"contenthub/internal/telemetry"
	"contenthub/internal/workers"

	"github.com/go-redis/redis/v8"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load() // بارگذاری تنظیمات از .env
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := config.InitLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.OtelEndpoint, cfg.Env)
	if err != nil {
		logger.Fatal("Failed to init tracer", zap.Error(err))
	}

	// اتصال به دیتابیس و اجرای مایگریشن‌ها
	db, err := config.InitDB(cfg, logger)
	if err != nil {
		logger.Fatal("Error connecting to the database", zap.Error(err))
	}
	if err := dbadapter.AutoMigrate(db); err != nil {
		logger.Fatal("Error during migrations", zap.Error(err))
	}
	logger.Info("✅ Database migrations completed")

	var redisClient *redis.Client
	var sessions sessionPort.Store = dbadapter.NewSessionRepositoryDatabase(db)
	if cfg.SessionStore == config.SessionStoreRedis {
		redisClient, err = config.InitRedis(ctx, cfg, logger)
		if err != nil {
			logger.Fatal("Error connecting to Redis", zap.Error(err))
		}
		sessions = redisadapter.NewSessionRepositoryRedis(redisClient)
	}

	// بستن منابع بعد از اتمام کار سرور
	defer closeResources(logger, db, redisClient)

	userRepo := dbadapter.NewUserRepositoryDatabase(db)       // آداپتر خروجی
	contentRepo := dbadapter.NewContentRepositoryDatabase(db) // آداپتر خروجی
	ratingRepo := dbadapter.NewRatingRepositoryDatabase(db)   // آداپتر خروجی
	outboxRepo := dbadapter.NewOutboxRepositoryDatabase(db)   // آداپتر خروجی
	blobs := storage.NewLocalBlobStore(cfg.UploadDir, cfg.MaxUploadBytes, logger)

	nc, err := config.InitNATS(cfg, logger)
	if err != nil {
		logger.Fatal("Error connecting to NATS", zap.Error(err))
	}
	if nc != nil {
		defer nc.Close()
	}

	credentialSvc := credentialapp.NewCredentialService(sessions, []byte(cfg.JWTSecret), cfg.TokenTTL, logger)
	events := outboxapp.NewRecorder(outboxRepo, logger, nc != nil)
	userSvc := userapp.NewUserService(userRepo, credentialSvc, blobs, logger)
	contentSvc := contentapp.NewContentService(contentRepo, ratingRepo, userRepo, blobs, events, logger)
	ratingSvc := ratingapp.NewRatingService(ratingRepo, contentRepo, userRepo, events, logger)

	// تزریق یوزکیس به آداپتر ورودی
	r := httpapi.SetupRoutes(httpapi.Deps{
		Users:          userSvc,
		Contents:       contentSvc,
		Ratings:        ratingSvc,
		Verifier:       credentialSvc,
		Logger:         logger,
		UploadDir:      cfg.UploadDir,
		MaxUploadBytes: cfg.MaxUploadBytes,
	})

	var h http.Handler = r
	h = cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(h)
	h = otelhttp.NewHandler(h, "contenthub", otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
		return fmt.Sprintf("HTTP %s %s", r.Method, r.URL.Path)
	}))

	workerDone := make(chan struct{})
	if nc != nil {
		outboxWorker := workers.NewOutboxWorker(outboxRepo, natsadapter.NewNatsPublisher(nc), cfg.OutboxBatchSize, cfg.OutboxPollInterval, logger)
		// اجرای worker در پس‌زمینه
		go func() {
			outboxWorker.Run(ctx)
			close(workerDone)
		}()
	} else {
		close(workerDone)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("App is running...", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to start", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("🛑 Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
	<-workerDone
	if err := shutdownTracer(shutdownCtx); err != nil {
		logger.Warn("Tracer shutdown failed", zap.Error(err))
	}
}

// closeResources بستن اتصالات به Redis و دیتابیس
func closeResources(logger *zap.Logger, db *gorm.DB, redisClient *redis.Client) {
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Error("Error closing Redis connection", zap.Error(err))
		}
	}

	sqlDB, err := db.DB() // گرفتن *sql.DB از *gorm.DB
	if err != nil {
		logger.Error("Error getting raw DB", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("Error closing database connection", zap.Error(err))
	}
}
