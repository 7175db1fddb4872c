package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yoockh/mentorship/config"
	"github.com/yoockh/mentorship/internal/analysis/analytics"
	"github.com/yoockh/mentorship/internal/api/handlers"
	"github.com/yoockh/mentorship/internal/api/middleware"
	"github.com/yoockh/mentorship/internal/api/routes"
	"github.com/yoockh/mentorship/internal/cache"
	"github.com/yoockh/mentorship/internal/events"
	"github.com/yoockh/mentorship/internal/logger"
	"github.com/yoockh/mentorship/internal/personalization"
	mongorepo "github.com/yoockh/mentorship/internal/repositories/mongo"
	pgrepo "github.com/yoockh/mentorship/internal/repositories/postgres"
	"github.com/yoockh/mentorship/internal/services"
	"github.com/yoockh/mentorship/internal/storage"
	"github.com/yoockh/mentorship/internal/store"
	"github.com/yoockh/mentorship/internal/workers"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	if err := config.InitMongo(cfg); err != nil {
		log.WithError(err).Fatal("MongoDB init error")
	}
	if err := config.EnsureMongoIndexes(cfg); err != nil {
		log.WithError(err).Fatal("MongoDB index error")
	}
	log.Info("MongoDB connected")

	if err := config.InitPostgres(cfg); err != nil {
		log.WithError(err).Fatal("PostgreSQL init error")
	}
	if err := config.MigratePostgres(); err != nil {
		log.WithError(err).Fatal("PostgreSQL migration error")
	}
	log.Info("PostgreSQL connected")

	if err := config.InitRedis(cfg); err != nil {
		log.WithError(err).Fatal("Redis init error")
	}
	log.Info("Redis connected")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st := store.New(mongorepo.NewPersistence(config.MongoDatabase(cfg)))
	loadCtx, cancelLoad := context.WithTimeout(ctx, cfg.MongoLoadTimeout)
	err := st.Load(loadCtx)
	cancelLoad()
	if err != nil {
		log.WithError(err).Fatal("failed to load sessions")
	}

	redisCache := cache.NewRedisCache(config.RedisClient)
	publisher := events.NewRedisStreamPublisher(config.RedisClient, cfg.EventStream, cfg.EventStreamMaxLen)

	sessionSvc := services.NewSessionService(st, analytics.NewGenerator(nil), publisher, log, nil)
	contentSvc := services.NewContentService(st, log, nil)
	templateSvc := services.NewTemplateService(st, log, nil)
	profileSvc := services.NewProfileService(pgrepo.NewProfileRepo(config.PostgresDB), redisCache, log, nil)
	recommendationSvc := services.NewRecommendationService(profileSvc, personalization.NewEngine(), redisCache, cfg.RecommendationTTL, log)

	deps := routes.Deps{
		Session:        handlers.NewSessionHandler(sessionSvc),
		Content:        handlers.NewContentHandler(sessionSvc, contentSvc),
		Template:       handlers.NewTemplateHandler(sessionSvc, templateSvc),
		Profile:        handlers.NewProfileHandler(profileSvc),
		Recommendation: handlers.NewRecommendationHandler(recommendationSvc),
	}

	if cfg.GCSBucket != "" {
		uploader, err := storage.NewGCSUploader(ctx, cfg.GCSBucket, cfg.GCSCredentialsFile, cfg.GCSPublicObjects)
		if err != nil {
			log.WithError(err).Fatal("GCS init error")
		}
		defer uploader.Close()
		var signer storage.Signer
		if !cfg.GCSPublicObjects {
			signer = uploader
		}
		recordingSvc := services.NewRecordingService(st, uploader, signer, log, nil)
		deps.Recording = handlers.NewRecordingHandler(sessionSvc, recordingSvc, cfg.MaxRecordingBytes)
	} else {
		log.Warn("GCS_BUCKET not set; recording uploads disabled")
	}

	pool := &workers.EventWorkerPool{
		Redis:       config.RedisClient,
		Invalidator: recommendationSvc,
		NumWorkers:  cfg.EventWorkers,
		Logger:      log,
		Stream:      cfg.EventStream,
	}
	if err := pool.Start(ctx); err != nil {
		log.WithError(err).Fatal("event worker init error")
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log), middleware.CORS(cfg.Origin))
	r.MaxMultipartMemory = 32 << 20
	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("http server error")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("http shutdown error")
	}
	_ = config.RedisClient.Close()
	_ = config.MongoClient.Disconnect(shutdownCtx)
}
