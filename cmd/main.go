package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/rentify/config"
	"github.com/oksasatya/rentify/internal/container"
	mongoinfra "github.com/oksasatya/rentify/internal/infrastructure/mongodb"
	pginfra "github.com/oksasatya/rentify/internal/infrastructure/postgres"
	"github.com/oksasatya/rentify/internal/interface/middleware"
	"github.com/oksasatya/rentify/internal/router"
	"github.com/oksasatya/rentify/pkg/helpers"
	"github.com/oksasatya/rentify/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	// MongoDB is the only required backend
	mongoClient, err := mongoinfra.Connect(ctx, cfg.MongoURL, cfg.MongoTimeout)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to mongodb")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()
	db := mongoClient.Database(cfg.MongoDB)
	if err := mongoinfra.EnsureIndexes(ctx, db); err != nil {
		logger.WithError(err).Fatal("failed to ensure mongodb indexes")
	}

	// Redis
	rdb, err := helpers.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.WithError(err).Warn("redis unavailable; rate limits off, lock and revocation are process-local")
		rdb = nil
	}
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	// GCS replaces local uploads when a bucket is configured
	var gcsClient *storage.Client
	if cfg.GCSBucket != "" {
		gcsClient, err = helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			logger.WithError(err).Warn("gcs unavailable; storing uploads on local disk")
			gcsClient = nil
		} else {
			defer func() { _ = gcsClient.Close() }()
		}
	}

	// Elasticsearch listing search
	es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		logger.WithError(err).Warn("elasticsearch unavailable; search uses mongodb")
		es = nil
	}

	// Postgres audit log
	pool := openAuditPool(ctx, cfg, logger)
	if pool != nil {
		defer pool.Close()
	}

	// RabbitMQ email queue
	var pub *helpers.RabbitPublisher
	if cfg.RabbitMQURL != "" {
		pub, err = helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unavailable; emails disabled")
			pub = nil
		} else {
			defer pub.Close()
		}
	}

	jwtManager := helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// Provide infra singletons to container for registry auto-wiring
	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetMongo(db)
	container.SetRedis(rdb)
	container.SetGCS(gcsClient)
	container.SetES(es)
	container.SetPGPool(pool)
	container.SetRabbitPub(pub)
	container.SetJWT(jwtManager)

	// Gin engine and global middleware
	r := gin.New()
	r.MaxMultipartMemory = cfg.MaxUploadBytes()
	if !cfg.TrustProxyHeaders {
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP(cfg.TrustProxyHeaders))
	r.Use(cors.New(corsConfig(cfg)))
	if cfg.HTTPLogEnabled {
		r.Use(middleware.AccessLog(logger))
	}

	// Registry: auto-register modules using container
	deps, err := router.BuildDeps()
	if err != nil {
		logger.WithError(err).Fatal("failed to build dependencies")
	}
	reg := router.NewRegistry(r)
	router.InitModules(reg, deps)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}

// openAuditPool connects to the audit database and applies its migrations; nil disables auditing.
func openAuditPool(ctx context.Context, cfg *config.Config, logger *logrus.Logger) *pgxpool.Pool {
	if cfg.AuditDatabaseURL == "" {
		return nil
	}
	pool, err := pginfra.NewPool(ctx, cfg.AuditDatabaseURL, cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		logger.WithError(err).Warn("audit database unavailable; audit log disabled")
		return nil
	}
	if err := pginfra.RunMigrations(cfg.AuditDatabaseURL, cfg.MigrationsDir, logger); err != nil {
		logger.WithError(err).Warn("audit migrations failed; audit log disabled")
		pool.Close()
		return nil
	}
	return pool
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if origins := cfg.CORSOrigins(); len(origins) > 0 {
		c.AllowOrigins = origins
	} else {
		// no configured origins: any origin, without cookies
		c.AllowAllOrigins = true
		c.AllowCredentials = false
	}
	return c
}
