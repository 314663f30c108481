package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	goredis "github.com/redis/go-redis/v9"

	"github.com/mpetrov/geovault/internal/api/http/handler"
	"github.com/mpetrov/geovault/internal/api/http/middleware"
	"github.com/mpetrov/geovault/internal/api/http/router"
	httpserver "github.com/mpetrov/geovault/internal/api/http/server"
	"github.com/mpetrov/geovault/internal/cache"
	"github.com/mpetrov/geovault/internal/config"
	"github.com/mpetrov/geovault/internal/crypto"
	"github.com/mpetrov/geovault/internal/logger"
	"github.com/mpetrov/geovault/internal/repository/postgres"
	"github.com/mpetrov/geovault/internal/service"
	storage "github.com/mpetrov/geovault/internal/storage/minio"
	"github.com/mpetrov/geovault/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel, cfg.LogFormat)

	key, err := crypto.KeyFromHex(cfg.Vault.KeyHex)
	if err != nil {
		logger.Fatal("failed to load encryption key", "error", err)
	}
	codec, err := crypto.NewCodec(key)
	if err != nil {
		logger.Fatal("failed to initialize codec", "error", err)
	}

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	redisClient := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	blobs, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
	if err != nil {
		logger.Fatal("failed to initialize blob storage", "error", err)
	}

	zoneRepo := postgres.NewZoneRepository(db)
	fileRepo := postgres.NewFileRepository(db)
	attemptRepo := postgres.NewAttemptRepository(db)
	zoneCache := cache.NewZoneCache(redisClient, cfg.Zone.CacheTTL)

	zoneService := service.NewZone(zoneRepo, fileRepo, zoneCache, cfg.Zone.MaxRadiusMeters, logger)
	accessService := service.NewAccess(zoneService, attemptRepo, logger)
	vaultService := service.NewVault(fileRepo, attemptRepo, zoneService, blobs, codec, accessService, cfg.Vault.MaxFileBytes, logger)

	actorParser := token.NewJWT(cfg.JWT.Secret)
	auth := middleware.NewAuthenticate(actorParser, logger)
	h := handler.New(logger, zoneService, vaultService)

	srv := httpserver.NewHTTPServer(
		router.New(h, auth),
		fmt.Sprintf(":%s", cfg.HTTP.Port),
		cfg.HTTP.ReadTimeout,
		cfg.HTTP.WriteTimeout,
	)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("Starting server on", "address", srv.Address())
		if err := srv.Start(); err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}()

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
