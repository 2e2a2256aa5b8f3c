package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appcatalog "github.com/seorganiza/backend/internal/application/catalog"
	appidentity "github.com/seorganiza/backend/internal/application/identity"
	appsales "github.com/seorganiza/backend/internal/application/sales"
	"github.com/seorganiza/backend/internal/infrastructure/auth"
	"github.com/seorganiza/backend/internal/infrastructure/config"
	"github.com/seorganiza/backend/internal/infrastructure/logger"
	"github.com/seorganiza/backend/internal/infrastructure/persistence"
	"github.com/seorganiza/backend/internal/infrastructure/storage"
	"github.com/seorganiza/backend/internal/interfaces/http/handler"
	"github.com/seorganiza/backend/internal/interfaces/http/router"
)

func main() {
	configPath := flag.String("config", "", "directory containing config.toml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic("loading config: " + err.Error())
	}

	log, err := logger.New(cfg.Logging)
	if err != nil {
		panic("building logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	db, err := persistence.NewConnection(cfg.Database, log)
	if err != nil {
		return err
	}

	// repositories
	productRepo := persistence.NewGormProductRepository(db)
	saleRepo := persistence.NewGormSaleRepository(db)
	userRepo := persistence.NewGormUserRepository(db)
	scope := persistence.NewGormTransactionScope(db)

	// auth infrastructure
	tokens := auth.NewJWTService(cfg.JWT)
	hasher := auth.NewBcryptHasher()
	var blacklist appidentity.TokenBlacklist
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			return err
		}
		blacklist = auth.NewRedisTokenBlacklist(client)
		log.Info("token blacklist backed by redis", zap.String("addr", cfg.Redis.Addr))
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		log.Info("token blacklist kept in memory")
	}

	// photo storage
	var photoStorage appcatalog.ObjectStorageService
	if cfg.Storage.Enabled {
		s3Storage, err := storage.NewS3Storage(context.Background(), cfg.Storage)
		if err != nil {
			return err
		}
		photoStorage = s3Storage
		log.Info("photo storage backed by s3", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		photoStorage = storage.NewStubStorage()
		log.Info("photo storage kept in memory")
	}

	// application services
	productService := appcatalog.NewProductService(productRepo, scope, photoStorage)
	saleService := appsales.NewSaleService(saleRepo, productRepo, scope)
	authService := appidentity.NewAuthService(userRepo, tokens, blacklist, hasher)
	userService := appidentity.NewUserService(userRepo, hasher)

	if err := userService.EnsureAdmin(context.Background(), cfg.Admin.Username, cfg.Admin.Password); err != nil {
		return err
	}

	engine := router.New(cfg, log, router.Dependencies{
		Products:  handler.NewProductHandler(productService, log),
		Sales:     handler.NewSaleHandler(saleService, log),
		Auth:      handler.NewAuthHandler(authService, log),
		Users:     handler.NewUserHandler(userService, log),
		System:    handler.NewSystemHandler(db),
		Tokens:    tokens,
		Blacklist: blacklist,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", cfg.Server.Addr()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(ctx)
}
