package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"gitlab.com/codejudge.net/internal/adapter/crypto"
	"gitlab.com/codejudge.net/internal/adapter/logging"
	"gitlab.com/codejudge.net/internal/adapter/piston"
	"gitlab.com/codejudge.net/internal/adapter/postgres/resultrepository"
	"gitlab.com/codejudge.net/internal/adapter/redis/resultcache"
	"gitlab.com/codejudge.net/internal/config"
	"gitlab.com/codejudge.net/internal/core/ports/primary"
	"gitlab.com/codejudge.net/internal/core/ports/secondary"
	"gitlab.com/codejudge.net/internal/core/services/execution"
	"gitlab.com/codejudge.net/internal/core/services/judge"
	"gitlab.com/codejudge.net/internal/core/services/language"
	"gitlab.com/codejudge.net/internal/core/services/verdict"
	"gitlab.com/codejudge.net/internal/core/services/wrapper"
	logger2 "gitlab.com/codejudge.net/internal/global/logger"
	http2 "gitlab.com/codejudge.net/internal/http"
)

func main() {
	InitReader()

	sysCfg := config.NewSystemConfig()
	logger, err := logging.NewZapLoggerWithConfig(sysCfg.LogConfig)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	logger2.Set(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, sysCfg, logger); err != nil {
		logger.Error("Service stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("successfully shutdown server")
}

func run(ctx context.Context, sysCfg *config.AppConfig, logger *logging.ZapLogger) error {
	logger.Info("Starting judge service", "piston", sysCfg.ExecutorConfig.PistonURL)

	// SECONDARY PORTS
	var repo secondary.ResultRepository
	if sysCfg.PostgresConfig.Enabled() {
		db, err := setupDatabase(ctx, sysCfg.PostgresConfig.Url)
		if err != nil {
			return err
		}
		defer db.Close()

		resultRepo := resultrepository.New(db, logger, sysCfg.PostgresConfig.Schema)
		if err := resultRepo.Migrate(ctx); err != nil {
			return err
		}
		repo = resultRepo
	} else {
		logger.Warn("DATABASE_URL not set, results will not be persisted")
	}

	var cache secondary.ResultCache
	if sysCfg.RedisConfig.Enabled() {
		redisClient := setupRedis(sysCfg.RedisConfig)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("Redis unreachable, continuing without result cache", "error", err)
		} else {
			cache = resultcache.NewResultCache(redisClient, sysCfg.RedisConfig.ResultTTL, logger)
		}
	}

	executor := piston.NewExecutor(sysCfg.ExecutorConfig, logger)
	registry := language.NewDefaultRegistry(sysCfg.ExecutorConfig.LanguageVersions)
	verifyRuntimes(ctx, registry, executor, logger)

	// services
	engine := execution.NewEngine(
		registry,
		wrapper.NewDefaultGenerator(),
		executor,
		verdict.NewClassifier(logger),
		sysCfg.ExecutorConfig,
		logger,
	)
	judgeSvc := judge.NewJudgeService(engine, registry, cache, repo, sysCfg.ServerConfig.BatchConcurrency, logger)

	// primary ports
	var tokens primary.TokenService
	if sysCfg.JwtConfig.Enabled() {
		tokens = crypto.NewJWTService(sysCfg.JwtConfig)
	} else {
		logger.Warn("JWT_SECRET not set, API is unauthenticated")
	}

	serviceProvider := http2.NewServiceProvider(judgeSvc, registry, tokens)
	httpServer := http2.NewServer(sysCfg.ServerConfig.Port, sysCfg.ServerConfig.ServiceName, *serviceProvider, logger)
	if err := httpServer.Init(); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpServer.Start(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return httpServer.Stop(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// verifyRuntimes warns about registered languages the sandbox does not offer
func verifyRuntimes(ctx context.Context, registry language.IRegistry, lister secondary.RuntimeLister, logger primary.Logger) {
	verifyCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	missing, err := registry.Verify(verifyCtx, lister)
	if err != nil {
		logger.Warn("Could not list sandbox runtimes", "error", err)
		return
	}
	if len(missing) > 0 {
		logger.Warn("Sandbox is missing runtimes", "languages", missing)
	}
}

// setupDatabase sets up the PostgreSQL connection
func setupDatabase(ctx context.Context, connStr string) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// setupRedis sets up the Redis connection
func setupRedis(cfg *config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Url,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// InitReader loads <env>.env when an environment name is given, .env otherwise
func InitReader() {
	if len(os.Args) < 2 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Fatalf("Error loading .env file: %v", err)
		}
		return
	}

	environment := os.Args[1]
	if err := godotenv.Load(environment + ".env"); err != nil {
		log.Fatalf("Error loading %s.env file", environment)
	}
}
