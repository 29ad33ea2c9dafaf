package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/KnellBalm/Offline-Lab/internal/adapter/crypto"
	"github.com/KnellBalm/Offline-Lab/internal/adapter/filestore/problemstore"
	"github.com/KnellBalm/Offline-Lab/internal/adapter/gemini"
	"github.com/KnellBalm/Offline-Lab/internal/adapter/postgres/queryrunner"
	"github.com/KnellBalm/Offline-Lab/internal/adapter/postgres/retention"
	"github.com/KnellBalm/Offline-Lab/internal/adapter/postgres/submissionrepository"
	"github.com/KnellBalm/Offline-Lab/internal/adapter/postgres/userrepository"
	"github.com/KnellBalm/Offline-Lab/internal/adapter/redis/problemcache"
	"github.com/KnellBalm/Offline-Lab/internal/config"
	auth2 "github.com/KnellBalm/Offline-Lab/internal/core/services/auth"
	"github.com/KnellBalm/Offline-Lab/internal/core/services/grading"
	"github.com/KnellBalm/Offline-Lab/internal/core/services/practice"
	"github.com/KnellBalm/Offline-Lab/internal/core/services/problemset"
	"github.com/KnellBalm/Offline-Lab/internal/core/services/stats"
	logger2 "github.com/KnellBalm/Offline-Lab/internal/global/logger"
	http2 "github.com/KnellBalm/Offline-Lab/internal/http"
	"github.com/KnellBalm/Offline-Lab/internal/schedulerengine"
)

func main() {
	InitReader()
	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	logger2.Info("Starting SQL practice service")

	logger := logger2.Logger

	sysCfg := config.NewSystemConfig()

	db, err := setupDatabase(sysCfg.PostgresConfig)
	if err != nil {
		panic(err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     sysCfg.RedisConfig.Url,
		Password: sysCfg.RedisConfig.Password, // no password set
		DB:       sysCfg.RedisConfig.DB,       // use default DB
	})

	// SECONDARY PORTS
	runner := queryrunner.NewQueryRunner(db, sysCfg.GradingConfig, logger)
	submissionRepo := submissionrepository.New(db, logger)
	userPort := userrepository.New(db, logger)
	retentionPort := retention.New(db, logger)
	problemStore, err := problemstore.New(sysCfg.SchedulerCfg.ProblemDir, logger)
	if err != nil {
		panic(err)
	}
	problemCache := problemcache.NewProblemCache(redisClient, logger)
	generator := gemini.NewClient(sysCfg.GeminiConfig, logger)

	// primary ports
	jwtProvider := crypto.NewJWTService(sysCfg.JwtConfig)

	// services
	gradingSvc := grading.NewGradingService(runner, problemStore, submissionRepo, generator, logger)
	problemSvc := problemset.NewProblemSetService(problemStore, problemCache, generator, sysCfg.SchedulerCfg.ProblemsPerDay, logger)
	practiceSvc := practice.NewPracticeService(runner, generator, logger)
	statsSvc := stats.NewStatsService(submissionRepo, logger)
	ggAuth := auth2.NewGoogleAuthService(userPort, jwtProvider, sysCfg.GGAuthConfig)
	localAuth := auth2.NewLocalAuthService(userPort, jwtProvider)
	serviceProvider := http2.NewServiceProvider(
		gradingSvc, problemSvc, practiceSvc, statsSvc,
		runner, userPort, ggAuth, localAuth,
	)

	// server
	httServer := http2.NewServer(8082, "sqlPractice", *serviceProvider, logger)
	err = httServer.Init()
	if err != nil {
		panic(err)
	}
	ctxBg, cancelBg := context.WithCancel(context.Background())
	httServer.Start(ctxBg)

	schedulerSvc := schedulerengine.NewSchedulerEngine(sysCfg.SchedulerCfg, problemSvc, problemStore, retentionPort, logger)
	if !sysCfg.DebugMode {
		schedulerSvc.Start(ctxBg)
	}
	<-quit
	logger.Info("Shutting down server...")
	cancelBg()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	httServer.Stop(ctx)
	if err := db.Close(); err != nil {
		logger.Error("Failed to close database", "error", err)
	}
	if err := redisClient.Close(); err != nil {
		logger.Error("Failed to close redis client", "error", err)
	}

	logger.Info("successfully shutdown server")
}

// setupDatabase sets up the PostgreSQL connection
func setupDatabase(cfg *config.PostgresConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.Url)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

func InitReader() {
	environment := ""
	if len(os.Args) < 2 {
		log.Fatalf("Env not supplied in argument")
	} else {
		environment = os.Args[1]
	}

	err := godotenv.Load(environment + ".env")
	if err != nil {
		log.Fatalf("Error loading %s.env file", environment)
	}
}
