package main

import (
	"context"   // Context for shutdown and Redis
	"errors"    // Error matching
	"net/http"  // HTTP server
	"os"        // Signals
	"os/signal" // Signal notification
	"syscall"   // SIGTERM
	"time"      // Shutdown timeout

	"budgetmate/internal/api"        // Custom package for API handlers
	"budgetmate/internal/config"     // Custom package for configuration
	"budgetmate/internal/db"         // Custom package for database access
	"budgetmate/internal/middleware" // Custom package for middleware
	"budgetmate/internal/repository" // Custom package for persistence
	"budgetmate/internal/service"    // Custom package for business logic

	"github.com/gin-contrib/cors"  // CORS middleware
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"golang.org/x/sync/errgroup"   // Server and worker lifecycle
)

// setupLogger configures logrus from the configuration
func setupLogger(cfg *config.Config) {
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

// setupRedis connects to Redis; an empty address or a failed ping disables caching
func setupRedis(cfg *config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		logrus.Warn("REDIS_ADDR not set, caching disabled")
		return nil
	}
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logrus.WithError(err).Warn("Redis unreachable, caching disabled")
		_ = redisClient.Close()
		return nil
	}
	return redisClient
}

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration
	setupLogger(cfg)
	if err := cfg.Validate(); err != nil {
		logrus.Fatal(err)
	}

	// Connect to the database
	gormDB, err := db.OpenFromConfig(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}
	defer func() {
		if err := db.Close(gormDB); err != nil {
			logrus.WithError(err).Error("Failed to close database")
		}
	}()

	redisClient := setupRedis(cfg)
	if redisClient != nil {
		defer redisClient.Close()
	}

	// Wire services
	store := repository.NewStore(gormDB)
	streaks := service.NewStreakService(store, cfg.StreakCreditReward, redisClient, nil)
	subscriptions := service.NewSubscriptionService(store, nil)
	svc := api.Services{
		Auth:          service.NewAuthService(store, streaks, redisClient, cfg.JWTSecret, cfg.JWTTTL),
		Streaks:       streaks,
		Wallets:       service.NewWalletService(store, redisClient, cfg.CacheTTL),
		Transactions:  service.NewTransactionService(store, redisClient, cfg.CacheTTL, nil),
		Catalog:       service.NewCatalogService(store, redisClient),
		Memberships:   service.NewMembershipService(store, redisClient, cfg.CacheTTL),
		Subscriptions: subscriptions,
		Quiz:          service.NewQuizService(store, redisClient, cfg.DailyQuizSize, cfg.QuizCreditReward, nil),
		Admin:         service.NewAdminService(store, redisClient, cfg.CacheTTL),
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	if len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSOrigins
	}
	r.Use(cors.New(corsCfg))

	api.RegisterRoutes(r, svc, cfg.JWTSecret)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	// Expire finished subscriptions in the background
	g.Go(func() error {
		service.NewExpiryWorker(subscriptions, cfg.ExpiryInterval).Run(gctx)
		return nil
	})
	g.Go(func() error {
		logrus.WithField("port", cfg.AppPort).Info("Server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logrus.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		logrus.WithError(err).Error("Server stopped with error")
	}
}
