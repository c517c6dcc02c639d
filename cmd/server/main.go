package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging

	"creator_wallet/internal/api"        // Custom package for API handlers
	"creator_wallet/internal/config"     // Custom package for configuration
	"creator_wallet/internal/dao"        // Custom package for wallet persistence
	"creator_wallet/internal/domain"     // Custom package for domain models
	"creator_wallet/internal/middleware" // Custom package for middleware
	"creator_wallet/internal/payments"   // Custom package for the payment simulator

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup Data Source Name (DSN) and connect to the database
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	walletDAO := dao.NewWalletDAO(db, cfg.MaxDeposit)    // Single persistence path for wallet mutations
	simulator := payments.NewSimulator(cfg.PayoutDelay)  // Mocked payment providers

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Auth routes
	r.POST("/auth/register", api.RegisterHandler(db))            // Registration endpoint
	r.POST("/auth/login", api.LoginHandler(db, cfg.JWTSecret))   // Login endpoint

	// Public video routes
	r.GET("/videos", api.ListVideosHandler(db, redisClient)) // Video feed endpoint
	r.GET("/videos/:id/stats", api.VideoStatsHandler(db))    // Video engagement endpoint

	// Wallet routes (protected by JWT)
	walletGroup := r.Group("/wallet")
	walletGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret)) // Protect wallet routes with JWT middleware
	walletGroup.GET("/user/balance", api.GetUserBalanceHandler(walletDAO, redisClient))       // User balance endpoint
	walletGroup.PUT("/user/balance", api.UpdateUserBalanceHandler(walletDAO, redisClient))    // User balance mutation endpoint
	walletGroup.GET("/transactions", api.GetTransactionHistoryHandler(db, walletDAO, redisClient)) // Transaction history endpoint

	// Creator wallet routes (protected, creators only)
	creatorGroup := walletGroup.Group("/creator")
	creatorGroup.Use(middleware.RequireUserType(db, domain.UserTypeCreator)) // Creators only
	creatorGroup.GET("/balance", api.GetCreatorBalanceHandler(walletDAO, redisClient))    // Creator balance endpoint
	creatorGroup.PUT("/balance", api.UpdateCreatorBalanceHandler(walletDAO, redisClient)) // Creator balance mutation endpoint

	// Token transfer routes (protected by JWT)
	tokensGroup := r.Group("/tokens")
	tokensGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	tokensGroup.POST("/transfer", api.GiftHandler(walletDAO, redisClient)) // Gift transfer endpoint

	// Video publishing (protected, creators only)
	publishGroup := r.Group("/videos")
	publishGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.RequireUserType(db, domain.UserTypeCreator))
	publishGroup.POST("", api.CreateVideoHandler(db, redisClient)) // Publish endpoint

	// Payout routes (protected by JWT)
	paymentsGroup := r.Group("/payments")
	paymentsGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	paymentsGroup.POST("/:method/withdraw", api.PayoutHandler(walletDAO, simulator, redisClient)) // Mocked payout endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
