package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"time"    // For duration parsing

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort     string        // Application port
	DBUser      string        // Database user
	DBPassword  string        // Database password
	DBHost      string        // Database host
	DBPort      string        // Database port
	DBName      string        // Database name
	JWTSecret   string        // JWT secret key
	RedisAddr   string        // Redis server address
	RedisPass   string        // Redis password
	RedisDB     int           // Redis database number
	MaxDeposit  int64         // Deposit cap per operation, in minor units
	PayoutDelay time.Duration // Simulated payment provider processing delay
	IsProd      bool          // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	return &Config{
		AppPort:     getEnv("APP_PORT", "8080"),         // Application port
		DBUser:      getEnv("DB_USER", "root"),          // Database user
		DBPassword:  os.Getenv("DB_PASSWORD"),           // Database password
		DBHost:      getEnv("DB_HOST", "localhost"),     // Database host
		DBPort:      getEnv("DB_PORT", "3306"),          // Database port
		DBName:      getEnv("DB_NAME", "creator_wallet"), // Database name
		JWTSecret:   os.Getenv("JWT_SECRET"),            // JWT secret key
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"), // Redis server address
		RedisPass:   os.Getenv("REDIS_PASS"),            // Redis password
		RedisDB:     getEnvInt("REDIS_DB", 0),           // Redis database number
		MaxDeposit:  getEnvInt64("MAX_DEPOSIT", 1_000_000), // Deposit cap, default $10,000.00
		PayoutDelay: getEnvDuration("PAYOUT_DELAY", 2*time.Second), // Provider processing delay
		IsProd:      os.Getenv("IS_PROD") == "true",     // Is production environment
	}
}

// getEnv returns the value of an environment variable or a fallback
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or a fallback
func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

// getEnvInt64 returns a 64-bit integer environment variable or a fallback
func getEnvInt64(key string, fallback int64) int64 {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return fallback
}

// getEnvDuration returns a duration environment variable or a fallback
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
