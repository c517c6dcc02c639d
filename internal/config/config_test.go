package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	// Ensure the variables with defaults are unset; t.Setenv registers the
	// restore, os.Unsetenv actually clears the key for this test
	for _, key := range []string{"APP_PORT", "DB_USER", "DB_HOST", "DB_PORT", "DB_NAME", "REDIS_ADDR", "REDIS_DB", "MAX_DEPOSIT", "PAYOUT_DELAY", "IS_PROD"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := LoadConfig()
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "root", cfg.DBUser)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "3306", cfg.DBPort)
	assert.Equal(t, "creator_wallet", cfg.DBName)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, int64(1_000_000), cfg.MaxDeposit)
	assert.Equal(t, 2*time.Second, cfg.PayoutDelay)
	assert.False(t, cfg.IsProd)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "9999")
	t.Setenv("DB_USER", "wallet")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "3307")
	t.Setenv("DB_NAME", "wallets")
	t.Setenv("JWT_SECRET", "jwt-secret")
	t.Setenv("REDIS_ADDR", "redis.internal:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("MAX_DEPOSIT", "50000")
	t.Setenv("PAYOUT_DELAY", "150ms")
	t.Setenv("IS_PROD", "true")

	cfg := LoadConfig()
	assert.Equal(t, "9999", cfg.AppPort)
	assert.Equal(t, "wallet", cfg.DBUser)
	assert.Equal(t, "secret", cfg.DBPassword)
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "3307", cfg.DBPort)
	assert.Equal(t, "wallets", cfg.DBName)
	assert.Equal(t, "jwt-secret", cfg.JWTSecret)
	assert.Equal(t, "redis.internal:6379", cfg.RedisAddr)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, int64(50000), cfg.MaxDeposit)
	assert.Equal(t, 150*time.Millisecond, cfg.PayoutDelay)
	assert.True(t, cfg.IsProd)
}

func TestLoadConfigBadIntegers(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("MAX_DEPOSIT", "lots")
	t.Setenv("PAYOUT_DELAY", "soon")

	cfg := LoadConfig()
	assert.Equal(t, 0, cfg.RedisDB)                    // falls back
	assert.Equal(t, int64(1_000_000), cfg.MaxDeposit)  // falls back
	assert.Equal(t, 2*time.Second, cfg.PayoutDelay)    // falls back
}
