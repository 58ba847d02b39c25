package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ACCESS_TOKEN_TTL_MIN", "15")
	t.Setenv("BCRYPT_COST", "4")
}

func TestRead_MemoryStorageNeedsNoDatabase(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("STORAGE", "memory")

	cfg, err := Read()
	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 4, cfg.BcryptCost)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestRead_MySQLRequiresDatabaseVars(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("STORAGE", "mysql")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_HOST", "")

	_, err := Read()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_USER")
	assert.Contains(t, err.Error(), "DB_HOST")
}

func TestRead_ReportsBadValues(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("STORAGE", "postgres")
	t.Setenv("BCRYPT_COST", "high")

	_, err := Read()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid STORAGE")
	assert.Contains(t, err.Error(), "BCRYPT_COST")
}

func TestLoadRateLimitConfig_Clamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "1m")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	rl := LoadRateLimitConfig()
	assert.Equal(t, 1, rl.Capacity)
	assert.Equal(t, 5*time.Minute, rl.TTL)
}

func TestLoadRedisConfig_HostPortWins(t *testing.T) {
	t.Setenv("REDIS_ADDR", "cache:6380")
	t.Setenv("REDIS_HOST", "redis")
	t.Setenv("REDIS_PORT", "6379")
	assert.Equal(t, "redis:6379", LoadRedisConfig().Addr)
}

func TestIsDevelopment(t *testing.T) {
	assert.True(t, Config{Env: "development"}.IsDevelopment())
	assert.False(t, Config{Env: "production"}.IsDevelopment())
}
