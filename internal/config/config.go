package config // package config loads application configuration from environment variables

import (
    "errors"
    "fmt"
    "os"
    "strconv"
    "strings"
    "time"

    "github.com/joho/godotenv"
)

// Storage backends selectable with STORAGE.
const (
    StorageMySQL  = "mysql"
    StorageMemory = "memory"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.
type Config struct {
    Env           string        // APP_ENV: development, test, production
    Port          string        // APP_PORT: HTTP port to listen on
    Storage       string        // STORAGE: mysql (default) or memory
    DBUser        string        // DB_USER
    DBPass        string        // DB_PASS (optional)
    DBHost        string        // DB_HOST
    DBPort        string        // DB_PORT
    DBName        string        // DB_NAME
    DBApplySchema bool          // DB_APPLY_SCHEMA: create missing tables at startup
    JWTSecret     string        // JWT_SECRET: HS256 signing key
    AccessTTL     time.Duration // ACCESS_TOKEN_TTL_MIN, in minutes
    BcryptCost    int           // BCRYPT_COST
    LogLevel      string        // LOG_LEVEL: zerolog level name, default info
    RabbitMQURL   string        // RABBITMQ_URL: empty disables reservation events
    Redis         RedisConfig
    Cache         CacheConfig
    RateLimit     RateLimitConfig
}

// IsDevelopment reports whether the app runs in a local environment.
func (c Config) IsDevelopment() bool {
    switch strings.ToLower(c.Env) {
    case "dev", "development", "local":
        return true
    }
    return false
}

// Read loads .env when present and builds a Config from the environment.
// Every missing or malformed required variable is reported in the
// returned error.
func Read() (Config, error) {
    // a missing .env is normal outside local development
    _ = godotenv.Load()

    var r reader
    cfg := Config{
        Env:           r.must("APP_ENV"),
        Port:          r.must("APP_PORT"),
        Storage:       strings.ToLower(envStr("STORAGE", StorageMySQL)),
        DBPass:        os.Getenv("DB_PASS"),
        DBApplySchema: envBool("DB_APPLY_SCHEMA", false),
        JWTSecret:     r.must("JWT_SECRET"),
        AccessTTL:     time.Duration(r.mustInt("ACCESS_TOKEN_TTL_MIN")) * time.Minute,
        BcryptCost:    r.mustInt("BCRYPT_COST"),
        LogLevel:      envStr("LOG_LEVEL", "info"),
        RabbitMQURL:   os.Getenv("RABBITMQ_URL"),
        Redis:         LoadRedisConfig(),
        Cache:         LoadCacheConfig(),
        RateLimit:     LoadRateLimitConfig(),
    }
    switch cfg.Storage {
    case StorageMySQL:
        cfg.DBUser = r.must("DB_USER")
        cfg.DBHost = r.must("DB_HOST")
        cfg.DBPort = r.must("DB_PORT")
        cfg.DBName = r.must("DB_NAME")
    case StorageMemory:
    default:
        r.errs = append(r.errs, fmt.Errorf("invalid STORAGE %q: want %s or %s", cfg.Storage, StorageMySQL, StorageMemory))
    }
    if cfg.AccessTTL <= 0 && os.Getenv("ACCESS_TOKEN_TTL_MIN") != "" {
        r.errs = append(r.errs, errors.New("ACCESS_TOKEN_TTL_MIN must be positive"))
    }
    return cfg, errors.Join(r.errs...)
}

// reader collects errors from must/mustInt so all problems surface at once.
type reader struct{ errs []error }

// must retrieves the value of a required environment variable.
func (r *reader) must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        r.errs = append(r.errs, fmt.Errorf("missing required env var: %s", key))
    }
    return v
}

// mustInt is like must() but converts the retrieved string into an integer.
func (r *reader) mustInt(key string) int {
    s := r.must(key)
    if s == "" {
        return 0
    }
    n, err := strconv.Atoi(s)
    if err != nil {
        r.errs = append(r.errs, fmt.Errorf("invalid int for %s: %q", key, s))
    }
    return n
}
