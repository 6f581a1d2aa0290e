package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// StorageBackend selects where the console persists its credential slots.
type StorageBackend string

const (
	StorageFile  StorageBackend = "file"
	StorageRedis StorageBackend = "redis"
)

// Config aggregates runtime configuration for the console.
type Config struct {
	App      AppConfig
	Upstream UpstreamConfig
	Storage  StorageConfig
	Redis    RedisConfig
	Logger   LoggerConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// UpstreamConfig points at the retail platform API.
type UpstreamConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// StorageConfig selects and parameterizes the durable credential store.
type StorageConfig struct {
	Backend StorageBackend
	// FilePath is the session file location for the file backend.
	FilePath string
	// EncryptionSecret, when set, enables at-rest encryption of the
	// persisted credential slots.
	EncryptionSecret string
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// KeyPrefix namespaces the console's session hash.
	KeyPrefix string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	backend := StorageBackend(getEnv("SESSION_STORAGE_BACKEND", string(StorageFile)))
	switch backend {
	case StorageFile, StorageRedis:
	default:
		return nil, fmt.Errorf("invalid SESSION_STORAGE_BACKEND: %q", backend)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "backoffice-console"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "127.0.0.1"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Upstream: UpstreamConfig{
			BaseURL:        getEnv("UPSTREAM_BASE_URL", "http://127.0.0.1:9000"),
			TimeoutSeconds: getEnvAsInt("UPSTREAM_TIMEOUT_SECONDS", 10),
		},
		Storage: StorageConfig{
			Backend:          backend,
			FilePath:         getEnv("SESSION_FILE_PATH", defaultSessionFile()),
			EncryptionSecret: os.Getenv("SESSION_ENCRYPTION_SECRET"),
		},
		Redis: RedisConfig{
			Addr:      getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password:  os.Getenv("REDIS_PASSWORD"),
			DB:        redisDB,
			KeyPrefix: getEnv("REDIS_KEY_PREFIX", "backoffice"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Timeout returns the upstream HTTP client timeout.
func (u UpstreamConfig) Timeout() time.Duration {
	if u.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(u.TimeoutSeconds) * time.Second
}

func defaultSessionFile() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir + "/backoffice-console/session.json"
	}
	return ".backoffice-session.json"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
