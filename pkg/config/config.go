package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Snapshot backends.
const (
	SnapshotBackendFile     = "file"
	SnapshotBackendPostgres = "postgres"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	CORS     CORSConfig
	Log      LogConfig
	School   SchoolConfig
	Snapshot SnapshotConfig
	Stats    StatsConfig
	Exports  ExportsConfig
	Auth     AuthConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// SchoolConfig carries the attendance-domain tuning knobs: when the school
// day starts (the reference for delay computation) and when a student's
// un-notified delays warrant a parent notice.
type SchoolConfig struct {
	StartTime         string
	NoticeThreshold   int
	TopOffendersLimit int
}

// SnapshotConfig selects where the record and roster snapshots persist.
type SnapshotConfig struct {
	Backend    string
	Dir        string
	SaveRetry  int
	RetryDelay time.Duration
}

// StatsConfig governs caching of computed statistics payloads.
type StatsConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
}

// ExportsConfig controls generated report files and their signed links.
type ExportsConfig struct {
	StorageDir      string
	SignedURLSecret string
	SignedURLTTL    time.Duration
	CleanupInterval time.Duration
}

// AuthConfig describes the single administrative account.
type AuthConfig struct {
	AdminUsername     string
	AdminPasswordHash string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
		Issuer:     v.GetString("JWT_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.School = SchoolConfig{
		StartTime:         v.GetString("SCHOOL_START_TIME"),
		NoticeThreshold:   v.GetInt("NOTICE_THRESHOLD"),
		TopOffendersLimit: v.GetInt("TOP_OFFENDERS_LIMIT"),
	}

	cfg.Snapshot = SnapshotConfig{
		Backend:    v.GetString("SNAPSHOT_BACKEND"),
		Dir:        v.GetString("SNAPSHOT_DIR"),
		SaveRetry:  v.GetInt("SNAPSHOT_SAVE_RETRIES"),
		RetryDelay: parseDuration(v.GetString("SNAPSHOT_RETRY_DELAY"), 2*time.Second),
	}

	cfg.Stats = StatsConfig{
		CacheEnabled: v.GetBool("ENABLE_STATS_CACHE"),
		CacheTTL:     parseDuration(v.GetString("STATS_CACHE_TTL"), 10*time.Minute),
	}

	cfg.Exports = ExportsConfig{
		StorageDir:      v.GetString("EXPORTS_STORAGE_DIR"),
		SignedURLSecret: v.GetString("EXPORTS_SIGNED_URL_SECRET"),
		SignedURLTTL:    parseDuration(v.GetString("EXPORTS_SIGNED_URL_TTL"), 30*time.Minute),
		CleanupInterval: parseDuration(v.GetString("EXPORTS_CLEANUP_INTERVAL"), time.Hour),
	}

	cfg.Auth = AuthConfig{
		AdminUsername:     v.GetString("ADMIN_USERNAME"),
		AdminPasswordHash: v.GetString("ADMIN_PASSWORD_HASH"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "hudur")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("JWT_ISSUER", "hudur-api")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SCHOOL_START_TIME", "07:15:00")
	v.SetDefault("NOTICE_THRESHOLD", 3)
	v.SetDefault("TOP_OFFENDERS_LIMIT", 5)

	v.SetDefault("SNAPSHOT_BACKEND", SnapshotBackendFile)
	v.SetDefault("SNAPSHOT_DIR", "./data")
	v.SetDefault("SNAPSHOT_SAVE_RETRIES", 3)
	v.SetDefault("SNAPSHOT_RETRY_DELAY", "2s")

	v.SetDefault("ENABLE_STATS_CACHE", false)
	v.SetDefault("STATS_CACHE_TTL", "10m")

	v.SetDefault("EXPORTS_STORAGE_DIR", "./exports")
	v.SetDefault("EXPORTS_SIGNED_URL_SECRET", "dev_exports_secret")
	v.SetDefault("EXPORTS_SIGNED_URL_TTL", "30m")
	v.SetDefault("EXPORTS_CLEANUP_INTERVAL", "1h")

	v.SetDefault("ADMIN_USERNAME", "admin")
	// bcrypt of "admin", for local development only.
	v.SetDefault("ADMIN_PASSWORD_HASH", "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
