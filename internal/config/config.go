package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the server needs at startup.
type Config struct {
	AppPort      string
	AppEnv       string
	DBDriver     string
	DatabaseDSN  string
	JWTSecret    string
	JWTTTL       time.Duration
	RabbitMQURL  string
	ModelStorage string
	ModelDir     string
	ModelBucket  string
	SeedFile     string
	CORSOrigins  string
	GuestEmail   string
}

// IsProduction reports whether error bodies must omit internals.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production") || strings.EqualFold(c.AppEnv, "prod")
}

// SetDefaults registers every key with its default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":5000")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "file:herbal_garden.db?cache=shared")
	v.SetDefault("JWT_SECRET", "change-me")
	v.SetDefault("JWT_TTL", "720h")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("MODEL_STORAGE", "local")
	v.SetDefault("MODEL_DIR", "models")
	v.SetDefault("MODEL_BUCKET", "")
	v.SetDefault("SEED_FILE", "")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173")
	v.SetDefault("GUEST_EMAIL", "guest@herbal.local")
}

// Load reads configuration from environment variables and, when CONFIG_FILE
// is set, from that file first.
func Load() (Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}
	return FromViper(v)
}

// FromViper materializes and validates a Config from an already-populated viper instance.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		AppPort:      v.GetString("APP_PORT"),
		AppEnv:       v.GetString("APP_ENV"),
		DBDriver:     strings.ToLower(v.GetString("DB_DRIVER")),
		DatabaseDSN:  v.GetString("DATABASE_DSN"),
		JWTSecret:    v.GetString("JWT_SECRET"),
		JWTTTL:       v.GetDuration("JWT_TTL"),
		RabbitMQURL:  v.GetString("RABBITMQ_URL"),
		ModelStorage: strings.ToLower(v.GetString("MODEL_STORAGE")),
		ModelDir:     v.GetString("MODEL_DIR"),
		ModelBucket:  v.GetString("MODEL_BUCKET"),
		SeedFile:     v.GetString("SEED_FILE"),
		CORSOrigins:  v.GetString("CORS_ORIGINS"),
		GuestEmail:   strings.ToLower(v.GetString("GUEST_EMAIL")),
	}

	switch cfg.DBDriver {
	case "postgres", "sqlite":
	default:
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	switch cfg.ModelStorage {
	case "local":
	case "gcs":
		if cfg.ModelBucket == "" {
			return Config{}, fmt.Errorf("MODEL_BUCKET is required when MODEL_STORAGE=gcs")
		}
	default:
		return Config{}, fmt.Errorf("unsupported MODEL_STORAGE %q", cfg.ModelStorage)
	}
	if cfg.JWTTTL <= 0 {
		return Config{}, fmt.Errorf("JWT_TTL must be positive")
	}
	if cfg.IsProduction() && cfg.JWTSecret == "change-me" {
		return Config{}, fmt.Errorf("JWT_SECRET must be set in production")
	}
	return cfg, nil
}
