package server

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/philly/quillpost/internal/platform/logger"
	"github.com/philly/quillpost/internal/platform/password"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// Storage backends selectable with STORAGE_BACKEND
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
	BackendBolt     = "bolt"
	BackendSQLite   = "sqlite"
)

// Config is the API server configuration
type Config struct {
	StorageBackend string        `mapstructure:"STORAGE_BACKEND"`
	DatabaseURL    string        `mapstructure:"DATABASE_URL"`
	DBMaxConns     int32         `mapstructure:"DB_MAX_CONNS"`
	MongoURI       string        `mapstructure:"MONGO_URI"`
	MongoDatabase  string        `mapstructure:"MONGO_DATABASE"`
	BoltPath       string        `mapstructure:"BOLT_PATH"`
	SQLitePath     string        `mapstructure:"SQLITE_PATH"`
	ServerAddress  string        `mapstructure:"SERVER_ADDRESS"`
	Environment    string        `mapstructure:"ENVIRONMENT"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"` // Logging level (debug, info, warn, error)
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	BcryptCost     int           `mapstructure:"BCRYPT_COST"`
	SeedDemoData   bool          `mapstructure:"SEED_DEMO_DATA"`
	GopsEnabled    bool          `mapstructure:"GOPS_ENABLED"`
}

// WebConfig is the front-end proxy configuration
type WebConfig struct {
	WebAddress     string        `mapstructure:"WEB_ADDRESS"`
	APIURL         string        `mapstructure:"API_URL"`
	Environment    string        `mapstructure:"ENVIRONMENT"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	GopsEnabled    bool          `mapstructure:"GOPS_ENABLED"`
}

func LoadConfig(bootstrapLogger *logger.BootstrapLogger) (Config, error) {
	ctx := context.Background()

	v := newViper(bootstrapLogger, map[string]any{
		"STORAGE_BACKEND": BackendMemory,
		"DATABASE_URL":    "",
		"DB_MAX_CONNS":    25,
		"MONGO_URI":       "",
		"MONGO_DATABASE":  "blog",
		"BOLT_PATH":       "quillpost.db",
		"SQLITE_PATH":     "quillpost.sqlite",
		"SERVER_ADDRESS":  ":4001",
		"ENVIRONMENT":     "development",
		"LOG_LEVEL":       "info",
		"REQUEST_TIMEOUT": "15s",
		"BCRYPT_COST":     password.DefaultCost,
		"SEED_DEMO_DATA":  false,
		"GOPS_ENABLED":    false,
	})

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		bootstrapLogger.Error(ctx, "failed to unmarshal configuration", "error", err)
		return Config{}, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	config.StorageBackend = strings.ToLower(strings.TrimSpace(config.StorageBackend))

	bootstrapLogger.Info(ctx, "configuration loaded",
		"environment", config.Environment,
		"log_level", config.LogLevel,
		"server_address", config.ServerAddress,
		"storage_backend", config.StorageBackend,
	)

	if err := config.Validate(); err != nil {
		bootstrapLogger.Error(ctx, "configuration validation failed", "error", err)
		return Config{}, err
	}

	bootstrapLogger.Info(ctx, "configuration validated successfully")
	return config, nil
}

// Validate checks that the selected backend has what it needs to connect
func (c Config) Validate() error {
	switch c.StorageBackend {
	case BackendMemory:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres backend")
		}
		if c.DBMaxConns < 1 {
			return errors.New("DB_MAX_CONNS must be at least 1")
		}
	case BackendMongo:
		if c.MongoURI == "" {
			return errors.New("MONGO_URI is required for the mongo backend")
		}
		if c.MongoDatabase == "" {
			return errors.New("MONGO_DATABASE is required for the mongo backend")
		}
	case BackendBolt:
		if c.BoltPath == "" {
			return errors.New("BOLT_PATH is required for the bolt backend")
		}
	case BackendSQLite:
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}

	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, c.BcryptCost)
	}
	if c.RequestTimeout < 0 {
		return errors.New("REQUEST_TIMEOUT cannot be negative")
	}
	return nil
}

func LoadWebConfig(bootstrapLogger *logger.BootstrapLogger) (WebConfig, error) {
	ctx := context.Background()

	v := newViper(bootstrapLogger, map[string]any{
		"WEB_ADDRESS":     ":3000",
		"API_URL":         "http://localhost:4001",
		"ENVIRONMENT":     "development",
		"LOG_LEVEL":       "info",
		"REQUEST_TIMEOUT": "15s",
		"GOPS_ENABLED":    false,
	})

	var config WebConfig
	if err := v.Unmarshal(&config); err != nil {
		bootstrapLogger.Error(ctx, "failed to unmarshal configuration", "error", err)
		return WebConfig{}, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	config.APIURL = strings.TrimRight(config.APIURL, "/")

	bootstrapLogger.Info(ctx, "configuration loaded",
		"environment", config.Environment,
		"web_address", config.WebAddress,
		"api_url", config.APIURL,
	)

	if config.APIURL == "" {
		err := errors.New("API_URL is required")
		bootstrapLogger.Error(ctx, "configuration validation failed", "error", err)
		return WebConfig{}, err
	}

	return config, nil
}

// newViper loads an optional .env file and returns a viper instance that
// reads the environment on top of defaults
func newViper(bootstrapLogger *logger.BootstrapLogger, defaults map[string]any) *viper.Viper {
	ctx := context.Background()

	// It's okay if the file doesn't exist - we'll use environment variables
	if err := godotenv.Load(); err != nil {
		bootstrapLogger.Info(ctx, "no .env file found, using environment variables only")
	} else {
		bootstrapLogger.Info(ctx, "loaded .env file")
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	// Viper will now see all environment variables, including those loaded by godotenv
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}
