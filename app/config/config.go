package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverBadger = "badger"
	DriverMongo  = "mongo"
)

// Config is the application configuration, populated from the environment.
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Storage StorageConfig
}

type AppConfig struct {
	Environment string // development, production
	LogLevel    string
}

type HTTPConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// StorageConfig selects and locates the document store.
type StorageConfig struct {
	Driver string
	// BadgerPath is the Badger directory; empty runs in memory.
	BadgerPath      string
	MongoURI        string
	MongoDatabase   string
	MongoCollection string
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// FromEnv builds a Config from environment variables and defaults.
func FromEnv() *Config {
	return &Config{
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Addr:            getEnv("HTTP_ADDR", ":8080"),
			ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Storage: StorageConfig{
			Driver:          getEnv("STORE_DRIVER", DriverBadger),
			BadgerPath:      os.Getenv("BADGER_PATH"),
			MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
			MongoDatabase:   getEnv("MONGO_DATABASE", "blog"),
			MongoCollection: getEnv("MONGO_COLLECTION", "blogposts"),
		},
	}
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.HTTP.Addr == "" {
		return fmt.Errorf("HTTP_ADDR must not be empty")
	}
	return c.Storage.Validate()
}

// Validate checks the driver and its required settings.
func (s StorageConfig) Validate() error {
	switch s.Driver {
	case DriverBadger:
		return nil
	case DriverMongo:
		if s.MongoURI == "" {
			return fmt.Errorf("MONGO_URI must be set for the mongo driver")
		}
		if s.MongoDatabase == "" || s.MongoCollection == "" {
			return fmt.Errorf("MONGO_DATABASE and MONGO_COLLECTION must be set for the mongo driver")
		}
		return nil
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", s.Driver)
	}
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvDuration accepts a Go duration ("5s") or a whole number of seconds.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(valueStr); err == nil {
		return d
	}
	if secs := getEnvInt(key, -1); secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
