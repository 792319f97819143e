package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers.
const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
	StorageMemory   = "memory"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Backend  BackendConfig
	Logger   LoggerConfig
	Storage  StorageConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Delivery DeliveryConfig
	Staff    StaffConfig
	Polling  PollingConfig
	Shop     ShopConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host            string
	Port            int
	ShutdownTimeout time.Duration
}

// BackendConfig points at the pizzeria REST backend.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// StorageConfig selects where the cart and the session are kept.
type StorageConfig struct {
	Driver    string
	Dir       string // file driver
	Namespace string // key prefix, one per terminal
}

// DatabaseConfig holds database-related configuration for the postgres
// storage driver.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// RedisConfig holds the redis storage driver configuration.
type RedisConfig struct {
	URL string
}

// DeliveryConfig locates the delivery zone table.
type DeliveryConfig struct {
	ZonesFile string
	S3        S3Config
}

// S3Config holds AWS S3 configuration for the zone table.
type S3Config struct {
	Enabled bool
	Bucket  string
	Region  string
	Prefix  string // Path prefix within bucket (e.g., "delivery/")
}

// StaffConfig holds the staff login settings.
type StaffConfig struct {
	PasswordHash string // bcrypt
	TokenSecret  string
	TokenTTL     time.Duration
}

// PollingConfig holds the poll intervals. The kitchen board polls only
// while a staff session is open.
type PollingConfig struct {
	Tracker time.Duration
	Kitchen time.Duration
}

// ShopConfig holds details about the pizzeria itself.
type ShopConfig struct {
	WhatsApp string // international number for order share links
}

// Load loads configuration from environment variables, seeded from a .env
// file when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "127.0.0.1"),
			Port:            getEnvAsInt("SERVER_PORT", 8081),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Backend: BackendConfig{
			BaseURL: getEnv("BACKEND_URL", "http://localhost:8080"),
			Timeout: getEnvAsDuration("BACKEND_TIMEOUT", 10*time.Second),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Storage: StorageConfig{
			Driver:    getEnv("STORAGE_DRIVER", StorageFile),
			Dir:       getEnv("STORAGE_DIR", "data"),
			Namespace: getEnv("STORAGE_NAMESPACE", "storefront"),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "storefront"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 5),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 1),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", "redis://localhost:6379/0"),
		},
		Delivery: DeliveryConfig{
			ZonesFile: getEnv("DELIVERY_ZONES_FILE", ""),
			S3: S3Config{
				Enabled: getEnvAsBool("S3_ENABLED", false),
				Bucket:  getEnv("S3_BUCKET", ""),
				Region:  getEnv("S3_REGION", "eu-south-1"),
				Prefix:  getEnv("S3_PREFIX", "delivery/"),
			},
		},
		Staff: StaffConfig{
			PasswordHash: getEnv("STAFF_PASSWORD_HASH", ""),
			TokenSecret:  getEnv("STAFF_TOKEN_SECRET", ""),
			TokenTTL:     getEnvAsDuration("STAFF_TOKEN_TTL", 12*time.Hour),
		},
		Polling: PollingConfig{
			Tracker: getEnvAsDuration("POLL_TRACKER_INTERVAL", 15*time.Second),
			Kitchen: getEnvAsDuration("POLL_KITCHEN_INTERVAL", 10*time.Second),
		},
		Shop: ShopConfig{
			WhatsApp: getEnv("SHOP_WHATSAPP", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid backend url: %q", c.Backend.BaseURL)
	}

	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("backend timeout must be positive")
	}

	switch c.Storage.Driver {
	case StorageFile:
		if c.Storage.Dir == "" {
			return fmt.Errorf("storage dir is required for the file driver")
		}
	case StoragePostgres:
		if err := c.Database.validate(); err != nil {
			return err
		}
	case StorageRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("redis url is required for the redis driver")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("invalid storage driver: %s (must be file, postgres, redis, or memory)", c.Storage.Driver)
	}

	if c.Staff.TokenSecret == "" {
		return fmt.Errorf("staff token secret is required")
	}

	if c.Staff.TokenTTL <= 0 {
		return fmt.Errorf("staff token ttl must be positive")
	}

	if c.Polling.Tracker <= 0 || c.Polling.Kitchen <= 0 {
		return fmt.Errorf("poll intervals must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.Delivery.S3.Enabled {
		if c.Delivery.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when S3 is enabled")
		}
		if c.Delivery.S3.Region == "" {
			return fmt.Errorf("S3 region is required when S3 is enabled")
		}
	}

	return nil
}

func (c *DatabaseConfig) validate() error {
	if c.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Port)
	}

	if c.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.MinConnections > c.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration retrieves an environment variable as a duration ("10s",
// "1m") or returns a default value.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
