package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// JWTConfig holds session token configuration
type JWTConfig struct {
	SigningKey      string
	ExpirationHours int
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Prefix string
}

// SessionConfig holds session store configuration. An empty StorePath keeps
// sessions in memory only.
type SessionConfig struct {
	StorePath string
}

// TenantConfig holds tenant resolver configuration. LookupDelay simulates
// the network round-trip of a real tenant directory.
type TenantConfig struct {
	LookupDelay time.Duration
}

// RecordingConfig holds recording ledger configuration. ProcessingDelay is
// how long a stopped recording stays in the processing state before its
// file URL is synthesized.
type RecordingConfig struct {
	ProcessingDelay time.Duration
}

// ConferenceConfig holds the embedded widget defaults.
type ConferenceConfig struct {
	Domain      string
	EmailDomain string
}

// Config holds all configuration
type Config struct {
	ServiceName string
	Server      ServerConfig
	JWT         JWTConfig
	Log         LogConfig
	Metrics     MetricsConfig
	Session     SessionConfig
	Tenant      TenantConfig
	Recording   RecordingConfig
	Conference  ConferenceConfig
}

// Load loads configuration from environment variables
func Load(serviceName string) (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Not returning error as .env file is optional
		fmt.Printf("Warning: .env file not found, using environment variables\n")
	}

	// Initialize config struct with values from environment
	config := &Config{
		ServiceName: serviceName,
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("APP_ENV", "development"),
		},
		JWT: JWTConfig{
			SigningKey:      getEnv("JWT_SIGNING_KEY", "defaultsecretkey"),
			ExpirationHours: getEnvAsInt("JWT_EXPIRATION_HOURS", 24),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Metrics: MetricsConfig{
			Prefix: getEnv("METRICS_PREFIX", serviceName),
		},
		Session: SessionConfig{
			StorePath: getEnv("SESSION_STORE_PATH", ""),
		},
		Tenant: TenantConfig{
			LookupDelay: getEnvAsDuration("TENANT_LOOKUP_DELAY", 200*time.Millisecond),
		},
		Recording: RecordingConfig{
			ProcessingDelay: getEnvAsDuration("RECORDING_PROCESSING_DELAY", 3*time.Second),
		},
		Conference: ConferenceConfig{
			Domain:      getEnv("CONFERENCE_DOMAIN", "meet.jit.si"),
			EmailDomain: getEnv("CONFERENCE_EMAIL_DOMAIN", "videoconf.app"),
		},
	}

	return config, nil
}

// LogConfig returns the configuration as a zap logger-friendly format
func (c *Config) LogConfig() []zap.Field {
	return []zap.Field{
		zap.String("service", c.ServiceName),
		zap.String("environment", c.Server.Env),
		zap.String("server_port", c.Server.Port),
		zap.String("session_store_path", c.Session.StorePath),
		zap.Duration("tenant_lookup_delay", c.Tenant.LookupDelay),
		zap.Duration("recording_processing_delay", c.Recording.ProcessingDelay),
	}
}

// Helper function to get environment variables with defaults
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as integers
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as durations
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
