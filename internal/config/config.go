// internal/config/config.go

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	NATS        NATSConfig
	Upstream    UpstreamConfig
	Analysis    AnalysisConfig
	Trending    TrendingConfig
	LLM         LLMConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CorsOrigins     []string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Database     string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
	SSLMode      string
}

// NATSConfig holds NATS configuration
type NATSConfig struct {
	URL            string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectTimeout time.Duration
}

// UpstreamConfig holds upstream data gateway configuration
type UpstreamConfig struct {
	BaseURL        string
	APIKey         string
	APIHost        string
	RequestTimeout time.Duration
}

// AnalysisConfig holds deep analysis engine configuration
type AnalysisConfig struct {
	RunTimeout        time.Duration
	StageTimeout      time.Duration
	MaxParallelStages int
}

// TrendingConfig holds trending list caching configuration
type TrendingConfig struct {
	CacheTTL        time.Duration
	CleanupInterval time.Duration
}

// LLMConfig holds summary generation configuration
type LLMConfig struct {
	APIKey string
	Model  string
}

// Load loads configuration from environment variables
func Load() (Config, error) {
	config := Config{
		Environment: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			CorsOrigins:     getEnvAsSlice("SERVER_CORS_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnvAsInt("DB_PORT", 5432),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			Database:     getEnv("DB_NAME", "clipsight"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsDuration("DB_MAX_LIFETIME", 5*time.Minute),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
		},
		NATS: NATSConfig{
			URL:            getEnv("NATS_URL", "nats://localhost:4222"),
			MaxReconnects:  getEnvAsInt("NATS_MAX_RECONNECTS", 10),
			ReconnectWait:  getEnvAsDuration("NATS_RECONNECT_WAIT", 1*time.Second),
			ConnectTimeout: getEnvAsDuration("NATS_CONNECT_TIMEOUT", 2*time.Second),
		},
		Upstream: UpstreamConfig{
			BaseURL:        getEnv("UPSTREAM_BASE_URL", "https://tiktok-api23.p.rapidapi.com/api"),
			APIKey:         getEnv("UPSTREAM_API_KEY", ""),
			APIHost:        getEnv("UPSTREAM_API_HOST", "tiktok-api23.p.rapidapi.com"),
			RequestTimeout: getEnvAsDuration("UPSTREAM_REQUEST_TIMEOUT", 15*time.Second),
		},
		Analysis: AnalysisConfig{
			RunTimeout:        getEnvAsDuration("ANALYSIS_RUN_TIMEOUT", 5*time.Minute),
			StageTimeout:      getEnvAsDuration("ANALYSIS_STAGE_TIMEOUT", 15*time.Second),
			MaxParallelStages: getEnvAsInt("ANALYSIS_MAX_PARALLEL_STAGES", 3),
		},
		Trending: TrendingConfig{
			CacheTTL:        getEnvAsDuration("TRENDING_CACHE_TTL", 15*time.Minute),
			CleanupInterval: getEnvAsDuration("TRENDING_CACHE_CLEANUP_INTERVAL", 5*time.Minute),
		},
		LLM: LLMConfig{
			APIKey: getEnv("OPENROUTER_API_KEY", ""),
			Model:  getEnv("OPENROUTER_MODEL", ""),
		},
	}

	return config, validate(config)
}

// validate checks if config is valid
func validate(config Config) error {
	if config.Upstream.APIKey == "" && config.Environment != "development" {
		return fmt.Errorf("upstream API key must be set in non-development environments")
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
