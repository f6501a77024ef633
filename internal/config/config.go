// Package config provides configuration management for the application.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logging  LoggingConfig
	YouTube  YouTubeConfig
	Gemini   GeminiConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
	Auth     AuthConfig
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int
	ShutdownTimeout time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
}

// DatabaseConfig contains database connection configuration.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type DatabaseConfig struct {
	Host           string
	Name           string
	User           string
	Password       string
	SSLMode        string
	Port           int
	MaxConnections int
	MinConnections int
	MaxIdleTime    time.Duration
	MaxLifetime    time.Duration
}

// YouTubeConfig configures the Data API client used to resolve video durations.
type YouTubeConfig struct {
	APIKey         string
	Endpoint       string
	Timeout        time.Duration
	DailyQuota     int
	QuotaThreshold int
}

// GeminiConfig configures the generative-text client used for summaries.
type GeminiConfig struct {
	BaseURL string
	Model   string
	APIKey  string
	Timeout time.Duration
}

// RedisConfig configures the optional duration cache. An empty URL disables it.
type RedisConfig struct {
	URL         string
	DurationTTL time.Duration
}

// RabbitMQConfig contains RabbitMQ connection and exchange configuration for
// submission events.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type RabbitMQConfig struct {
	Enabled    bool
	Host       string
	User       string
	Password   string
	Exchange   string
	Queue      string
	RoutingKey string
	Port       int
}

// AuthConfig configures verification of identity-provider tokens.
type AuthConfig struct {
	JWTSecret string
	Audience  string
	Issuer    string
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level string
	File  string
}

// Load loads configuration from file and environment variables.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()

	// APP_DATABASE_HOST -> database.host
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use defaults and env vars
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port: %d", c.Server.Port)
	}
	if c.YouTube.DailyQuota < 0 {
		return fmt.Errorf("invalid youtube.dailyquota: %d", c.YouTube.DailyQuota)
	}
	if c.YouTube.Timeout <= 0 || c.Gemini.Timeout <= 0 {
		return fmt.Errorf("external call timeouts must be positive")
	}
	return nil
}

func setDefaults() {
	// Server
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.shutdowntimeout", 30*time.Second)
	viper.SetDefault("server.readtimeout", 15*time.Second)
	viper.SetDefault("server.writetimeout", 90*time.Second)

	// Database
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.name", "ytsummary")
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "postgres")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("database.maxconnections", 25)
	viper.SetDefault("database.minconnections", 5)
	viper.SetDefault("database.maxidletime", 30*time.Minute)
	viper.SetDefault("database.maxlifetime", 1*time.Hour)

	// YouTube Data API
	viper.SetDefault("youtube.apikey", "")
	viper.SetDefault("youtube.endpoint", "")
	viper.SetDefault("youtube.timeout", 10*time.Second)
	viper.SetDefault("youtube.dailyquota", 10000)
	viper.SetDefault("youtube.quotathreshold", 90)

	// Gemini
	viper.SetDefault("gemini.baseurl", "https://generativelanguage.googleapis.com")
	viper.SetDefault("gemini.model", "gemini-1.5-flash")
	viper.SetDefault("gemini.apikey", "")
	viper.SetDefault("gemini.timeout", 60*time.Second)

	// Redis
	viper.SetDefault("redis.url", "")
	viper.SetDefault("redis.durationttl", 24*time.Hour)

	// RabbitMQ
	viper.SetDefault("rabbitmq.enabled", false)
	viper.SetDefault("rabbitmq.host", "localhost")
	viper.SetDefault("rabbitmq.port", 5672)
	viper.SetDefault("rabbitmq.user", "guest")
	viper.SetDefault("rabbitmq.password", "guest")
	viper.SetDefault("rabbitmq.exchange", "ytsummary.events")
	viper.SetDefault("rabbitmq.queue", "ytsummary.submissions")
	viper.SetDefault("rabbitmq.routingkey", "submission.recorded")

	// Auth
	viper.SetDefault("auth.jwtsecret", "")
	viper.SetDefault("auth.audience", "authenticated")
	viper.SetDefault("auth.issuer", "")

	// Logging
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.file", "")
}
