package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
)

type Config struct {
	Environment       string `mapstructure:"TRS_ENVIRONMENT"`
	ServerName        string `mapstructure:"TRS_SERVER_NAME"`
	ServerAddress     string `mapstructure:"TRS_SERVER_BIND_ADDR"`
	ServerReadTimeout int16  `mapstructure:"TRS_SERVER_READ_TIMEOUT"`
	LogFormat         string `mapstructure:"TRS_LOG_FORMAT"` // text or json
	LogLevel          string `mapstructure:"TRS_LOG_LEVEL"`  // debug, info, warn, error
	RateLimitMax      int    `mapstructure:"TRS_RATE_LIMIT_MAX"`
	RateLimitWindow   int    `mapstructure:"TRS_RATE_LIMIT_WINDOW"`

	DbHost           string `mapstructure:"TRS_DB_HOST"`
	DbPort           int16  `mapstructure:"TRS_DB_PORT"`
	DbSSLMode        string `mapstructure:"TRS_DB_SSL"`
	DbUser           string `mapstructure:"TRS_DB_USER"`
	DbPassword       string `mapstructure:"TRS_DB_PASSWORD"`
	DbDatabaseName   string `mapstructure:"TRS_DB_DATABASE"`
	DbMaxConnections int    `mapstructure:"TRS_DB_MAX_CONNECTIONS"`

	// Redis hot cache (optional, disabled when host is empty)
	RedisHost string `mapstructure:"TRS_REDIS_HOST"`
	RedisPort int16  `mapstructure:"TRS_REDIS_PORT"`
	RedisDb   int    `mapstructure:"TRS_REDIS_DB"`
	RedisUser string `mapstructure:"TRS_REDIS_USER"`
	RedisPass string `mapstructure:"TRS_REDIS_PASS"`
	RedisTTL  int    `mapstructure:"TRS_REDIS_TTL_SECONDS"`

	OtlpEndpoint   string `mapstructure:"TRS_OTLP_ENDPOINT"`
	JaegerEndpoint string `mapstructure:"TRS_JAEGER_ENDPOINT"`

	// Model gateway configuration
	ModelAPIKey       string  `mapstructure:"TRS_MODEL_API_KEY"`
	ModelName         string  `mapstructure:"TRS_MODEL_NAME"`
	ModelBaseURL      string  `mapstructure:"TRS_MODEL_BASE_URL"`
	ModelMaxTokens    int     `mapstructure:"TRS_MODEL_MAX_TOKENS"`
	ModelTemperature  float64 `mapstructure:"TRS_MODEL_TEMPERATURE"`
	ModelTimeout      int     `mapstructure:"TRS_MODEL_TIMEOUT"` // seconds
	ModelRateLimitQPS int     `mapstructure:"TRS_MODEL_RATE_LIMIT_QPS"`
}

// DefaultConfig generates a config with sane defaults.
// See: The example .env file in the package docs for default values.
func DefaultConfig() Config {
	return Config{
		Environment:       "local",
		ServerName:        "translation-service",
		ServerAddress:     "0.0.0.0:3002",
		ServerReadTimeout: 60,
		LogFormat:         "text",
		LogLevel:          "info",
		RateLimitMax:      100,
		RateLimitWindow:   30,

		DbHost:           "localhost",
		DbPort:           5432,
		DbSSLMode:        "disable",
		DbUser:           "postgres",
		DbPassword:       "postgres",
		DbDatabaseName:   "ai-nexus",
		DbMaxConnections: 100,

		RedisHost: "",
		RedisPort: 6379,
		RedisDb:   0,
		RedisUser: "redis",
		RedisPass: "redis",
		RedisTTL:  3600,

		OtlpEndpoint:   "localhost:4317",
		JaegerEndpoint: "http://localhost:14268/api/traces",

		ModelAPIKey:       "",
		ModelName:         "gpt-4o-mini",
		ModelBaseURL:      "https://api.openai.com/v1",
		ModelMaxTokens:    2000,
		ModelTemperature:  0.3,
		ModelTimeout:      45,
		ModelRateLimitQPS: 10,
	}
}

// LoadConfig will attempt to load a configuration from the default file location and fallback to environment variables.
func LoadConfig() (Config, error) {
	envFile := os.Getenv("TRS_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}

	var cfg Config
	var err error

	if _, err = os.Stat(envFile); errors.Is(err, os.ErrNotExist) {
		cfg, err = ConfigFromEnvironment()
	} else {
		// Load configuration
		cfg, err = ConfigFromFile(envFile)
	}

	return cfg, err
}

// ConfigFromEnvironment will look for the specified configuration from environment variables
// See package docs for a list of available environment variables.
func ConfigFromEnvironment() (config Config, err error) {
	// Set defaults
	config = DefaultConfig()
	viper.SetDefault("TRS_ENVIRONMENT", config.Environment)
	viper.SetDefault("TRS_SERVER_NAME", config.ServerName)
	viper.SetDefault("TRS_SERVER_BIND_ADDR", config.ServerAddress)
	viper.SetDefault("TRS_SERVER_READ_TIMEOUT", config.ServerReadTimeout)
	viper.SetDefault("TRS_LOG_LEVEL", config.LogLevel)
	viper.SetDefault("TRS_LOG_FORMAT", config.LogFormat)
	viper.SetDefault("TRS_RATE_LIMIT_MAX", config.RateLimitMax)
	viper.SetDefault("TRS_RATE_LIMIT_WINDOW", config.RateLimitWindow)
	viper.SetDefault("TRS_DB_HOST", config.DbHost)
	viper.SetDefault("TRS_DB_PORT", config.DbPort)
	viper.SetDefault("TRS_DB_SSL", config.DbSSLMode)
	viper.SetDefault("TRS_DB_USER", config.DbUser)
	viper.SetDefault("TRS_DB_PASSWORD", config.DbPassword)
	viper.SetDefault("TRS_DB_DATABASE", config.DbDatabaseName)
	viper.SetDefault("TRS_DB_MAX_CONNECTIONS", config.DbMaxConnections)
	viper.SetDefault("TRS_REDIS_HOST", config.RedisHost)
	viper.SetDefault("TRS_REDIS_PORT", config.RedisPort)
	viper.SetDefault("TRS_REDIS_USER", config.RedisUser)
	viper.SetDefault("TRS_REDIS_PASS", config.RedisPass)
	viper.SetDefault("TRS_REDIS_DB", config.RedisDb)
	viper.SetDefault("TRS_REDIS_TTL_SECONDS", config.RedisTTL)
	viper.SetDefault("TRS_OTLP_ENDPOINT", config.OtlpEndpoint)
	viper.SetDefault("TRS_JAEGER_ENDPOINT", config.JaegerEndpoint)
	viper.SetDefault("TRS_MODEL_API_KEY", config.ModelAPIKey)
	viper.SetDefault("TRS_MODEL_NAME", config.ModelName)
	viper.SetDefault("TRS_MODEL_BASE_URL", config.ModelBaseURL)
	viper.SetDefault("TRS_MODEL_MAX_TOKENS", config.ModelMaxTokens)
	viper.SetDefault("TRS_MODEL_TEMPERATURE", config.ModelTemperature)
	viper.SetDefault("TRS_MODEL_TIMEOUT", config.ModelTimeout)
	viper.SetDefault("TRS_MODEL_RATE_LIMIT_QPS", config.ModelRateLimitQPS)

	// Override config values with environment variables
	viper.AutomaticEnv()
	err = viper.Unmarshal(&config)
	return
}

// ConfigFromFile will look for the specified configuration file in the current directory and initialize
// a Config from it. Values provided by environment variables will override ones found in
// the file. See package docs for a list of available environment variables.
func ConfigFromFile(f string) (config Config, err error) {
	if config, err = ConfigFromEnvironment(); err != nil {
		return
	}

	viper.AddConfigPath(".")
	viper.SetConfigFile(f)
	viper.SetConfigType("env")

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	err = viper.Unmarshal(&config)

	return
}

// Fiber initializes and returns a Fiber config based on server config values.
// See https://docs.gofiber.io/api/fiber#config
func (c Config) Fiber() fiber.Config {
	return fiber.Config{
		ReadTimeout: time.Second * time.Duration(c.ServerReadTimeout),
		BodyLimit:   1 * 1024 * 1024, // 1MB, translation payloads are small
	}
}

// DbConnectionString generates a connection string for the database based on config values.
func (c Config) DbConnectionString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%d/%s?sslmode=%s", c.DbUser, url.QueryEscape(c.DbPassword), c.DbHost, c.DbPort, c.DbDatabaseName, c.DbSSLMode)
}

// RedisEnabled reports whether the optional Redis hot cache is configured.
func (c Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

// RedisAddr returns the Redis server address.
func (c Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// GetSlogLevel converts the string log level to slog.Level.
func (c Config) GetSlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo // default fallback
	}
}

// GetModelConfig converts config values to model gateway configuration struct.
func (c Config) GetModelConfig() ModelConfig {
	return ModelConfig{
		APIKey:         c.ModelAPIKey,
		Model:          c.ModelName,
		BaseURL:        c.ModelBaseURL,
		MaxTokens:      c.ModelMaxTokens,
		Temperature:    c.ModelTemperature,
		RequestTimeout: time.Duration(c.ModelTimeout) * time.Second,
		RateLimitQPS:   c.ModelRateLimitQPS,
	}
}

// ModelConfig holds model gateway client configuration
type ModelConfig struct {
	APIKey         string
	Model          string // e.g., "gpt-4o-mini"
	BaseURL        string // for switching to a local gateway later
	MaxTokens      int
	Temperature    float64
	RequestTimeout time.Duration
	RateLimitQPS   int
}
