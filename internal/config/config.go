package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Redis      RedisConfig      `mapstructure:"redis"`
	CORS       CORSConfig       `mapstructure:"cors"`
	RateLimit  RateLimitConfig  `mapstructure:"ratelimit"`
	Logger     LoggerConfig     `mapstructure:"logger"`
	Classifier ClassifierConfig `mapstructure:"classifier"`
	Gemini     GeminiConfig     `mapstructure:"gemini"`
	Analysis   AnalysisConfig   `mapstructure:"analysis"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	Version     string `mapstructure:"version"`
	Debug       bool   `mapstructure:"debug"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	HTTPPort        int           `mapstructure:"http_port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type RedisConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	TimeFormat string `mapstructure:"time_format"`
}

// ClassifierConfig holds configuration for the hosted inference endpoints.
// PrimaryModels maps a channel to its fine-tuned classification model; the
// zero-shot model is the shared fallback for all channels.
type ClassifierConfig struct {
	BaseURL       string            `mapstructure:"base_url"`
	APIKey        string            `mapstructure:"api_key"`
	Timeout       time.Duration     `mapstructure:"timeout"`
	ZeroShotModel string            `mapstructure:"zero_shot_model"`
	PrimaryModels map[string]string `mapstructure:"primary_models"`
}

type GeminiConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// AnalysisConfig holds analyzer-level tunables. Fusion weights and thresholds
// default in the services package; only deploy-time knobs live here.
type AnalysisConfig struct {
	CacheMaxSize int           `mapstructure:"cache_max_size"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
}

// Load reads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/fraudlens")
	}

	// Environment variables
	v.SetEnvPrefix("FRAUDLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind nested env vars explicitly (viper doesn't auto-bind nested struct fields)
	v.BindEnv("redis.enabled", "FRAUDLENS_REDIS_ENABLED")
	v.BindEnv("redis.host", "FRAUDLENS_REDIS_HOST")
	v.BindEnv("redis.port", "FRAUDLENS_REDIS_PORT")
	v.BindEnv("redis.password", "FRAUDLENS_REDIS_PASSWORD")
	v.BindEnv("classifier.base_url", "FRAUDLENS_CLASSIFIER_BASE_URL")
	v.BindEnv("classifier.api_key", "FRAUDLENS_CLASSIFIER_API_KEY")
	v.BindEnv("gemini.enabled", "FRAUDLENS_GEMINI_ENABLED")
	v.BindEnv("gemini.api_key", "FRAUDLENS_GEMINI_API_KEY")
	v.BindEnv("app.environment", "FRAUDLENS_APP_ENVIRONMENT")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file is optional; defaults plus env are enough to run.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// LoadDefault loads configuration with default path
func LoadDefault() (*Config, error) {
	return Load("")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "fraudlens")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.version", "1.0.0")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.http_port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.key_prefix", "fraudlens:")

	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Accept", "Content-Type", "X-API-Key"})
	v.SetDefault("cors.max_age", 300)

	v.SetDefault("ratelimit.enabled", false)
	v.SetDefault("ratelimit.requests_per_minute", 120)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.time_format", time.RFC3339)

	v.SetDefault("classifier.base_url", "https://api-inference.huggingface.co/models")
	v.SetDefault("classifier.timeout", 20*time.Second)
	v.SetDefault("classifier.zero_shot_model", "facebook/bart-large-mnli")
	v.SetDefault("classifier.primary_models", map[string]string{
		"sms":   "mariagrandury/roberta-base-finetuned-sms-spam-detection",
		"email": "facebook/bart-large-mnli",
		"chat":  "mariagrandury/roberta-base-finetuned-sms-spam-detection",
	})

	v.SetDefault("gemini.enabled", false)
	v.SetDefault("gemini.model", "gemini-2.0-flash-exp")
	v.SetDefault("gemini.timeout", 30*time.Second)

	v.SetDefault("analysis.cache_max_size", 100)
	v.SetDefault("analysis.cache_ttl", time.Hour)
}
