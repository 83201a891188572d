package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	S3     S3Config
	Log    LogConfig
	OCR    OCRConfig
	Dict   DictConfig
	CORS   CORSConfig
	Queue  QueueConfig
}

// QueueConfig holds extract queue worker settings.
type QueueConfig struct {
	PollIntervalSecs int `mapstructure:"poll_interval_secs"`
	MaxRetries       int `mapstructure:"max_retries"`
	Concurrency      int `mapstructure:"concurrency"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// OCRConfig holds text acquisition settings. The Azure fields configure the
// Computer Vision OCR strategy; MinTextLen and AttemptTimeoutSecs tune the
// fallback orchestrator.
type OCRConfig struct {
	AzureEndpoint      string `mapstructure:"azure_endpoint"`
	AzureKey           string `mapstructure:"azure_key"`
	MinTextLen         int    `mapstructure:"min_text_len"`
	AttemptTimeoutSecs int    `mapstructure:"attempt_timeout_secs"`
}

// AttemptTimeout returns the per-strategy timeout as a duration.
func (o *OCRConfig) AttemptTimeout() time.Duration {
	return time.Duration(o.AttemptTimeoutSecs) * time.Second
}

// DictConfig holds extra dictionary entries merged into the built-in
// extraction dictionary. Each value is a comma-separated list.
type DictConfig struct {
	ExtraCompanies   []string `mapstructure:"extra_companies"`
	ExtraAccessories []string `mapstructure:"extra_accessories"`
	ExtraUnits       []string `mapstructure:"extra_units"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the INVOSCAN_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("INVOSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "invoscan")
	v.SetDefault("db.password", "invoscan_secret")
	v.SetDefault("db.name", "invoscan_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "invoscan-uploads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 50)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// OCR defaults
	v.SetDefault("ocr.azure_endpoint", "")
	v.SetDefault("ocr.azure_key", "")
	v.SetDefault("ocr.min_text_len", 10)
	v.SetDefault("ocr.attempt_timeout_secs", 30)

	// Dictionary defaults (comma-separated extras on top of the built-ins)
	v.SetDefault("dict.extra_companies", "")
	v.SetDefault("dict.extra_accessories", "")
	v.SetDefault("dict.extra_units", "")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Queue defaults
	v.SetDefault("queue.poll_interval_secs", 10)
	v.SetDefault("queue.max_retries", 5)
	v.SetDefault("queue.concurrency", 5)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":              "INVOSCAN_SERVER_PORT",
		"server.read_timeout":      "INVOSCAN_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "INVOSCAN_SERVER_WRITE_TIMEOUT",
		"server.environment":       "INVOSCAN_SERVER_ENVIRONMENT",
		"db.host":                  "INVOSCAN_DB_HOST",
		"db.port":                  "INVOSCAN_DB_PORT",
		"db.user":                  "INVOSCAN_DB_USER",
		"db.password":              "INVOSCAN_DB_PASSWORD",
		"db.name":                  "INVOSCAN_DB_NAME",
		"db.sslmode":               "INVOSCAN_DB_SSLMODE",
		"db.max_open":              "INVOSCAN_DB_MAX_OPEN",
		"db.max_idle":              "INVOSCAN_DB_MAX_IDLE",
		"s3.region":                "INVOSCAN_S3_REGION",
		"s3.bucket":                "INVOSCAN_S3_BUCKET",
		"s3.endpoint":              "INVOSCAN_S3_ENDPOINT",
		"s3.access_key":            "INVOSCAN_S3_ACCESS_KEY",
		"s3.secret_key":            "INVOSCAN_S3_SECRET_KEY",
		"s3.max_file_size_mb":      "INVOSCAN_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":        "INVOSCAN_S3_PRESIGN_EXPIRY",
		"log.level":                "INVOSCAN_LOG_LEVEL",
		"log.format":               "INVOSCAN_LOG_FORMAT",
		"ocr.azure_endpoint":       "INVOSCAN_OCR_AZURE_ENDPOINT",
		"ocr.azure_key":            "INVOSCAN_OCR_AZURE_KEY",
		"ocr.min_text_len":         "INVOSCAN_OCR_MIN_TEXT_LEN",
		"ocr.attempt_timeout_secs": "INVOSCAN_OCR_ATTEMPT_TIMEOUT_SECS",
		"dict.extra_companies":     "INVOSCAN_DICT_EXTRA_COMPANIES",
		"dict.extra_accessories":   "INVOSCAN_DICT_EXTRA_ACCESSORIES",
		"dict.extra_units":         "INVOSCAN_DICT_EXTRA_UNITS",
		"cors.allowed_origins":     "INVOSCAN_CORS_ALLOWED_ORIGINS",
		"queue.poll_interval_secs": "INVOSCAN_QUEUE_POLL_INTERVAL_SECS",
		"queue.max_retries":        "INVOSCAN_QUEUE_MAX_RETRIES",
		"queue.concurrency":        "INVOSCAN_QUEUE_CONCURRENCY",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if INVOSCAN_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("INVOSCAN_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.OCR = OCRConfig{
		AzureEndpoint:      v.GetString("ocr.azure_endpoint"),
		AzureKey:           v.GetString("ocr.azure_key"),
		MinTextLen:         v.GetInt("ocr.min_text_len"),
		AttemptTimeoutSecs: v.GetInt("ocr.attempt_timeout_secs"),
	}
	cfg.Dict = DictConfig{
		ExtraCompanies:   splitList(v.GetString("dict.extra_companies")),
		ExtraAccessories: splitList(v.GetString("dict.extra_accessories")),
		ExtraUnits:       splitList(v.GetString("dict.extra_units")),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.Queue = QueueConfig{
		PollIntervalSecs: v.GetInt("queue.poll_interval_secs"),
		MaxRetries:       v.GetInt("queue.max_retries"),
		Concurrency:      v.GetInt("queue.concurrency"),
	}

	return cfg, nil
}

// splitList parses a comma-separated string into trimmed non-empty entries.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
