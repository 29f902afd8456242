// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"fjacquet/mocktest/internal/report"
	"fjacquet/mocktest/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by the configuration.
const EnvPrefix = "MOCKTEST"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Database struct {
		Driver string `mapstructure:"driver" yaml:"driver"`
		DSN    string `mapstructure:"dsn" yaml:"-"` // may embed credentials
	} `mapstructure:"database" yaml:"database"`

	Server struct {
		Addr                  string   `mapstructure:"addr" yaml:"addr"`
		CORSOrigins           []string `mapstructure:"cors_origins" yaml:"cors_origins"`
		RequestTimeoutSeconds int      `mapstructure:"request_timeout_seconds" yaml:"request_timeout_seconds"`
	} `mapstructure:"server" yaml:"server"`

	Auth struct {
		JWTSecret     string `mapstructure:"jwt_secret" yaml:"-"` // never serialize
		TokenTTLHours int    `mapstructure:"token_ttl_hours" yaml:"token_ttl_hours"`
	} `mapstructure:"auth" yaml:"auth"`

	Upload struct {
		Dir       string `mapstructure:"dir" yaml:"dir"`
		MaxSizeMB int    `mapstructure:"max_size_mb" yaml:"max_size_mb"`
		KeepFiles bool   `mapstructure:"keep_files" yaml:"keep_files"`
	} `mapstructure:"upload" yaml:"upload"`

	Extraction struct {
		TimeoutSeconds int `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	} `mapstructure:"extraction" yaml:"extraction"`

	Report struct {
		Format            string `mapstructure:"format" yaml:"format"`
		CSVDelimiter      string `mapstructure:"csv_delimiter" yaml:"csv_delimiter"`
		SpanPreviewLength int    `mapstructure:"span_preview_length" yaml:"span_preview_length"`
	} `mapstructure:"report" yaml:"report"`
}

// InitializeConfig loads the configuration from defaults, the first
// config.yaml found, and the environment. A non-empty configFile replaces the
// search and must exist.
func InitializeConfig(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.mocktest")
		v.AddConfigPath(".mocktest")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless named explicitly)
	if err := v.ReadInConfig(); err != nil {
		if configFile != "" {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// 5. Unprefixed variables commonly set by hosting platforms
	if err := v.BindEnv("auth.jwt_secret", EnvPrefix+"_AUTH_JWT_SECRET", "JWT_SECRET"); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to bind JWT_SECRET environment variable: %v\n", err)
	}
	if err := v.BindEnv("database.dsn", EnvPrefix+"_DATABASE_DSN", "DATABASE_URL"); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to bind DATABASE_URL environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("database.driver", string(store.DriverSQLite))
	v.SetDefault("database.dsn", "")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.request_timeout_seconds", 60)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl_hours", 24)

	v.SetDefault("upload.dir", "uploads")
	v.SetDefault("upload.max_size_mb", 20)
	v.SetDefault("upload.keep_files", true)

	v.SetDefault("extraction.timeout_seconds", 120)

	v.SetDefault("report.format", report.FormatText)
	v.SetDefault("report.csv_delimiter", ",")
	v.SetDefault("report.span_preview_length", report.DefaultSpanPreview)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if _, err := store.ParseDriver(config.Database.Driver); err != nil {
		return err
	}

	if config.Server.RequestTimeoutSeconds < 1 || config.Server.RequestTimeoutSeconds > 3600 {
		return fmt.Errorf("server.request_timeout_seconds must be between 1 and 3600, got: %d", config.Server.RequestTimeoutSeconds)
	}

	if config.Auth.TokenTTLHours < 1 || config.Auth.TokenTTLHours > 8760 {
		return fmt.Errorf("auth.token_ttl_hours must be between 1 and 8760, got: %d", config.Auth.TokenTTLHours)
	}

	if config.Upload.MaxSizeMB < 1 || config.Upload.MaxSizeMB > 1024 {
		return fmt.Errorf("upload.max_size_mb must be between 1 and 1024, got: %d", config.Upload.MaxSizeMB)
	}

	if config.Extraction.TimeoutSeconds < 0 || config.Extraction.TimeoutSeconds > 3600 {
		return fmt.Errorf("extraction.timeout_seconds must be between 0 and 3600, got: %d", config.Extraction.TimeoutSeconds)
	}

	if !isReportFormat(config.Report.Format) {
		return fmt.Errorf("invalid report format: %s (must be one of %s)", config.Report.Format, strings.Join(report.Formats, ", "))
	}

	if utf8.RuneCountInString(config.Report.CSVDelimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.Report.CSVDelimiter)
	}

	if config.Report.SpanPreviewLength < 1 {
		return fmt.Errorf("report.span_preview_length must be positive, got: %d", config.Report.SpanPreviewLength)
	}

	return nil
}

func isReportFormat(format string) bool {
	for _, f := range report.Formats {
		if f == format {
			return true
		}
	}
	return false
}

// RequireJWTSecret fails when no token signing secret is configured.
func (c *Config) RequireJWTSecret() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required (set %s_AUTH_JWT_SECRET or JWT_SECRET)", EnvPrefix)
	}
	return nil
}

// CSVDelimiterRune returns the report CSV delimiter.
func (c *Config) CSVDelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Report.CSVDelimiter)
	if r == utf8.RuneError {
		return ','
	}
	return r
}

// ExtractionTimeout bounds text extraction of one document. Zero disables it.
func (c *Config) ExtractionTimeout() time.Duration {
	return time.Duration(c.Extraction.TimeoutSeconds) * time.Second
}

// RequestTimeout bounds the handling of one HTTP request.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.RequestTimeoutSeconds) * time.Second
}

// TokenTTL is the lifetime of issued bearer tokens.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenTTLHours) * time.Hour
}

// MaxUploadBytes is the largest accepted upload body.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Upload.MaxSizeMB) << 20
}
