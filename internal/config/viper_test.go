package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test in an empty working directory and home so that no
// developer config.yaml or .env is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	clearTestEnvVars(t)
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	return dir
}

func TestInitializeConfig_Defaults(t *testing.T) {
	isolate(t)

	config, err := InitializeConfig("")
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, "sqlite", config.Database.Driver)
	assert.Equal(t, "", config.Database.DSN)
	assert.Equal(t, ":8080", config.Server.Addr)
	assert.Equal(t, []string{"*"}, config.Server.CORSOrigins)
	assert.Equal(t, 60, config.Server.RequestTimeoutSeconds)
	assert.Equal(t, "", config.Auth.JWTSecret)
	assert.Equal(t, 24, config.Auth.TokenTTLHours)
	assert.Equal(t, "uploads", config.Upload.Dir)
	assert.Equal(t, 20, config.Upload.MaxSizeMB)
	assert.True(t, config.Upload.KeepFiles)
	assert.Equal(t, 120, config.Extraction.TimeoutSeconds)
	assert.Equal(t, "text", config.Report.Format)
	assert.Equal(t, ",", config.Report.CSVDelimiter)
	assert.Equal(t, 80, config.Report.SpanPreviewLength)

	assert.Equal(t, 2*time.Minute, config.ExtractionTimeout())
	assert.Equal(t, time.Minute, config.RequestTimeout())
	assert.Equal(t, 24*time.Hour, config.TokenTTL())
	assert.Equal(t, int64(20<<20), config.MaxUploadBytes())
	assert.Equal(t, ',', config.CSVDelimiterRune())
	assert.Error(t, config.RequireJWTSecret())
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	isolate(t)

	testEnvVars := map[string]string{
		"MOCKTEST_LOG_LEVEL":                  "debug",
		"MOCKTEST_LOG_FORMAT":                 "json",
		"MOCKTEST_DATABASE_DRIVER":            "postgres",
		"MOCKTEST_SERVER_CORS_ORIGINS":        "https://a.example,https://b.example",
		"MOCKTEST_UPLOAD_KEEP_FILES":          "false",
		"MOCKTEST_REPORT_CSV_DELIMITER":       ";",
		"MOCKTEST_REPORT_SPAN_PREVIEW_LENGTH": "40",
		"JWT_SECRET":                          "s3cret",
		"DATABASE_URL":                        "postgres://u:p@db:5432/mocktest",
	}
	for key, value := range testEnvVars {
		t.Setenv(key, value)
	}

	config, err := InitializeConfig("")
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "postgres", config.Database.Driver)
	assert.Equal(t, "postgres://u:p@db:5432/mocktest", config.Database.DSN)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, config.Server.CORSOrigins)
	assert.False(t, config.Upload.KeepFiles)
	assert.Equal(t, ';', config.CSVDelimiterRune())
	assert.Equal(t, 40, config.Report.SpanPreviewLength)
	assert.Equal(t, "s3cret", config.Auth.JWTSecret)
	assert.NoError(t, config.RequireJWTSecret())
}

func TestInitializeConfig_PrefixedSecretWins(t *testing.T) {
	isolate(t)
	t.Setenv("MOCKTEST_AUTH_JWT_SECRET", "prefixed")
	t.Setenv("JWT_SECRET", "plain")

	config, err := InitializeConfig("")
	require.NoError(t, err)
	assert.Equal(t, "prefixed", config.Auth.JWTSecret)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	dir := isolate(t)

	configContent := `
log:
  level: "warn"
database:
  driver: "sqlite"
  dsn: "file:exam.db"
upload:
  dir: "/var/lib/mocktest"
  max_size_mb: 5
report:
  format: "json"
  csv_delimiter: "|"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(configContent), 0600))

	config, err := InitializeConfig("")
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "file:exam.db", config.Database.DSN)
	assert.Equal(t, "/var/lib/mocktest", config.Upload.Dir)
	assert.Equal(t, 5, config.Upload.MaxSizeMB)
	assert.Equal(t, "json", config.Report.Format)
	assert.Equal(t, "|", config.Report.CSVDelimiter)
}

func TestInitializeConfig_HierarchicalPrecedence(t *testing.T) {
	dir := isolate(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"),
		[]byte("log:\n  level: warn\nserver:\n  addr: \":9000\"\n"), 0600))
	t.Setenv("MOCKTEST_LOG_LEVEL", "error")

	config, err := InitializeConfig("")
	require.NoError(t, err)

	assert.Equal(t, "error", config.Log.Level)
	assert.Equal(t, ":9000", config.Server.Addr)
}

func TestInitializeConfig_ExplicitFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: \":7000\"\n"), 0600))

	config, err := InitializeConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", config.Server.Addr)

	_, err = InitializeConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "log level", mutate: func(c *Config) { c.Log.Level = "loud" }},
		{name: "log format", mutate: func(c *Config) { c.Log.Format = "xml" }},
		{name: "driver", mutate: func(c *Config) { c.Database.Driver = "oracle" }},
		{name: "request timeout", mutate: func(c *Config) { c.Server.RequestTimeoutSeconds = 0 }},
		{name: "token ttl", mutate: func(c *Config) { c.Auth.TokenTTLHours = 0 }},
		{name: "upload size", mutate: func(c *Config) { c.Upload.MaxSizeMB = 4096 }},
		{name: "extraction timeout", mutate: func(c *Config) { c.Extraction.TimeoutSeconds = -1 }},
		{name: "report format", mutate: func(c *Config) { c.Report.Format = "xml" }},
		{name: "delimiter", mutate: func(c *Config) { c.Report.CSVDelimiter = ";;" }},
		{name: "span preview", mutate: func(c *Config) { c.Report.SpanPreviewLength = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			config, err := InitializeConfig("")
			require.NoError(t, err)
			require.NoError(t, validateConfig(config))

			tt.mutate(config)
			assert.Error(t, validateConfig(config))
		})
	}
}

func TestLoadEnv(t *testing.T) {
	dir := isolate(t)
	t.Setenv("MOCKTEST_TEST_ONLY", "")
	require.NoError(t, os.Unsetenv("MOCKTEST_TEST_ONLY"))

	assert.Equal(t, "", LoadEnv(nil))

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("MOCKTEST_TEST_ONLY=from-dotenv\n"), 0600))
	assert.Equal(t, ".env", LoadEnv(nil))
	assert.Equal(t, "from-dotenv", GetEnv("MOCKTEST_TEST_ONLY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("MOCKTEST_NOT_SET_ANYWHERE", "fallback"))
}

func clearTestEnvVars(t *testing.T) {
	envVars := []string{
		"MOCKTEST_LOG_LEVEL",
		"MOCKTEST_LOG_FORMAT",
		"MOCKTEST_DATABASE_DRIVER",
		"MOCKTEST_DATABASE_DSN",
		"MOCKTEST_SERVER_ADDR",
		"MOCKTEST_SERVER_CORS_ORIGINS",
		"MOCKTEST_SERVER_REQUEST_TIMEOUT_SECONDS",
		"MOCKTEST_AUTH_JWT_SECRET",
		"MOCKTEST_AUTH_TOKEN_TTL_HOURS",
		"MOCKTEST_UPLOAD_DIR",
		"MOCKTEST_UPLOAD_MAX_SIZE_MB",
		"MOCKTEST_UPLOAD_KEEP_FILES",
		"MOCKTEST_EXTRACTION_TIMEOUT_SECONDS",
		"MOCKTEST_REPORT_FORMAT",
		"MOCKTEST_REPORT_CSV_DELIMITER",
		"MOCKTEST_REPORT_SPAN_PREVIEW_LENGTH",
		"JWT_SECRET",
		"DATABASE_URL",
	}

	for _, envVar := range envVars {
		t.Setenv(envVar, "")
		require.NoError(t, os.Unsetenv(envVar))
	}
}
