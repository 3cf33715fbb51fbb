package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_ReadsYaml(t *testing.T) {
	path := writeConfig(t, `
http_server:
  port: "9090"
db_server:
  host: db
  port: "5432"
  user: fx
  pass: secret
  name: fxcross
  max_conns: 4
provider:
  base_url: http://fixer.local/api
  base_currency: USD
scheduler:
  refresh_interval_sec: 60
cache:
  max_items: 16
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.HTTPServer.Port)
	require.Equal(t, "db", cfg.DbServer.Host)
	require.Equal(t, int32(4), cfg.DbServer.MaxConns)
	require.Equal(t, "http://fixer.local/api", cfg.Provider.BaseURL)
	require.Equal(t, "USD", cfg.Provider.BaseCurrency)
	require.Equal(t, 60, cfg.Scheduler.RefreshIntervalSec)
	require.Equal(t, int64(16), cfg.Cache.MaxItems)
	require.Equal(t, "debug", cfg.Logging.Level)
	require.Equal(t, 10, cfg.HTTPClient.TimeoutSeconds)
}

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.HTTPServer.Port)
	require.Equal(t, int32(10), cfg.DbServer.MaxConns)
	require.Equal(t, 10, cfg.HTTPClient.TimeoutSeconds)
	require.Equal(t, "EUR", cfg.Provider.BaseCurrency)
	require.Equal(t, 30, cfg.Scheduler.RefreshIntervalSec)
	require.Equal(t, int64(1024), cfg.Cache.MaxItems)
	require.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_EnvOverridesYaml(t *testing.T) {
	path := writeConfig(t, `
db_server:
  host: db
provider:
  base_currency: USD
scheduler:
  refresh_interval_sec: 60
`)
	t.Setenv("DB_HOST", "pg.internal")
	t.Setenv("FIXER_API_KEY", "env-key")
	t.Setenv("PROVIDER_BASE_CURRENCY", "GBP")
	t.Setenv("REFRESH_INTERVAL_SECONDS", "15")
	t.Setenv("HTTP_CLIENT_TIMEOUT_SECONDS", "3")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "pg.internal", cfg.DbServer.Host)
	require.Equal(t, "env-key", cfg.Provider.APIKey)
	require.Equal(t, "GBP", cfg.Provider.BaseCurrency)
	require.Equal(t, 15, cfg.Scheduler.RefreshIntervalSec)
	require.Equal(t, 3, cfg.HTTPClient.TimeoutSeconds)
	require.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_InvalidYaml(t *testing.T) {
	path := writeConfig(t, "http_server: [unclosed")

	_, err := Load(path)
	require.ErrorContains(t, err, "error reading config file")
}

func TestDbServer_GetConnectionStr(t *testing.T) {
	cfg := DbServer{Host: "h", Port: "5432", User: "u", Pass: "p", Name: "n"}
	require.Equal(t, "user=u password=p host=h port=5432 dbname=n sslmode=disable", cfg.GetConnectionStr())
}
