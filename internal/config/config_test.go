package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, 5*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, SourceMySQL, cfg.Source.Kind)
	assert.Equal(t, 15*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, 3, cfg.Order.MaxRetryAttempts)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SERVER_PORT", "9191")
	t.Setenv("DB_MAX_OPEN_CONNS", "50")
	t.Setenv("SOURCE_KIND", "API")
	t.Setenv("UPSTREAM_BASE_URL", "https://bakery.example.com/api/")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, 50, cfg.Database.MaxOpenConns)
	assert.Equal(t, SourceAPI, cfg.Source.Kind)
	assert.Equal(t, "https://bakery.example.com/api", cfg.Upstream.BaseURL)
}

func TestLoad_FileThenEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "config.yaml")
	content := "db:\n  host: mysql.internal\n  name: fournil\nlog:\n  level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("DB_NAME", "fournil_env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "mysql.internal", cfg.Database.Host)
	assert.Equal(t, "fournil_env", cfg.Database.Name)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_ENCODING=console\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("LOG_ENCODING") })

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "console", cfg.Log.Encoding)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("UPSTREAM_TIMEOUT", "soon")

	_, err := Load("")
	assert.ErrorContains(t, err, "upstream.timeout")
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{Port: 8080},
		Source: SourceConfig{Kind: "ftp"},
		Order:  OrderConfig{MaxRetryAttempts: 3},
	}
	assert.Error(t, cfg.Validate())

	cfg.Source.Kind = SourceAPI
	assert.Error(t, cfg.Validate())

	cfg.Upstream.BaseURL = "http://upstream"
	assert.NoError(t, cfg.Validate())

	cfg.Order.MaxRetryAttempts = 0
	assert.Error(t, cfg.Validate())

	cfg.Order.MaxRetryAttempts = 1
	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())
}

func TestExportConfig_Location(t *testing.T) {
	assert.Equal(t, time.UTC, ExportConfig{Timezone: "Nowhere/Void"}.Location())
}
