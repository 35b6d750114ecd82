package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"plant-irrigation-api/db"

	"github.com/gofiber/fiber/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "irrigation.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, db.DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, db.DefaultQueryTimeout, cfg.Database.QueryTimeout)
	assert.Equal(t, log.LevelInfo, cfg.FiberLogLevel())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
server:
  listen: ":9090"
  shutdown_timeout: 3s
database:
  driver: sqlite
  database: /var/lib/irrigation/plants.db
  query_timeout: 500ms
log_level: DEBUG
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Listen)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, db.DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "/var/lib/irrigation/plants.db", cfg.Database.Database)
	assert.Equal(t, 500*time.Millisecond, cfg.Database.QueryTimeout)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, log.LevelDebug, cfg.FiberLogLevel())
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, `
server:
  listen: ":9090"
database:
  driver: sqlite
log_level: info
`)
	t.Setenv("LISTEN_ADDR", "127.0.0.1:8000")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("DB_DRIVER", "pgx")
	t.Setenv("DB_HOST", "db.internal")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8000", cfg.Server.Listen)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, db.DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "db.internal", cfg.Database.Host)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"Unknown driver", "database:\n  driver: mongodb\n"},
		{"Unknown log level", "log_level: loud\n"},
		{"Empty listen address", "server:\n  listen: \"\"\n"},
		{"Malformed YAML", "server: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
