package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db.internal"
port = 5433
user = "booking"
password = "secret"
dbname = "booking_service"

[redis]
enabled = true
addr = "redis.internal:6379"

[availability]
fail_open = false

[logs]
file = "logs/test.log"
level = "debug"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "host=db.internal port=5433 user=booking password=secret dbname=booking_service sslmode=disable", cfg.Database.DSN())
	assert.True(t, cfg.Redis.Enabled)
	assert.False(t, cfg.Availability.FailOpen)
	assert.Equal(t, "debug", cfg.Logs.Level)

	// Omitted sections keep their defaults.
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, 30, cfg.Redis.LockTTLSecs)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoadDefaultsFailOpen(t *testing.T) {
	path := writeConfig(t, `
[database]
user = "booking"
dbname = "booking_service"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Availability.FailOpen)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing database user",
			content: "[database]\ndbname = \"x\"\n",
			wantErr: "database.user",
		},
		{
			name:    "whatsapp enabled without url",
			content: "[database]\nuser = \"u\"\ndbname = \"x\"\n\n[whatsapp]\nenabled = true\n",
			wantErr: "whatsapp.url",
		},
		{
			name:    "calendar enabled without credentials",
			content: "[database]\nuser = \"u\"\ndbname = \"x\"\n\n[calendar]\nenabled = true\n",
			wantErr: "calendar.credentials_file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
