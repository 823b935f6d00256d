package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
[server]
http_port = 8090

[database]
host = "db"
port = 5433
user = "agenda"
password = "secret"
dbname = "agenda"

[redis]
enabled = true
addr = "redis:6379"
cache_ttl_seconds = 60

[scheduling]
timezone = "Europe/Paris"
min_booking_notice_minutes = 60
pending_ttl_minutes = 15

[rate_limit]
enabled = true
rps = 2.5
burst = 5
trust_forwarded = true
`

func TestParse(t *testing.T) {
	cfg, err := Parse(sample)
	require.NoError(t, err)

	assert.Equal(t, 8090, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ReadTimeout, "defaults survive partial sections")
	assert.Equal(t, "host=db port=5433 user=agenda password=secret dbname=agenda sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, time.Minute, cfg.Redis.CacheTTL())
	assert.Equal(t, 60, cfg.Scheduling.MinBookingNoticeMinutes)
	assert.Equal(t, 5, cfg.Scheduling.JoinNotBeforeMinutes)
	assert.Equal(t, 10, cfg.Scheduling.JoinNotAfterMinutes)
	assert.Equal(t, 15*time.Minute, cfg.Scheduling.PendingTTL())
	assert.Equal(t, "@every 1m", cfg.Scheduling.ReaperSchedule)
	assert.Equal(t, 2.5, cfg.RateLimit.RPS)
	assert.True(t, cfg.RateLimit.TrustForwarded)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing dbname", `[server]
http_port = 8080`},
		{"bad timezone", `[database]
dbname = "x"
[scheduling]
timezone = "Nowhere/Land"`},
		{"zero pending ttl", `[database]
dbname = "x"
[scheduling]
pending_ttl_minutes = 0`},
		{"redis without ttl", `[database]
dbname = "x"
[redis]
enabled = true
cache_ttl_seconds = 0`},
		{"rate limit without rps", `[database]
dbname = "x"
[rate_limit]
enabled = true
rps = 0`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse(`[server`)
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Redis.Enabled)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
