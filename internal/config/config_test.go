package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 10*time.Minute, cfg.HoldTTL)
	assert.Equal(t, 30*time.Second, cfg.AvailabilityCacheTTL)
	assert.Equal(t, []string{"log"}, cfg.Sinks())
	assert.Equal(t, "America/Lima", cfg.DefaultTimezone)
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	require.NoError(t, os.Unsetenv("JWT_SECRET"))

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("HOLD_TTL", "0s")
	t.Setenv("NOTIFY_SINKS", " Log, SMTP ,,s3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr())
	assert.Zero(t, cfg.HoldTTL)
	assert.Equal(t, []string{"log", "smtp", "s3"}, cfg.Sinks())
}
