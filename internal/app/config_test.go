package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DOTENV_PATH", filepath.Join(t.TempDir(), "missing.env"))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, StoreRedis, cfg.StoreDriver)
	assert.Equal(t, "drapebook", cfg.RedisNamespace)
	assert.Equal(t, "91", cfg.DefaultCountryCode)
	assert.Equal(t, 10*time.Minute, cfg.ReportCacheTTL)
	assert.False(t, cfg.TwilioEnabled())
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigReadsDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("REDIS_NAMESPACE=studio\nTWILIO_ACCOUNT_SID=AC1\nTWILIO_AUTH_TOKEN=tok\n"), 0o600))
	t.Setenv("DOTENV_PATH", path)
	for _, key := range []string{"REDIS_NAMESPACE", "TWILIO_ACCOUNT_SID", "TWILIO_AUTH_TOKEN"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "studio", cfg.RedisNamespace)
	assert.True(t, cfg.TwilioEnabled())
	assert.Equal(t, cfg.RedisAddr, cfg.RedisConfig().Addr)
}

func TestLoadConfigRejectsUnknownStore(t *testing.T) {
	t.Setenv("DOTENV_PATH", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("STORE_DRIVER", "sqlite")

	_, err := LoadConfig()
	require.ErrorContains(t, err, "STORE_DRIVER")
}

func TestLoadConfigRejectsBadTimezone(t *testing.T) {
	t.Setenv("DOTENV_PATH", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("CRON_TIMEZONE", "Mars/Olympus")

	_, err := LoadConfig()
	require.ErrorContains(t, err, "CRON_TIMEZONE")
}
