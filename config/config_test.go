package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaultsAndEnv(t *testing.T) {
	t.Setenv("ENV", "qc")
	t.Setenv("QC_DB_USER", "resort")
	t.Setenv("QC_DB_NAME", "bookings")
	t.Setenv("QC_DB_PASSWORD", "s3cret")
	t.Setenv("SECRET_KEY_ACCESS_TOKEN", "test-secret")
	t.Setenv("TOKEN_TTL_MINUTES", "90")
	t.Setenv("INVENTORY_RETRIES", "5")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8083", cfg.Port)
	assert.Equal(t, "resort", cfg.DB.User)
	assert.Equal(t, "5432", cfg.DB.Port)
	assert.Equal(t, 90*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, 5, cfg.InventoryRetries)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.NotContains(t, cfg.DB.Redacted(), "s3cret")
}

func TestLoadRejectsUnknownEnv(t *testing.T) {
	t.Setenv("ENV", "staging")
	t.Setenv("SECRET_KEY_ACCESS_TOKEN", "test-secret")

	_, err := Load()
	assert.ErrorContains(t, err, "unknown environment")
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("ENV", "dev")
	t.Setenv("DEV_DB_USER", "u")
	t.Setenv("DEV_DB_NAME", "n")
	t.Setenv("SECRET_KEY_ACCESS_TOKEN", "")

	_, err := Load()
	assert.ErrorContains(t, err, "SECRET_KEY_ACCESS_TOKEN")
}
