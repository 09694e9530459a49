package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	t.Setenv("DB_DSN", "user:pass@tcp(localhost:3306)/app")
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("SESSION_STORE", "")
	t.Setenv("TOKEN_TTL", "90m")
	t.Setenv("MAX_UPLOAD_MB", "2")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("OUTBOX_POLL_INTERVAL", "not-a-duration")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, SessionStoreDatabase, cfg.SessionStore)
	assert.Equal(t, 90*time.Minute, cfg.TokenTTL)
	assert.Equal(t, int64(2<<20), cfg.MaxUploadBytes)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, time.Second, cfg.OutboxPollInterval)
}

func TestValidate(t *testing.T) {
	base := Config{DBDriver: "postgres", DBDSN: "dsn", JWTSecret: "s", SessionStore: SessionStoreDatabase, TokenTTL: time.Hour}
	require.NoError(t, base.Validate())

	missingSecret := base
	missingSecret.JWTSecret = ""
	assert.Error(t, missingSecret.Validate())

	redisNoAddr := base
	redisNoAddr.SessionStore = SessionStoreRedis
	assert.Error(t, redisNoAddr.Validate())

	badDriver := base
	badDriver.DBDriver = "oracle"
	assert.Error(t, badDriver.Validate())
}
