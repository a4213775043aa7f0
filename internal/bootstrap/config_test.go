package bootstrap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("T_DUR_GO", "250ms")
	t.Setenv("T_DUR_SECS", "12")
	t.Setenv("T_DUR_BAD", "soon")

	assert.Equal(t, 250*time.Millisecond, getEnvDuration("T_DUR_GO", time.Second))
	assert.Equal(t, 12*time.Second, getEnvDuration("T_DUR_SECS", time.Second))
	assert.Equal(t, time.Second, getEnvDuration("T_DUR_BAD", time.Second))
	assert.Equal(t, time.Minute, getEnvDuration("T_DUR_UNSET", time.Minute))
}

func TestGetEnvIntAndString(t *testing.T) {
	t.Setenv("T_INT", "42")
	t.Setenv("T_INT_BAD", "x")
	t.Setenv("T_STR", "  value ")
	t.Setenv("T_STR_BLANK", "   ")

	assert.Equal(t, 42, getEnvInt("T_INT", 1))
	assert.Equal(t, 1, getEnvInt("T_INT_BAD", 1))
	assert.Equal(t, "value", getEnvString("T_STR", "def"))
	assert.Equal(t, "def", getEnvString("T_STR_BLANK", "def"))
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("CIE10_TIMEOUT", "")
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_PORT", "6543")

	cfg := LoadConfig()

	assert.Equal(t, 12*time.Second, cfg.CIE10Timeout)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "6543", cfg.DB.Port)
	assert.Equal(t, "uploads", cfg.UploadDir)
}
