package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.EndpointAddr)
	assert.Equal(t, "secretKey", c.SecretKey)
	assert.Equal(t, 15*time.Minute, c.AccessTokenValidityDuration)
}

func TestParseEnv(t *testing.T) {
	t.Setenv("GEOSICK_ADDRESS", ":9999")
	t.Setenv("GEOSICK_SECRET_KEY", "envsecret")
	t.Setenv("GEOSICK_TOKEN_VALIDITY", "30m")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, ":9999", cfg.EndpointAddr)
	assert.Equal(t, "envsecret", cfg.SecretKey)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenValidityDuration)
}

func TestParseEnvIgnoresInvalidDuration(t *testing.T) {
	t.Setenv("GEOSICK_TOKEN_VALIDITY", "notaduration")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, 15*time.Minute, cfg.AccessTokenValidityDuration)
}

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"cmd", "-a", ":7070", "-d", "postgres://u:p@h/db", "-k", "flagsecret"}

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NotPanics(t, func() { parseFlags(cfg) })

	assert.Equal(t, ":7070", cfg.EndpointAddr)
	assert.Equal(t, "postgres://u:p@h/db", cfg.DatabaseDSN)
	assert.Equal(t, "flagsecret", cfg.SecretKey)
}
