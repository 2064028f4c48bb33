package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	require.Equal(t, ":8080", cfg.EndpointAddr)
	require.Equal(t, 15*time.Minute, cfg.AccessTokenValidityDuration)
	require.Equal(t, 7*24*time.Hour, cfg.RefreshTokenValidityDuration)
	require.Equal(t, 12, cfg.BcryptCost)
	require.Empty(t, cfg.SecretKey, "secret must not have a built-in default")
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	require.Error(t, cfg.Validate(), "empty secret must be rejected")

	cfg.SecretKey = "short"
	require.Error(t, cfg.Validate(), "short secret must be rejected")

	cfg.SecretKey = strings.Repeat("k", 32)
	require.NoError(t, cfg.Validate())

	cfg.AccessTokenValidityDuration = 0
	require.Error(t, cfg.Validate())
}

func TestLoadConfig_FlagsOverrideDefaults(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	os.Args = []string{"test", "-a", ":9090", "-t", "30", "-w", "10"}

	cfg := LoadConfig()
	require.Equal(t, ":9090", cfg.EndpointAddr)
	require.Equal(t, 30*time.Minute, cfg.AccessTokenValidityDuration)
	require.Equal(t, 10, cfg.BcryptCost)
}
