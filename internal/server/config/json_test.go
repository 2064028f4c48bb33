package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseJson_Overlay(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	path := filepath.Join(t.TempDir(), "server.json")
	body := `{
		"endpoint_addr": ":7070",
		"secret_key": "json-secret-json-secret-json-sec",
		"access_token_validity_duration": "20m"
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	os.Args = []string{"test", "-c", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	require.Equal(t, ":7070", cfg.EndpointAddr)
	require.Equal(t, "json-secret-json-secret-json-sec", cfg.SecretKey)
	require.Equal(t, 20*time.Minute, cfg.AccessTokenValidityDuration)
	// Fields absent from the file keep their defaults.
	require.Equal(t, 7*24*time.Hour, cfg.RefreshTokenValidityDuration)
}

func TestParseJson_NoFile(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	os.Args = []string{"test"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	require.Equal(t, ":8080", cfg.EndpointAddr)
}

func TestParseJson_InvalidFilePanics(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	os.Args = []string{"test", "-c", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	require.Panics(t, func() { parseJson(cfg) })
}
