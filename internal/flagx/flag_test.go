package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterArgs_SeparateValue(t *testing.T) {
	args := []string{"-a", ":8080", "-x", "junk", "-d", "dsn"}
	got := FilterArgs(args, []string{"-a", "-d"})
	require.Equal(t, []string{"-a", ":8080", "-d", "dsn"}, got)
}

func TestFilterArgs_EqualsForm(t *testing.T) {
	args := []string{"--config=conf.json", "-a=:9090", "--other=zzz"}
	got := FilterArgs(args, []string{"--config", "-a"})
	require.Equal(t, []string{"--config=conf.json", "-a=:9090"}, got)
}

func TestFilterArgs_FlagWithoutValue(t *testing.T) {
	// A flag followed by another flag has no value to capture.
	args := []string{"-a", "-d", "dsn"}
	got := FilterArgs(args, []string{"-a", "-d"})
	require.Equal(t, []string{"-a", "-d", "dsn"}, got)
}

func TestFilterArgs_Empty(t *testing.T) {
	got := FilterArgs(nil, []string{"-a"})
	require.NotNil(t, got)
	require.Len(t, got, 0)
}

func TestJsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	os.Args = []string{"test", "-c", "server.json", "-a", ":8080"}
	require.Equal(t, "server.json", JsonConfigFlags())

	os.Args = []string{"test", "--config=other.json"}
	require.Equal(t, "other.json", JsonConfigFlags())

	os.Args = []string{"test", "-a", ":8080"}
	require.Equal(t, "", JsonConfigFlags())
}
