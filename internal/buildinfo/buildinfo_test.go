package buildinfo

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrintBuildData(t *testing.T) {
	buf := &bytes.Buffer{}
	PrintBuildData(buf)

	out := buf.String()
	require.Contains(t, out, "Build version:")
	require.Contains(t, out, "Build date:")
	require.Contains(t, out, "Build commit:")
}
