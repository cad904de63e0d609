package debug

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLoggerLevels(t *testing.T) {
	quiet, err := NewLogger(false)
	require.NoError(t, err)
	require.NotNil(t, quiet)
	defer quiet.Sync()

	verbose, err := NewLogger(true)
	require.NoError(t, err)
	require.NotNil(t, verbose)
	defer verbose.Sync()

	require.True(t, verbose.Core().Enabled(-1)) // debug level
	require.False(t, quiet.Core().Enabled(-1))
}

func TestNewNop(t *testing.T) {
	require.NotNil(t, NewNop())
}
