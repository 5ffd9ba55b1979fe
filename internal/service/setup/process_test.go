package setup

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSameExecutable(t *testing.T) {
	t.Parallel()

	require.True(t, sameExecutable("simple-installer", "simple-installer"))
	require.True(t, sameExecutable("Simple-Installer.exe", "simple-installer.exe"))
	require.True(t, sameExecutable("simple-installe", "simple-installer"), "linux truncates names to 15 characters")
	require.False(t, sameExecutable("simple", "simple-installer"))
	require.False(t, sameExecutable("", "simple-installer"))
}

// TestIsAnotherSetupRunning only checks that our own process is not counted.
func TestIsAnotherSetupRunning(t *testing.T) {
	t.Parallel()

	running, err := isAnotherSetupRunning()
	require.NoError(t, err)
	require.False(t, running)
}
