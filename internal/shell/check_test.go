package shell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	t.Parallel()

	require.NoError(t, Check("can't create a temp folder", nil))

	cause := errors.New("mkdir temp: permission denied")
	err := Check("can't create a temp folder", cause)

	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	require.Equal(t, "can't create a temp folder | details from shell: mkdir temp: permission denied", err.Error())
	require.ErrorIs(t, err, cause)
}

// TestCheckPrefersStderr uses the captured stderr as details when a command failed.
func TestCheckPrefersStderr(t *testing.T) {
	t.Parallel()

	runErr := &RunError{
		Command: "npm i karma-cli -g",
		Stderr:  "npm ERR! network",
		Err:     errors.New("exit status 1"),
	}

	err := Check("can't install program karma", runErr)
	require.EqualError(t, err, "can't install program karma | details from shell: npm ERR! network")

	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	require.Equal(t, "npm ERR! network", cmdErr.Details)
	require.ErrorIs(t, err, runErr)
}
