package setup

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-ps"
)

// linuxCommLength is how many characters of an executable name /proc keeps.
const linuxCommLength = 15

// isAnotherSetupRunning looks for a different process running this executable.
func isAnotherSetupRunning() (bool, error) {
	executable, err := os.Executable()
	if err != nil {
		return false, err
	}

	name := filepath.Base(executable)

	processList, err := ps.Processes()
	if err != nil {
		return false, err
	}

	thisProcessID := os.Getpid()

	for _, process := range processList {
		if process.Pid() == thisProcessID {
			continue
		}

		if sameExecutable(process.Executable(), name) {
			return true, nil
		}
	}

	return false, nil
}

// sameExecutable compares a process name with ours, allowing for the
// truncation Linux applies to long names.
func sameExecutable(processName, name string) bool {
	if processName == "" {
		return false
	}

	if strings.EqualFold(processName, name) {
		return true
	}

	return len(processName) == linuxCommLength && strings.HasPrefix(name, processName)
}
