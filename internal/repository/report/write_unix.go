//go:build !windows

package report

import (
	"fmt"

	"github.com/google/renameio/v2"

	"github.com/oshokin/simple-installer/internal/config"
)

func writeAtomically(path string, data []byte) error {
	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(config.DefaultFilePermissions))
	if err != nil {
		return fmt.Errorf("create pending report file: %w", err)
	}

	// No-op once the file has been renamed into place.
	defer func() {
		_ = pending.Cleanup()
	}()

	if _, err = pending.Write(data); err != nil {
		return fmt.Errorf("write report file: %w", err)
	}

	if err = pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace report file: %w", err)
	}

	return nil
}
