//go:build windows

package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/oshokin/simple-installer/internal/config"
)

// writeAtomically falls back to temp file + rename, Windows has no fsync'd rename.
func writeAtomically(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".simple-installer-report-*.tmp")
	if err != nil {
		return fmt.Errorf("create pending report file: %w", err)
	}

	tmpPath := tmp.Name()

	defer func() {
		_ = os.Remove(tmpPath)
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("write report file: %w", err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close pending report file: %w", err)
	}

	if err = os.Chmod(tmpPath, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("chmod report file: %w", err)
	}

	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace report file: %w", err)
	}

	return nil
}
