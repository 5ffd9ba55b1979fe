package installer

import (
	"context"
	"os"
	"path/filepath"
)

// recordingExecutor is a shell.Executor that records calls instead of running them.
type recordingExecutor struct {
	installed map[string]bool
	calls     []string
	execErr   error
	mkdirErr  error
}

func newRecordingExecutor(installed ...string) *recordingExecutor {
	e := &recordingExecutor{installed: make(map[string]bool, len(installed))}
	for _, name := range installed {
		e.installed[name] = true
	}

	return e
}

func (e *recordingExecutor) Exec(_ context.Context, command string) error {
	e.calls = append(e.calls, "exec "+command)
	return e.execErr
}

func (e *recordingExecutor) Output(_ context.Context, command string) (string, error) {
	e.calls = append(e.calls, "output "+command)
	return "", nil
}

func (e *recordingExecutor) Exists(name string) bool {
	e.calls = append(e.calls, "exists "+name)
	return e.installed[name]
}

func (e *recordingExecutor) EnsureDirectory(path string) error {
	e.calls = append(e.calls, "mkdir "+path)
	return e.mkdirErr
}

func (e *recordingExecutor) RemoveRecursive(path string) error {
	e.calls = append(e.calls, "rm "+path)
	return nil
}

// fakeFetcher writes body to the destination or fails with err.
type fakeFetcher struct {
	requests []string
	body     string
	err      error
}

func (f *fakeFetcher) Download(_ context.Context, url, dest string) error {
	f.requests = append(f.requests, url+" -> "+filepath.ToSlash(dest))
	if f.err != nil {
		return f.err
	}

	return os.WriteFile(dest, []byte(f.body), 0o600)
}

func newRealFolder(path string) error {
	return os.MkdirAll(path, 0o755)
}
