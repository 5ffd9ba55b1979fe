package setup

import (
	"context"
	"errors"
)

// recordingExecutor records every call and answers from canned data.
type recordingExecutor struct {
	installed map[string]bool
	outputs   map[string]string
	failing   map[string]error
	calls     []string
}

func newRecordingExecutor() *recordingExecutor {
	return &recordingExecutor{
		installed: make(map[string]bool),
		outputs:   make(map[string]string),
		failing:   make(map[string]error),
	}
}

func (e *recordingExecutor) Exec(_ context.Context, command string) error {
	e.calls = append(e.calls, "exec "+command)
	return e.failing[command]
}

func (e *recordingExecutor) Output(_ context.Context, command string) (string, error) {
	e.calls = append(e.calls, "output "+command)

	output, ok := e.outputs[command]
	if !ok {
		return "command not found", errors.New("exit status 127")
	}

	return output, nil
}

func (e *recordingExecutor) Exists(name string) bool {
	e.calls = append(e.calls, "exists "+name)
	return e.installed[name]
}

func (e *recordingExecutor) EnsureDirectory(path string) error {
	e.calls = append(e.calls, "mkdir "+path)
	return nil
}

func (e *recordingExecutor) RemoveRecursive(path string) error {
	e.calls = append(e.calls, "rm "+path)
	return nil
}

// recordingFetcher pretends every download succeeds without touching the disk.
type recordingFetcher struct {
	urls []string
}

func (f *recordingFetcher) Download(_ context.Context, url, _ string) error {
	f.urls = append(f.urls, url)
	return nil
}
