package shell

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// DefaultDirMode is used when creating working folders.
const DefaultDirMode os.FileMode = 0o755

// Executor runs commands and file-system chores on the host.
type Executor interface {
	// Exec runs command through the system shell.
	Exec(ctx context.Context, command string) error
	// Output runs command and returns its combined stdout and stderr.
	Output(ctx context.Context, command string) (string, error)
	// Exists reports whether name resolves to an executable program.
	Exists(name string) bool
	// EnsureDirectory creates path and its parents. Existing directories are fine.
	EnsureDirectory(path string) error
	// RemoveRecursive deletes path and everything below it.
	RemoveRecursive(path string) error
}

// RunError reports a command that could not be started or exited with a non-zero status.
type RunError struct {
	// Command is the command line passed to the shell.
	Command string
	// Stderr is what the command wrote to its error stream, trimmed.
	Stderr string
	// Err is the underlying exec error.
	Err error
}

func (e *RunError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s: %v", e.Command, e.Err)
	}

	return fmt.Sprintf("%s: %v: %s", e.Command, e.Err, e.Stderr)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// Shell is the Executor backed by the operating system.
type Shell struct {
	// dir is the directory commands start in; empty means the process cwd.
	dir string
	// stdout receives command standard output.
	stdout io.Writer
	// stderr receives command error output in addition to the internal capture.
	stderr io.Writer
}

// Option configures a Shell.
type Option func(*Shell)

// WithDir makes commands start in dir.
func WithDir(dir string) Option {
	return func(s *Shell) {
		s.dir = dir
	}
}

// WithOutput redirects command output. Nil writers discard.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(s *Shell) {
		s.stdout = orDiscard(stdout)
		s.stderr = orDiscard(stderr)
	}
}

// New returns a Shell streaming command output to the process stdout and stderr.
func New(opts ...Option) *Shell {
	s := &Shell{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Exec runs command and waits for it to finish.
func (s *Shell) Exec(ctx context.Context, command string) error {
	var captured bytes.Buffer

	cmd := s.command(ctx, command)
	cmd.Stdout = s.stdout
	cmd.Stderr = io.MultiWriter(s.stderr, &captured)

	if err := cmd.Run(); err != nil {
		return &RunError{
			Command: command,
			Stderr:  strings.TrimSpace(captured.String()),
			Err:     err,
		}
	}

	return nil
}

// Output runs command and returns everything it printed.
// The output is returned even when the command fails.
func (s *Shell) Output(ctx context.Context, command string) (string, error) {
	output, err := s.command(ctx, command).CombinedOutput()
	if err != nil {
		return string(output), &RunError{
			Command: command,
			Stderr:  strings.TrimSpace(string(output)),
			Err:     err,
		}
	}

	return string(output), nil
}

// Exists looks name up on PATH, or checks it directly when it contains a separator.
func (s *Shell) Exists(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}

	_, err := exec.LookPath(name)

	return err == nil
}

// EnsureDirectory creates path if it does not exist yet.
func (s *Shell) EnsureDirectory(path string) error {
	return os.MkdirAll(path, DefaultDirMode)
}

// RemoveRecursive deletes path. A missing path is not an error.
func (s *Shell) RemoveRecursive(path string) error {
	return os.RemoveAll(path)
}

// command wraps the line in the platform shell.
func (s *Shell) command(ctx context.Context, command string) *exec.Cmd {
	var cmd *exec.Cmd

	if strings.Contains(strings.ToLower(runtime.GOOS), "windows") {
		cmd = exec.CommandContext(ctx, "cmd.exe", "/C", command)
	} else {
		cmd = exec.CommandContext(ctx, "sh", "-c", command)
	}

	cmd.Dir = s.dir

	return cmd
}

func orDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}

	return w
}
