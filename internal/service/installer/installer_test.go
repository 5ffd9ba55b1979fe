package installer

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/simple-installer/internal/domain/software"
	"github.com/oshokin/simple-installer/internal/service/download"
	"github.com/oshokin/simple-installer/internal/shell"
)

func requireCalls(t *testing.T, want, got []string) {
	t.Helper()

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("executor calls mismatch (-want +got):\n%s", diff)
	}
}

func TestNewDerivedFields(t *testing.T) {
	t.Parallel()

	plain := New(software.Descriptor{Name: "ruby"}, newRecordingExecutor(), &fakeFetcher{})
	require.True(t, plain.SkipDownload())
	require.Equal(t, software.DefaultWorkingFolder, plain.WorkingFolder())
	require.Equal(t, "installing ruby", plain.InstallMessage())
	require.Equal(t, "ruby", plain.Descriptor().Name)

	custom := New(software.Descriptor{
		Name:           "ruby",
		DownloadURL:    "http://",
		InstallMessage: "let me handle this",
		WorkingFolder:  "custom",
	}, newRecordingExecutor(), &fakeFetcher{}, WithDefaultWorkingFolder("downloads"))
	require.False(t, custom.SkipDownload())
	require.Equal(t, "custom", custom.WorkingFolder())
	require.Equal(t, "let me handle this", custom.InstallMessage())

	defaulted := New(software.Descriptor{Name: "ruby"}, newRecordingExecutor(), &fakeFetcher{},
		WithDefaultWorkingFolder("downloads"))
	require.Equal(t, "downloads", defaulted.WorkingFolder())
}

func TestCommand(t *testing.T) {
	t.Parallel()

	i := New(software.Descriptor{
		Name:           "karma",
		CommandPrefix:  "npm i ",
		CommandPostfix: "-cli -g",
	}, newRecordingExecutor(), &fakeFetcher{})

	require.Equal(t, "npm i karma-cli -g", i.Command(false))
	require.Equal(t, "cd temp && npm i karma-cli -g", i.Command(true))

	bare := New(software.Descriptor{Name: "bower"}, newRecordingExecutor(), &fakeFetcher{})
	require.Equal(t, "bower", bare.Command(false))
}

// TestRunPresentWithoutUpdate checks that a resolvable package runs no install commands.
func TestRunPresentWithoutUpdate(t *testing.T) {
	t.Parallel()

	executor := newRecordingExecutor("node")
	fetcher := &fakeFetcher{}

	outcome, err := New(software.Descriptor{
		Name:        "node",
		DownloadURL: "https://localhost",
	}, executor, fetcher).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, software.OutcomePresent, outcome)

	requireCalls(t, []string{"exists node"}, executor.calls)
	require.Empty(t, fetcher.requests)
}

// TestRunPresentRunsUpdate checks the update routine gets its own descriptor.
func TestRunPresentRunsUpdate(t *testing.T) {
	t.Parallel()

	executor := newRecordingExecutor("node")

	var received software.Descriptor

	descriptor := software.Descriptor{
		Name:           "node",
		CommandPostfix: " --target 2.2.1",
		Update: func(_ context.Context, d software.Descriptor) error {
			received = d
			return nil
		},
	}

	outcome, err := New(descriptor, executor, &fakeFetcher{}).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, software.OutcomeUpdated, outcome)
	require.Equal(t, "node", received.Name)
	require.Equal(t, " --target 2.2.1", received.CommandPostfix)

	requireCalls(t, []string{"exists node"}, executor.calls)
}

func TestRunUpdateFailure(t *testing.T) {
	t.Parallel()

	updateErr := errors.New("can't uninstall sass for ruby update")

	outcome, err := New(software.Descriptor{
		Name: "ruby",
		Update: func(context.Context, software.Descriptor) error {
			return updateErr
		},
	}, newRecordingExecutor("ruby"), &fakeFetcher{}).Run(context.Background())

	require.ErrorIs(t, err, updateErr)
	require.Equal(t, software.OutcomeFailed, outcome)
}

// TestRunInstallWithoutDownload checks that only prefix+name+postfix runs and the folder is untouched.
func TestRunInstallWithoutDownload(t *testing.T) {
	t.Parallel()

	executor := newRecordingExecutor()
	fetcher := &fakeFetcher{}

	outcome, err := New(software.Descriptor{
		Name:           "bower",
		CommandPrefix:  "npm i ",
		CommandPostfix: " -g",
	}, executor, fetcher).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, software.OutcomeInstalled, outcome)

	requireCalls(t, []string{"exists bower", "exec npm i bower -g"}, executor.calls)
	require.Empty(t, fetcher.requests)
}

func TestRunInstallCommandFailure(t *testing.T) {
	t.Parallel()

	executor := newRecordingExecutor()
	executor.execErr = &shell.RunError{Command: "sass", Stderr: "not found", Err: errors.New("exit status 127")}

	outcome, err := New(software.Descriptor{Name: "sass"}, executor, &fakeFetcher{}).Run(context.Background())
	require.Equal(t, software.OutcomeFailed, outcome)
	require.EqualError(t, err, "can't install program sass | details from shell: not found")

	var cmdErr *shell.CommandError
	require.ErrorAs(t, err, &cmdErr)
}

// TestRunDownloadAndInstall checks the download branch in order: folder, download, cd && command.
func TestRunDownloadAndInstall(t *testing.T) {
	t.Parallel()

	folder := filepath.Join(t.TempDir(), "temp")
	executor := newRecordingExecutor()
	// The fake executor doesn't create folders, so the fetcher writes into an existing one.
	require.NoError(t, newRealFolder(folder))

	fetcher := &fakeFetcher{body: "zip"}

	outcome, err := New(software.Descriptor{
		Name:           "shelljs.zip",
		DownloadURL:    "https://example.com/shelljs.zip",
		CommandPrefix:  "echo ",
		CommandPostfix: " is ready to be installed via postfix",
		WorkingFolder:  folder,
	}, executor, fetcher).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, software.OutcomeDownloadedAndInstalled, outcome)

	requireCalls(t, []string{
		"exists shelljs.zip",
		"mkdir " + folder,
		"exec cd " + folder + " && echo shelljs.zip is ready to be installed via postfix",
	}, executor.calls)
	requireCalls(t, []string{
		"https://example.com/shelljs.zip -> " + filepath.ToSlash(filepath.Join(folder, "shelljs.zip")),
	}, fetcher.requests)
}

func TestRunFolderCreationFailure(t *testing.T) {
	t.Parallel()

	executor := newRecordingExecutor()
	executor.mkdirErr = errors.New("permission denied")
	fetcher := &fakeFetcher{}

	outcome, err := New(software.Descriptor{
		Name:        "git.exe",
		DownloadURL: "https://example.com/git.exe",
	}, executor, fetcher).Run(context.Background())
	require.Equal(t, software.OutcomeFailed, outcome)
	require.EqualError(t, err, "can't create a temp folder | details from shell: permission denied")
	require.Empty(t, fetcher.requests)

	requireCalls(t, []string{"exists git.exe", "mkdir temp"}, executor.calls)
}

// TestRunDownloadFailureStops checks a download error is returned unchanged and nothing is executed.
func TestRunDownloadFailureStops(t *testing.T) {
	t.Parallel()

	transportErr := &download.TransportError{URL: "http://invalid-host/x.zip", Err: errors.New("no such host")}
	executor := newRecordingExecutor()

	outcome, err := New(software.Descriptor{
		Name:        "x.zip",
		DownloadURL: "http://invalid-host/x.zip",
	}, executor, &fakeFetcher{err: transportErr}).Run(context.Background())
	require.Equal(t, software.OutcomeFailed, outcome)
	require.Same(t, transportErr, err)

	requireCalls(t, []string{"exists x.zip", "mkdir temp"}, executor.calls)
}

func TestRunPreconditionFalseSkipsEverything(t *testing.T) {
	t.Parallel()

	executor := newRecordingExecutor()

	outcome, err := New(software.Descriptor{
		Name: "rubygems-update-2.2.3.gem",
		Precondition: func(context.Context, software.Descriptor) (bool, error) {
			return false, nil
		},
	}, executor, &fakeFetcher{}).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, software.OutcomeSkipped, outcome)
	require.Empty(t, executor.calls)
}

func TestRunPreconditionError(t *testing.T) {
	t.Parallel()

	conditionErr := errors.New("gem -v failed")
	executor := newRecordingExecutor()

	outcome, err := New(software.Descriptor{
		Name: "gem",
		Precondition: func(context.Context, software.Descriptor) (bool, error) {
			return false, conditionErr
		},
	}, executor, &fakeFetcher{}).Run(context.Background())
	require.ErrorIs(t, err, conditionErr)
	require.Equal(t, software.OutcomeFailed, outcome)
	require.Empty(t, executor.calls)
}

func TestRunPreconditionTrueProceeds(t *testing.T) {
	t.Parallel()

	executor := newRecordingExecutor()

	outcome, err := New(software.Descriptor{
		Name: "sass",
		Precondition: func(context.Context, software.Descriptor) (bool, error) {
			return true, nil
		},
	}, executor, &fakeFetcher{}).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, software.OutcomeInstalled, outcome)

	requireCalls(t, []string{"exists sass", "exec sass"}, executor.calls)
}
