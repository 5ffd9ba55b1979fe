package setup

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/oshokin/simple-installer/internal/config"
	"github.com/oshokin/simple-installer/internal/domain/software"
	"github.com/oshokin/simple-installer/internal/logger"
	"github.com/oshokin/simple-installer/internal/repository/report"
	"github.com/oshokin/simple-installer/internal/service/common"
	"github.com/oshokin/simple-installer/internal/service/download"
	"github.com/oshokin/simple-installer/internal/service/installer"
	"github.com/oshokin/simple-installer/internal/shell"
)

var errSetupAlreadyRunning = errors.New("another setup is already running")

// Options are inputs accepted by the setup entry point.
type Options struct {
	// ConfigPath is the manifest location; empty means config.DefaultConfigFilename.
	ConfigPath string
	// KeepWorkingFolder keeps downloaded artifacts after a successful run.
	KeepWorkingFolder bool
	// ReportPath overrides the manifest's report_file when not empty.
	ReportPath string
	// Executor replaces the OS shell. Nil means shell.New().
	Executor shell.Executor
	// Fetcher replaces the HTTP downloader. Nil means download.New().
	Fetcher installer.Fetcher
}

// runner holds the state of a single setup execution.
type runner struct {
	manifest *config.Manifest  // Validated manifest.
	executor shell.Executor    // Runs every command of the run.
	fetcher  installer.Fetcher // Downloads artifacts.
	reports  report.Repository // Nil when reporting is disabled.
	report   *report.Report    // Collected while running.
	folders  []*workingFolder  // Working folders in first-use order.
}

// workingFolder tracks a download folder and what the run put into it.
type workingFolder struct {
	path      string
	created   bool     // The folder did not exist before the run.
	artifacts []string // Files downloaded into the folder.
}

// Run executes the manifest and is the public entry point for the CLI.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "simple-installer")

	r, err := newRunner(ctx, opts)
	if err != nil {
		logger.ErrorKV(ctx, "Setup failed", "error", err)
		return err
	}

	err = r.Run(ctx)

	r.saveReport(ctx, err)

	if err != nil {
		logger.ErrorKV(ctx, "Setup failed", "error", err)
		return err
	}

	logger.Info(ctx, "Installation finished")

	return nil
}

// newRunner loads the manifest and refuses to start next to another setup.
func newRunner(ctx context.Context, opts *Options) (*runner, error) {
	running, err := isAnotherSetupRunning()
	if err != nil {
		logger.WarnKV(ctx, "Unable to list processes, continuing", "error", err)
	}

	if running {
		return nil, errSetupAlreadyRunning
	}

	manifest, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	if opts.KeepWorkingFolder {
		manifest.KeepWorkingFolder = true
	}

	if opts.ReportPath != "" {
		manifest.ReportFile = opts.ReportPath
	}

	r := &runner{
		manifest: manifest,
		executor: opts.Executor,
		fetcher:  opts.Fetcher,
		report:   &report.Report{StartedAt: time.Now()},
	}

	r.trackFolder(manifest.WorkingFolder, "")

	if r.executor == nil {
		r.executor = shell.New()
	}

	if r.fetcher == nil {
		client := &http.Client{Timeout: manifest.DownloadTimeout}
		r.fetcher = download.New(download.WithHTTPClient(client))
	}

	if manifest.ReportFile != "" {
		r.reports = report.NewFileRepository(manifest.ReportFile)
		r.logPreviousRun(ctx)
	}

	return r, nil
}

// Run installs every package in order, then runs plain commands and cleans up.
// The first error stops the run and leaves the working folder in place.
func (r *runner) Run(ctx context.Context) error {
	for _, pkg := range r.manifest.Packages {
		if err := r.install(ctx, r.newInstaller(r.descriptor(pkg))); err != nil {
			return err
		}
	}

	for _, command := range r.manifest.Commands {
		if err := r.runCommand(ctx, command); err != nil {
			return err
		}

		r.report.Commands = append(r.report.Commands, command.Command)
	}

	if r.manifest.KeepWorkingFolder {
		return nil
	}

	return r.removeWorkingFolders(ctx)
}

// install runs one installer and records its outcome.
func (r *runner) install(ctx context.Context, inst *installer.Installer) error {
	if !inst.SkipDownload() {
		r.trackFolder(inst.WorkingFolder(), inst.ArtifactPath())
	}

	started := time.Now()
	outcome, err := inst.Run(ctx)
	r.report.Add(inst.Descriptor().Name, outcome, time.Since(started), err)

	logger.DebugKV(ctx, "Package processed", "package", inst.Descriptor().Name, "outcome", outcome)

	return err
}

func (r *runner) newInstaller(d software.Descriptor) *installer.Installer {
	return installer.New(d, r.executor, r.fetcher,
		installer.WithDefaultWorkingFolder(r.manifest.WorkingFolder))
}

func (r *runner) runCommand(ctx context.Context, command config.Command) error {
	logger.InfoKV(ctx, "Running command", "command", command.Command)

	return shell.Check(command.ErrorMessage, r.executor.Exec(ctx, command.Command))
}

// trackFolder remembers path as a working folder and artifact as one of its
// files. Whether the folder existed is decided on first use.
func (r *runner) trackFolder(path, artifact string) {
	path = filepath.Clean(path)

	var folder *workingFolder

	for _, f := range r.folders {
		if f.path == path {
			folder = f
			break
		}
	}

	if folder == nil {
		_, err := os.Stat(path)
		folder = &workingFolder{path: path, created: errors.Is(err, os.ErrNotExist)}
		r.folders = append(r.folders, folder)
	}

	if artifact != "" {
		folder.artifacts = append(folder.artifacts, filepath.Clean(artifact))
	}
}

// removeWorkingFolders deletes the folders created by this run. In folders
// that existed before only the downloaded artifacts are deleted.
func (r *runner) removeWorkingFolders(ctx context.Context) error {
	for _, folder := range r.folders {
		targets := folder.artifacts
		if folder.created {
			targets = []string{folder.path}
		}

		for _, target := range targets {
			logger.DebugKV(ctx, "Removing download leftovers", "path", target)

			err := shell.Check(
				fmt.Sprintf("can't delete %s, try to delete it manually", target),
				r.executor.RemoveRecursive(target),
			)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

// logPreviousRun reports the outcome of the last run recorded in the report file.
func (r *runner) logPreviousRun(ctx context.Context) {
	previous, err := r.reports.Load(ctx)
	if err != nil {
		if !errors.Is(err, report.ErrNotFound) {
			logger.WarnKV(ctx, "Unable to read the previous report", "path", r.manifest.ReportFile, "error", err)
		}

		return
	}

	if previous.Error != "" {
		logger.WarnKV(ctx, "Previous run failed", "finished_at", previous.FinishedAt, "error", previous.Error)
		return
	}

	logger.InfoKV(ctx, "Previous run succeeded", "finished_at", previous.FinishedAt,
		"packages", len(previous.Packages))
}

// saveReport writes the report; a failure here never replaces the run error.
func (r *runner) saveReport(ctx context.Context, runErr error) {
	if r.reports == nil {
		return
	}

	r.report.FinishedAt = time.Now()
	if runErr != nil {
		r.report.Error = runErr.Error()
	}

	actor, err := common.DetectActor()
	if err != nil {
		logger.WarnKV(ctx, "Unable to detect actor for the report", "error", err)
	} else {
		r.report.Actor = actor
	}

	if err = r.reports.Save(ctx, r.report); err != nil {
		logger.WarnKV(ctx, "Unable to save the report", "path", r.manifest.ReportFile, "error", err)
		return
	}

	logger.InfoKV(ctx, "Report saved", "path", r.manifest.ReportFile)
}
