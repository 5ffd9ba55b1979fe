package installer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	goupdate "github.com/doitdistributed/go-update"

	"github.com/oshokin/simple-installer/internal/domain/software"
	"github.com/oshokin/simple-installer/internal/logger"
	"github.com/oshokin/simple-installer/internal/shell"
)

// DefaultInstallMode is the file mode of artifacts placed at an install path.
const DefaultInstallMode os.FileMode = 0o755

// Fetcher downloads an artifact to a local path, leaving nothing behind on failure.
type Fetcher interface {
	Download(ctx context.Context, url, dest string) error
}

// Installer is the state machine for a single descriptor.
type Installer struct {
	// descriptor is the package being processed.
	descriptor software.Descriptor
	// executor runs install commands and folder chores.
	executor shell.Executor
	// fetcher downloads the artifact when the descriptor has a URL.
	fetcher Fetcher
	// skipDownload is true when the descriptor has no download URL.
	skipDownload bool
	// workingFolder is where the artifact is downloaded and installed from.
	workingFolder string
	// installMessage is logged right before the install command runs.
	installMessage string
}

// Option configures an Installer.
type Option func(*Installer)

// WithDefaultWorkingFolder replaces software.DefaultWorkingFolder for descriptors
// that don't set their own folder.
func WithDefaultWorkingFolder(folder string) Option {
	return func(i *Installer) {
		if folder != "" && i.descriptor.WorkingFolder == "" {
			i.workingFolder = folder
		}
	}
}

// New builds an Installer for d and computes its derived fields.
func New(d software.Descriptor, executor shell.Executor, fetcher Fetcher, opts ...Option) *Installer {
	i := &Installer{
		descriptor:     d,
		executor:       executor,
		fetcher:        fetcher,
		skipDownload:   d.DownloadURL == "",
		workingFolder:  d.WorkingFolder,
		installMessage: d.InstallMessage,
	}

	if i.workingFolder == "" {
		i.workingFolder = software.DefaultWorkingFolder
	}

	if i.installMessage == "" {
		i.installMessage = "installing " + d.Name
	}

	for _, opt := range opts {
		opt(i)
	}

	return i
}

// Descriptor returns the descriptor this installer was built for.
func (i *Installer) Descriptor() software.Descriptor {
	return i.descriptor
}

// SkipDownload reports whether the install command runs without a download.
func (i *Installer) SkipDownload() bool {
	return i.skipDownload
}

// WorkingFolder returns the effective download folder.
func (i *Installer) WorkingFolder() string {
	return i.workingFolder
}

// InstallMessage returns the effective install message.
func (i *Installer) InstallMessage() string {
	return i.installMessage
}

// Command composes the install command. After a download the command first
// changes into the working folder.
func (i *Installer) Command(downloaded bool) string {
	command := i.descriptor.CommandPrefix + i.descriptor.Name + i.descriptor.CommandPostfix
	if downloaded {
		return "cd " + i.workingFolder + " && " + command
	}

	return command
}

// Run processes the descriptor and stops at the first error, which is
// returned as is together with OutcomeFailed.
func (i *Installer) Run(ctx context.Context) (software.Outcome, error) {
	ctx = logger.WithKV(ctx, "package", i.descriptor.Name)

	if precondition := i.descriptor.Precondition; precondition != nil {
		ok, err := precondition(ctx, i.descriptor)
		if err != nil {
			return software.OutcomeFailed, err
		}

		if !ok {
			logger.Info(ctx, "Precondition not met, skipping "+i.descriptor.Name)
			return software.OutcomeSkipped, nil
		}
	}

	if !i.IsInstalled() {
		return i.chooseInstallProcess(ctx)
	}

	logger.Info(ctx, i.descriptor.Name+" ok")

	return i.runUpdateIfExists(ctx)
}

// IsInstalled reports whether the package name resolves on this machine.
func (i *Installer) IsInstalled() bool {
	return i.executor.Exists(i.descriptor.Name)
}

func (i *Installer) runUpdateIfExists(ctx context.Context) (software.Outcome, error) {
	update := i.descriptor.Update
	if update == nil {
		return software.OutcomePresent, nil
	}

	logger.Info(ctx, "Running update for "+i.descriptor.Name)

	if err := update(ctx, i.descriptor); err != nil {
		return software.OutcomeFailed, err
	}

	return software.OutcomeUpdated, nil
}

func (i *Installer) chooseInstallProcess(ctx context.Context) (software.Outcome, error) {
	if i.skipDownload {
		if err := i.installProgram(ctx, false); err != nil {
			return software.OutcomeFailed, err
		}

		return software.OutcomeInstalled, nil
	}

	if err := i.downloadAndInstall(ctx); err != nil {
		return software.OutcomeFailed, err
	}

	return software.OutcomeDownloadedAndInstalled, nil
}

func (i *Installer) downloadAndInstall(ctx context.Context) error {
	err := shell.Check(
		fmt.Sprintf("can't create a %s folder", i.workingFolder),
		i.executor.EnsureDirectory(i.workingFolder),
	)
	if err != nil {
		return err
	}

	artifact := i.ArtifactPath()

	logger.InfoKV(ctx, "Downloading "+i.descriptor.Name+", it might take a while, please be patient",
		"url", i.descriptor.DownloadURL, "path", artifact)

	if err = i.fetcher.Download(ctx, i.descriptor.DownloadURL, artifact); err != nil {
		return err
	}

	if i.descriptor.InstallPath != "" {
		return i.placeArtifact(ctx, artifact)
	}

	return i.installProgram(ctx, true)
}

// ArtifactPath is where the downloaded artifact is stored.
func (i *Installer) ArtifactPath() string {
	return filepath.Join(i.workingFolder, i.descriptor.Name)
}

func (i *Installer) installProgram(ctx context.Context, downloaded bool) error {
	command := i.Command(downloaded)

	logger.InfoKV(ctx, i.installMessage, "command", command)

	return shell.Check(
		"can't install program "+i.descriptor.Name,
		i.executor.Exec(ctx, command),
	)
}

// placeArtifact atomically replaces the install path with the downloaded artifact.
func (i *Installer) placeArtifact(ctx context.Context, artifact string) error {
	target := filepath.Clean(i.descriptor.InstallPath)

	logger.InfoKV(ctx, i.installMessage, "target", target)

	// go-update swaps files by renaming, so the target has to exist first.
	if _, err := os.Stat(target); errors.Is(err, os.ErrNotExist) {
		err = shell.Check(
			fmt.Sprintf("can't create a %s folder", filepath.Dir(target)),
			i.executor.EnsureDirectory(filepath.Dir(target)),
		)
		if err != nil {
			return err
		}

		placeholder, err := os.Create(target)
		if err != nil {
			return fmt.Errorf("create %s: %w", target, err)
		}

		_ = placeholder.Close()
	}

	source, err := os.Open(filepath.Clean(artifact))
	if err != nil {
		return fmt.Errorf("open %s: %w", artifact, err)
	}

	defer func() {
		_ = source.Close()
	}()

	options := &goupdate.Options{
		TargetPath: target,
		TargetMode: DefaultInstallMode,
	}

	if err = goupdate.Apply(source, *options); err != nil {
		return fmt.Errorf("place %s at %s: %w", artifact, target, err)
	}

	return nil
}
