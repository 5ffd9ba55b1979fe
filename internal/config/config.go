package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/simple-installer/internal/domain/software"
	"github.com/oshokin/simple-installer/internal/version"
)

// Manifest is the whole installer configuration.
type Manifest struct {
	// WorkingFolder is the default download folder for all packages.
	WorkingFolder string `yaml:"working_folder"`
	// DownloadTimeout bounds a single artifact download. Zero means no limit.
	DownloadTimeout time.Duration `yaml:"download_timeout"`
	// KeepWorkingFolder disables removal of the working folder after a successful run.
	KeepWorkingFolder bool `yaml:"keep_working_folder"`
	// ReportFile is where the run report is written. Empty disables the report.
	ReportFile string `yaml:"report_file"`
	// Packages are installed in order.
	Packages []Package `yaml:"packages"`
	// Commands run after all packages.
	Commands []Command `yaml:"commands"`
}

// Package is the YAML form of a package descriptor.
type Package struct {
	Name           string `yaml:"name"`
	Link           string `yaml:"link,omitempty"`
	Prefix         string `yaml:"prefix,omitempty"`
	Postfix        string `yaml:"postfix,omitempty"`
	InstallMessage string `yaml:"install_message,omitempty"`
	WorkingFolder  string `yaml:"working_folder,omitempty"`
	InstallPath    string `yaml:"install_path,omitempty"`
	// Condition gates the package. Nil means always process it.
	Condition *Condition `yaml:"condition,omitempty"`
	// Update runs when the package is already installed.
	Update *Update `yaml:"update,omitempty"`
}

// Condition holds when the version printed by VersionCommand is below Below,
// or when no version can be read at all.
type Condition struct {
	VersionCommand string `yaml:"version_command"`
	Below          string `yaml:"below"`
}

// Update describes a version-aware update of an installed package.
// Nothing happens unless the reported version is below Below.
type Update struct {
	VersionCommand string `yaml:"version_command"`
	Below          string `yaml:"below"`
	// Before run first, for example to uninstall dependants.
	Before []Command `yaml:"before,omitempty"`
	// ReinstallAs, when set, installs a copy of the package under this name.
	ReinstallAs string `yaml:"reinstall_as,omitempty"`
	// After run last.
	After []Command `yaml:"after,omitempty"`
}

// Command is a plain shell command with the message shown when it fails.
type Command struct {
	Command      string `yaml:"command"`
	ErrorMessage string `yaml:"error_message,omitempty"`
}

const (
	// DefaultConfigFilename is the manifest read when no path is given.
	DefaultConfigFilename = "simple-installer.yaml"

	// DefaultFilePermissions is used for files this program writes.
	DefaultFilePermissions = 0o600
)

var (
	// errNothingToDo is returned for a manifest without packages and commands.
	errNothingToDo = errors.New("manifest has no packages and no commands")
	// errNameRequired is returned for a package without a name.
	errNameRequired = errors.New("package name must be provided")
	// errVersionCommandRequired is returned for a condition or update without a version command.
	errVersionCommandRequired = errors.New("version_command must be provided")
	// errCommandRequired is returned for an empty command entry.
	errCommandRequired = errors.New("command must be provided")
	// errInstallPathWithoutLink is returned when install_path is set but link is not.
	errInstallPathWithoutLink = errors.New("install_path requires link")
)

// Load reads the manifest at path and validates it.
func Load(path string) (*Manifest, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var manifest Manifest
	if err = yaml.Unmarshal(contents, &manifest); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}

	if err = Validate(&manifest); err != nil {
		return nil, err
	}

	return &manifest, nil
}

// Validate checks the manifest and fills in defaults.
func Validate(m *Manifest) error {
	if len(m.Packages) == 0 && len(m.Commands) == 0 {
		return errNothingToDo
	}

	if m.WorkingFolder == "" {
		m.WorkingFolder = software.DefaultWorkingFolder
	}

	for i := range m.Packages {
		if err := validatePackage(&m.Packages[i]); err != nil {
			return fmt.Errorf("package #%d: %w", i+1, err)
		}
	}

	if err := validateCommands(m.Commands); err != nil {
		return fmt.Errorf("commands: %w", err)
	}

	return nil
}

func validatePackage(p *Package) error {
	if strings.TrimSpace(p.Name) == "" {
		return errNameRequired
	}

	if p.Link != "" {
		if _, err := url.ParseRequestURI(p.Link); err != nil {
			return fmt.Errorf("%s: invalid link: %w", p.Name, err)
		}
	}

	if p.InstallPath != "" && p.Link == "" {
		return fmt.Errorf("%s: %w", p.Name, errInstallPathWithoutLink)
	}

	if c := p.Condition; c != nil {
		if err := validateVersionCheck(c.VersionCommand, c.Below); err != nil {
			return fmt.Errorf("%s: condition: %w", p.Name, err)
		}
	}

	if u := p.Update; u != nil {
		if err := validateVersionCheck(u.VersionCommand, u.Below); err != nil {
			return fmt.Errorf("%s: update: %w", p.Name, err)
		}

		if err := validateCommands(u.Before); err != nil {
			return fmt.Errorf("%s: update before: %w", p.Name, err)
		}

		if err := validateCommands(u.After); err != nil {
			return fmt.Errorf("%s: update after: %w", p.Name, err)
		}
	}

	return nil
}

func validateVersionCheck(command, below string) error {
	if strings.TrimSpace(command) == "" {
		return errVersionCommandRequired
	}

	if err := version.Validate(below); err != nil {
		return fmt.Errorf("invalid below version %q: %w", below, err)
	}

	return nil
}

func validateCommands(commands []Command) error {
	for i := range commands {
		c := &commands[i]
		if strings.TrimSpace(c.Command) == "" {
			return fmt.Errorf("#%d: %w", i+1, errCommandRequired)
		}

		if c.ErrorMessage == "" {
			c.ErrorMessage = "command failed: " + c.Command
		}
	}

	return nil
}

// Descriptor converts the YAML package into a descriptor without routines.
// Update routines and preconditions are attached by the setup service.
func (p *Package) Descriptor() software.Descriptor {
	return software.Descriptor{
		Name:           p.Name,
		DownloadURL:    p.Link,
		CommandPrefix:  p.Prefix,
		CommandPostfix: p.Postfix,
		InstallMessage: p.InstallMessage,
		WorkingFolder:  p.WorkingFolder,
		InstallPath:    p.InstallPath,
	}
}
