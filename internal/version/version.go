package version

import (
	"errors"
	"fmt"
	"regexp"

	goversion "github.com/hashicorp/go-version"
)

var (
	// Version is the semantic version of the build. It can be overridden via ldflags.
	Version = "1.0.0"
	// Commit is the short git SHA embedded at build time (or "none").
	Commit = "none"
	// BuildTime is the UTC build timestamp embedded at build time.
	BuildTime = "unknown"
)

// ErrNoVersion is returned when no version number can be found in the input.
var ErrNoVersion = errors.New("no version number found")

// versionPattern matches the first dotted number sequence such as 2.2.1 or 10.0.
var versionPattern = regexp.MustCompile(`\d+(?:\.\d+)+`)

// Short returns only the semantic version string.
func Short() string {
	return Version
}

// Full returns a human-readable version string with commit and build time.
func Full() string {
	return fmt.Sprintf("version: %s, commit: %s, built at: %s", Version, Commit, BuildTime)
}

// Extract finds the first dotted version number in output and parses it.
func Extract(output string) (*goversion.Version, error) {
	raw := versionPattern.FindString(output)
	if raw == "" {
		return nil, fmt.Errorf("%q: %w", output, ErrNoVersion)
	}

	return goversion.NewVersion(raw)
}

// IsBelow reports whether the version found in output is strictly lower than threshold.
func IsBelow(output, threshold string) (bool, error) {
	current, err := Extract(output)
	if err != nil {
		return false, err
	}

	limit, err := goversion.NewVersion(threshold)
	if err != nil {
		return false, fmt.Errorf("parse threshold %q: %w", threshold, err)
	}

	return current.LessThan(limit), nil
}

// Validate checks that s is a version number IsBelow can compare against.
func Validate(s string) error {
	_, err := goversion.NewVersion(s)

	return err
}
