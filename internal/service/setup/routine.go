package setup

import (
	"context"

	"github.com/oshokin/simple-installer/internal/config"
	"github.com/oshokin/simple-installer/internal/domain/software"
	"github.com/oshokin/simple-installer/internal/logger"
	"github.com/oshokin/simple-installer/internal/version"
)

// descriptor converts a manifest package and attaches its routines.
func (r *runner) descriptor(pkg config.Package) software.Descriptor {
	d := pkg.Descriptor()

	if pkg.Condition != nil {
		d.Precondition = r.precondition(*pkg.Condition)
	}

	if pkg.Update != nil {
		d.Update = r.update(*pkg.Update)
	}

	return d
}

// precondition holds only when the reported version is known and below the threshold.
func (r *runner) precondition(c config.Condition) software.PreconditionFunc {
	return func(ctx context.Context, _ software.Descriptor) (bool, error) {
		below, _ := r.versionBelow(ctx, c.VersionCommand, c.Below)

		return below, nil
	}
}

// update returns a routine that, for an outdated version, runs the before
// commands, reinstalls the package under another name and runs the after
// commands. An unreadable version leaves the package alone.
func (r *runner) update(u config.Update) software.UpdateFunc {
	return func(ctx context.Context, d software.Descriptor) error {
		below, known := r.versionBelow(ctx, u.VersionCommand, u.Below)
		if !known {
			logger.WarnKV(ctx, "Version of "+d.Name+" is unknown, skipping update", "command", u.VersionCommand)
			return nil
		}

		if !below {
			logger.InfoKV(ctx, d.Name+" is up to date", "minimum", u.Below)
			return nil
		}

		for _, command := range u.Before {
			if err := r.runCommand(ctx, command); err != nil {
				return err
			}
		}

		if u.ReinstallAs != "" {
			if err := r.install(ctx, r.newInstaller(d.Renamed(u.ReinstallAs))); err != nil {
				return err
			}
		}

		for _, command := range u.After {
			if err := r.runCommand(ctx, command); err != nil {
				return err
			}
		}

		return nil
	}
}

// versionBelow runs command and compares the version it prints with threshold.
// known is false when the command fails or prints no version.
func (r *runner) versionBelow(ctx context.Context, command, threshold string) (below, known bool) {
	output, err := r.executor.Output(ctx, command)
	if err != nil {
		logger.WarnKV(ctx, "Version command failed", "command", command, "error", err)
		return false, false
	}

	below, err = version.IsBelow(output, threshold)
	if err != nil {
		logger.WarnKV(ctx, "Unable to read version", "command", command, "error", err)
		return false, false
	}

	logger.DebugKV(ctx, "Version checked", "command", command, "below", threshold, "outdated", below)

	return below, true
}
