package software

import "context"

// DefaultWorkingFolder is where artifacts are downloaded unless a descriptor says otherwise.
const DefaultWorkingFolder = "temp"

// UpdateFunc is invoked instead of an install when the package is already present.
// It receives the descriptor it belongs to so it can read sibling fields.
type UpdateFunc func(ctx context.Context, d Descriptor) error

// PreconditionFunc decides whether a descriptor should be processed at all.
// Returning false skips presence check, update and install entirely.
type PreconditionFunc func(ctx context.Context, d Descriptor) (bool, error)

// Descriptor describes one installable package. It is read-only to the installer.
type Descriptor struct {
	// Name is the presence-check token and the default install command fragment.
	Name string
	// DownloadURL is the artifact location. Empty means "run Name as a command".
	DownloadURL string
	// CommandPrefix is prepended to Name in the install command.
	CommandPrefix string
	// CommandPostfix is appended to Name in the install command.
	CommandPostfix string
	// InstallMessage is shown when installing; defaults to "installing <Name>".
	InstallMessage string
	// WorkingFolder overrides DefaultWorkingFolder for downloads.
	WorkingFolder string
	// InstallPath, when set together with DownloadURL, makes the downloaded
	// artifact get placed at this path instead of being executed.
	InstallPath string
	// Update runs when the package is already present. Nil means nothing to do.
	Update UpdateFunc
	// Precondition gates the whole descriptor. Nil means always process.
	Precondition PreconditionFunc
}

// Renamed returns a copy of d with a different name and without update routine
// and precondition, so that installing it never recurses into d's update.
func (d Descriptor) Renamed(name string) Descriptor {
	d.Name = name
	d.Update = nil
	d.Precondition = nil

	return d
}
