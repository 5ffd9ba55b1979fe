// Package installer decides, per package descriptor, whether to skip, update,
// install directly or download and then install, and carries that decision out.
//
// One Installer is built per descriptor and Run once. Runs share the working
// folder on disk, so callers must run installers one at a time.
package installer
