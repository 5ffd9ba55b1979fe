// Package version exposes build metadata and compares software versions.
//
// Version, Commit and BuildTime are injected via ldflags. Extract and IsBelow
// read a version out of arbitrary command output (for example "ruby 2.1.5p273")
// and compare it against a threshold, which is what update routines and
// preconditions in the installer manifest are built on.
package version
