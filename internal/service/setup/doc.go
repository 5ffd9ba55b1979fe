// Package setup runs a whole installer manifest.
//
// It builds one installer per package, attaches version-aware update routines
// and preconditions described in the manifest, runs the installers strictly
// one after another, runs the plain commands, removes the working folder and
// writes a run report.
package setup
