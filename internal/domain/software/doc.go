// Package software defines the package descriptor consumed by the installer
// and the outcomes an installer run can end in.
package software
