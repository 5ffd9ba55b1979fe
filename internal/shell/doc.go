// Package shell runs host commands for the installer.
//
// Executor is the narrow surface the installer depends on: run a command,
// capture a command's output, look a program up on PATH, create and remove
// directories. Every method reports failure through its error result, and
// Check turns such a failure into a CommandError carrying a human-readable
// context message plus the raw detail from the shell.
package shell
