// Package report persists the outcome of a setup run.
//
// The FileRepository writes the report as YAML through a pending file that is
// atomically renamed into place, so a crash never leaves a truncated report.
package report
