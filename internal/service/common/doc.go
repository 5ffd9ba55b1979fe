// Package common holds helpers shared by several services.
//
// It detects the current system actor (hostname/username) so run reports
// can say where and by whom a setup was executed.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
