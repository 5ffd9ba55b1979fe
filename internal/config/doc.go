// Package config defines the installer manifest and loads it from YAML.
//
// A Manifest lists the packages to install in order, plain commands to run
// afterwards and a few run-wide settings. Validate fills in defaults.
package config
