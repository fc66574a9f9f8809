// Package config handles configuration management for dirsort.
// It layers embedded TOML defaults, an optional TOML or YAML config file,
// DIRSORT_* environment variables and command-line overrides.
package config
