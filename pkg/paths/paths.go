// Package paths locates the files dirsort keeps outside the directories it
// organizes. It follows the XDG Base Directory specification.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for dirsort
	EnvConfigDir = "DIRSORT_CONFIG_DIR"

	// EnvStateHome is the XDG state directory variable
	EnvStateHome = "XDG_STATE_HOME"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

const (
	// AppDirName is the directory name for dirsort-specific files
	AppDirName = "dirsort"

	// ConfigFileName is the configuration file looked up in ConfigDir
	ConfigFileName = "dirsort.toml"

	// LogFileName is the name of the log file in StateDir
	LogFileName = "dirsort.log"
)

// ConfigDir returns $DIRSORT_CONFIG_DIR, or the dirsort directory under
// the XDG config home
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// DefaultConfigFile returns the config file used when none is given
func DefaultConfigFile() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// FindConfigFile returns DefaultConfigFile if it exists
func FindConfigFile() (string, bool) {
	path := DefaultConfigFile()
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}

// StateDir returns the dirsort directory under the XDG state home.
// XDG_STATE_HOME is read on every call so it can be changed at runtime.
func StateDir() string {
	if dir := os.Getenv(EnvStateHome); dir != "" {
		return filepath.Join(dir, AppDirName)
	}
	return filepath.Join(xdg.StateHome, AppDirName)
}

// LogFilePath returns the path to the dirsort log file
func LogFilePath() string {
	return filepath.Join(StateDir(), LogFileName)
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~user is left alone
	return path
}
