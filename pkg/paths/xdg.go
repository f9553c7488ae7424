// Package paths provides XDG-compliant path resolution for navcore.
//
// Resolution order:
// 1. NAVCORE_HOME (portable root) → $NAVCORE_HOME/{config,state}
// 2. XDG env vars → $XDG_*_HOME/navcore
// 3. Platform defaults → ~/.config/navcore, ~/.local/state/navcore
package paths

import (
	"os"
	"path/filepath"
)

const appDir = "navcore"

// getConfigHome returns the base config home directory.
func getConfigHome() string {
	if home := os.Getenv("NAVCORE_HOME"); home != "" {
		return filepath.Join(home, "config")
	}
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config")
	}
	return ""
}

// getStateHome returns the base state home directory.
func getStateHome() string {
	if home := os.Getenv("NAVCORE_HOME"); home != "" {
		return filepath.Join(home, "state")
	}
	if xdgStateHome := os.Getenv("XDG_STATE_HOME"); xdgStateHome != "" {
		return xdgStateHome
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".local", "state")
	}
	return ""
}

// ConfigDir returns the navcore configuration directory.
// Used for the global navcore.yml.
func ConfigDir() string {
	if os.Getenv("NAVCORE_HOME") != "" {
		return getConfigHome()
	}
	base := getConfigHome()
	if base == "" {
		return ""
	}
	return filepath.Join(base, appDir)
}

// StateDir returns the navcore state directory.
// Used for the preferences file and logs.
func StateDir() string {
	if os.Getenv("NAVCORE_HOME") != "" {
		return getStateHome()
	}
	base := getStateHome()
	if base == "" {
		return ""
	}
	return filepath.Join(base, appDir)
}

// PrefsFile returns the default location of the persisted preferences.
func PrefsFile() string {
	dir := StateDir()
	if dir == "" {
		return "prefs.yml"
	}
	return filepath.Join(dir, "prefs.yml")
}

// LogDir returns the directory used by the file log sink.
func LogDir() string {
	dir := StateDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "logs")
}

// EnsureDirs creates the navcore directories if they don't exist.
func EnsureDirs() error {
	for _, dir := range []string{ConfigDir(), StateDir(), LogDir()} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
