package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// testConfigDir replaces both base directories in tests.
var testConfigDir string

func baseConfigPath() string {
	if testConfigDir != "" {
		return filepath.Join(testConfigDir, "config")
	}

	xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, appName)
	}

	// windows: %LOCALAPPDATA%/anchor, elsewhere $HOME/.config/anchor
	if runtime.GOOS == "windows" {
		return filepath.Join(localAppData(), appName)
	}

	return filepath.Join(HomeDir(), ".config", appName)
}

func baseDataPath() string {
	if testConfigDir != "" {
		return filepath.Join(testConfigDir, "data")
	}

	xdgDataHome := os.Getenv("XDG_DATA_HOME")
	if xdgDataHome != "" {
		return filepath.Join(xdgDataHome, appName)
	}

	// windows: %LOCALAPPDATA%/anchor, elsewhere $HOME/.local/share/anchor
	if runtime.GOOS == "windows" {
		return filepath.Join(localAppData(), appName)
	}

	return filepath.Join(HomeDir(), ".local", "share", appName)
}

func localAppData() string {
	dir := os.Getenv("LOCALAPPDATA")
	if dir == "" {
		dir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Local")
	}
	return dir
}

func globalConfig() string {
	return filepath.Join(baseConfigPath(), fmt.Sprintf("%s.json", appName))
}

// GlobalConfigData returns the path of the config file the application itself
// writes to, so user edits to the global config are never overwritten.
func GlobalConfigData() string {
	return filepath.Join(baseDataPath(), fmt.Sprintf("%s.json", appName))
}

// ProjectConfig returns the path of the per-project config in workingDir.
func ProjectConfig(workingDir string) string {
	return filepath.Join(workingDir, fmt.Sprintf("%s.json", appName))
}

func HomeDir() string {
	homeDir := os.Getenv("HOME")
	if homeDir == "" {
		homeDir = os.Getenv("USERPROFILE") // For Windows compatibility
	}
	if homeDir == "" {
		homeDir = os.Getenv("HOMEPATH") // Fallback for some environments
	}
	return homeDir
}
