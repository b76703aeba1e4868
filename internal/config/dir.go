// Package config provides the configuration for git-cc.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the git-cc configuration directory.
//
// Resolution:
//   - $GIT_CC_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/git-cc if set (respects XDG on any platform)
//   - %AppData%/git-cc on Windows
//   - ~/.config/git-cc on macOS and Linux
func Dir() string {
	// Explicit override
	if dir := os.Getenv("GIT_CC_CONFIG_HOME"); dir != "" {
		return dir
	}

	// XDG override (works on any platform)
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "git-cc")
	}

	// Windows: use AppData
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "git-cc")
		}
	}

	// macOS and Linux: ~/.config/git-cc
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "git-cc")
}

// GlobalFile is the user-wide config file, or "" when no directory resolves.
func GlobalFile() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// GlobalEnvFile is the user-wide .env fallback, or "" when no directory resolves.
func GlobalEnvFile() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "env")
}
