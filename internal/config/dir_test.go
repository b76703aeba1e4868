package config

import (
	"path/filepath"
	"runtime"
	"testing"
)

func TestDir_Default(t *testing.T) {
	// Clear overrides
	t.Setenv("GIT_CC_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "")

	dir := Dir()
	if dir == "" {
		t.Fatal("Dir() returned empty string")
	}

	if runtime.GOOS != "windows" {
		if filepath.Base(dir) != "git-cc" {
			t.Errorf("Dir() = %q, want path ending in 'git-cc'", dir)
		}
	}
}

func TestDir_ExplicitOverride(t *testing.T) {
	t.Setenv("GIT_CC_CONFIG_HOME", "/custom/path")
	if got := Dir(); got != "/custom/path" {
		t.Errorf("Dir() = %q, want %q", got, "/custom/path")
	}
}

func TestDir_XDGOverride(t *testing.T) {
	t.Setenv("GIT_CC_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	if got := Dir(); got != filepath.Join("/xdg/config", "git-cc") {
		t.Errorf("Dir() = %q, want %q", got, filepath.Join("/xdg/config", "git-cc"))
	}
}

func TestGlobalFiles(t *testing.T) {
	t.Setenv("GIT_CC_CONFIG_HOME", "/custom/path")
	if got := GlobalFile(); got != filepath.Join("/custom/path", "config.yaml") {
		t.Errorf("GlobalFile() = %q", got)
	}
	if got := GlobalEnvFile(); got != filepath.Join("/custom/path", "env") {
		t.Errorf("GlobalEnvFile() = %q", got)
	}
}
