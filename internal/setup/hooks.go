package setup

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorewood/gitcc/internal/output"
)

// HookName is the git hook git-cc installs.
const HookName = "commit-msg"

const hookMarker = "git-cc lint"

// HookStatus represents the status of the commit-msg hook.
type HookStatus struct {
	Path      string `json:"path"`
	Exists    bool   `json:"exists"`
	Installed bool   `json:"installed"`
	Chained   bool   `json:"chained"`
	HasBackup bool   `json:"has_backup"`
}

// Foreign reports whether a hook not written by git-cc occupies the path.
func (s HookStatus) Foreign() bool {
	return s.Exists && !s.Installed
}

// HookPath returns the commit-msg hook path inside hooksDir.
func HookPath(hooksDir string) string {
	return filepath.Join(hooksDir, HookName)
}

// BackupPath returns where an existing hook is moved when chaining.
func BackupPath(hookPath string) string {
	return hookPath + ".backup"
}

// HookExists checks if a hook file exists at the given path.
func HookExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// CheckHookStatus checks if the hook is installed and whether it chains to a backup.
func CheckHookStatus(hookPath string) HookStatus {
	status := HookStatus{Path: hookPath, HasBackup: HookExists(BackupPath(hookPath))}

	content, err := os.ReadFile(hookPath)
	if err != nil {
		return status
	}
	status.Exists = true

	contentStr := string(content)
	if strings.Contains(contentStr, hookMarker) {
		status.Installed = true
		status.Chained = strings.Contains(contentStr, ".backup")
	}
	return status
}

// GenerateCommitMsgHook generates the hook script. With a backup path the
// original hook runs first and a failure there rejects the commit before
// linting.
func GenerateCommitMsgHook(backupPath string) string {
	script := `#!/bin/sh
# git-cc commit-msg hook
# Rejects commit messages that are not Conventional Commits.
`
	if backupPath != "" {
		quoted := shellQuote(backupPath)
		script += `
# Chain to original hook
if [ -x ` + quoted + ` ]; then
  ` + quoted + ` "$@" || exit $?
fi
`
	}
	script += `
if command -v git-cc >/dev/null 2>&1; then
  exec git-cc lint --file "$1"
fi
`
	return script
}

// BackupExistingHook moves an existing hook to its .backup location.
func BackupExistingHook(hookPath string) error {
	if err := os.Rename(hookPath, BackupPath(hookPath)); err != nil {
		return output.NewSystemErrorWithCause("failed to backup existing hook", err)
	}
	return nil
}

// InstallHook writes the hook. An existing foreign hook is a conflict unless
// chain (back it up and run it first) or force (overwrite) is set.
// Reinstalling over a git-cc hook keeps its chaining.
func InstallHook(hookPath string, chain, force bool) (chained bool, err error) {
	status := CheckHookStatus(hookPath)

	switch {
	case status.Installed:
		chained = status.Chained
	case status.Exists && force:
	case status.Exists && chain:
		if status.HasBackup {
			return false, output.NewConflictError(BackupPath(hookPath) + " already exists; remove it or use --force to overwrite the hook")
		}
		if err := BackupExistingHook(hookPath); err != nil {
			return false, err
		}
		chained = true
	case status.Exists:
		return false, output.NewConflictError("hook already exists; use --chain to preserve or --force to overwrite")
	}

	if err := os.MkdirAll(filepath.Dir(hookPath), 0o755); err != nil {
		return false, output.NewSystemErrorWithCause("failed to create hooks directory", err)
	}

	backup := ""
	if chained {
		backup = BackupPath(hookPath)
	}
	// #nosec G306 -- hook needs execute permission
	if err := os.WriteFile(hookPath, []byte(GenerateCommitMsgHook(backup)), 0o755); err != nil {
		return false, output.NewSystemErrorWithCause("failed to write hook", err)
	}
	return chained, nil
}

// RemoveHook removes a git-cc hook and restores the backup when present.
// A foreign hook is left alone.
func RemoveHook(hookPath string) (removed, restored bool, err error) {
	status := CheckHookStatus(hookPath)
	if !status.Installed {
		return false, false, nil
	}
	if err := os.Remove(hookPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return false, false, output.NewSystemErrorWithCause("failed to remove hook", err)
	}
	if !status.HasBackup {
		return true, false, nil
	}
	if err := os.Rename(BackupPath(hookPath), hookPath); err != nil {
		return true, false, output.NewSystemErrorWithCause("failed to restore backup hook", err)
	}
	return true, true, nil
}

// DescribeInstallAction returns a human-readable description of what the
// install operation would do given the current state.
func DescribeInstallAction(status HookStatus, chain, force bool) string {
	switch {
	case status.Installed:
		return "would reinstall"
	case !status.Exists:
		return "would install"
	case force:
		return "would overwrite existing hook"
	case chain && status.HasBackup:
		return "would fail (backup already exists)"
	case chain:
		return "would backup and chain existing hook"
	default:
		return "would fail (hook exists, use --chain or --force)"
	}
}

// DescribeUninstallAction returns a human-readable description of what the
// uninstall operation would do given the current state.
func DescribeUninstallAction(status HookStatus) string {
	switch {
	case !status.Installed:
		return "no git-cc hook installed"
	case status.HasBackup:
		return "would remove and restore backup"
	default:
		return "would remove"
	}
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
