package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/gitcc/internal/git"
	"github.com/gorewood/gitcc/internal/logging"
	"github.com/gorewood/gitcc/internal/output"
	"github.com/gorewood/gitcc/internal/setup"
)

// newHooksCmd creates the hooks parent command with subcommands.
func newHooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hooks",
		Short: "Manage the commit-msg hook",
		Long: `Manage the git commit-msg hook that lints every commit message.

With the hook installed, messages written with plain git commit, an editor
or another tool are checked by "git-cc lint" and rejected when they are not
Conventional Commits. The hook is written to the directory git uses for
hooks, so core.hooksPath and worktrees are honoured.

Subcommands:
  install    Install the commit-msg hook
  uninstall  Remove the hook and restore any backup
  list       Show the hook status

Examples:
  git-cc hooks list              # Show hook status
  git-cc hooks install           # Install commit-msg hook
  git-cc hooks install --chain   # Install and keep running the existing hook
  git-cc hooks uninstall         # Remove the hook, restore backup`,
	}

	cmd.AddCommand(newHooksListCmd())
	cmd.AddCommand(newHooksInstallCmd())
	cmd.AddCommand(newHooksUninstallCmd())
	return cmd
}

// hookPath resolves the commit-msg hook path of the current repository.
func hookPath(cmd *cobra.Command) (string, error) {
	if !git.IsRepo() {
		return "", output.NewSystemError("not in a git repository")
	}
	dir, err := git.HooksDir()
	if err != nil {
		return "", err
	}
	path := setup.HookPath(dir)
	logging.FromContext(cmd.Context()).Debug("hook path resolved", "path", path)
	return path, nil
}

// newHooksListCmd creates the hooks list subcommand.
func newHooksListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show status of the commit-msg hook",
		Args:  cobra.NoArgs,
		RunE:  runHooksList,
	}
}

// runHooksList executes the hooks list command.
func runHooksList(cmd *cobra.Command, _ []string) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).WithStderr(cmd.ErrOrStderr())

	path, err := hookPath(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	status := setup.CheckHookStatus(path)

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{setup.HookName: status})
	}

	printer.Section("Git Hooks")
	printer.KeyValue(setup.HookName, describeStatus(status))
	printer.KeyValue("path", path)
	return nil
}

func describeStatus(status setup.HookStatus) string {
	switch {
	case status.Installed && status.Chained:
		return "installed (chained)"
	case status.Installed:
		return "installed"
	case status.Foreign():
		return "not installed (another hook is present)"
	default:
		return "not installed"
	}
}

// newHooksInstallCmd creates the hooks install subcommand.
func newHooksInstallCmd() *cobra.Command {
	var chain, force, dryRun bool

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install the commit-msg hook",
		Long: `Install the git-cc commit-msg hook.

Use --chain to keep an existing hook: it is moved to commit-msg.backup and
runs before the lint. Use --force to overwrite it instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHooksInstall(cmd, chain, force, dryRun)
		},
	}

	cmd.Flags().BoolVar(&chain, "chain", false, "Preserve the existing hook and run it first")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite the existing hook without backup")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be done without doing it")
	return cmd
}

// runHooksInstall executes the hooks install command.
func runHooksInstall(cmd *cobra.Command, chain, force, dryRun bool) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).WithStderr(cmd.ErrOrStderr())

	path, err := hookPath(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	if dryRun {
		status := setup.CheckHookStatus(path)
		if printer.IsJSON() {
			return printer.Success(map[string]any{
				"status":          "dry_run",
				"hook":            setup.HookName,
				"path":            path,
				"exists":          status.Exists,
				"would_chain":     chain && status.Foreign(),
				"would_overwrite": force && status.Foreign(),
			})
		}
		printer.Section("Dry Run")
		printer.KeyValue("Hook", setup.HookName)
		printer.KeyValue("Path", path)
		printer.KeyValue("Action", setup.DescribeInstallAction(status, chain, force))
		return nil
	}

	chained, err := setup.InstallHook(path, chain, force)
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"status":  "ok",
			"hook":    setup.HookName,
			"path":    path,
			"chained": chained,
		})
	}
	msg := "Installed commit-msg hook"
	if chained {
		msg += " (existing hook backed up and chained)"
	}
	return printer.Success(map[string]any{"message": msg})
}

// newHooksUninstallCmd creates the hooks uninstall subcommand.
func newHooksUninstallCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the commit-msg hook",
		Long:  `Remove the git-cc commit-msg hook and restore any backup. Hooks not written by git-cc are left alone.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHooksUninstall(cmd, dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be done without doing it")
	return cmd
}

// runHooksUninstall executes the hooks uninstall command.
func runHooksUninstall(cmd *cobra.Command, dryRun bool) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).WithStderr(cmd.ErrOrStderr())

	path, err := hookPath(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	if dryRun {
		status := setup.CheckHookStatus(path)
		if printer.IsJSON() {
			return printer.Success(map[string]any{
				"status":      "dry_run",
				"hook":        setup.HookName,
				"installed":   status.Installed,
				"has_backup":  status.HasBackup,
				"would_touch": status.Installed,
			})
		}
		printer.Section("Dry Run")
		printer.KeyValue("Hook", setup.HookName)
		printer.KeyValue("Action", setup.DescribeUninstallAction(status))
		return nil
	}

	removed, restored, err := setup.RemoveHook(path)
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"status":   "ok",
			"removed":  removed,
			"restored": restored,
		})
	}
	switch {
	case !removed:
		return printer.Success(map[string]any{"message": "No git-cc hook installed"})
	case restored:
		return printer.Success(map[string]any{"message": "Removed commit-msg hook and restored the backup"})
	default:
		return printer.Success(map[string]any{"message": "Removed commit-msg hook"})
	}
}
