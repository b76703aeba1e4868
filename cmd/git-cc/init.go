package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gorewood/gitcc/internal/config"
	"github.com/gorewood/gitcc/internal/git"
	"github.com/gorewood/gitcc/internal/output"
)

// initFlags holds the command-line flags for the init command.
type initFlags struct {
	global bool
	force  bool
	dryRun bool
}

// newInitCmd creates the init command.
func newInitCmd() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with the defaults",
		Long: `Write the default configuration as YAML so it can be edited.

By default the file is .git-cc.yaml at the repository root and applies to
that repository only. With --global it is config.yaml in the git-cc config
directory ($GIT_CC_CONFIG_HOME, $XDG_CONFIG_HOME/git-cc or ~/.config/git-cc).

Examples:
  git-cc init              # write .git-cc.yaml
  git-cc init --global     # write the user-wide config
  git-cc init --dry-run    # print the YAML without writing it`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.global, "global", false, "Write the user-wide config instead of the repository one")
	cmd.Flags().BoolVar(&flags.force, "force", false, "Overwrite an existing file")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Print the configuration instead of writing it")

	return cmd
}

// runInit executes the init command.
func runInit(cmd *cobra.Command, flags *initFlags) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).WithStderr(cmd.ErrOrStderr())

	path, err := initTarget(flags.global)
	if err != nil {
		printer.Error(err)
		return err
	}

	cfg := config.Defaults()
	if flags.dryRun {
		data, err := cfg.Marshal()
		if err != nil {
			sysErr := output.NewSystemErrorWithCause("encoding config", err)
			printer.Error(sysErr)
			return sysErr
		}
		if printer.IsJSON() {
			return printer.Success(map[string]any{
				"status": "dry_run",
				"path":   path,
				"config": string(data),
			})
		}
		printer.Box(path, string(data))
		return nil
	}

	if err := cfg.WriteFile(path, flags.force); err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{"status": "ok", "path": path})
	}
	return printer.Success(map[string]any{"message": "Wrote " + path})
}

// initTarget resolves the file init writes.
func initTarget(global bool) (string, error) {
	if global {
		path := config.GlobalFile()
		if path == "" {
			return "", output.NewSystemError("cannot determine the config directory; set GIT_CC_CONFIG_HOME")
		}
		return path, nil
	}
	root, err := git.RepoRoot()
	if err != nil {
		return "", output.NewInputError("not in a git repository (use --global for the user-wide config)")
	}
	return filepath.Join(root, config.RepoFile), nil
}
