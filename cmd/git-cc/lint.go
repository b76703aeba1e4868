package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gorewood/gitcc/internal/conventional"
	"github.com/gorewood/gitcc/internal/output"
)

// newLintCmd creates the lint command.
func newLintCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "lint [message]",
		Short: "Check a commit message",
		Long: `Check that a commit message follows Conventional Commits and uses one of
the configured types. The message comes from the argument, --file, or stdin
("--file -"). Merge, revert, fixup! and squash! messages are accepted as-is.

Exits 1 and lists the problems when the message is rejected. The commit-msg
hook installed by "git-cc hooks install" runs this command.

Examples:
  git-cc lint "feat(api): add login"
  git-cc lint --file .git/COMMIT_EDITMSG
  git log -1 --format=%B | git-cc lint --file -`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, file)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "F", "", "Read the message from a file (- for stdin)")
	return cmd
}

// runLint executes the lint command.
func runLint(cmd *cobra.Command, args []string, file string) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).WithStderr(cmd.ErrOrStderr())

	text, err := lintInput(cmd, args, file)
	if err != nil {
		printer.Error(err)
		return err
	}

	cfg, err := sessionFrom(cmd).config()
	if err != nil {
		printer.Error(err)
		return err
	}

	result := conventional.NewLinter(cfg.Types, cfg.Format).Lint(text)
	if printer.IsJSON() {
		if err := printer.Success(map[string]any{
			"ok":       result.OK(),
			"skipped":  result.Skipped,
			"problems": result.Problems,
		}); err != nil {
			return err
		}
		if !result.OK() {
			return output.NewInputError("commit message rejected")
		}
		return nil
	}

	if result.OK() {
		return nil
	}
	printer.Stderr("%s\n", "commit message rejected:")
	for _, problem := range result.Problems {
		printer.Stderr("  - %s\n", problem)
	}
	return output.NewInputError("commit message rejected")
}

// lintInput reads the message from the argument, file or stdin.
func lintInput(cmd *cobra.Command, args []string, file string) (string, error) {
	switch {
	case len(args) == 1 && file != "":
		return "", output.NewInputError("pass the message as an argument or with --file, not both")
	case len(args) == 1:
		return args[0], nil
	case file == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", output.NewSystemErrorWithCause("reading stdin", err)
		}
		return string(data), nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", output.NewInputErrorWithCause(fmt.Sprintf("reading %s: %v", file, err), err)
		}
		return string(data), nil
	default:
		return "", output.NewInputError("no message given; pass it as an argument or use --file")
	}
}
