// Package main provides the entry point for the git-cc CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/gitcc/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		// Walk up to root to find the persistent flag
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

// colorMode reads the --color persistent flag; "auto" when unset.
func colorMode(cmd *cobra.Command) string {
	flag := cmd.Flags().Lookup("color")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("color")
	}
	if flag == nil {
		return "auto"
	}
	return flag.Value.String()
}

// useColor reports whether styled output should be written to stdout.
func useColor(cmd *cobra.Command) bool {
	return useColorFor(cmd, cmd.OutOrStdout())
}

// useColorFor reports whether styled output should be written to w.
func useColorFor(cmd *cobra.Command, w io.Writer) bool {
	return output.ResolveColorMode(colorMode(cmd), output.IsTTY(w))
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd,
		fang.WithVersion(buildVersion()),
		fang.WithErrorHandler(errorHandler),
	)
	return output.GetExitCode(err)
}

// errorHandler prints errors that no command has reported yet. Commands
// print their own ExitErrors through the printer, and git reports its own
// failures, so only stray errors (cobra usage errors) reach the terminal here.
func errorHandler(w io.Writer, styles fang.Styles, err error) {
	var exitErr *output.ExitError
	if errors.As(err, &exitErr) {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

// newRootCmd creates the root command for the git-cc CLI.
func newRootCmd() *cobra.Command {
	return newRootCmdWith(defaultDeps())
}

func newRootCmdWith(d deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "git-cc [git commit options...]",
		Short: "Write Conventional Commits interactively",
		Long: `git-cc - a drop-in replacement for git commit that writes Conventional Commits.

Run it wherever you would run git commit. It asks for the type, scope,
subject, body, breaking changes and related issues, renders a Conventional
Commits message and hands it to git commit together with every option you
passed. Options are never interpreted by git-cc: "git-cc -a --signoff" runs
"git commit -m <message> -a --signoff" and exits with git's status.

When the options already supply a message (-m, -F, -C, -c, --fixup, ...)
git-cc skips the prompts and runs git commit unchanged.

Use "git-cc help" for this text; "git-cc --help" is git commit's help.
Subcommands accept --json for structured output.`,
		Example: `  git-cc                     # prompt, then git commit -m <message>
  git-cc -a                  # prompt, then git commit -m <message> -a
  git-cc --amend --no-edit   # no prompt, runs git commit --amend --no-edit
  git-cc lint --file .git/COMMIT_EDITMSG
  git-cc hooks install`,
		Version:            buildVersion(),
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  prepare,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommit(cmd, args, d)
		},
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format (subcommands)")
	cmd.PersistentFlags().String("color", "auto", "Color output: auto, always, never")

	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd, d)

	return cmd
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "message", Title: "Message Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "repo", Title: "Repository Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "agent", Title: "Agent Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command, d deps) {
	addGroupedCommand(cmd, newFormatCmd(d), "message")
	addGroupedCommand(cmd, newLintCmd(), "message")
	addGroupedCommand(cmd, newTypesCmd(), "message")

	addGroupedCommand(cmd, newInitCmd(), "repo")
	addGroupedCommand(cmd, newHooksCmd(), "repo")
	addGroupedCommand(cmd, newNextVersionCmd(), "repo")
	addGroupedCommand(cmd, newChangelogCmd(), "repo")
	addGroupedCommand(cmd, newDoctorCmd(), "repo")

	addGroupedCommand(cmd, newServeCmd(), "agent")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
