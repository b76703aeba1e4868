package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gorewood/gitcc/internal/git"
	"github.com/gorewood/gitcc/internal/history"
	"github.com/gorewood/gitcc/internal/output"
)

// newNextVersionCmd creates the next-version command.
func newNextVersionCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "next-version",
		Short: "Compute the next semantic version from commit history",
		Long: `Find the latest semver release tag and compute the next version from the
Conventional Commits made since: a breaking change bumps the major version
(the minor one while still at 0.x), feat bumps the minor version and fix or
perf the patch version. Pre-release tags are ignored.

Examples:
  git-cc next-version          # summary
  git-cc next-version -q       # just the version, for scripts
  git tag "$(git-cc next-version -q)"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runNextVersion(cmd, quiet)
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Print only the next version")
	return cmd
}

// runNextVersion executes the next-version command.
func runNextVersion(cmd *cobra.Command, quiet bool) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).WithStderr(cmd.ErrOrStderr())

	repo, err := openHistory(printer)
	if err != nil {
		return err
	}
	release, err := repo.NextVersion()
	if err != nil {
		sysErr := output.NewSystemErrorWithCause(err.Error(), err)
		printer.Error(sysErr)
		return sysErr
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"tag":     release.Tag,
			"current": release.Current.String(),
			"next":    release.NextString(),
			"bump":    release.Bump.String(),
			"commits": release.Commits,
		})
	}
	if quiet {
		printer.Println(release.NextString())
		return nil
	}

	tag := release.Tag
	if tag == "" {
		tag = "(none)"
	}
	printer.KeyValue("Latest tag", tag)
	printer.KeyValue("Commits since", strconv.Itoa(release.Commits))
	printer.KeyValue("Bump", release.Bump.String())
	printer.KeyValue("Next version", release.NextString())
	return nil
}

// openHistory opens the enclosing repository for history queries, reporting
// failures on the printer.
func openHistory(printer *output.Printer) (*history.Repo, error) {
	root, err := git.RepoRoot()
	if err != nil {
		printer.Error(err)
		return nil, err
	}
	repo, err := history.Open(root)
	if err != nil {
		sysErr := output.NewSystemErrorWithCause(err.Error(), err)
		printer.Error(sysErr)
		return nil, sysErr
	}
	return repo, nil
}
