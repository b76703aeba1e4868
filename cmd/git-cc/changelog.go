package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/gorewood/gitcc/internal/export"
	"github.com/gorewood/gitcc/internal/history"
	"github.com/gorewood/gitcc/internal/output"
)

// changelogFlags holds flags for the changelog command.
type changelogFlags struct {
	output  string
	all     bool
	version string
}

// newChangelogCmd creates the changelog command.
func newChangelogCmd() *cobra.Command {
	var flags changelogFlags

	cmd := &cobra.Command{
		Use:   "changelog",
		Short: "Render release notes for the commits since the latest tag",
		Long: `Group the Conventional Commits made since the latest semver tag into release
notes: breaking changes, features, bug fixes, performance improvements and
reverts. The heading uses the version next-version would compute.

Examples:
  git-cc changelog                        # print markdown
  git-cc changelog --all                  # include docs, chore, ...
  git-cc changelog -o CHANGELOG.md        # prepend to the changelog file
  git-cc changelog --release v2.0.0 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChangelog(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Prepend the notes to this file instead of printing them")
	cmd.Flags().BoolVar(&flags.all, "all", false, "Include types that are hidden by default")
	cmd.Flags().StringVar(&flags.version, "release", "", "Override the release heading")
	return cmd
}

// runChangelog executes the changelog command.
func runChangelog(cmd *cobra.Command, flags changelogFlags) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).WithStderr(cmd.ErrOrStderr())

	repo, err := openHistory(printer)
	if err != nil {
		return err
	}
	release, changes, err := repo.Unreleased()
	if err != nil {
		sysErr := output.NewSystemErrorWithCause(err.Error(), err)
		printer.Error(sysErr)
		return sysErr
	}

	notes := export.Notes{
		Version: releaseHeading(release, flags.version),
		Date:    time.Now(),
		Changes: changes,
		All:     flags.all,
	}

	if printer.IsJSON() {
		return export.FormatJSON(printer, notes)
	}

	text := export.FormatMarkdown(notes)
	if flags.output == "" {
		printer.Print("%s", text)
		return nil
	}
	if err := export.PrependFile(flags.output, text); err != nil {
		printer.Error(err)
		return err
	}
	printer.Stderr("Updated %s (%d commits)\n", flags.output, release.Commits)
	return nil
}

func releaseHeading(release history.Release, override string) string {
	switch {
	case override != "":
		return override
	case release.Bump == history.BumpNone:
		return ""
	default:
		return release.NextString()
	}
}
