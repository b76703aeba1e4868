package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/gorewood/gitcc/internal/config"
	"github.com/gorewood/gitcc/internal/conventional"
	"github.com/gorewood/gitcc/internal/git"
	"github.com/gorewood/gitcc/internal/history"
	"github.com/gorewood/gitcc/internal/logging"
	"github.com/gorewood/gitcc/internal/output"
	"github.com/gorewood/gitcc/internal/prompt"
)

// Options that let git commit record something without staged changes.
var (
	stagingLongFlags = []string{"--all", "--amend", "--allow-empty", "--include", "--only", "--interactive", "--patch"}
	stagingShortFlag = "aiop"
)

// deps are the process-facing collaborators of the commit flow.
type deps struct {
	prompter  func(cmd *cobra.Command, cfg *config.Config) prompt.Prompter
	committer func(cmd *cobra.Command) *git.Committer
}

// defaultDeps prompts on the terminal and runs the real git.
func defaultDeps() deps {
	return deps{
		prompter: func(cmd *cobra.Command, cfg *config.Config) prompt.Prompter {
			in := cmd.InOrStdin()
			accessible := cfg.Prompt.Accessible
			if f, ok := in.(*os.File); !ok || !output.IsTerminal(f) {
				accessible = true
			}
			return prompt.NewTerminal(in, cmd.ErrOrStderr(), accessible)
		},
		committer: func(cmd *cobra.Command) *git.Committer {
			return &git.Committer{
				Stdin:  cmd.InOrStdin(),
				Stdout: cmd.OutOrStdout(),
				Stderr: cmd.ErrOrStderr(),
			}
		},
	}
}

// runCommit is the root command: prompt for a message unless the forwarded
// options carry one, then run git commit with the options untouched.
func runCommit(cmd *cobra.Command, args []string, d deps) error {
	if len(args) == 1 && args[0] == "--version" {
		_, err := io.WriteString(cmd.OutOrStdout(), "git-cc version "+buildVersion()+"\n")
		return err
	}

	ctx := cmd.Context()
	logger := logging.FromContext(ctx)
	committer := d.committer(cmd)
	printer := output.NewPrinter(cmd.ErrOrStderr(), false, useColorFor(cmd, cmd.ErrOrStderr()))

	if git.HasMessageFlag(args) {
		logger.Debug("message supplied, passing through", "args", args)
		return reportProcessError(printer, committer.Passthrough(ctx, args))
	}
	if !git.IsRepo() {
		// git reports the error and its exit status.
		return reportProcessError(printer, committer.Passthrough(ctx, args))
	}

	s := sessionFrom(cmd)
	cfg, err := s.config()
	if err != nil {
		printer.Error(err)
		return err
	}

	warnIfNothingStaged(ctx, printer, args)

	message, err := collectMessage(ctx, cmd, cfg, s.root, d, printer)
	if err != nil {
		printer.Error(err)
		return err
	}

	return reportProcessError(printer, committer.Commit(ctx, message, args))
}

// reportProcessError prints failures git could not report itself: the
// binary did not start or was killed by a signal. A normal non-zero exit
// already explained itself on stderr.
func reportProcessError(printer *output.Printer, err error) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
		return err
	}
	printer.Error(err)
	return err
}

// warnIfNothingStaged mirrors git's complaint before the prompts so the
// user does not type a message for a commit that will be refused.
func warnIfNothingStaged(ctx context.Context, printer *output.Printer, args []string) {
	if git.HasFlag(args, stagingLongFlags, stagingShortFlag) {
		return
	}
	staged, err := git.HasStagedChanges(ctx)
	if err != nil {
		logging.FromContext(ctx).Debug("could not check the index", "err", err)
		return
	}
	if !staged {
		printer.Warn("no changes added to commit (use \"git add\" or pass -a)")
	}
}

// collectMessage runs the prompts and renders the validated message,
// asking for confirmation when configured.
func collectMessage(
	ctx context.Context,
	cmd *cobra.Command,
	cfg *config.Config,
	root string,
	d deps,
	printer *output.Printer,
) (string, error) {
	p := d.prompter(cmd, cfg)

	collector := prompt.NewCollector(p, cfg.Types)
	collector.Width = cfg.Format.MaxHeaderLength
	collector.Notice = cmd.ErrOrStderr()
	if cfg.Prompt.ScopeSuggestions && root != "" {
		collector.Scopes = suggestScopes(ctx, root, cfg.Prompt.HistoryDepth)
	}

	msg, err := collector.Collect(ctx)
	if err != nil {
		return "", err
	}
	if err := conventional.NewValidator(cfg.Types).Validate(msg); err != nil {
		return "", err
	}

	message := cfg.Formatter().Format(msg)
	if cfg.Prompt.Confirm {
		if err := prompt.Confirm(ctx, p, printer, message); err != nil {
			return "", err
		}
	}
	return message, nil
}

// suggestScopes reads recent history; failures only cost the suggestions.
func suggestScopes(ctx context.Context, root string, depth int) []string {
	logger := logging.FromContext(ctx)
	repo, err := history.Open(root)
	if err != nil {
		logger.Debug("scope suggestions unavailable", "err", err)
		return nil
	}
	scopes, err := repo.Scopes(depth)
	if err != nil {
		logger.Debug("scope suggestions unavailable", "err", err)
		return nil
	}
	logger.Debug("scope suggestions", "count", len(scopes))
	return scopes
}
