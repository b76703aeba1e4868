// Package git runs the git executable for git-cc.
//
// Queries (IsRepo, RepoRoot, HooksDir, HasStagedChanges) capture git's
// output and translate failures into *output.ExitError values with the
// system-error code.
//
// The Committer is different: it hands the terminal to `git commit`, so
// editors, hooks and gpg prompts behave exactly as they do without git-cc,
// and reports the child's exit status back unchanged:
//
//	c := git.NewCommitter()
//	err := c.Commit(ctx, message, os.Args[1:])
//	os.Exit(output.GetExitCode(err)) // same status git commit returned
//
// HasMessageFlag decides whether the forwarded flags already carry a
// message, in which case no prompts are needed and Passthrough is used.
package git
