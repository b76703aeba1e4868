package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/gitcc/internal/config"
	"github.com/gorewood/gitcc/internal/conventional"
	"github.com/gorewood/gitcc/internal/git"
	"github.com/gorewood/gitcc/internal/history"
	"github.com/gorewood/gitcc/internal/setup"
)

// recentCommits is how many commits the history checks look at.
const recentCommits = 20

// runCoreChecks performs core infrastructure checks.
func runCoreChecks(s *session) []checkResult {
	return []checkResult{
		checkGitVersion(),
		checkRepository(s),
		checkBinaryInPath(),
	}
}

// checkGitVersion checks that git runs.
func checkGitVersion() checkResult {
	out, err := git.Run("--version")
	if err != nil {
		return checkResult{
			Name:    "Git",
			Status:  checkFail,
			Message: "git did not run: " + err.Error(),
			Hint:    "Install git and make sure it is on PATH",
		}
	}
	return checkResult{Name: "Git", Status: checkPass, Message: strings.TrimPrefix(out, "git version ")}
}

func checkRepository(s *session) checkResult {
	if s.root == "" {
		return checkResult{
			Name:    "Repository",
			Status:  checkWarn,
			Message: "could not determine repo root",
		}
	}
	return checkResult{Name: "Repository", Status: checkPass, Message: s.root}
}

// checkBinaryInPath checks that hooks can find git-cc.
func checkBinaryInPath() checkResult {
	path, err := exec.LookPath("git-cc")
	if err != nil {
		return checkResult{
			Name:    "Binary in PATH",
			Status:  checkWarn,
			Message: "git-cc not found on PATH",
			Hint:    "The commit-msg hook skips linting until git-cc is on PATH",
		}
	}
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	return checkResult{Name: "Binary in PATH", Status: checkPass, Message: path}
}

// runConfigChecks reports on the layered configuration.
func runConfigChecks(s *session) []checkResult {
	return []checkResult{
		checkConfigLoads(s),
		checkRepoConfig(s),
	}
}

func checkConfigLoads(s *session) checkResult {
	cfg, err := s.config()
	if err != nil {
		return checkResult{
			Name:    "Configuration",
			Status:  checkFail,
			Message: err.Error(),
			Hint:    "Fix the file or rewrite it with 'git-cc init --force'",
		}
	}
	sources := "built-in defaults"
	if len(cfg.Sources) > 0 {
		sources = strings.Join(cfg.Sources, ", ")
	}
	return checkResult{
		Name:    "Configuration",
		Status:  checkPass,
		Message: fmt.Sprintf("%d types from %s", len(cfg.Types), sources),
	}
}

func checkRepoConfig(s *session) checkResult {
	if s.root == "" {
		return checkResult{Name: "Repository Config", Status: checkWarn, Message: "no repository"}
	}
	path := filepath.Join(s.root, config.RepoFile)
	if _, err := os.Stat(path); err != nil {
		return checkResult{
			Name:    "Repository Config",
			Status:  checkPass,
			Message: config.RepoFile + " not present (optional)",
			Hint:    "Run 'git-cc init' to share commit types with the team",
		}
	}
	return checkResult{Name: "Repository Config", Status: checkPass, Message: path}
}

// runHookChecks reports on the commit-msg hook, installing it with --fix.
func runHookChecks(cmd *cobra.Command, flags *doctorFlags) []checkResult {
	return []checkResult{checkCommitMsgHook(cmd, flags)}
}

func checkCommitMsgHook(cmd *cobra.Command, flags *doctorFlags) checkResult {
	const name = "commit-msg Hook"

	path, err := hookPath(cmd)
	if err != nil {
		return checkResult{Name: name, Status: checkWarn, Message: "could not resolve hooks directory: " + err.Error()}
	}
	status := setup.CheckHookStatus(path)

	switch {
	case status.Installed:
		return checkResult{Name: name, Status: checkPass, Message: describeStatus(status)}
	case status.Foreign():
		return checkResult{
			Name:    name,
			Status:  checkWarn,
			Message: "another commit-msg hook is installed",
			Hint:    "Run 'git-cc hooks install --chain' to lint after it",
		}
	}

	if flags.fix {
		if _, err := setup.InstallHook(path, false, false); err == nil {
			return checkResult{Name: name, Status: checkPass, Message: "installed (auto-fixed)"}
		}
	}
	return checkResult{
		Name:    name,
		Status:  checkWarn,
		Message: "not installed",
		Hint:    "Run 'git-cc hooks install' or 'git-cc doctor --fix'",
	}
}

// runHistoryChecks looks at recent commits and release tags.
func runHistoryChecks(s *session) []checkResult {
	if s.root == "" {
		return nil
	}
	repo, err := history.Open(s.root)
	if err != nil {
		return []checkResult{{Name: "History", Status: checkWarn, Message: "could not open repository: " + err.Error()}}
	}
	return []checkResult{
		checkRecentCommits(s, repo),
		checkReleaseTag(repo),
	}
}

// checkRecentCommits counts how many recent commits lint cleanly. Merge
// and other generated messages are left out of the count.
func checkRecentCommits(s *session, repo *history.Repo) checkResult {
	const name = "Recent Commits"

	messages, err := repo.Messages(recentCommits)
	if err != nil {
		return checkResult{Name: name, Status: checkWarn, Message: "could not read history: " + err.Error()}
	}

	cfg, cfgErr := s.config()
	if cfgErr != nil {
		cfg = config.Defaults()
	}
	linter := conventional.NewLinter(cfg.Types, cfg.Format)

	checked, ok := 0, 0
	for _, msg := range messages {
		result := linter.Lint(msg)
		if result.Skipped {
			continue
		}
		checked++
		if result.OK() {
			ok++
		}
	}

	switch {
	case checked == 0:
		return checkResult{Name: name, Status: checkPass, Message: "no commits yet"}
	case ok == checked:
		return checkResult{Name: name, Status: checkPass, Message: fmt.Sprintf("all %d recent commits are conventional", checked)}
	default:
		return checkResult{
			Name:    name,
			Status:  checkWarn,
			Message: fmt.Sprintf("%d of %d recent commits are conventional", ok, checked),
			Hint:    "Commit with 'git-cc' or install the commit-msg hook",
		}
	}
}

func checkReleaseTag(repo *history.Repo) checkResult {
	const name = "Release Tag"

	release, err := repo.NextVersion()
	if err != nil {
		return checkResult{Name: name, Status: checkWarn, Message: "could not scan tags: " + err.Error()}
	}
	if release.Tag == "" {
		return checkResult{
			Name:    name,
			Status:  checkWarn,
			Message: "no semver release tag",
			Hint:    "Tag a release, e.g. 'git tag v0.1.0', for next-version and changelog",
		}
	}
	return checkResult{
		Name:    name,
		Status:  checkPass,
		Message: fmt.Sprintf("%s, %d commits since (next %s)", release.Tag, release.Commits, release.NextString()),
	}
}
