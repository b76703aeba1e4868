package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/gitcc/internal/git"
	"github.com/gorewood/gitcc/internal/output"
)

// checkStatus represents the result of a health check.
type checkStatus string

const (
	checkPass checkStatus = "pass"
	checkWarn checkStatus = "warn"
	checkFail checkStatus = "fail"
)

// checkResult holds the result of a single health check.
type checkResult struct {
	Name    string      `json:"name"`
	Status  checkStatus `json:"status"`
	Message string      `json:"message"`
	Hint    string      `json:"hint,omitempty"`
}

// doctorResult holds all check results organized by category.
type doctorResult struct {
	Version string         `json:"version"`
	Core    []checkResult  `json:"core"`
	Config  []checkResult  `json:"config"`
	Hooks   []checkResult  `json:"hooks"`
	History []checkResult  `json:"history"`
	Summary *doctorSummary `json:"summary"`
}

// doctorSummary holds the counts of check results.
type doctorSummary struct {
	Passed   int `json:"passed"`
	Warnings int `json:"warnings"`
	Failed   int `json:"failed"`
}

// doctorFlags holds the command-line flags for the doctor command.
type doctorFlags struct {
	fix   bool
	quiet bool
}

// newDoctorCmd creates the doctor command.
func newDoctorCmd() *cobra.Command {
	flags := &doctorFlags{}

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check installation health and suggest fixes",
		Long: `Check git-cc installation health and suggest fixes.

Runs a series of health checks across four categories:
  CORE     - git and git-cc binaries, repository
  CONFIG   - configuration files and their validity
  HOOKS    - the commit-msg lint hook
  HISTORY  - recent commits and release tags

Examples:
  git-cc doctor              # Run all health checks
  git-cc doctor --fix        # Install the commit-msg hook when missing
  git-cc doctor --quiet      # Only show failures and warnings
  git-cc doctor --json       # Output results as JSON`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.fix, "fix", false, "Auto-fix what can be fixed (hook install)")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "Only show failures and warnings")

	return cmd
}

// runDoctor executes the doctor command. Failed checks are reported, not
// returned: the command itself succeeds.
func runDoctor(cmd *cobra.Command, flags *doctorFlags) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).WithStderr(cmd.ErrOrStderr())

	if !git.IsRepo() {
		err := output.NewSystemError("not in a git repository")
		printer.Error(err)
		return err
	}

	result := gatherDoctorChecks(cmd, flags)

	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}

	outputDoctorHuman(printer, result, flags.quiet)
	return nil
}

// gatherDoctorChecks runs all health checks and returns results.
func gatherDoctorChecks(cmd *cobra.Command, flags *doctorFlags) *doctorResult {
	s := sessionFrom(cmd)
	result := &doctorResult{
		Version: buildVersion(),
		Core:    runCoreChecks(s),
		Config:  runConfigChecks(s),
		Hooks:   runHookChecks(cmd, flags),
		History: runHistoryChecks(s),
		Summary: &doctorSummary{},
	}

	all := make([]checkResult, 0, len(result.Core)+len(result.Config)+len(result.Hooks)+len(result.History))
	all = append(all, result.Core...)
	all = append(all, result.Config...)
	all = append(all, result.Hooks...)
	all = append(all, result.History...)
	for _, check := range all {
		switch check.Status {
		case checkPass:
			result.Summary.Passed++
		case checkWarn:
			result.Summary.Warnings++
		case checkFail:
			result.Summary.Failed++
		}
	}

	return result
}

// outputDoctorHuman outputs the doctor result in human-readable format.
func outputDoctorHuman(printer *output.Printer, result *doctorResult, quiet bool) {
	printer.Println()
	printer.Print("git-cc doctor %s\n", result.Version)

	printCheckSection(printer, "CORE", result.Core, quiet)
	printCheckSection(printer, "CONFIG", result.Config, quiet)
	printCheckSection(printer, "HOOKS", result.Hooks, quiet)
	printCheckSection(printer, "HISTORY", result.History, quiet)

	printer.Println()
	printer.Print("%d passed  %d warnings  %d failed\n",
		result.Summary.Passed, result.Summary.Warnings, result.Summary.Failed)
}

// printCheckSection prints a section of checks.
func printCheckSection(printer *output.Printer, title string, checks []checkResult, quiet bool) {
	if quiet && allPassed(checks) {
		return
	}

	printer.Println()
	printer.Println(title)

	for _, check := range checks {
		if quiet && check.Status == checkPass {
			continue
		}
		printer.Check(string(check.Status), check.Name, check.Message, check.Hint)
	}
}

func allPassed(checks []checkResult) bool {
	for _, check := range checks {
		if check.Status != checkPass {
			return false
		}
	}
	return true
}
