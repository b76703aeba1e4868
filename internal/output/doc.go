// Package output provides structured output handling for the git-cc CLI.
//
// Subcommands write through a Printer that switches between human-readable
// and JSON output based on the --json flag:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), output.IsTTY(cmd.OutOrStdout()))
//	printer.Success(map[string]any{"message": "hook installed"})
//	printer.Error(err)
//
// # Errors and exit codes
//
// Every error git-cc returns is an *ExitError. Its Kind separates the two
// failures a commit can have (bad input, failed git) from configuration and
// hook problems:
//
//	output.NewInputError("subject must not be empty")        // exit 1
//	output.NewProcessError(status, "git commit failed", err) // exit = git's status
//	output.NewSystemError("cannot read config")               // exit 2
//	output.NewConflictError("commit-msg hook already exists") // exit 3
//
// main passes the error returned by the command tree to GetExitCode, so the
// exit status of git-cc mirrors the exit status of git commit.
package output
