package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/gitcc/internal/conventional"
	"github.com/gorewood/gitcc/internal/output"
)

// formatFlags holds the command-line flags for the format command.
type formatFlags struct {
	typ          string
	scope        string
	subject      string
	body         string
	breaking     bool
	breakingNote string
	issues       string
}

// interactive reports whether no message field was given on the command line.
func (f *formatFlags) interactive() bool {
	return f.typ == "" && f.subject == "" && f.scope == "" && f.body == "" &&
		!f.breaking && f.breakingNote == "" && f.issues == ""
}

func (f *formatFlags) message() conventional.Message {
	return conventional.Message{
		Type:         f.typ,
		Scope:        f.scope,
		Subject:      f.subject,
		Body:         f.body,
		Breaking:     f.breaking || f.breakingNote != "",
		BreakingNote: f.breakingNote,
		Issues:       f.issues,
	}.Normalize()
}

// newFormatCmd creates the format command.
func newFormatCmd(d deps) *cobra.Command {
	flags := &formatFlags{}

	cmd := &cobra.Command{
		Use:   "format",
		Short: "Print a Conventional Commits message without committing",
		Long: `Render a commit message and print it to stdout.

With field flags the message is built non-interactively; without any the
usual prompts run on stderr, so the result can be piped or captured.

Examples:
  git-cc format --type feat --scope api --subject "add login"
  git-cc format -t fix -s "handle nil" --breaking-note "drops v1"
  git commit -F <(git-cc format)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFormat(cmd, flags, d)
		},
	}

	cmd.Flags().StringVarP(&flags.typ, "type", "t", "", "Commit type")
	cmd.Flags().StringVar(&flags.scope, "scope", "", "Scope of the change")
	cmd.Flags().StringVarP(&flags.subject, "subject", "s", "", "Short imperative description")
	cmd.Flags().StringVarP(&flags.body, "body", "b", "", "Longer description")
	cmd.Flags().BoolVar(&flags.breaking, "breaking", false, "Mark the change as breaking")
	cmd.Flags().StringVar(&flags.breakingNote, "breaking-note", "", "Describe the breaking change (implies --breaking)")
	cmd.Flags().StringVarP(&flags.issues, "issues", "i", "", "Related issues")

	return cmd
}

// runFormat executes the format command.
func runFormat(cmd *cobra.Command, flags *formatFlags, d deps) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).WithStderr(cmd.ErrOrStderr())

	s := sessionFrom(cmd)
	cfg, err := s.config()
	if err != nil {
		printer.Error(err)
		return err
	}

	var message string
	if flags.interactive() {
		stderr := output.NewPrinter(cmd.ErrOrStderr(), false, useColorFor(cmd, cmd.ErrOrStderr()))
		message, err = collectMessage(cmd.Context(), cmd, cfg, s.root, d, stderr)
	} else {
		msg := flags.message()
		if err = conventional.NewValidator(cfg.Types).Validate(msg); err == nil {
			message = cfg.Formatter().Format(msg)
		}
	}
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		header, _, _ := strings.Cut(message, "\n")
		return printer.Success(map[string]any{
			"message": message,
			"header":  header,
		})
	}
	printer.Println(message)
	return nil
}
