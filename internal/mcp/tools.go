package mcp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/gitcc/internal/config"
	"github.com/gorewood/gitcc/internal/conventional"
	"github.com/gorewood/gitcc/internal/git"
)

type toolset struct {
	types     conventional.TypeSet
	formatter conventional.Formatter
	validator *conventional.Validator
	linter    *conventional.Linter
	committer *git.Committer
}

func newToolset(cfg *config.Config, committer *git.Committer) *toolset {
	if cfg == nil {
		cfg = config.Defaults()
	}
	if committer == nil {
		committer = &git.Committer{}
	}
	return &toolset{
		types:     cfg.Types,
		formatter: cfg.Formatter(),
		validator: conventional.NewValidator(cfg.Types),
		linter:    conventional.NewLinter(cfg.Types, cfg.Format),
		committer: committer,
	}
}

// --- Shared types ---

// MessageInput carries the fields of a commit message.
type MessageInput struct {
	Type         string `json:"type"                    jsonschema:"commit type, one of the configured types (required)"`
	Scope        string `json:"scope,omitempty"         jsonschema:"component or file name affected"`
	Subject      string `json:"subject"                 jsonschema:"short imperative description (required)"`
	Body         string `json:"body,omitempty"          jsonschema:"longer description, wrapped automatically"`
	Breaking     bool   `json:"breaking,omitempty"      jsonschema:"whether the change is breaking"`
	BreakingNote string `json:"breaking_note,omitempty" jsonschema:"description of the breaking change; defaults to the subject"`
	Issues       string `json:"issues,omitempty"        jsonschema:"related issues, e.g. #12, #34"`
}

func (in MessageInput) message() conventional.Message {
	return conventional.Message{
		Type:         in.Type,
		Scope:        in.Scope,
		Subject:      in.Subject,
		Body:         in.Body,
		Breaking:     in.Breaking || in.BreakingNote != "",
		BreakingNote: in.BreakingNote,
		Issues:       in.Issues,
	}.Normalize()
}

// render validates and formats the input.
func (t *toolset) render(in MessageInput) (string, error) {
	msg := in.message()
	if err := t.validator.Validate(msg); err != nil {
		return "", err
	}
	return t.formatter.Format(msg), nil
}

// --- Types tool ---

// TypesInput is the input for the types tool (no parameters needed).
type TypesInput struct{}

// TypeInfo describes one commit type.
type TypeInfo struct {
	Name        string `json:"name"            jsonschema:"type name used in the header"`
	Description string `json:"description"     jsonschema:"what the type is for"`
	Emoji       string `json:"emoji,omitempty" jsonschema:"emoji prefixed to the subject when enabled"`
}

// TypesOutput is the output for the types tool.
type TypesOutput struct {
	Types []TypeInfo `json:"types" jsonschema:"configured commit types in prompt order"`
}

func (t *toolset) handleTypes(_ context.Context, _ *mcp.CallToolRequest, _ TypesInput) (*mcp.CallToolResult, TypesOutput, error) {
	out := TypesOutput{Types: make([]TypeInfo, 0, len(t.types))}
	for _, ct := range t.types {
		out.Types = append(out.Types, TypeInfo{Name: ct.Name, Description: ct.Description, Emoji: ct.Emoji})
	}
	return nil, out, nil
}

// --- Format tool ---

// FormatOutput is the output for the format tool.
type FormatOutput struct {
	Message string `json:"message" jsonschema:"full commit message"`
	Header  string `json:"header"  jsonschema:"first line of the message"`
}

func (t *toolset) handleFormat(_ context.Context, _ *mcp.CallToolRequest, in MessageInput) (*mcp.CallToolResult, FormatOutput, error) {
	text, err := t.render(in)
	if err != nil {
		return nil, FormatOutput{}, err
	}
	header, _, _ := strings.Cut(text, "\n")
	return nil, FormatOutput{Message: text, Header: header}, nil
}

// --- Lint tool ---

// LintInput is the input for the lint tool.
type LintInput struct {
	Message string `json:"message" jsonschema:"commit message text to check (required)"`
}

// LintOutput is the output for the lint tool.
type LintOutput struct {
	OK       bool     `json:"ok"                 jsonschema:"true when the message is acceptable"`
	Skipped  bool     `json:"skipped,omitempty"  jsonschema:"true for merge, revert and fixup messages, which are not checked"`
	Problems []string `json:"problems,omitempty" jsonschema:"reasons the message was rejected"`
}

func (t *toolset) handleLint(_ context.Context, _ *mcp.CallToolRequest, in LintInput) (*mcp.CallToolResult, LintOutput, error) {
	if strings.TrimSpace(in.Message) == "" {
		return nil, LintOutput{}, errors.New("message is required")
	}
	res := t.linter.Lint(in.Message)
	return nil, LintOutput{OK: res.OK(), Skipped: res.Skipped, Problems: res.Problems}, nil
}

// --- Commit tool ---

// CommitInput is the input for the commit tool.
type CommitInput struct {
	Type         string `json:"type"                    jsonschema:"commit type, one of the configured types (required)"`
	Scope        string `json:"scope,omitempty"         jsonschema:"component or file name affected"`
	Subject      string `json:"subject"                 jsonschema:"short imperative description (required)"`
	Body         string `json:"body,omitempty"          jsonschema:"longer description, wrapped automatically"`
	Breaking     bool   `json:"breaking,omitempty"      jsonschema:"whether the change is breaking"`
	BreakingNote string `json:"breaking_note,omitempty" jsonschema:"description of the breaking change; defaults to the subject"`
	Issues       string `json:"issues,omitempty"        jsonschema:"related issues, e.g. #12, #34"`

	All    bool `json:"all,omitempty"     jsonschema:"stage modified and deleted tracked files first (git commit -a)"`
	DryRun bool `json:"dry_run,omitempty" jsonschema:"render the message without committing"`
}

// CommitOutput is the output for the commit tool.
type CommitOutput struct {
	Message   string `json:"message"          jsonschema:"commit message used"`
	Committed bool   `json:"committed"        jsonschema:"whether git commit ran and succeeded"`
	Output    string `json:"output,omitempty" jsonschema:"combined git output"`
}

func (t *toolset) handleCommit(ctx context.Context, _ *mcp.CallToolRequest, in CommitInput) (*mcp.CallToolResult, CommitOutput, error) {
	text, err := t.render(MessageInput{
		Type:         in.Type,
		Scope:        in.Scope,
		Subject:      in.Subject,
		Body:         in.Body,
		Breaking:     in.Breaking,
		BreakingNote: in.BreakingNote,
		Issues:       in.Issues,
	})
	if err != nil {
		return nil, CommitOutput{}, err
	}
	if in.DryRun {
		return nil, CommitOutput{Message: text}, nil
	}

	var args []string
	if in.All {
		args = append(args, "--all")
	}

	var buf bytes.Buffer
	committer := *t.committer
	committer.Stdin = nil
	committer.Stdout = &buf
	committer.Stderr = &buf

	if err := committer.Commit(ctx, text, args); err != nil {
		return nil, CommitOutput{}, fmt.Errorf("%w: %s", err, strings.TrimSpace(buf.String()))
	}
	return nil, CommitOutput{Message: text, Committed: true, Output: strings.TrimSpace(buf.String())}, nil
}
