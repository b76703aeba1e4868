// Package mcp provides a Model Context Protocol server for git-cc.
// It exposes message formatting, linting and committing as MCP tools so an
// agent can write Conventional Commits without driving the interactive prompt.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/gitcc/internal/config"
	"github.com/gorewood/gitcc/internal/git"
)

// NewServer creates an MCP server with all git-cc tools registered.
// The committer's streams are replaced per call; stdout belongs to the
// protocol.
func NewServer(version string, cfg *config.Config, committer *git.Committer) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "git-cc",
		Version: version,
	}, nil)
	registerTools(server, newToolset(cfg, committer))
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// writeAnnotations returns annotations for write tools (additive, not destructive).
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(false),
	}
}

// registerTools adds all git-cc tools to the server.
func registerTools(server *mcp.Server, tools *toolset) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "types",
		Description: "List the commit types configured for this repository, in prompt order, with descriptions and emoji.",
		Annotations: readOnlyAnnotations(),
	}, tools.handleTypes)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "format",
		Description: "Render a Conventional Commits message from its fields without committing. Fails when a field is invalid.",
		Annotations: readOnlyAnnotations(),
	}, tools.handleFormat)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "lint",
		Description: "Check an existing commit message against the Conventional Commits rules and the configured types.",
		Annotations: readOnlyAnnotations(),
	}, tools.handleLint)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "commit",
		Description: "Format a Conventional Commits message and run git commit with it. Set all=true to stage tracked changes first, dry_run=true to only render.",
		Annotations: writeAnnotations(),
	}, tools.handleCommit)
}
