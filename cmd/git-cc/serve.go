package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/gorewood/gitcc/internal/git"
	"github.com/gorewood/gitcc/internal/output"
	gitccmcp "github.com/gorewood/gitcc/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run git-cc as a Model Context Protocol (MCP) server over stdio.

This lets an MCP-capable agent write Conventional Commits with the
repository's configured types instead of guessing the format.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "git-cc": {
        "command": "git-cc",
        "args": ["serve"]
      }
    }
  }

Available tools: types, format, lint, commit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := sessionFrom(cmd).config()
			if err != nil {
				// stdout belongs to the protocol
				output.NewPrinter(cmd.ErrOrStderr(), false, false).Error(err)
				return err
			}
			server := gitccmcp.NewServer(buildVersion(), cfg, &git.Committer{})
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
