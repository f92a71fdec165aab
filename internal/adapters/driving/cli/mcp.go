package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/graha/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can analyse
charts with graha.

Tools: analyze_chart, current_dasha, house_lords.
Resources: graha://reports, graha://reports/{id}, graha://rules/yogas.

By default, the server communicates over stdio using JSON-RPC. Use --port to
start an HTTP server instead.

When rules.watch is enabled the server reloads the rules directory as files
change.

Examples:
  # Stdio mode (default, for desktop assistants)
  graha mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  graha mcp serve --port 8080

Assistant configuration:
  {
    "mcpServers": {
      "graha": {
        "command": "/path/to/graha",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	ports := &mcp.Ports{
		Chart:           chartService,
		History:         historyService,
		Rules:           rulesService,
		DefaultTimezone: defaultTimezone(),
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
