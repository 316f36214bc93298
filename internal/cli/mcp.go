package cli

import (
	"fmt"
	"os"

	"github.com/mvp-joe/docuai/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for structural code extraction",
	Long: `Start the Model Context Protocol (MCP) server that lets coding assistants
read the structure of your codebase.

The MCP server:
- Provides docuai_parse for the classes, functions and imports of one file
- Provides docuai_index for an outline of the whole project
- Communicates via stdio (standard MCP transport)

Example:
  docuai mcp`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	projectPath, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	fmt.Fprintf(os.Stderr, "DocuAI MCP Server\n")
	fmt.Fprintf(os.Stderr, "Project: %s\n\n", projectPath)

	server, err := mcp.NewMCPServer(cfg.ToIndexerConfig(projectPath), Version)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	// Serve (blocks until shutdown)
	if err := server.Serve(cmd.Context()); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}
	return nil
}
