package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	mcpserver "github.com/lukman83/lcsc-scrap/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start MCP stdio server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.ErrOrStderr(), "Starting LCSC MCP server on stdio...")

	if err := mcpserver.Serve(client, mcpserver.Options{Defaults: searchDefaults(), Logger: logger}); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}
	return nil
}
