// ABOUTME: MCP server command for the gazette CLI
// ABOUTME: Starts stdio-based MCP server bound to the current session's lifetime

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rhajizada/gazette-cli/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server for AI agents",
	Long: `Start the Model Context Protocol (MCP) server on stdio.

This allows AI agents like Claude to browse items, manage subscriptions,
like articles, and curate collections on your Gazette server through
structured tools.

The server communicates via JSON-RPC on stdin/stdout and shuts down
when the login session expires.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireClient(); err != nil {
			return err
		}
		if !sess.Authenticated() {
			return fmt.Errorf("not logged in: run 'gazette login' first")
		}

		server := mcp.NewServer(client, cfg.GetChunkSize())

		// Stop serving the moment the token expires; agents get clean
		// EOF instead of a stream of 401s.
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		go func() {
			select {
			case <-sess.Watch(ctx):
				fmt.Fprintln(os.Stderr, "session expired, shutting down")
				cancel()
			case <-ctx.Done():
			}
		}()

		if err := server.Listen(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
