// ABOUTME: MCP server implementation for gazette
// ABOUTME: Provides tools, resources, and prompts for AI agents to work a Gazette server

package mcp

import (
	"context"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/rhajizada/gazette-cli/internal/api"
)

// Server wraps the MCP server with a Gazette API client.
type Server struct {
	mcpServer *server.MCPServer
	client    *api.Client
	chunkSize int
}

// NewServer creates a new MCP server instance backed by the given client.
// chunkSize controls the prefetch batch size for list tools.
func NewServer(client *api.Client, chunkSize int) *Server {
	s := &Server{
		client:    client,
		chunkSize: chunkSize,
	}

	s.mcpServer = server.NewMCPServer(
		"gazette",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
		server.WithPromptCapabilities(true),
	)

	s.registerTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

// ServeStdio starts the MCP server on stdio and blocks until EOF.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// Listen starts the MCP server on stdio and stops when ctx is canceled,
// which lets the caller tie the server's lifetime to the session's.
func (s *Server) Listen(ctx context.Context) error {
	return server.NewStdioServer(s.mcpServer).Listen(ctx, os.Stdin, os.Stdout)
}

// registerTools is implemented in tools.go
// registerResources is implemented in resources.go
// registerPrompts is implemented in prompts.go
