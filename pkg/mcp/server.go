// Package mcp exposes the note store as Model Context Protocol tools.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/notemaster/pkg/core"
)

// NoteMasterMCPServer serves the tools of one store over stdio.
type NoteMasterMCPServer struct {
	mcpServer *server.MCPServer
	store     *core.Store
}

// NewNoteMasterMCPServer registers every note tool on a fresh mcp-go server.
func NewNoteMasterMCPServer(store *core.Store, version string) *NoteMasterMCPServer {
	s := server.NewMCPServer(
		"NoteMaster MCP Server",
		version,
		server.WithLogging(),
		server.WithRecovery(),
	)
	RegisterTools(s, store)
	return &NoteMasterMCPServer{mcpServer: s, store: store}
}

// Start runs the stdio event loop until stdin closes.
func (s *NoteMasterMCPServer) Start() error {
	return server.ServeStdio(s.mcpServer)
}

// MCPRawServer exposes the raw mcp-go server (useful for additional configuration).
func (s *NoteMasterMCPServer) MCPRawServer() *server.MCPServer {
	return s.mcpServer
}
