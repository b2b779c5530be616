package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewEmberCheckMCPServer creates an MCP server with all embercheck tools and
// resources registered. The projectPath is the root of the Ember codebase to
// scan.
func NewEmberCheckMCPServer(projectPath string) *server.MCPServer {
	s := server.NewMCPServer(
		"embercheck",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath)
	registerResources(s, projectPath)

	return s
}
