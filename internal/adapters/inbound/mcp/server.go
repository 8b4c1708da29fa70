package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewCSVCheckMCPServer creates a new MCP server with the csvcheck tools and
// resources registered. Relative CSV paths and .csvcheck.yaml are resolved
// against dir.
func NewCSVCheckMCPServer(dir string) *server.MCPServer {
	s := server.NewMCPServer(
		"csvcheck",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, dir)
	registerResources(s)

	return s
}
