// Package server provides the MCP server exposing the trip replay controls.
package server

import (
	"log/slog"

	"github.com/NERVsystems/tripreplay/pkg/tools"
	"github.com/NERVsystems/tripreplay/pkg/tools/prompts"
	"github.com/NERVsystems/tripreplay/pkg/version"
	"github.com/mark3labs/mcp-go/server"
)

const (
	// ServerName is the name of the MCP server
	ServerName = version.Name + "-mcp-server"
)

// Server encapsulates the MCP server with the replay tools.
type Server struct {
	srv *server.MCPServer
}

// NewServer creates a new MCP server with all tools and prompts registered
// against player.
func NewServer(player tools.Player, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("initializing trip replay MCP server",
		"name", ServerName,
		"version", version.BuildVersion)

	// Create MCP server with options
	srv := server.NewMCPServer(
		ServerName,
		version.BuildVersion,
		server.WithToolCapabilities(false),
		server.WithPromptCapabilities(false),
		server.WithRecovery(),
	)

	registry := tools.NewRegistry(player, logger)
	registry.RegisterTools(srv)
	prompts.RegisterReplayPrompts(srv)

	return &Server{srv: srv}, nil
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.srv
}

// Run starts the MCP server using stdin/stdout for communication. It returns
// when stdin closes or the process is signalled.
func (s *Server) Run() error {
	return server.ServeStdio(s.srv)
}
