// Package tools provides the trip replay MCP tools implementations.
package tools

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Registry holds all MCP tool registrations for a replay.
type Registry struct {
	player Player
	logger *slog.Logger
}

// NewRegistry creates a new MCP tool registry serving player.
func NewRegistry(player Player, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		player: player,
		logger: logger.With("component", "tools"),
	}
}

// ToolDefinition represents a replay MCP tool definition.
type ToolDefinition struct {
	Name        string
	Description string
	Tool        mcp.Tool
	Handler     func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// GetToolDefinitions returns all replay MCP tool definitions.
func (r *Registry) GetToolDefinitions() []ToolDefinition {
	return []ToolDefinition{
		// Playback Tools
		{
			Name:        "replay_status",
			Description: "Get the playback state, cursor index and the position shown on the map",
			Tool:        ReplayStatusTool(),
			Handler:     r.HandleReplayStatus,
		},
		{
			Name:        "toggle_playback",
			Description: "Start or pause the replay",
			Tool:        TogglePlaybackTool(),
			Handler:     r.HandleTogglePlayback,
		},
		{
			Name:        "seek_index",
			Description: "Move the replay cursor to a specific record",
			Tool:        SeekIndexTool(),
			Handler:     r.HandleSeekIndex,
		},
		{
			Name:        "seek_fraction",
			Description: "Move the replay cursor to a relative position of the trip",
			Tool:        SeekFractionTool(),
			Handler:     r.HandleSeekFraction,
		},
		{
			Name:        "current_position",
			Description: "Get the current fix with labels and heading",
			Tool:        CurrentPositionTool(),
			Handler:     r.HandleCurrentPosition,
		},

		// Route Tools
		{
			Name:        "route_segments",
			Description: "Get the colored route as encoded polylines",
			Tool:        RouteSegmentsTool(),
			Handler:     r.HandleRouteSegments,
		},
		{
			Name:        "route_geojson",
			Description: "Get the colored route as GeoJSON",
			Tool:        RouteGeoJSONTool(),
			Handler:     r.HandleRouteGeoJSON,
		},
	}
}

// RegisterTools registers all tools with the MCP server.
func (r *Registry) RegisterTools(mcpServer *server.MCPServer) {
	for _, def := range r.GetToolDefinitions() {
		r.logger.Info("registering tool", "name", def.Name)
		mcpServer.AddTool(def.Tool, def.Handler)
	}
}
