// Package prompts provides prompt templates for use with the MCP server.
package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterReplayPrompts registers all replay-related prompts with the MCP server
func RegisterReplayPrompts(s *server.MCPServer) {
	s.AddPrompt(mcp.NewPrompt("replay",
		mcp.WithPromptDescription("Instructions for driving the trip replay tools"),
	), ReplayPromptHandler)

	s.AddPrompt(mcp.NewPrompt("replay_examples",
		mcp.WithPromptDescription("Examples of answering questions about a trip with the replay tools"),
	), ReplayExamplesHandler)
}

// ReplayPromptHandler returns the main prompt for the replay tools
func ReplayPromptHandler(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	systemPrompt := `You control a replay of one recorded vehicle trip. Each record has an event
(driving, idling or parking), a timestamp, a coordinate, a heading and an
optional speed. The replay advances one record per second while playing.

When using these tools:

1. Call replay_status first to learn the record count and whether it is playing
2. Use seek_index for an exact record and seek_fraction for "halfway", "near the end" and similar
3. Record indices start at 0; the last one is total-1
4. Playback stops by itself at the last record; toggle_playback from there stops again on the next tick
5. Colors: driving is blue (#165BAA), idling is green (#009A46), parking and unknown are grey (#D3D3D3)

ERROR HANDLING GUIDELINES:
1. OUT_OF_RANGE means the index is outside 0..total-1; check replay_status
2. INVALID_PARAMETER means a missing, fractional or out of [0,1] value
3. REPLAY_UNAVAILABLE means the replay has shut down; do not retry`

	return mcp.NewGetPromptResult(
		"Trip Replay Tool Usage Guidelines",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(
				mcp.RoleAssistant,
				mcp.NewTextContent(systemPrompt),
			),
		},
	), nil
}

// ReplayExamplesHandler returns examples for the replay tools
func ReplayExamplesHandler(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	examplesPrompt := `EXAMPLES OF EFFECTIVE REPLAY TOOL USAGE:

User: "Where was the vehicle halfway through the trip?"
AI: *uses seek_fraction with fraction: 0.5, then current_position*

User: "How long did it idle?"
AI: *uses route_segments and reads the start and end index of each idling run, then seek_index on both ends to read the time labels*

User: "Play the trip."
AI: *uses replay_status; if the state is "stopped", uses toggle_playback*

User: "Draw the route."
AI: *uses route_geojson and passes the FeatureCollection to a map, coloring each feature by its "color" property*`

	return mcp.NewGetPromptResult(
		"Trip Replay Examples",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(
				mcp.RoleAssistant,
				mcp.NewTextContent(examplesPrompt),
			),
		},
	), nil
}
