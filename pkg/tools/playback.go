package tools

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/NERVsystems/tripreplay/pkg/trip"
	"github.com/mark3labs/mcp-go/mcp"
)

// ReplayStatusTool returns a tool definition for reading the playback state
func ReplayStatusTool() mcp.Tool {
	return mcp.NewTool("replay_status",
		mcp.WithDescription("Get the playback state, cursor index and the position shown on the map"),
	)
}

// TogglePlaybackTool returns a tool definition for play/pause
func TogglePlaybackTool() mcp.Tool {
	return mcp.NewTool("toggle_playback",
		mcp.WithDescription("Start the replay if it is stopped, or pause it if it is playing"),
	)
}

// SeekIndexTool returns a tool definition for jumping to a record
func SeekIndexTool() mcp.Tool {
	return mcp.NewTool("seek_index",
		mcp.WithDescription("Move the replay cursor to a specific record of the trip"),
		mcp.WithNumber("index",
			mcp.Required(),
			mcp.Description("Zero-based record index, from 0 to total-1"),
		),
	)
}

// SeekFractionTool returns a tool definition for scrubbing like the slider
func SeekFractionTool() mcp.Tool {
	return mcp.NewTool("seek_fraction",
		mcp.WithDescription("Move the replay cursor to a relative position of the trip, like dragging the slider"),
		mcp.WithNumber("fraction",
			mcp.Required(),
			mcp.Description("Position along the trip between 0 (start) and 1 (end)"),
		),
	)
}

// CurrentPositionTool returns a tool definition for the current fix
func CurrentPositionTool() mcp.Tool {
	return mcp.NewTool("current_position",
		mcp.WithDescription("Get the current fix with its labels, heading and marker position as GeoJSON"),
	)
}

// RouteSegmentsTool returns a tool definition for the colored route
func RouteSegmentsTool() mcp.Tool {
	return mcp.NewTool("route_segments",
		mcp.WithDescription("Get the colored route as encoded polylines (precision 5), one per run of equal events"),
	)
}

// RouteGeoJSONTool returns a tool definition for the route as GeoJSON
func RouteGeoJSONTool() mcp.Tool {
	return mcp.NewTool("route_geojson",
		mcp.WithDescription("Get every route segment as a GeoJSON FeatureCollection with event and color properties"),
	)
}

// HandleReplayStatus implements replay_status
func (r *Registry) HandleReplayStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, err := r.player.Status(ctx)
	if err != nil {
		return r.unavailable("replay_status", err), nil
	}
	return JSONResponse(StatusOutput{Snapshot: snap, Moved: false})
}

// HandleTogglePlayback implements toggle_playback
func (r *Registry) HandleTogglePlayback(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, err := r.player.TogglePlay(ctx)
	if err != nil {
		return r.unavailable("toggle_playback", err), nil
	}
	r.logger.Info("playback toggled", "state", snap.State, "index", snap.Index)
	return JSONResponse(StatusOutput{Snapshot: snap})
}

// HandleSeekIndex implements seek_index
func (r *Registry) HandleSeekIndex(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := mcp.ParseFloat64(req, "index", math.NaN())
	if math.IsNaN(raw) {
		return ErrorWithGuidance(NewToolError("seek_index", CodeInvalidParameter,
			"index is required", GuidanceIndexRange)), nil
	}
	if raw != math.Trunc(raw) {
		return ErrorWithGuidance(NewToolError("seek_index", CodeInvalidParameter,
			fmt.Sprintf("index %v is not a whole number", raw), GuidanceWholeNumber)), nil
	}

	index := int(raw)
	snap, moved, err := r.player.SeekIndex(ctx, index)
	if err != nil {
		return r.unavailable("seek_index", err), nil
	}
	if !moved {
		return ErrorWithGuidance(NewToolError("seek_index", CodeOutOfRange,
			fmt.Sprintf("index %d is outside the trip (0 to %d)", index, snap.Total-1), GuidanceIndexRange)), nil
	}
	return JSONResponse(StatusOutput{Snapshot: snap, Moved: true})
}

// HandleSeekFraction implements seek_fraction
func (r *Registry) HandleSeekFraction(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fraction := mcp.ParseFloat64(req, "fraction", math.NaN())
	if math.IsNaN(fraction) || fraction < 0 || fraction > 1 {
		return ErrorWithGuidance(NewToolError("seek_fraction", CodeInvalidParameter,
			fmt.Sprintf("invalid fraction: %v", fraction), GuidanceFractionRange)), nil
	}

	snap, moved, err := r.player.SeekFraction(ctx, fraction)
	if err != nil {
		return r.unavailable("seek_fraction", err), nil
	}
	return JSONResponse(StatusOutput{Snapshot: snap, Moved: moved})
}

// HandleCurrentPosition implements current_position
func (r *Registry) HandleCurrentPosition(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, err := r.player.Status(ctx)
	if err != nil {
		return r.unavailable("current_position", err), nil
	}

	view := snap.Position
	output := PositionOutput{
		Index:      view.Index,
		Total:      view.Total,
		Event:      view.Event,
		Color:      view.Color,
		TimeLabel:  view.TimeLabel,
		SpeedLabel: view.SpeedLabel,
		Marker:     snap.Marker,
		Feature:    trip.PointFeature(view.Record),
	}
	if view.HasBearing {
		bearing := view.Bearing
		output.Bearing = &bearing
	}
	return JSONResponse(output)
}

// HandleRouteSegments implements route_segments
func (r *Registry) HandleRouteSegments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	route, err := r.player.Route(ctx)
	if err != nil {
		return r.unavailable("route_segments", err), nil
	}
	return JSONResponse(RouteSegmentsOutput{
		Segments: len(route.Segments),
		Runs:     trip.Runs(route.Segments),
		Region:   route.Region,
		Bounds:   trip.Bounds(route.Records),
	})
}

// HandleRouteGeoJSON implements route_geojson
func (r *Registry) HandleRouteGeoJSON(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	route, err := r.player.Route(ctx)
	if err != nil {
		return r.unavailable("route_geojson", err), nil
	}
	data, err := trip.GeoJSON(route.Segments).MarshalJSON()
	if err != nil {
		return r.internal("route_geojson", err), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (r *Registry) internal(tool string, err error) *mcp.CallToolResult {
	r.logger.Error("tool failed", "tool", tool, "error", err)
	return ErrorWithGuidance(NewToolError(tool, CodeInternal, "failed to generate result", ""))
}

func (r *Registry) unavailable(tool string, err error) *mcp.CallToolResult {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		r.logger.Debug("tool call abandoned", "tool", tool, "error", err)
		return ErrorWithGuidance(NewToolError(tool, CodeUnavailable, "request cancelled", GuidanceGeneral))
	}
	r.logger.Error("replay unavailable", "tool", tool, "error", err)
	return ErrorWithGuidance(NewToolError(tool, CodeUnavailable, err.Error(), ""))
}
