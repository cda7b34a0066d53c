package render

import (
	"log/slog"

	"github.com/NERVsystems/tripreplay/pkg/geo"
	"github.com/NERVsystems/tripreplay/pkg/trip"
)

// LogRenderer writes the replay to a structured logger. Marker frames are
// logged at debug level since there are dozens per second.
type LogRenderer struct {
	logger *slog.Logger
}

// NewLogRenderer creates a LogRenderer. A nil logger uses slog.Default().
func NewLogRenderer(logger *slog.Logger) *LogRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogRenderer{logger: logger.With("component", "renderer")}
}

// Route implements Renderer.
func (r *LogRenderer) Route(segments []trip.Segment, region geo.BoundingBox) {
	runs := trip.Runs(segments)
	r.logger.Info("route drawn",
		"segments", len(segments),
		"runs", len(runs),
		"region", region.String())
	for _, run := range runs {
		r.logger.Debug("route run",
			"event", run.Event,
			"color", run.Color,
			"start", run.Start,
			"end", run.End,
			"polyline", run.Polyline)
	}
}

// Position implements Renderer.
func (r *LogRenderer) Position(view PositionView) {
	attrs := []any{
		"index", view.Index,
		"total", view.Total,
		"event", view.Event,
		"color", view.Color,
		"time", view.TimeLabel,
		"speed", view.SpeedLabel,
		"location", view.Record.Location.String(),
	}
	if view.HasBearing {
		attrs = append(attrs, "bearing", view.Bearing)
	}
	r.logger.Info("position", attrs...)
}

// Marker implements Renderer.
func (r *LogRenderer) Marker(loc geo.Location) {
	r.logger.Debug("marker", "location", loc.String())
}
