package trip

import (
	"github.com/NERVsystems/tripreplay/pkg/geo"
	"github.com/NERVsystems/tripreplay/pkg/polyline"
)

// Segment is one colored leg of the route between two consecutive records.
type Segment struct {
	Index int          `json:"index"`
	From  geo.Location `json:"from"`
	To    geo.Location `json:"to"`
	Event EventType    `json:"event"`
	Color Color        `json:"color"`
}

// Segments returns the n-1 legs of an n-record trip. Leg i ends at record i
// and takes that record's event and color.
func Segments(records []Record) []Segment {
	if len(records) < 2 {
		return nil
	}
	segments := make([]Segment, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		event := records[i].EventType()
		segments = append(segments, Segment{
			Index: i,
			From:  records[i-1].Location,
			To:    records[i].Location,
			Event: event,
			Color: event.Color(),
		})
	}
	return segments
}

// Run is a maximal chain of consecutive segments sharing one color, encoded
// as a single polyline. Renderers draw one stroke per run.
type Run struct {
	Event    EventType `json:"event"`
	Color    Color     `json:"color"`
	Start    int       `json:"start"`
	End      int       `json:"end"`
	Polyline string    `json:"polyline"`
}

// Runs merges adjacent segments of the same event into encoded polylines.
func Runs(segments []Segment) []Run {
	var runs []Run
	var points []geo.Location
	for i, seg := range segments {
		if i == 0 || seg.Event != segments[i-1].Event || seg.From != segments[i-1].To {
			if len(points) > 0 {
				runs[len(runs)-1].Polyline = polyline.Encode(points)
			}
			runs = append(runs, Run{Event: seg.Event, Color: seg.Color, Start: seg.Index - 1})
			points = []geo.Location{seg.From}
		}
		points = append(points, seg.To)
		runs[len(runs)-1].End = seg.Index
	}
	if len(points) > 0 {
		runs[len(runs)-1].Polyline = polyline.Encode(points)
	}
	return runs
}

// Bounds returns the smallest box containing every record.
func Bounds(records []Record) geo.BoundingBox {
	bb := geo.NewBoundingBox()
	for _, r := range records {
		bb.ExtendWithPoint(r.Location.Latitude, r.Location.Longitude)
	}
	return *bb
}
