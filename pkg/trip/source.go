package trip

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/NERVsystems/tripreplay/pkg/geo"
	"github.com/tkrajina/gpxgo/gpx"
)

// ErrDataUnavailable is returned, wrapped, whenever a source cannot produce a
// complete trip: the backing file is missing, unreadable, malformed or empty.
var ErrDataUnavailable = errors.New("trip data unavailable")

//go:embed data/trip.json
var bundledTrip []byte

// Source loads an ordered trip. Load either returns every record or fails;
// there are no partial results.
type Source interface {
	Load(ctx context.Context) ([]Record, error)
}

// Bundled returns the trip compiled into the binary.
func Bundled() Source {
	return JSONSource{Data: bundledTrip}
}

// Open returns a Source reading path when loaded. Files ending in .gpx are
// parsed as GPX, everything else as the JSON record array.
func Open(path string) Source {
	return FileSource{Path: path}
}

// FileSource reads a trip file from disk on each Load.
type FileSource struct {
	Path string
}

// Load reads and decodes the file.
func (s FileSource) Load(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	if strings.EqualFold(filepath.Ext(s.Path), ".gpx") {
		return GPXSource{Data: data}.Load(ctx)
	}
	return JSONSource{Data: data}.Load(ctx)
}

// recordResponse is the on-disk shape of one record. Pointer fields let the
// decoder tell a missing key from a zero value.
type recordResponse struct {
	Event      *string   `json:"event"`
	Time       *string   `json:"time"`
	Coordinate []float64 `json:"coordinate"`
	Course     *float64  `json:"course"`
	Speed      *float64  `json:"speed"`
}

func (r recordResponse) toRecord() (Record, error) {
	switch {
	case r.Event == nil:
		return Record{}, errors.New("missing event")
	case r.Time == nil:
		return Record{}, errors.New("missing time")
	case r.Course == nil:
		return Record{}, errors.New("missing course")
	case len(r.Coordinate) != 2:
		return Record{}, fmt.Errorf("coordinate must have 2 elements, got %d", len(r.Coordinate))
	}

	ts, err := time.Parse(time.RFC3339Nano, *r.Time)
	if err != nil {
		return Record{}, fmt.Errorf("invalid time %q: %w", *r.Time, err)
	}

	loc := geo.Location{Latitude: r.Coordinate[0], Longitude: r.Coordinate[1]}
	if !loc.Valid() {
		return Record{}, fmt.Errorf("coordinate %v out of range", r.Coordinate)
	}

	return Record{
		Event:    *r.Event,
		Time:     ts,
		Location: loc,
		Course:   *r.Course,
		Speed:    r.Speed,
	}, nil
}

// JSONSource decodes a JSON array of records of the form
//
//	{"event": "driving", "time": "2025-05-05T08:00:00Z",
//	 "coordinate": [-6.2, 106.8], "course": 49.4, "speed": 32}
//
// where speed may be null or absent.
type JSONSource struct {
	Data []byte
}

// Load decodes the records.
func (s JSONSource) Load(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var raw []recordResponse
	if err := json.Unmarshal(s.Data, &raw); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrDataUnavailable, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: no records", ErrDataUnavailable)
	}

	records := make([]Record, 0, len(raw))
	for i, r := range raw {
		rec, err := r.toRecord()
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrDataUnavailable, i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// idleSpeedKmh is the speed below which a GPX point is classified as idling.
const idleSpeedKmh = 1.0

// GPXSource decodes the track and route points of a GPX document. GPX carries
// no event or course data, so both are derived: course is the bearing to the
// next point, speed comes from distance over time, and a point moving slower
// than 1 km/h is idling rather than driving.
type GPXSource struct {
	Data []byte
}

// Load decodes the points.
func (s GPXSource) Load(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := gpx.ParseBytes(s.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: decode gpx: %v", ErrDataUnavailable, err)
	}

	var points []gpx.GPXPoint
	for _, track := range doc.Tracks {
		for _, segment := range track.Segments {
			points = append(points, segment.Points...)
		}
	}
	for _, route := range doc.Routes {
		points = append(points, route.Points...)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: gpx has no track points", ErrDataUnavailable)
	}

	records := make([]Record, len(points))
	for i, p := range points {
		if p.Timestamp.IsZero() {
			return nil, fmt.Errorf("%w: gpx point %d has no time", ErrDataUnavailable, i)
		}
		records[i] = Record{
			Event:    string(EventDriving),
			Time:     p.Timestamp,
			Location: geo.Location{Latitude: p.Latitude, Longitude: p.Longitude},
		}
	}

	for i := range records {
		switch {
		case i+1 < len(records):
			records[i].Course = geo.Bearing(records[i].Location, records[i+1].Location)
		case i > 0:
			records[i].Course = records[i-1].Course
		}

		if i == 0 {
			continue
		}
		dt := records[i].Time.Sub(records[i-1].Time).Seconds()
		if dt <= 0 {
			continue
		}
		kmh := geo.Distance(records[i-1].Location, records[i].Location) / dt * 3.6
		records[i].Speed = &kmh
		if kmh < idleSpeedKmh {
			records[i].Event = string(EventIdling)
		}
	}

	return records, nil
}
