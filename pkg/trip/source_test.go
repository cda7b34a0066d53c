package trip

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestBundled(t *testing.T) {
	records, err := Bundled().Load(context.Background())
	if err != nil {
		t.Fatalf("Bundled().Load() error = %v", err)
	}
	if len(records) != 35 {
		t.Fatalf("Bundled().Load() returned %d records, want 35", len(records))
	}

	first := records[0]
	if first.EventType() != EventDriving {
		t.Errorf("first event = %q, want driving", first.Event)
	}
	if first.Location.Latitude != -6.20001 || first.Location.Longitude != 106.81234 {
		t.Errorf("first location = %v, want -6.20001,106.81234", first.Location)
	}
	if !first.Time.Equal(time.Date(2025, time.May, 5, 8, 0, 0, 0, time.UTC)) {
		t.Errorf("first time = %v", first.Time)
	}

	for i := 1; i < len(records); i++ {
		if !records[i].Time.After(records[i-1].Time) {
			t.Fatalf("record %d is not after record %d", i, i-1)
		}
	}

	// parking fixes carry no speed
	for _, r := range records {
		if r.EventType() == EventParking && r.Speed != nil {
			t.Errorf("parking record at %v has speed %v", r.Time, *r.Speed)
		}
	}
}

func TestJSONSourceFailures(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{"event":`},
		{"object instead of array", `{"event":"driving"}`},
		{"empty array", `[]`},
		{"missing event", `[{"time":"2025-05-05T08:00:00Z","coordinate":[1,2],"course":0}]`},
		{"missing time", `[{"event":"driving","coordinate":[1,2],"course":0}]`},
		{"missing course", `[{"event":"driving","time":"2025-05-05T08:00:00Z","coordinate":[1,2]}]`},
		{"short coordinate", `[{"event":"driving","time":"2025-05-05T08:00:00Z","coordinate":[1],"course":0}]`},
		{"long coordinate", `[{"event":"driving","time":"2025-05-05T08:00:00Z","coordinate":[1,2,3],"course":0}]`},
		{"bad time", `[{"event":"driving","time":"yesterday","coordinate":[1,2],"course":0}]`},
		{"latitude out of range", `[{"event":"driving","time":"2025-05-05T08:00:00Z","coordinate":[91,2],"course":0}]`},
		{
			"one bad record among good ones",
			`[{"event":"driving","time":"2025-05-05T08:00:00Z","coordinate":[1,2],"course":0},
			  {"event":"driving","time":"2025-05-05T08:00:10Z","coordinate":[1],"course":0}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := JSONSource{Data: []byte(tt.data)}.Load(context.Background())
			if !errors.Is(err, ErrDataUnavailable) {
				t.Fatalf("Load() error = %v, want ErrDataUnavailable", err)
			}
			if records != nil {
				t.Errorf("Load() returned %d records alongside an error", len(records))
			}
		})
	}
}

func TestJSONSourceOptionalSpeed(t *testing.T) {
	data := `[
		{"event":"parking","time":"2025-05-05T08:00:00Z","coordinate":[-6.2,106.8],"course":12.5},
		{"event":"parking","time":"2025-05-05T08:00:10Z","coordinate":[-6.2,106.8],"course":12.5,"speed":null},
		{"event":"driving","time":"2025-05-05T08:00:20.5+07:00","coordinate":[-6.2,106.8],"course":12.5,"speed":18}
	]`
	records, err := JSONSource{Data: []byte(data)}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if records[0].Speed != nil || records[1].Speed != nil {
		t.Error("absent and null speeds should decode to nil")
	}
	if records[2].Speed == nil || *records[2].Speed != 18 {
		t.Errorf("speed = %v, want 18", records[2].Speed)
	}
	if records[2].Time.Nanosecond() != 500_000_000 {
		t.Errorf("fractional seconds lost: %v", records[2].Time)
	}
}

func TestSourceCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Bundled().Load(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() with cancelled context error = %v, want context.Canceled", err)
	}
}

const sampleGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
  <trk><name>commute</name><trkseg>
    <trkpt lat="-6.20000" lon="106.81000"><time>2025-05-05T08:00:00Z</time></trkpt>
    <trkpt lat="-6.20000" lon="106.81100"><time>2025-05-05T08:00:10Z</time></trkpt>
    <trkpt lat="-6.20000" lon="106.81100"><time>2025-05-05T08:00:20Z</time></trkpt>
  </trkseg></trk>
</gpx>`

func TestGPXSource(t *testing.T) {
	records, err := GPXSource{Data: []byte(sampleGPX)}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Load() returned %d records, want 3", len(records))
	}

	if records[0].Speed != nil {
		t.Errorf("first point speed = %v, want nil", *records[0].Speed)
	}
	if records[0].Course < 89.9 || records[0].Course > 90.1 {
		t.Errorf("first point course = %f, want ~90 (east)", records[0].Course)
	}

	// ~110 m in 10 s is ~40 km/h
	if records[1].Speed == nil || *records[1].Speed < 35 || *records[1].Speed > 45 {
		t.Errorf("second point speed = %v, want ~40 km/h", records[1].Speed)
	}
	if records[1].EventType() != EventDriving {
		t.Errorf("second point event = %q, want driving", records[1].Event)
	}

	if records[2].EventType() != EventIdling {
		t.Errorf("stationary point event = %q, want idling", records[2].Event)
	}
	if records[2].Course != records[1].Course {
		t.Errorf("last point course = %f, want previous course %f", records[2].Course, records[1].Course)
	}
}

func TestGPXSourceFailures(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not xml", "not a gpx document"},
		{"no points", `<gpx version="1.1" creator="test"><trk><trkseg></trkseg></trk></gpx>`},
		{"point without time", `<gpx version="1.1" creator="test"><trk><trkseg><trkpt lat="1" lon="2"></trkpt></trkseg></trk></gpx>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := (GPXSource{Data: []byte(tt.data)}).Load(context.Background()); !errors.Is(err, ErrDataUnavailable) {
				t.Errorf("Load() error = %v, want ErrDataUnavailable", err)
			}
		})
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "trip.json")
	if err := os.WriteFile(jsonPath, bundledTrip, 0o644); err != nil {
		t.Fatal(err)
	}
	gpxPath := filepath.Join(dir, "trip.GPX")
	if err := os.WriteFile(gpxPath, []byte(sampleGPX), 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := Open(jsonPath).Load(context.Background())
	if err != nil || len(records) != 35 {
		t.Errorf("Open(json).Load() = %d records, %v", len(records), err)
	}
	records, err = Open(gpxPath).Load(context.Background())
	if err != nil || len(records) != 3 {
		t.Errorf("Open(gpx).Load() = %d records, %v", len(records), err)
	}

	_, err = Open(filepath.Join(dir, "missing.json")).Load(context.Background())
	if !errors.Is(err, ErrDataUnavailable) {
		t.Errorf("Open(missing).Load() error = %v, want ErrDataUnavailable", err)
	}
}
