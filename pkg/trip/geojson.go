package trip

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// GeoJSON returns the segments as a FeatureCollection of two-point
// LineStrings carrying "event", "color" and "index" properties, ready for
// web map renderers.
func GeoJSON(segments []Segment) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, seg := range segments {
		line := orb.LineString{
			{seg.From.Longitude, seg.From.Latitude},
			{seg.To.Longitude, seg.To.Latitude},
		}
		f := geojson.NewFeature(line)
		f.Properties["index"] = seg.Index
		f.Properties["event"] = string(seg.Event)
		f.Properties["color"] = string(seg.Color)
		fc.Append(f)
	}
	return fc
}

// PointFeature returns the record as a GeoJSON Point feature.
func PointFeature(r Record) *geojson.Feature {
	f := geojson.NewFeature(orb.Point{r.Location.Longitude, r.Location.Latitude})
	f.Properties["event"] = r.Event
	f.Properties["time"] = r.Time
	f.Properties["course"] = r.Course
	if r.Speed != nil {
		f.Properties["speed"] = *r.Speed
	}
	return f
}
