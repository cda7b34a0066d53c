// Package geo provides the geographic types and calculations used by the
// replay engine: coordinates, distances, bearings and interpolation.
package geo

import (
	"fmt"
	"math"
)

// EarthRadius is the mean radius of Earth according to WGS-84 in meters
const EarthRadius = 6371000.0

// metersPerDegree is the length of one degree of latitude, used for the
// rough meter/degree conversions below.
const metersPerDegree = 111000.0

// Location represents a geographic coordinate (latitude and longitude)
// with standardized JSON field names.
//
// Example:
//
//	loc := geo.Location{Latitude: -6.2088, Longitude: 106.8456}
//	heading := geo.Bearing(loc, geo.Location{Latitude: -6.2000, Longitude: 106.8456})
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// String returns the location as "lat,lon" with six decimals.
func (l Location) String() string {
	return fmt.Sprintf("%.6f,%.6f", l.Latitude, l.Longitude)
}

// Valid reports whether the location lies within the WGS-84 coordinate ranges.
func (l Location) Valid() bool {
	return l.Latitude >= -90 && l.Latitude <= 90 &&
		l.Longitude >= -180 && l.Longitude <= 180 &&
		!math.IsNaN(l.Latitude) && !math.IsNaN(l.Longitude)
}

// BoundingBox represents a geographic bounding box with southwest and northeast corners
type BoundingBox struct {
	MinLat float64 `json:"min_lat"` // Southern edge (minimum latitude)
	MinLon float64 `json:"min_lon"` // Western edge (minimum longitude)
	MaxLat float64 `json:"max_lat"` // Northern edge (maximum latitude)
	MaxLon float64 `json:"max_lon"` // Eastern edge (maximum longitude)
}

// NewBoundingBox creates a new empty bounding box
func NewBoundingBox() *BoundingBox {
	return &BoundingBox{
		MinLat: 90.0, // Start with inverted min/max so any point extends correctly
		MinLon: 180.0,
		MaxLat: -90.0,
		MaxLon: -180.0,
	}
}

// Region returns the box spanning the given number of meters, north-south and
// east-west, centered on center. This is the initial map region a renderer
// shows around the first fix of a trip.
func Region(center Location, spanMeters float64) BoundingBox {
	bb := NewBoundingBox()
	bb.ExtendWithPoint(center.Latitude, center.Longitude)
	bb.Buffer(spanMeters / 2)
	return *bb
}

// ExtendWithPoint extends the bounding box to include the specified point
func (bb *BoundingBox) ExtendWithPoint(lat, lon float64) {
	if lat < bb.MinLat {
		bb.MinLat = lat
	}
	if lat > bb.MaxLat {
		bb.MaxLat = lat
	}
	if lon < bb.MinLon {
		bb.MinLon = lon
	}
	if lon > bb.MaxLon {
		bb.MaxLon = lon
	}
}

// Contains reports whether the point lies inside the box, edges included.
func (bb BoundingBox) Contains(loc Location) bool {
	return loc.Latitude >= bb.MinLat && loc.Latitude <= bb.MaxLat &&
		loc.Longitude >= bb.MinLon && loc.Longitude <= bb.MaxLon
}

// Center returns the midpoint of the box.
func (bb BoundingBox) Center() Location {
	return Location{
		Latitude:  (bb.MinLat + bb.MaxLat) / 2,
		Longitude: (bb.MinLon + bb.MaxLon) / 2,
	}
}

// Buffer adds a buffer around the bounding box in meters
// This is a rough approximation as it converts meters to degrees using
// a simple factor that's reasonably accurate near the equator.
func (bb *BoundingBox) Buffer(bufferMeters float64) {
	bufferDegrees := bufferMeters / metersPerDegree
	bb.MinLat -= bufferDegrees
	bb.MaxLat += bufferDegrees
	bb.MinLon -= bufferDegrees
	bb.MaxLon += bufferDegrees

	// Ensure coordinates are within valid ranges
	if bb.MinLat < -90 {
		bb.MinLat = -90
	}
	if bb.MaxLat > 90 {
		bb.MaxLat = 90
	}
	if bb.MinLon < -180 {
		bb.MinLon = -180
	}
	if bb.MaxLon > 180 {
		bb.MaxLon = 180
	}
}

// String returns a string representation of the bounding box
func (bb *BoundingBox) String() string {
	return fmt.Sprintf("(%f,%f,%f,%f)", bb.MinLat, bb.MinLon, bb.MaxLat, bb.MaxLon)
}

// HaversineDistance calculates the great-circle distance between two points
// on the Earth's surface given their latitude and longitude in degrees.
// The result is returned in meters.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := toRadians(lat1)
	lon1Rad := toRadians(lon1)
	lat2Rad := toRadians(lat2)
	lon2Rad := toRadians(lon2)

	dlat := lat2Rad - lat1Rad
	dlon := lon2Rad - lon1Rad
	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Asin(math.Sqrt(a))

	return EarthRadius * c
}

// Distance is HaversineDistance for two Locations.
func Distance(from, to Location) float64 {
	return HaversineDistance(from.Latitude, from.Longitude, to.Latitude, to.Longitude)
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180.0 }

func toDegrees(rad float64) float64 { return rad * 180.0 / math.Pi }
