// Package polyline implements Google's Encoded Polyline Algorithm Format
// (Polyline5), which renderers use to draw route segments compactly.
// See https://developers.google.com/maps/documentation/utilities/polylinealgorithm
package polyline

import (
	"errors"
	"math"

	"github.com/NERVsystems/tripreplay/pkg/geo"
)

// precision is the Polyline5 scale factor (5 decimal places).
const precision = 1e5

// ErrTruncated is returned when an encoded string ends in the middle of a value.
var ErrTruncated = errors.New("polyline: truncated input")

// Decode decodes an encoded polyline string to a slice of locations.
func Decode(encoded string) ([]geo.Location, error) {
	points := make([]geo.Location, 0, len(encoded)/4+1)

	var lat, lng, index int
	for index < len(encoded) {
		dLat, next, err := decodeValue(encoded, index)
		if err != nil {
			return nil, err
		}
		dLng, next, err := decodeValue(encoded, next)
		if err != nil {
			return nil, err
		}
		index = next

		lat += dLat
		lng += dLng
		points = append(points, geo.Location{
			Latitude:  float64(lat) / precision,
			Longitude: float64(lng) / precision,
		})
	}

	return points, nil
}

// decodeValue reads one zigzag-encoded signed value starting at index and
// returns it together with the index of the following byte.
func decodeValue(encoded string, index int) (int, int, error) {
	result, shift := 0, 0
	for {
		if index >= len(encoded) {
			return 0, index, ErrTruncated
		}
		b := int(encoded[index]) - 63
		index++
		result |= (b & 0x1f) << shift
		shift += 5
		if b < 0x20 {
			break
		}
	}
	return (result >> 1) ^ (-(result & 1)), index, nil
}

// Encode encodes a slice of locations into a polyline string.
func Encode(points []geo.Location) string {
	if len(points) == 0 {
		return ""
	}

	// 6 bytes per point is common
	result := make([]byte, 0, len(points)*6)

	prevLat, prevLng := 0, 0
	for _, point := range points {
		lat := int(math.Round(point.Latitude * precision))
		lng := int(math.Round(point.Longitude * precision))

		result = appendSigned(result, lat-prevLat)
		result = appendSigned(result, lng-prevLng)

		prevLat, prevLng = lat, lng
	}

	return string(result)
}

func appendSigned(buf []byte, value int) []byte {
	s := value << 1
	if value < 0 {
		s = ^s
	}
	for s >= 0x20 {
		buf = append(buf, byte((0x20|(s&0x1f))+63))
		s >>= 5
	}
	return append(buf, byte(s+63))
}
