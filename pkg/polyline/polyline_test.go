package polyline

import (
	"errors"
	"testing"

	"github.com/NERVsystems/tripreplay/pkg/geo"
)

func TestDecode(t *testing.T) {
	testCases := []struct {
		name     string
		encoded  string
		expected []geo.Location
	}{
		{
			name:     "Empty string",
			encoded:  "",
			expected: []geo.Location{},
		},
		{
			name:    "Single point",
			encoded: "_p~iF~ps|U",
			expected: []geo.Location{
				{Latitude: 38.5, Longitude: -120.2},
			},
		},
		{
			name:    "Multiple points",
			encoded: "_p~iF~ps|U_ulLnnqC_mqNvxq`@",
			expected: []geo.Location{
				{Latitude: 38.5, Longitude: -120.2},
				{Latitude: 40.7, Longitude: -120.95},
				{Latitude: 43.252, Longitude: -126.453},
			},
		},
		{
			name:    "Negative coordinates",
			encoded: "f{xyCwuy~W",
			expected: []geo.Location{
				{Latitude: -25.363882, Longitude: 131.044922},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := Decode(tc.encoded)
			if err != nil {
				t.Fatalf("Decode(%q) error = %v", tc.encoded, err)
			}

			// Check length
			if len(result) != len(tc.expected) {
				t.Errorf("Expected %d points, got %d", len(tc.expected), len(result))
				return
			}

			// Check each point
			for i, expected := range tc.expected {
				if !almostEqual(result[i].Latitude, expected.Latitude, 0.00001) ||
					!almostEqual(result[i].Longitude, expected.Longitude, 0.00001) {
					t.Errorf("Point %d: expected %v, got %v", i, expected, result[i])
				}
			}
		})
	}
}

func TestEncode(t *testing.T) {
	testCases := []struct {
		name     string
		points   []geo.Location
		expected string
	}{
		{
			name:     "Empty slice",
			points:   []geo.Location{},
			expected: "",
		},
		{
			name: "Single point",
			points: []geo.Location{
				{Latitude: 38.5, Longitude: -120.2},
			},
			expected: "_p~iF~ps|U",
		},
		{
			name: "Multiple points",
			points: []geo.Location{
				{Latitude: 38.5, Longitude: -120.2},
				{Latitude: 40.7, Longitude: -120.95},
				{Latitude: 43.252, Longitude: -126.453},
			},
			expected: "_p~iF~ps|U_ulLnnqC_mqNvxq`@",
		},
		{
			name: "Negative coordinates",
			points: []geo.Location{
				{Latitude: -25.363882, Longitude: 131.044922},
			},
			expected: "f{xyCwuy~W",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := Encode(tc.points)
			if result != tc.expected {
				t.Errorf("Expected %s, got %s", tc.expected, result)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	testCases := []struct {
		name   string
		points []geo.Location
	}{
		{
			name:   "Empty slice",
			points: []geo.Location{},
		},
		{
			name: "Single point",
			points: []geo.Location{
				{Latitude: 38.5, Longitude: -120.2},
			},
		},
		{
			name: "Multiple points",
			points: []geo.Location{
				{Latitude: 38.5, Longitude: -120.2},
				{Latitude: 40.7, Longitude: -120.95},
				{Latitude: 43.252, Longitude: -126.453},
			},
		},
		{
			name: "Jakarta trip leg",
			points: []geo.Location{
				{Latitude: -6.20001, Longitude: 106.81234},
				{Latitude: -6.19377, Longitude: 106.82019},
				{Latitude: -6.19377, Longitude: 106.82019},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			encoded := Encode(tc.points)
			decoded, err := Decode(encoded)
			if err != nil {
				t.Fatalf("Decode(%q) error = %v", encoded, err)
			}

			if len(decoded) != len(tc.points) {
				t.Errorf("Round trip length mismatch: original %d, result %d", len(tc.points), len(decoded))
				return
			}

			for i, original := range tc.points {
				if !almostEqual(decoded[i].Latitude, original.Latitude, 0.00001) ||
					!almostEqual(decoded[i].Longitude, original.Longitude, 0.00001) {
					t.Errorf("Point %d mismatch after round trip: original %v, result %v",
						i, original, decoded[i])
				}
			}
		})
	}
}

func TestDecodeTruncated(t *testing.T) {
	// "_p~iF~ps|U" minus its final byte leaves the longitude unfinished
	for _, encoded := range []string{"_p~iF~ps|", "_p~iF", "_"} {
		if _, err := Decode(encoded); !errors.Is(err, ErrTruncated) {
			t.Errorf("Decode(%q) error = %v, want ErrTruncated", encoded, err)
		}
	}
}

// almostEqual checks if two float64 values are equal within a tolerance.
// This is used for comparing floating-point coordinates.
func almostEqual(a, b, tolerance float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff <= tolerance
}
