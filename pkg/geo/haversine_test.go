package geo

import (
	"math"
	"testing"
)

// firstFix is the opening fix of the bundled Jakarta trip.
var firstFix = Location{Latitude: -6.20001, Longitude: 106.81234}

func TestHaversineDistance(t *testing.T) {
	tests := []struct {
		name     string
		from, to Location
		want     float64 // meters
		relTol   float64
	}{
		{
			name: "same fix",
			from: firstFix,
			to:   firstFix,
			want: 0,
		},
		{
			name:   "one millidegree east along the trip",
			from:   firstFix,
			to:     Location{Latitude: -6.20001, Longitude: 106.81334},
			want:   110.54,
			relTol: 0.001,
		},
		{
			name:   "one hundredth of a degree south",
			from:   firstFix,
			to:     Location{Latitude: -6.21001, Longitude: 106.81234},
			want:   1111.95,
			relTol: 0.001,
		},
		{
			name:   "Monas to Bandung",
			from:   Location{Latitude: -6.1754, Longitude: 106.8272},
			to:     Location{Latitude: -6.9175, Longitude: 107.6191},
			want:   120258.11,
			relTol: 0.001,
		},
		{
			name:   "Jakarta to Surabaya",
			from:   Location{Latitude: -6.1754, Longitude: 106.8272},
			to:     Location{Latitude: -7.2575, Longitude: 112.7521},
			want:   665255.22,
			relTol: 0.001,
		},
		{
			name:   "antipode of the first fix",
			from:   firstFix,
			to:     Location{Latitude: 6.20001, Longitude: -73.18766},
			want:   math.Pi * EarthRadius,
			relTol: 0.0001,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := HaversineDistance(tc.from.Latitude, tc.from.Longitude, tc.to.Latitude, tc.to.Longitude)
			if tc.want == 0 {
				if got > 1e-6 {
					t.Errorf("HaversineDistance(%v, %v) = %f, expected 0", tc.from, tc.to, got)
				}
				return
			}
			if diff := math.Abs(got-tc.want) / tc.want; diff > tc.relTol {
				t.Errorf("HaversineDistance(%v, %v) = %f, expected %f ± %.2f%%",
					tc.from, tc.to, got, tc.want, tc.relTol*100)
			}

			// Distance is symmetric and agrees with the raw form.
			if back := Distance(tc.to, tc.from); math.Abs(back-got) > 1e-6 {
				t.Errorf("Distance(%v, %v) = %f, forward distance was %f", tc.to, tc.from, back, got)
			}
		})
	}
}

func TestBoundingBox(t *testing.T) {
	trip := []Location{
		firstFix,
		{Latitude: -6.19850, Longitude: 106.81410},
		{Latitude: -6.20210, Longitude: 106.81190},
		{Latitude: -6.20050, Longitude: 106.81300},
	}

	t.Run("empty box is inverted", func(t *testing.T) {
		bb := NewBoundingBox()
		if bb.MinLat <= bb.MaxLat || bb.MinLon <= bb.MaxLon {
			t.Errorf("NewBoundingBox() = %+v, expected min above max", bb)
		}
	})

	t.Run("extends over trip fixes", func(t *testing.T) {
		bb := NewBoundingBox()
		bb.ExtendWithPoint(firstFix.Latitude, firstFix.Longitude)
		if bb.MinLat != bb.MaxLat || bb.MinLon != bb.MaxLon {
			t.Fatalf("single fix should give a degenerate box, got %+v", bb)
		}

		for _, loc := range trip {
			bb.ExtendWithPoint(loc.Latitude, loc.Longitude)
		}
		want := BoundingBox{MinLat: -6.20210, MinLon: 106.81190, MaxLat: -6.19850, MaxLon: 106.81410}
		if *bb != want {
			t.Errorf("box over trip = %+v, expected %+v", *bb, want)
		}
		for _, loc := range trip {
			if !bb.Contains(loc) {
				t.Errorf("box %+v does not contain trip fix %v", *bb, loc)
			}
		}

		// A fix already inside leaves the box unchanged.
		bb.ExtendWithPoint(-6.2000, 106.8130)
		if *bb != want {
			t.Errorf("interior fix changed the box to %+v", *bb)
		}
		if bb.Contains(Location{Latitude: -6.9175, Longitude: 107.6191}) {
			t.Errorf("box %+v should not contain Bandung", *bb)
		}
	})

	t.Run("Buffer", func(t *testing.T) {
		bb := NewBoundingBox()
		bb.ExtendWithPoint(firstFix.Latitude, firstFix.Longitude)
		before := *bb
		bb.Buffer(250)

		pad := 250.0 / metersPerDegree
		edges := []struct {
			name      string
			got, want float64
		}{
			{"min lat", bb.MinLat, before.MinLat - pad},
			{"max lat", bb.MaxLat, before.MaxLat + pad},
			{"min lon", bb.MinLon, before.MinLon - pad},
			{"max lon", bb.MaxLon, before.MaxLon + pad},
		}
		for _, e := range edges {
			if math.Abs(e.got-e.want) > 1e-9 {
				t.Errorf("%s after 250 m buffer = %f, expected %f", e.name, e.got, e.want)
			}
		}
	})

	t.Run("Buffer clips at the antimeridian and pole", func(t *testing.T) {
		bb := NewBoundingBox()
		bb.ExtendWithPoint(-89.5, 179.5)
		bb.Buffer(500000)

		if bb.MinLat != -90 || bb.MaxLon != 180 {
			t.Errorf("Buffer should clip to -90 lat and 180 lon, got %+v", bb)
		}
	})

	t.Run("Region", func(t *testing.T) {
		region := Region(firstFix, 500)

		if !region.Contains(firstFix) {
			t.Errorf("Region(%v, 500) = %+v, does not contain its center", firstFix, region)
		}
		c := region.Center()
		if math.Abs(c.Latitude-firstFix.Latitude) > 1e-9 || math.Abs(c.Longitude-firstFix.Longitude) > 1e-9 {
			t.Errorf("Region center = %v, expected %v", c, firstFix)
		}
		span := Distance(Location{Latitude: region.MinLat, Longitude: firstFix.Longitude},
			Location{Latitude: region.MaxLat, Longitude: firstFix.Longitude})
		if math.Abs(span-500)/500 > 0.01 {
			t.Errorf("Region north-south span = %f m, expected ~500 m", span)
		}
	})

	t.Run("String format", func(t *testing.T) {
		bb := NewBoundingBox()
		for _, loc := range trip {
			bb.ExtendWithPoint(loc.Latitude, loc.Longitude)
		}

		want := "(-6.202100,106.811900,-6.198500,106.814100)"
		if bb.String() != want {
			t.Errorf("String() = %s, expected %s", bb.String(), want)
		}
	})
}
