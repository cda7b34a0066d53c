package main

import (
	"context"
	"fmt"
	"os"

	"github.com/NERVsystems/tripreplay/pkg/geo"
	"github.com/NERVsystems/tripreplay/pkg/polyline"
	"github.com/NERVsystems/tripreplay/pkg/trip"
)

func main() {
	if len(os.Args) > 1 {
		points, err := polyline.Decode(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "decode failed: %v\n", err)
			os.Exit(1)
		}
		printPoints(points)
		return
	}

	// No argument: encode the bundled trip the way renderers receive it.
	records, err := trip.Bundled().Load(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "load failed: %v\n", err)
		os.Exit(1)
	}
	for _, run := range trip.Runs(trip.Segments(records)) {
		fmt.Printf("Run %d-%d %s %s: %s\n", run.Start, run.End, run.Event, run.Color, run.Polyline)
		points, err := polyline.Decode(run.Polyline)
		if err != nil {
			fmt.Fprintf(os.Stderr, "round trip failed: %v\n", err)
			os.Exit(1)
		}
		printPoints(points)
	}
}

func printPoints(points []geo.Location) {
	for i, pt := range points {
		if i == 0 {
			fmt.Printf("  Point %d: Latitude: %.5f, Longitude: %.5f\n", i, pt.Latitude, pt.Longitude)
			continue
		}
		fmt.Printf("  Point %d: Latitude: %.5f, Longitude: %.5f, Bearing: %.1f, Distance: %.1fm\n",
			i, pt.Latitude, pt.Longitude, geo.Bearing(points[i-1], pt), geo.Distance(points[i-1], pt))
	}
}
