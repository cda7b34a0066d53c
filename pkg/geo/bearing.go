package geo

import "math"

// Bearing returns the initial great-circle bearing from one location to
// another, in degrees clockwise from true north, within [0, 360).
//
// Identical locations yield 0. The value carries no meaning in that case.
func Bearing(from, to Location) float64 {
	phi1 := toRadians(from.Latitude)
	phi2 := toRadians(to.Latitude)
	deltaLambda := toRadians(to.Longitude - from.Longitude)

	y := math.Sin(deltaLambda) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(deltaLambda)

	theta := toDegrees(math.Atan2(y, x))
	if theta < 0 {
		theta += 360
	}
	// -tiny + 360 rounds to 360 in float64
	if theta >= 360 {
		theta = 0
	}
	return theta
}
