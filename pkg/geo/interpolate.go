package geo

// Clamp limits f to the closed interval [0, 1]. NaN clamps to 0.
func Clamp(f float64) float64 {
	switch {
	case f >= 1:
		return 1
	case f > 0:
		return f
	default:
		return 0
	}
}

// Lerp linearly interpolates each axis between from and to. The fraction is
// clamped to [0, 1]; at 1 the result is exactly to.
func Lerp(from, to Location, fraction float64) Location {
	f := Clamp(fraction)
	if f == 1 {
		return to
	}
	return Location{
		Latitude:  from.Latitude + (to.Latitude-from.Latitude)*f,
		Longitude: from.Longitude + (to.Longitude-from.Longitude)*f,
	}
}
