package physics

import "math"

// SeismicMagnitude converts impact energy to an earthquake-magnitude
// equivalent:
//
//	M = log10(max(1, E·efficiency)) − 4.8
//
// The max(1, …) floor keeps the logarithm argument positive for any input;
// zero energy therefore maps to exactly −4.8. This is a communicable
// comparison, not direct seismic modeling.
func SeismicMagnitude(energyJ, efficiency float64) float64 {
	return math.Log10(math.Max(1, energyJ*efficiency)) - 4.8
}

// SeismicIntensity buckets a magnitude into a qualitative label, loosely
// following the USGS magnitude classes.
func SeismicIntensity(magnitude float64) string {
	switch {
	case magnitude < 3.0:
		return "minor"
	case magnitude < 5.0:
		return "light"
	case magnitude < 6.0:
		return "moderate"
	case magnitude < 7.0:
		return "strong"
	case magnitude < 8.0:
		return "major"
	default:
		return "great"
	}
}
