package physics

// Along-track deflection, first-order: a velocity change applied t seconds
// before impact shifts the impact point by Δv·t. Good enough for an
// educational what-if slider; real mission planning needs orbital
// propagation.

// DeflectionDV returns the delta-v in m/s needed to shift the impact point
// by shiftM meters given a lead time in seconds. Zero lead time yields zero
// rather than a division error.
func DeflectionDV(shiftM, leadTimeSeconds float64) float64 {
	if leadTimeSeconds <= 0 {
		return 0
	}
	return shiftM / leadTimeSeconds
}

// ShiftFromDV returns the along-track shift in meters produced by a delta-v
// in m/s applied leadTimeSeconds before impact.
func ShiftFromDV(deltaVMs, leadTimeSeconds float64) float64 {
	return deltaVMs * leadTimeSeconds
}

// DeflectionExample is one canned scenario for UI display.
type DeflectionExample struct {
	Scenario      string  `json:"scenario"`
	ShiftM        float64 `json:"shift_m"`
	LeadTimeYears float64 `json:"lead_time_years"`
	DeltaVMs      float64 `json:"delta_v_m_s"`
	DeltaVCmS     float64 `json:"delta_v_cm_s"`
	DeltaVMmS     float64 `json:"delta_v_mm_s"`
}

// DeflectionExamples returns delta-v requirements for shifting the impact
// point by one Earth radius and by 100 km at 1, 5 and 10 year lead times.
func (c *Constants) DeflectionExamples() []DeflectionExample {
	shifts := []struct {
		label string
		m     float64
	}{
		{"1 Earth radius", c.EarthRadiusM},
		{"100 km", 100000.0},
	}

	var examples []DeflectionExample
	for _, s := range shifts {
		for _, years := range []float64{1, 5, 10} {
			dv := DeflectionDV(s.m, years*c.SecondsPerYear)
			examples = append(examples, DeflectionExample{
				Scenario:      "shift by " + s.label,
				ShiftM:        s.m,
				LeadTimeYears: years,
				DeltaVMs:      dv,
				DeltaVCmS:     dv * 100,
				DeltaVMmS:     dv * 1000,
			})
		}
	}
	return examples
}
