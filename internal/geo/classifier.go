package geo

import "math"

// Location is a point on Earth in degrees.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Class is the population-density bucket of a location.
type Class string

const (
	ClassUrban   Class = "urban"
	ClassCoastal Class = "coastal"
	ClassRural   Class = "rural"
)

// Surroundings is everything downstream estimation needs to know about an
// impact location: a density bucket, its people-per-km² value, and whether
// the point sits in open ocean (which gates tsunami generation). Consumers
// must not depend on how the classification was made.
type Surroundings struct {
	Class             Class   `json:"class"`
	PopulationDensity float64 `json:"population_density"` // people per km²
	Oceanic           bool    `json:"oceanic"`
}

// Classifier turns a location into its Surroundings. The default is a
// hardcoded heuristic; real geographic data can replace it without touching
// the estimation pipeline.
type Classifier interface {
	Classify(loc Location) Surroundings
}

// Population densities per class, people per km².
const (
	urbanDensity   = 2000.0
	coastalDensity = 500.0
	ruralDensity   = 50.0
)

// urbanCenter is a named city with an approximate metro radius.
type urbanCenter struct {
	name     string
	lat, lng float64
	radiusKm float64
}

// Fixed list of major urban centers. Distance checks are planar
// (~111 km per degree), not great-circle; good enough for a heuristic.
var urbanCenters = []urbanCenter{
	{"Tokyo", 35.6762, 139.6503, 90},
	{"New York", 40.7128, -74.0060, 70},
	{"Los Angeles", 34.0522, -118.2437, 80},
	{"London", 51.5074, -0.1278, 60},
	{"Shanghai", 31.2304, 121.4737, 80},
	{"Miami", 25.7617, -80.1918, 50},
	{"Delhi", 28.7041, 77.1025, 70},
	{"São Paulo", -23.5505, -46.6333, 70},
	{"Cairo", 30.0444, 31.2357, 60},
	{"Lagos", 6.5244, 3.3792, 50},
}

// oceanBox is a rough lat/lng bounding box over open ocean.
type oceanBox struct {
	minLat, maxLat float64
	minLng, maxLng float64
}

var oceanBoxes = []oceanBox{
	{-60, 60, 150, 180},   // western Pacific
	{-60, 60, -180, -100}, // eastern Pacific
	{-60, 65, -70, -10},   // Atlantic
	{-60, 10, 55, 95},     // Indian
}

// Approximate coastline meridians; a point within coastalBandDeg of one of
// these (at temperate latitudes) is classed coastal.
var coastalMeridians = []float64{
	-123, -118, -81, -74, -46, -9, 4, 18, 31, 55, 73, 114, 121, 140, 151,
}

const coastalBandDeg = 2.5

// HeuristicClassifier is the built-in table-driven Classifier.
type HeuristicClassifier struct {
	kmPerDegree float64
}

// NewHeuristicClassifier returns the default classifier. kmPerDegree is the
// planar degree-to-km conversion, typically 111.
func NewHeuristicClassifier(kmPerDegree float64) *HeuristicClassifier {
	return &HeuristicClassifier{kmPerDegree: kmPerDegree}
}

// Classify buckets a location as urban, coastal, or rural, and sets the
// oceanic flag from a separate open-ocean rule set. Urban wins over every
// other class; an urban point is never oceanic.
func (h *HeuristicClassifier) Classify(loc Location) Surroundings {
	if h.isUrban(loc) {
		return Surroundings{Class: ClassUrban, PopulationDensity: urbanDensity}
	}

	oceanic := h.isOceanic(loc)
	if h.isCoastal(loc) {
		return Surroundings{Class: ClassCoastal, PopulationDensity: coastalDensity, Oceanic: oceanic}
	}
	return Surroundings{Class: ClassRural, PopulationDensity: ruralDensity, Oceanic: oceanic}
}

func (h *HeuristicClassifier) isUrban(loc Location) bool {
	for _, c := range urbanCenters {
		dLatKm := (loc.Lat - c.lat) * h.kmPerDegree
		dLngKm := (loc.Lng - c.lng) * h.kmPerDegree
		if math.Hypot(dLatKm, dLngKm) <= c.radiusKm {
			return true
		}
	}
	return false
}

func (h *HeuristicClassifier) isOceanic(loc Location) bool {
	for _, b := range oceanBoxes {
		if loc.Lat >= b.minLat && loc.Lat <= b.maxLat &&
			loc.Lng >= b.minLng && loc.Lng <= b.maxLng {
			return true
		}
	}
	return false
}

func (h *HeuristicClassifier) isCoastal(loc Location) bool {
	if loc.Lat < -60 || loc.Lat > 60 {
		return false
	}
	for _, m := range coastalMeridians {
		if math.Abs(loc.Lng-m) <= coastalBandDeg {
			return true
		}
	}
	return false
}

// PopulationAtRisk estimates the population inside a circle of the given
// radius around a location: density · π · r². Never negative.
func PopulationAtRisk(s Surroundings, radiusKm float64) float64 {
	if radiusKm <= 0 {
		return 0
	}
	return s.PopulationDensity * math.Pi * radiusKm * radiusKm
}
