package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/mr1hm/go-impact-sim/internal/geo"
	"github.com/mr1hm/go-impact-sim/internal/models"
	"github.com/mr1hm/go-impact-sim/internal/physics"
	"github.com/mr1hm/go-impact-sim/internal/simulation"
)

// impact-report runs a single estimate from the command line and prints the
// result as JSON. Handy for eyeballing parameters without a running server.
func main() {
	var (
		diameter = flag.Float64("diameter", 100, "impactor diameter in meters")
		mass     = flag.Float64("mass", 0, "impactor mass in kg (overrides diameter)")
		density  = flag.Float64("density", 0, "impactor density in kg/m3 (0 = stony default)")
		velocity = flag.Float64("velocity", 20, "impact velocity in km/s")
		angle    = flag.Float64("angle", models.DefaultImpactAngleDeg, "impact angle in degrees (90 = vertical)")
		lat      = flag.Float64("lat", 0, "impact latitude")
		lng      = flag.Float64("lng", 0, "impact longitude")
	)
	flag.Parse()

	consts := physics.DefaultConstants()
	engine := simulation.NewEngine(consts, geo.NewHeuristicClassifier(consts.KmPerDegree))

	var impactor models.Impactor
	if *mass > 0 {
		impactor = models.ByMass{MassKg: *mass}
	} else {
		impactor = models.ByDiameter{DiameterM: *diameter, DensityKgM3: *density}
	}

	est := engine.Estimate(models.ImpactInput{
		Impactor:    impactor,
		VelocityKms: *velocity,
		Location:    geo.Location{Lat: *lat, Lng: *lng},
		AngleDeg:    *angle,
	}, nil)

	out, err := json.MarshalIndent(est, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode estimate: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
