package api

import (
	"github.com/mr1hm/go-impact-sim/internal/geo"
	"github.com/mr1hm/go-impact-sim/internal/models"
)

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

type Feature struct {
	Type       string                 `json:"type"`
	Geometry   Geometry               `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"` // [lng, lat]
}

func zoneFeature(loc geo.Location, zone string, radiusKm float64, props map[string]any) Feature {
	if props == nil {
		props = map[string]any{}
	}
	props["zone"] = zone
	props["radius_km"] = radiusKm
	return Feature{
		Type: "Feature",
		Geometry: Geometry{
			Type:        "Point",
			Coordinates: []float64{loc.Lng, loc.Lat},
		},
		Properties: props,
	}
}

// damageZones renders an estimate as a FeatureCollection of circular zones
// centered on the impact point. Zones with a zero radius are omitted.
func damageZones(est models.ImpactEstimate) FeatureCollection {
	loc := est.Location
	features := make([]Feature, 0, 8)

	add := func(zone string, radiusKm float64, props map[string]any) {
		if radiusKm <= 0 {
			return
		}
		features = append(features, zoneFeature(loc, zone, radiusKm, props))
	}

	add("crater", est.CraterDiameterKm/2, map[string]any{
		"depth_km": est.CraterDepthKm,
	})
	add("blast_severe", est.BlastSevereKm, nil)
	add("blast_heavy", est.BlastHeavyKm, nil)
	add("blast_moderate", est.BlastModerateKm, nil)
	add("fireball", est.FireballRadiusKm, nil)
	add("thermal", est.ThermalRadiusKm, nil)
	if est.TsunamiRisk {
		add("tsunami", est.TsunamiRadiusKm, map[string]any{
			"wave_height_m": est.TsunamiHeightM,
		})
	}
	for _, ind := range est.IndirectImpacts {
		if ind.Type == models.IndirectTsunami {
			continue // already rendered above
		}
		props := map[string]any{
			"intensity": ind.Intensity,
		}
		add(string(ind.Type), ind.RadiusKm, props)
	}

	return FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}
