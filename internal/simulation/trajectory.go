package simulation

import (
	"math"

	"github.com/mr1hm/go-impact-sim/internal/geo"
	"github.com/mr1hm/go-impact-sim/internal/physics"
)

// Straight-line entry geometry: the body approaches along a fixed direction
// and either intersects the Earth sphere or misses. Not orbital mechanics.

// Vec3 is an ECEF vector in meters.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// DeltaV is a velocity change applied to the incoming direction.
type DeltaV struct {
	MagnitudeMs float64 `json:"mag_m_s"`
	AzDeg       float64 `json:"az_deg"`
	ElDeg       float64 `json:"el_deg"`
}

// TrajectoryResult reports whether the body hits and where.
type TrajectoryResult struct {
	WillHit    bool          `json:"will_hit"`
	Impact     *geo.Location `json:"impact_location,omitempty"`
	ImpactECEF *Vec3         `json:"impact_point_ecef,omitempty"`
	DistanceM  float64       `json:"distance_m,omitempty"`
	Direction  Vec3          `json:"direction"`
	Start      Vec3          `json:"start"`
}

// unitFromAzEl converts azimuth/elevation in degrees to a unit vector.
func unitFromAzEl(azDeg, elDeg float64) Vec3 {
	az := azDeg * math.Pi / 180.0
	el := elDeg * math.Pi / 180.0
	v := Vec3{
		X: math.Cos(el) * math.Cos(az),
		Y: math.Cos(el) * math.Sin(az),
		Z: math.Sin(el),
	}
	return v.normalize()
}

func (v Vec3) normalize() Vec3 {
	mag := math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
	if mag == 0 {
		return Vec3{X: 1}
	}
	return Vec3{X: v.X / mag, Y: v.Y / mag, Z: v.Z / mag}
}

func (v Vec3) scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vec3) add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Trajectory places the body startDistanceKm away along the approach
// direction given by azimuth/elevation, optionally bends the path with a
// delta-v, and intersects the resulting ray with the Earth sphere.
func (e *Engine) Trajectory(azDeg, elDeg, speedKms, startDistanceKm float64, dv *DeltaV) TrajectoryResult {
	u := unitFromAzEl(azDeg, elDeg)
	p0 := u.scale(-startDistanceKm * 1000.0)

	if dv != nil && dv.MagnitudeMs != 0 {
		dvVec := unitFromAzEl(dv.AzDeg, dv.ElDeg).scale(dv.MagnitudeMs)
		u = u.scale(math.Abs(speedKms) * 1000.0).add(dvVec).normalize()
	}

	res := TrajectoryResult{Direction: u, Start: p0}

	s, hit := raySphere(p0, u, e.consts.EarthRadiusM)
	if !hit {
		return res
	}

	point := p0.add(u.scale(s))
	lat, lng := ecefToLatLng(point)
	res.WillHit = true
	res.Impact = &geo.Location{Lat: lat, Lng: lng}
	res.ImpactECEF = &point
	res.DistanceM = s
	return res
}

// raySphere returns the distance along the ray from p0 in direction u to
// the nearest forward intersection with a sphere of radius r at the origin.
func raySphere(p0, u Vec3, r float64) (float64, bool) {
	b := 2.0 * p0.dot(u)
	c := p0.dot(p0) - r*r
	disc := b*b - 4*c
	if disc < 0 {
		return 0, false
	}
	sqrtDisc := math.Sqrt(disc)
	s1 := (-b - sqrtDisc) / 2.0
	s2 := (-b + sqrtDisc) / 2.0
	switch {
	case s1 >= 0:
		return s1, true
	case s2 >= 0:
		return s2, true
	default:
		return 0, false
	}
}

func ecefToLatLng(p Vec3) (lat, lng float64) {
	r := math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
	if r == 0 {
		return 0, 0
	}
	lat = math.Asin(p.Z/r) * 180.0 / math.Pi
	lng = math.Atan2(p.Y, p.X) * 180.0 / math.Pi
	return lat, lng
}

// DeflectionResult describes the outcome of applying a delta-v some lead
// time before impact.
type DeflectionResult struct {
	DeltaVMs       float64      `json:"delta_v_m_s"`
	LeadTimeDays   float64      `json:"lead_time_days"`
	ShiftM         float64      `json:"shift_m"`
	ShiftKm        float64      `json:"shift_km"`
	Success        bool         `json:"success"`
	OriginalImpact geo.Location `json:"original_impact_location"`
	NewImpact      geo.Location `json:"new_impact_location"`
}

// Deflect applies the linear along-track model: shift = Δv·t. Success means
// the impact point moved by more than one Earth radius. The shifted point
// is mapped back to lat/lng with the planar degree conversion.
func (e *Engine) Deflect(deltaVMs, leadTimeDays float64, origin geo.Location) DeflectionResult {
	leadSeconds := leadTimeDays * 24 * 3600
	shiftM := physics.ShiftFromDV(deltaVMs, leadSeconds)

	latShift := shiftM / (e.consts.KmPerDegree * 1000.0)
	lngDivisor := e.consts.KmPerDegree * 1000.0 * math.Cos(origin.Lat*math.Pi/180.0)
	lngShift := 0.0
	if lngDivisor != 0 {
		lngShift = shiftM / lngDivisor
	}

	return DeflectionResult{
		DeltaVMs:       deltaVMs,
		LeadTimeDays:   leadTimeDays,
		ShiftM:         shiftM,
		ShiftKm:        shiftM / 1000.0,
		Success:        shiftM > e.consts.EarthRadiusM,
		OriginalImpact: origin,
		NewImpact:      geo.Location{Lat: origin.Lat + latShift, Lng: origin.Lng + lngShift},
	}
}
