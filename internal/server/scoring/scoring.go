// Package scoring turns a guess into points: great-circle distance between
// the guess and the true location, then exponential decay of that distance.
package scoring

import (
	"fmt"
	"math"

	"github.com/dmitrijs2005/streetsmarts/internal/common"
)

const (
	EarthRadiusMeters = 6371000.0
	MaxPoints         = 5000
	// ScaleMeters is the distance over which the award decays by a factor of e.
	ScaleMeters = 20000.0
)

// Coordinate is a WGS84 latitude/longitude pair in degrees.
type Coordinate struct {
	Lat float64
	Lng float64
}

// Validate rejects non-finite values and values outside the valid ranges.
func (c Coordinate) Validate() error {
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) || c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("%w: latitude %v out of range [-90, 90]", common.ErrValidation, c.Lat)
	}
	if math.IsNaN(c.Lng) || math.IsInf(c.Lng, 0) || c.Lng < -180 || c.Lng > 180 {
		return fmt.Errorf("%w: longitude %v out of range [-180, 180]", common.ErrValidation, c.Lng)
	}
	return nil
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Distance returns the haversine distance between a and b in meters.
func Distance(a, b Coordinate) float64 {
	phi1 := radians(a.Lat)
	phi2 := radians(b.Lat)
	dPhi := radians(b.Lat - a.Lat)
	dLambda := radians(b.Lng - a.Lng)

	sinPhi := math.Sin(dPhi / 2)
	sinLambda := math.Sin(dLambda / 2)
	h := sinPhi*sinPhi + math.Cos(phi1)*math.Cos(phi2)*sinLambda*sinLambda
	// rounding can push h a hair past 1 for antipodal points
	h = math.Min(1, math.Max(0, h))

	return 2 * EarthRadiusMeters * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Score maps a distance in meters to points: MaxPoints at zero, decaying
// by e every ScaleMeters. Negative distances score as zero distance.
func Score(distance float64) int {
	if math.IsNaN(distance) {
		return 0
	}
	if distance < 0 {
		distance = 0
	}
	points := math.Round(MaxPoints * math.Exp(-distance/ScaleMeters))
	if points < 0 {
		return 0
	}
	return int(points)
}

// Result is the outcome of scoring a single guess.
type Result struct {
	DistanceMeters float64
	Points         int
}

// Evaluate scores guess against target.
func Evaluate(target, guess Coordinate) Result {
	d := Distance(target, guess)
	return Result{DistanceMeters: d, Points: Score(d)}
}
