package core

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidEllipsoid is returned by Ellipsoid.Validate for axes that cannot
// describe an oblate ellipsoid.
var ErrInvalidEllipsoid = errors.New("invalid ellipsoid")

// Ellipsoid is a reference ellipsoid of revolution, axes in metres.
type Ellipsoid struct {
	SemiMajorAxis float64 // a, equatorial radius
	SemiMinorAxis float64 // b, polar radius
}

// WGS84 is the default reference ellipsoid. The semi-minor axis is the
// WGS-84 polar radius rounded to the metre.
var WGS84 = Ellipsoid{
	SemiMajorAxis: 6378137.0,
	SemiMinorAxis: 6356752.0,
}

// Validate checks that both axes are finite and 0 < b <= a.
func (e Ellipsoid) Validate() error {
	a, b := e.SemiMajorAxis, e.SemiMinorAxis
	if math.IsNaN(a) || math.IsNaN(b) || math.IsInf(a, 0) || math.IsInf(b, 0) {
		return fmt.Errorf("axes a=%g b=%g not finite: %w", a, b, ErrInvalidEllipsoid)
	}
	if b <= 0 || a < b {
		return fmt.Errorf("axes a=%g b=%g, want 0 < b <= a: %w", a, b, ErrInvalidEllipsoid)
	}
	return nil
}

// EccentricitySquared returns the first eccentricity squared, e² = 1 − b²/a².
func (e Ellipsoid) EccentricitySquared() float64 {
	return 1 - (e.SemiMinorAxis*e.SemiMinorAxis)/(e.SemiMajorAxis*e.SemiMajorAxis)
}

// PrimeVerticalRadius returns the radius of curvature in the prime vertical,
// N = a / sqrt(1 − e²·sin²φ), for a geodetic latitude φ in radians.
func (e Ellipsoid) PrimeVerticalRadius(latRad float64) float64 {
	sinLat := math.Sin(latRad)
	return e.SemiMajorAxis / math.Sqrt(1-e.EccentricitySquared()*sinLat*sinLat)
}
