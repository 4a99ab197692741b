package model

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNonFinite is returned when a coordinate is NaN or infinite.
	ErrNonFinite = errors.New("coordinate is not finite")
	// ErrLatitudeOutOfRange is returned for latitudes outside [-90, 90] degrees.
	ErrLatitudeOutOfRange = errors.New("latitude out of range")
	// ErrLongitudeOutOfRange is returned for longitudes outside [-180, 180] degrees.
	ErrLongitudeOutOfRange = errors.New("longitude out of range")
)

// GeodeticPosition is a location relative to a reference ellipsoid.
type GeodeticPosition struct {
	Latitude  float64 // degrees, positive north
	Longitude float64 // degrees, positive east
	Elevation float64 // metres above the ellipsoid surface; may be negative
}

// CartesianPosition is a point in the ECEF frame, in metres. X points at the
// prime meridian on the equator, Z at the north pole.
type CartesianPosition struct {
	X float64
	Y float64
	Z float64
}

// Validate reports whether the position is finite and inside the natural
// geodetic ranges. The transforms themselves never call it.
func (p GeodeticPosition) Validate() error {
	if !finite(p.Latitude) || !finite(p.Longitude) || !finite(p.Elevation) {
		return fmt.Errorf("geodetic position %+v: %w", p, ErrNonFinite)
	}
	if p.Latitude < -90 || p.Latitude > 90 {
		return fmt.Errorf("latitude %g: %w", p.Latitude, ErrLatitudeOutOfRange)
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return fmt.Errorf("longitude %g: %w", p.Longitude, ErrLongitudeOutOfRange)
	}
	return nil
}

// Validate reports whether every component is finite.
func (p CartesianPosition) Validate() error {
	if !finite(p.X) || !finite(p.Y) || !finite(p.Z) {
		return fmt.Errorf("cartesian position %+v: %w", p, ErrNonFinite)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
