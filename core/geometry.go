package core

import (
	"math"

	"github.com/signalsfoundry/slant-range/model"
)

// DegreesToRadians converts an angle in degrees to radians.
func DegreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadiansToDegrees converts an angle in radians to degrees.
func RadiansToDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Distance returns the straight-line distance between two ECEF points.
func Distance(a, b model.CartesianPosition) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// GeodeticToCartesian converts a geodetic position on WGS84 to ECEF metres.
func GeodeticToCartesian(pos model.GeodeticPosition) model.CartesianPosition {
	return WGS84.GeodeticToCartesian(pos)
}

// SlantRange returns the slant range in metres between an observer on WGS84
// and a target already expressed in ECEF.
func SlantRange(geodeticPos model.GeodeticPosition, cartesianPos model.CartesianPosition) float64 {
	return WGS84.SlantRange(geodeticPos, cartesianPos)
}
