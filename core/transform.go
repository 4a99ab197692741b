package core

import (
	"math"

	"github.com/signalsfoundry/slant-range/model"
)

const (
	maxGeodeticIterations = 10
	latitudeTolerance     = 1e-12 // radians
)

// GeodeticToCartesian converts a geodetic position to ECEF metres using the
// closed-form transform:
//
//	x = (N + h)·cosφ·cosλ
//	y = (N + h)·cosφ·sinλ
//	z = ((1 − e²)·N + h)·sinφ
//
// Inputs are not range checked; NaN and ±Inf propagate.
func (e Ellipsoid) GeodeticToCartesian(pos model.GeodeticPosition) model.CartesianPosition {
	lat := DegreesToRadians(pos.Latitude)
	lon := DegreesToRadians(pos.Longitude)

	sinLat := math.Sin(lat)
	cosLat := math.Cos(lat)
	sinLon := math.Sin(lon)
	cosLon := math.Cos(lon)

	e2 := e.EccentricitySquared()
	n := e.SemiMajorAxis / math.Sqrt(1-e2*sinLat*sinLat)
	h := pos.Elevation

	return model.CartesianPosition{
		X: (n + h) * cosLat * cosLon,
		Y: (n + h) * cosLat * sinLon,
		Z: ((1-e2)*n + h) * sinLat,
	}
}

// SlantRange converts geodeticPos onto this ellipsoid and returns its
// Euclidean distance to cartesianPos in metres.
func (e Ellipsoid) SlantRange(geodeticPos model.GeodeticPosition, cartesianPos model.CartesianPosition) float64 {
	return Distance(cartesianPos, e.GeodeticToCartesian(geodeticPos))
}

// CartesianToGeodetic converts ECEF metres back to geodetic coordinates by
// fixed-point iteration on latitude. Longitude is returned in (-180, 180].
func (e Ellipsoid) CartesianToGeodetic(pos model.CartesianPosition) model.GeodeticPosition {
	e2 := e.EccentricitySquared()
	p := math.Sqrt(pos.X*pos.X + pos.Y*pos.Y)
	lon := math.Atan2(pos.Y, pos.X)

	lat := math.Atan2(pos.Z, p*(1-e2))
	for i := 0; i < maxGeodeticIterations; i++ {
		n := e.PrimeVerticalRadius(lat)
		next := math.Atan2(pos.Z+e2*n*math.Sin(lat), p)
		delta := math.Abs(next - lat)
		lat = next
		if delta < latitudeTolerance {
			break
		}
	}

	sinLat := math.Sin(lat)
	cosLat := math.Cos(lat)
	n := e.PrimeVerticalRadius(lat)

	var h float64
	if math.Abs(cosLat) > 1e-10 {
		h = p/cosLat - n
	} else {
		// Polar axis: p/cosφ is ill-conditioned.
		h = math.Abs(pos.Z)/math.Abs(sinLat) - n*(1-e2)
	}

	return model.GeodeticPosition{
		Latitude:  RadiansToDegrees(lat),
		Longitude: RadiansToDegrees(lon),
		Elevation: h,
	}
}
