package core

import (
	"math"
	"testing"

	"github.com/signalsfoundry/slant-range/model"
)

var (
	// Top of the Eiffel tower.
	radar = model.GeodeticPosition{Latitude: 48.8584, Longitude: 2.2945, Elevation: 330.0}
	// MathWorks "choose a 3-D coordinate system" example point.
	satellite = model.CartesianPosition{X: 4198945.0, Y: 174747.0, Z: 4781887.0}
)

func TestDegreesToRadians(t *testing.T) {
	tests := []struct {
		deg, want float64
	}{
		{0, 0},
		{90, math.Pi / 2},
		{180, math.Pi},
		{-180, -math.Pi},
		{360, 2 * math.Pi},
		{48.8584, 0.8527399472563976},
	}
	for _, tt := range tests {
		if got := DegreesToRadians(tt.deg); math.Abs(got-tt.want) > 1e-15 {
			t.Errorf("DegreesToRadians(%v) = %.17g, want %.17g", tt.deg, got, tt.want)
		}
	}
	if got := RadiansToDegrees(DegreesToRadians(2.2945)); math.Abs(got-2.2945) > 1e-12 {
		t.Errorf("RadiansToDegrees(DegreesToRadians(2.2945)) = %v", got)
	}
}

func TestGeodeticToCartesian_EquatorPrimeMeridian(t *testing.T) {
	got := GeodeticToCartesian(model.GeodeticPosition{})
	want := model.CartesianPosition{X: 6378137.0, Y: 0, Z: 0}
	if got != want {
		t.Fatalf("GeodeticToCartesian(0,0,0) = %+v, want %+v", got, want)
	}
}

func TestGeodeticToCartesian_NorthPole(t *testing.T) {
	got := GeodeticToCartesian(model.GeodeticPosition{Latitude: 90})

	e2 := WGS84.EccentricitySquared()
	wantZ := (1 - e2) * WGS84.PrimeVerticalRadius(math.Pi/2)

	const tol = 1e-3
	if math.Abs(got.X) > tol || math.Abs(got.Y) > tol {
		t.Errorf("pole x,y = (%.6f, %.6f), want ~0", got.X, got.Y)
	}
	if math.Abs(got.Z-wantZ) > tol {
		t.Errorf("pole z = %.6f, want %.6f", got.Z, wantZ)
	}
	// (1−e²)·N at the pole collapses to the semi-minor axis.
	if math.Abs(got.Z-WGS84.SemiMinorAxis) > tol {
		t.Errorf("pole z = %.6f, want polar radius %.1f", got.Z, WGS84.SemiMinorAxis)
	}
}

func TestGeodeticToCartesian_Radar(t *testing.T) {
	got := GeodeticToCartesian(radar)
	want := model.CartesianPosition{
		X: 4201152.8760917485,
		Y: 168331.79922254197,
		Z: 4780461.221664378,
	}

	const tol = 1e-6 // metres
	if math.Abs(got.X-want.X) > tol || math.Abs(got.Y-want.Y) > tol || math.Abs(got.Z-want.Z) > tol {
		t.Fatalf("GeodeticToCartesian(radar) = [%.6f, %.6f, %.6f], want [%.6f, %.6f, %.6f]",
			got.X, got.Y, got.Z, want.X, want.Y, want.Z)
	}
}

func TestGeodeticToCartesian_Idempotent(t *testing.T) {
	first := GeodeticToCartesian(radar)
	second := GeodeticToCartesian(radar)
	if first != second {
		t.Fatalf("repeated GeodeticToCartesian differ: %+v vs %+v", first, second)
	}
}

func TestGeodeticToCartesian_SouthernWesternHemisphere(t *testing.T) {
	// Quadrant signs: south-west of the prime meridian/equator crossing.
	got := GeodeticToCartesian(model.GeodeticPosition{Latitude: -33.8568, Longitude: -70.6483, Elevation: 570})
	if got.X <= 0 || got.Y >= 0 || got.Z >= 0 {
		t.Fatalf("Santiago ECEF = %+v, want x>0, y<0, z<0", got)
	}
	got = GeodeticToCartesian(model.GeodeticPosition{Latitude: 10, Longitude: 150})
	if got.X >= 0 || got.Y <= 0 || got.Z <= 0 {
		t.Fatalf("lon 150 ECEF = %+v, want x<0, y>0, z>0", got)
	}
}

func TestGeodeticToCartesian_NonFinitePropagates(t *testing.T) {
	got := GeodeticToCartesian(model.GeodeticPosition{Latitude: math.NaN(), Longitude: 10})
	if !math.IsNaN(got.X) || !math.IsNaN(got.Y) || !math.IsNaN(got.Z) {
		t.Fatalf("NaN latitude produced %+v, want NaN components", got)
	}
	if r := SlantRange(model.GeodeticPosition{Elevation: math.NaN()}, satellite); !math.IsNaN(r) {
		t.Fatalf("SlantRange with NaN elevation = %v, want NaN", r)
	}
}

func TestSlantRange_EndToEnd(t *testing.T) {
	const want = 6932.702338478152 // metres, pinned from the reference formula
	got := SlantRange(radar, satellite)
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("SlantRange(radar, satellite) = %.9f m, want %.9f m", got, want)
	}
}

func TestSlantRange_Symmetric(t *testing.T) {
	radarECEF := GeodeticToCartesian(radar)
	forward := Distance(satellite, radarECEF)
	backward := Distance(radarECEF, satellite)
	if forward != backward {
		t.Fatalf("Distance not symmetric: %v vs %v", forward, backward)
	}
	if got := SlantRange(radar, satellite); got != forward {
		t.Fatalf("SlantRange = %v, want Distance %v", got, forward)
	}
}

func TestSlantRange_NonNegative(t *testing.T) {
	observers := []model.GeodeticPosition{
		{},
		radar,
		{Latitude: -90, Longitude: 0, Elevation: -50},
		{Latitude: 45, Longitude: -120, Elevation: 1e6},
		{Latitude: 123, Longitude: 400}, // out of range, still finite
	}
	targets := []model.CartesianPosition{
		{},
		satellite,
		{X: -4.2e7, Y: 1e3, Z: -1},
	}
	for _, o := range observers {
		for _, tg := range targets {
			if r := SlantRange(o, tg); r < 0 {
				t.Errorf("SlantRange(%+v, %+v) = %v, want >= 0", o, tg, r)
			}
		}
	}
}

func TestSlantRange_CoincidentPointsIsZero(t *testing.T) {
	target := GeodeticToCartesian(radar)
	if got := SlantRange(radar, target); got != 0 {
		t.Fatalf("SlantRange to own ECEF point = %v, want 0", got)
	}
}

func TestSlantRange_MonotonicInElevation(t *testing.T) {
	surface := model.GeodeticPosition{Latitude: 37.5, Longitude: -122.3}
	surfaceECEF := GeodeticToCartesian(surface)

	prev := -1.0
	for _, h := range []float64{0, 1, 10, 330, 8848, 400000, 35786000} {
		above := surface
		above.Elevation = h
		d := Distance(GeodeticToCartesian(above), surfaceECEF)
		if d <= prev {
			t.Fatalf("distance at h=%v is %v, not greater than previous %v", h, d, prev)
		}
		if math.Abs(d-h) > 1e-6*math.Max(1, h) {
			t.Errorf("distance at h=%v is %v, want ~h along the normal", h, d)
		}
		prev = d
	}
}
