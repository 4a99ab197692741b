package core

import (
	"errors"
	"math"
	"testing"

	"github.com/signalsfoundry/slant-range/model"
)

func TestEllipsoidValidate(t *testing.T) {
	tests := []struct {
		name  string
		e     Ellipsoid
		valid bool
	}{
		{"WGS84", WGS84, true},
		{"sphere", Ellipsoid{SemiMajorAxis: 6371000, SemiMinorAxis: 6371000}, true},
		{"GRS80", Ellipsoid{SemiMajorAxis: 6378137, SemiMinorAxis: 6356752.314140}, true},
		{"prolate", Ellipsoid{SemiMajorAxis: 6356752, SemiMinorAxis: 6378137}, false},
		{"zero", Ellipsoid{}, false},
		{"negative", Ellipsoid{SemiMajorAxis: 1, SemiMinorAxis: -1}, false},
		{"NaN", Ellipsoid{SemiMajorAxis: math.NaN(), SemiMinorAxis: 1}, false},
		{"Inf", Ellipsoid{SemiMajorAxis: math.Inf(1), SemiMinorAxis: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.e.Validate()
			if tt.valid && err != nil {
				t.Fatalf("Validate(%+v) = %v, want nil", tt.e, err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidEllipsoid) {
				t.Fatalf("Validate(%+v) = %v, want ErrInvalidEllipsoid", tt.e, err)
			}
		})
	}
}

func TestEllipsoidEccentricitySquared(t *testing.T) {
	const want = 0.006694478197993292
	if got := WGS84.EccentricitySquared(); math.Abs(got-want) > 1e-15 {
		t.Fatalf("WGS84 e² = %.18f, want %.18f", got, want)
	}
	sphere := Ellipsoid{SemiMajorAxis: 6371000, SemiMinorAxis: 6371000}
	if got := sphere.EccentricitySquared(); got != 0 {
		t.Fatalf("sphere e² = %v, want 0", got)
	}
}

func TestEllipsoid_SphereDegeneratesToSphericalTransform(t *testing.T) {
	const r = 6371000.0
	sphere := Ellipsoid{SemiMajorAxis: r, SemiMinorAxis: r}
	pos := model.GeodeticPosition{Latitude: 30, Longitude: 60, Elevation: 1000}

	got := sphere.GeodeticToCartesian(pos)
	if norm := math.Sqrt(got.X*got.X + got.Y*got.Y + got.Z*got.Z); math.Abs(norm-(r+1000)) > 1e-6 {
		t.Fatalf("|ECEF| on sphere = %.6f, want %.6f", norm, r+1000)
	}
}

func TestEllipsoid_CustomAxesChangeResult(t *testing.T) {
	grs80 := Ellipsoid{SemiMajorAxis: 6378137, SemiMinorAxis: 6356752.314140}
	a := WGS84.GeodeticToCartesian(radar)
	b := grs80.GeodeticToCartesian(radar)
	if a == b {
		t.Fatalf("different semi-minor axes produced identical points %+v", a)
	}
	// Sub-metre axis change should move the point by well under a metre.
	if d := Distance(a, b); d > 1 {
		t.Fatalf("GRS80 vs WGS84 shift = %.3f m, want < 1 m", d)
	}
	if got, want := WGS84.SlantRange(radar, satellite), SlantRange(radar, satellite); got != want {
		t.Fatalf("WGS84.SlantRange = %v, package SlantRange = %v", got, want)
	}
}

func TestCartesianToGeodetic_RoundTrip(t *testing.T) {
	positions := []model.GeodeticPosition{
		{},
		radar,
		{Latitude: -33.8568, Longitude: -70.6483, Elevation: 570},
		{Latitude: 31.5, Longitude: 35.5, Elevation: -430},
		{Latitude: 60, Longitude: -120, Elevation: 400000},
		{Latitude: 0.5, Longitude: 179.5, Elevation: 35786000},
		{Latitude: -75, Longitude: 100, Elevation: 2835},
		{Latitude: 89.9, Longitude: 45, Elevation: 10},
	}

	for _, want := range positions {
		ecef := GeodeticToCartesian(want)
		got := WGS84.CartesianToGeodetic(ecef)

		if math.Abs(got.Latitude-want.Latitude) > 1e-9 {
			t.Errorf("latitude round trip %+v -> %.12f", want, got.Latitude)
		}
		if math.Abs(got.Longitude-want.Longitude) > 1e-9 {
			t.Errorf("longitude round trip %+v -> %.12f", want, got.Longitude)
		}
		if math.Abs(got.Elevation-want.Elevation) > 1e-5 {
			t.Errorf("elevation round trip %+v -> %.9f", want, got.Elevation)
		}
	}
}

func TestCartesianToGeodetic_DeepBelowEllipsoid(t *testing.T) {
	for _, want := range []model.GeodeticPosition{
		{Latitude: 40, Longitude: 10, Elevation: -6e6},
		{Latitude: -65, Longitude: -150, Elevation: -5e6},
	} {
		got := WGS84.CartesianToGeodetic(GeodeticToCartesian(want))
		if math.Abs(got.Latitude-want.Latitude) > 1e-8 ||
			math.Abs(got.Longitude-want.Longitude) > 1e-9 ||
			math.Abs(got.Elevation-want.Elevation) > 1e-3 {
			t.Fatalf("CartesianToGeodetic(GeodeticToCartesian(%+v)) = %+v", want, got)
		}
	}
}

func TestCartesianToGeodetic_Poles(t *testing.T) {
	north := WGS84.CartesianToGeodetic(model.CartesianPosition{Z: WGS84.SemiMinorAxis + 100})
	if math.Abs(north.Latitude-90) > 1e-9 || math.Abs(north.Elevation-100) > 1e-6 {
		t.Fatalf("north pole inverse = %+v, want lat 90, elevation 100", north)
	}
	south := WGS84.CartesianToGeodetic(model.CartesianPosition{Z: -WGS84.SemiMinorAxis})
	if math.Abs(south.Latitude+90) > 1e-9 || math.Abs(south.Elevation) > 1e-6 {
		t.Fatalf("south pole inverse = %+v, want lat -90, elevation 0", south)
	}
}

// The forward transform must place every point exactly `elevation` metres
// above the ellipsoid along the surface normal.
func TestGeodeticToCartesian_ElevationAboveEllipsoid(t *testing.T) {
	for _, h := range []float64{-100, 0, 330, 1e5} {
		pos := model.GeodeticPosition{Latitude: 52.52, Longitude: 13.405, Elevation: h}
		back := WGS84.CartesianToGeodetic(GeodeticToCartesian(pos))
		if math.Abs(back.Elevation-h) > 1e-6 {
			t.Errorf("elevation %v recovered as %.9f", h, back.Elevation)
		}
	}
}
