package ranging

import (
	"errors"
	"testing"

	"github.com/signalsfoundry/slant-range/core"
)

func TestConfigFromEnvDefaults(t *testing.T) {
	t.Setenv("RANGE_ELLIPSOID_SEMI_MAJOR_M", "")
	t.Setenv("RANGE_ELLIPSOID_SEMI_MINOR_M", "")
	t.Setenv("RANGE_STRICT_INPUTS", "")

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv: %v", err)
	}
	if cfg.Ellipsoid != core.WGS84 {
		t.Fatalf("Ellipsoid = %+v, want WGS84", cfg.Ellipsoid)
	}
	if cfg.StrictInputs {
		t.Fatalf("StrictInputs = true, want false by default")
	}
}

func TestConfigFromEnvOverrides(t *testing.T) {
	t.Setenv("RANGE_ELLIPSOID_SEMI_MAJOR_M", "6378137")
	t.Setenv("RANGE_ELLIPSOID_SEMI_MINOR_M", " 6356752.314140 ")
	t.Setenv("RANGE_STRICT_INPUTS", "true")

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv: %v", err)
	}
	want := core.Ellipsoid{SemiMajorAxis: 6378137, SemiMinorAxis: 6356752.314140}
	if cfg.Ellipsoid != want {
		t.Fatalf("Ellipsoid = %+v, want %+v", cfg.Ellipsoid, want)
	}
	if !cfg.StrictInputs {
		t.Fatalf("StrictInputs = false, want true")
	}
}

func TestConfigFromEnvErrors(t *testing.T) {
	tests := []struct {
		name       string
		major      string
		minor      string
		strict     string
		wantEllips bool
	}{
		{name: "unparsable axis", major: "six"},
		{name: "prolate", major: "6356752", minor: "6378137", wantEllips: true},
		{name: "negative minor", minor: "-1", wantEllips: true},
		{name: "bad strict flag", strict: "maybe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("RANGE_ELLIPSOID_SEMI_MAJOR_M", tt.major)
			t.Setenv("RANGE_ELLIPSOID_SEMI_MINOR_M", tt.minor)
			t.Setenv("RANGE_STRICT_INPUTS", tt.strict)

			_, err := ConfigFromEnv()
			if err == nil {
				t.Fatalf("ConfigFromEnv succeeded, want error")
			}
			if tt.wantEllips && !errors.Is(err, core.ErrInvalidEllipsoid) {
				t.Fatalf("ConfigFromEnv error = %v, want ErrInvalidEllipsoid", err)
			}
		})
	}
}
