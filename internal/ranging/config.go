package ranging

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/signalsfoundry/slant-range/core"
)

// Config holds the service-level settings read from the environment.
type Config struct {
	Ellipsoid core.Ellipsoid
	// StrictInputs rejects non-finite and out-of-range coordinates instead of
	// passing them through to the transform.
	StrictInputs bool
}

// DefaultConfig returns WGS84 with validation disabled.
func DefaultConfig() Config {
	return Config{Ellipsoid: core.WGS84}
}

// ConfigFromEnv reads RANGE_ELLIPSOID_SEMI_MAJOR_M, RANGE_ELLIPSOID_SEMI_MINOR_M
// and RANGE_STRICT_INPUTS. Unset variables keep their defaults; a value that
// does not parse, or axes that fail core.Ellipsoid.Validate, is an error.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	var err error
	if cfg.Ellipsoid.SemiMajorAxis, err = floatFromEnv("RANGE_ELLIPSOID_SEMI_MAJOR_M", cfg.Ellipsoid.SemiMajorAxis); err != nil {
		return Config{}, err
	}
	if cfg.Ellipsoid.SemiMinorAxis, err = floatFromEnv("RANGE_ELLIPSOID_SEMI_MINOR_M", cfg.Ellipsoid.SemiMinorAxis); err != nil {
		return Config{}, err
	}
	if err := cfg.Ellipsoid.Validate(); err != nil {
		return Config{}, fmt.Errorf("ellipsoid from environment: %w", err)
	}

	if raw := strings.TrimSpace(os.Getenv("RANGE_STRICT_INPUTS")); raw != "" {
		strict, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse RANGE_STRICT_INPUTS %q: %w", raw, err)
		}
		cfg.StrictInputs = strict
	}
	return cfg, nil
}

func floatFromEnv(key string, def float64) (float64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", key, raw, err)
	}
	return v, nil
}
