// Command slantrange prints the distance from a radar next to the Eiffel
// Tower to a satellite given in ECEF coordinates.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/signalsfoundry/slant-range/internal/logging"
	"github.com/signalsfoundry/slant-range/internal/ranging"
	"github.com/signalsfoundry/slant-range/model"
)

var (
	// Eiffel Tower, with elevation to the top platform.
	radar = model.GeodeticPosition{Latitude: 48.8584, Longitude: 2.2945, Elevation: 330.0}
	// ECEF metres.
	satellite = model.CartesianPosition{X: 4198945.0, Y: 174747.0, Z: 4781887.0}
)

func main() {
	log := logging.NewFromEnv()
	ctx := context.Background()

	cfg, err := ranging.ConfigFromEnv()
	if err != nil {
		log.Error(ctx, "invalid configuration", logging.Err(err))
		os.Exit(1)
	}

	if err := run(ctx, os.Stdout, ranging.NewService(cfg, ranging.WithLogger(log))); err != nil {
		log.Error(ctx, "slant range failed", logging.Err(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, w io.Writer, svc *ranging.Service) error {
	meters, err := svc.SlantRange(ctx, radar, satellite)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "The distance between the radar and the satellite is %s meters\n",
		strconv.FormatFloat(meters, 'f', -1, 64))
	return err
}
