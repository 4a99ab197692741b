// Package ranging is the instrumented entry point to the core transforms.
// Every transport (gRPC, HTTP, the command-line driver) goes through Service
// so logging, tracing, metrics and optional input validation stay uniform.
package ranging

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/signalsfoundry/slant-range/core"
	"github.com/signalsfoundry/slant-range/internal/logging"
	"github.com/signalsfoundry/slant-range/internal/observability"
	"github.com/signalsfoundry/slant-range/model"
)

// ErrInvalidInput wraps every validation failure returned in strict mode.
var ErrInvalidInput = errors.New("invalid input")

// Service computes slant ranges and coordinate transforms on one ellipsoid.
// It is safe for concurrent use.
type Service struct {
	ellipsoid core.Ellipsoid
	strict    bool
	log       logging.Logger
	metrics   *observability.RangeCollector
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the fallback logger used when the request context carries none.
func WithLogger(l logging.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMetrics records results on c.
func WithMetrics(c *observability.RangeCollector) Option {
	return func(s *Service) { s.metrics = c }
}

// NewService builds a Service from cfg. A zero-value ellipsoid falls back to WGS84.
func NewService(cfg Config, opts ...Option) *Service {
	e := cfg.Ellipsoid
	if e == (core.Ellipsoid{}) {
		e = core.WGS84
	}
	s := &Service{
		ellipsoid: e,
		strict:    cfg.StrictInputs,
		log:       logging.Noop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.metrics.SetEllipsoid(e.SemiMajorAxis, e.SemiMinorAxis)
	return s
}

// Ellipsoid returns the reference ellipsoid in use.
func (s *Service) Ellipsoid() core.Ellipsoid { return s.ellipsoid }

// SlantRange returns the straight-line distance in metres between observer
// and target.
func (s *Service) SlantRange(ctx context.Context, observer model.GeodeticPosition, target model.CartesianPosition) (float64, error) {
	ctx, span := observability.StartSpan(ctx, "ranging.SlantRange",
		append(observability.GeodeticAttributes("observer", observer), observability.CartesianAttributes("target", target)...)...)
	defer span.End()

	if err := s.checkGeodetic(ctx, span, "observer", observer); err != nil {
		return 0, err
	}
	if err := s.checkCartesian(ctx, span, "target", target); err != nil {
		return 0, err
	}

	meters := s.ellipsoid.SlantRange(observer, target)
	s.metrics.ObserveSlantRange(meters)
	span.SetAttributes(observability.AttrRangeMeters.Float64(meters))

	logging.FromContext(ctx, s.log).Debug(ctx, "computed slant range",
		logging.Float64("latitude", observer.Latitude),
		logging.Float64("longitude", observer.Longitude),
		logging.Float64("elevation", observer.Elevation),
		logging.Float64("meters", meters),
	)
	return meters, nil
}

// GeodeticToCartesian converts pos to ECEF metres.
func (s *Service) GeodeticToCartesian(ctx context.Context, pos model.GeodeticPosition) (model.CartesianPosition, error) {
	ctx, span := observability.StartSpan(ctx, "ranging.GeodeticToCartesian", observability.GeodeticAttributes("position", pos)...)
	defer span.End()

	if err := s.checkGeodetic(ctx, span, "position", pos); err != nil {
		return model.CartesianPosition{}, err
	}

	out := s.ellipsoid.GeodeticToCartesian(pos)
	span.SetAttributes(observability.CartesianAttributes("result", out)...)
	logging.FromContext(ctx, s.log).Debug(ctx, "converted geodetic position",
		logging.Float64("x", out.X),
		logging.Float64("y", out.Y),
		logging.Float64("z", out.Z),
	)
	return out, nil
}

// CartesianToGeodetic converts ECEF metres to a geodetic position.
func (s *Service) CartesianToGeodetic(ctx context.Context, pos model.CartesianPosition) (model.GeodeticPosition, error) {
	ctx, span := observability.StartSpan(ctx, "ranging.CartesianToGeodetic", observability.CartesianAttributes("position", pos)...)
	defer span.End()

	if err := s.checkCartesian(ctx, span, "position", pos); err != nil {
		return model.GeodeticPosition{}, err
	}

	out := s.ellipsoid.CartesianToGeodetic(pos)
	span.SetAttributes(observability.GeodeticAttributes("result", out)...)
	logging.FromContext(ctx, s.log).Debug(ctx, "converted cartesian position",
		logging.Float64("latitude", out.Latitude),
		logging.Float64("longitude", out.Longitude),
		logging.Float64("elevation", out.Elevation),
	)
	return out, nil
}

func (s *Service) checkGeodetic(ctx context.Context, span trace.Span, role string, pos model.GeodeticPosition) error {
	if !s.strict {
		return nil
	}
	return s.reject(ctx, span, role, pos.Validate())
}

func (s *Service) checkCartesian(ctx context.Context, span trace.Span, role string, pos model.CartesianPosition) error {
	if !s.strict {
		return nil
	}
	return s.reject(ctx, span, role, pos.Validate())
}

func (s *Service) reject(ctx context.Context, span trace.Span, role string, err error) error {
	if err == nil {
		return nil
	}
	err = fmt.Errorf("%w: %s: %w", ErrInvalidInput, role, err)

	s.metrics.IncRejected(RejectReason(err))
	span.RecordError(err)
	span.SetStatus(codes.Error, "invalid input")
	logging.FromContext(ctx, s.log).Warn(ctx, "rejected input",
		logging.String("role", role),
		logging.Err(err),
	)
	return err
}

// RejectReason maps a validation error to a short metric label.
func RejectReason(err error) string {
	switch {
	case errors.Is(err, model.ErrNonFinite):
		return "non_finite"
	case errors.Is(err, model.ErrLatitudeOutOfRange):
		return "latitude_out_of_range"
	case errors.Is(err, model.ErrLongitudeOutOfRange):
		return "longitude_out_of_range"
	default:
		return "other"
	}
}
