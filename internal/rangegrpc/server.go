// Package rangegrpc exposes the range service over gRPC.
package rangegrpc

import (
	"context"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/signalsfoundry/slant-range/internal/logging"
	"github.com/signalsfoundry/slant-range/internal/observability"
	"github.com/signalsfoundry/slant-range/internal/ranging"
	"github.com/signalsfoundry/slant-range/internal/ratelimit"
)

// RangeService implements RangeServiceServer on top of a ranging.Service.
type RangeService struct {
	svc *ranging.Service
	log logging.Logger
}

// NewRangeService wraps svc for gRPC.
func NewRangeService(svc *ranging.Service, log logging.Logger) *RangeService {
	if log == nil {
		log = logging.Noop()
	}
	return &RangeService{svc: svc, log: log}
}

// SlantRange reads observer and target and returns the distance in metres.
func (s *RangeService) SlantRange(ctx context.Context, req *structpb.Struct) (*wrapperspb.DoubleValue, error) {
	observer, err := GeodeticFromStruct(req, ObserverField)
	if err != nil {
		return nil, s.fail(ctx, "SlantRange", err)
	}
	target, err := CartesianFromStruct(req, TargetField)
	if err != nil {
		return nil, s.fail(ctx, "SlantRange", err)
	}

	meters, err := s.svc.SlantRange(ctx, observer, target)
	if err != nil {
		return nil, s.fail(ctx, "SlantRange", err)
	}
	return wrapperspb.Double(meters), nil
}

// GeodeticToCartesian converts the observer object to ECEF.
func (s *RangeService) GeodeticToCartesian(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	observer, err := GeodeticFromStruct(req, ObserverField)
	if err != nil {
		return nil, s.fail(ctx, "GeodeticToCartesian", err)
	}
	out, err := s.svc.GeodeticToCartesian(ctx, observer)
	if err != nil {
		return nil, s.fail(ctx, "GeodeticToCartesian", err)
	}
	return CartesianStruct(out), nil
}

// CartesianToGeodetic converts the target object to geodetic coordinates.
func (s *RangeService) CartesianToGeodetic(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	target, err := CartesianFromStruct(req, TargetField)
	if err != nil {
		return nil, s.fail(ctx, "CartesianToGeodetic", err)
	}
	out, err := s.svc.CartesianToGeodetic(ctx, target)
	if err != nil {
		return nil, s.fail(ctx, "CartesianToGeodetic", err)
	}
	return GeodeticStruct(out), nil
}

func (s *RangeService) fail(ctx context.Context, method string, err error) error {
	logging.FromContext(ctx, s.log).Warn(ctx, "range request failed",
		logging.String("rpc", method),
		logging.Err(err),
	)
	return ToStatusError(err)
}

// ServerConfig carries the optional collaborators of NewServer.
type ServerConfig struct {
	Logger  logging.Logger
	Metrics *observability.RangeCollector
	Limiter *ratelimit.KeyedLimiter
}

// NewServer builds a grpc.Server with the range and health services
// registered and the standard interceptor chain installed. The returned
// health server reports SERVING for both the empty name and ServiceName.
func NewServer(svc *ranging.Service, cfg ServerConfig, opts ...grpc.ServerOption) (*grpc.Server, *health.Server) {
	log := cfg.Logger
	if log == nil {
		log = logging.Noop()
	}

	opts = append([]grpc.ServerOption{
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			RequestIDUnaryServerInterceptor(log),
			TracingUnaryServerInterceptor(),
			cfg.Metrics.UnaryServerInterceptor(),
			RateLimitUnaryServerInterceptor(cfg.Limiter),
		),
	}, opts...)

	server := grpc.NewServer(opts...)
	RegisterRangeServiceServer(server, NewRangeService(svc, log))

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(server, hs)

	return server, hs
}
