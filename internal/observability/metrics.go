package observability

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// Transport labels used on request metrics.
const (
	TransportGRPC = "grpc"
	TransportHTTP = "http"
)

// RangeCollector bundles the Prometheus metrics of the range service.
type RangeCollector struct {
	gatherer prometheus.Gatherer

	Requests         *prometheus.CounterVec
	RequestDurations *prometheus.HistogramVec
	SlantRanges      prometheus.Histogram
	RejectedInputs   *prometheus.CounterVec
	EllipsoidAxes    *prometheus.GaugeVec
}

// NewRangeCollector registers the range metrics against reg, defaulting to
// the global Prometheus registry when reg is nil. Registering twice against
// the same registry returns the already registered collectors.
func NewRangeCollector(reg prometheus.Registerer) (*RangeCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	requests, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "range_requests_total",
		Help: "Handled range requests, labeled by transport, method and status code.",
	}, []string{"transport", "method", "code"}), "range_requests_total")
	if err != nil {
		return nil, err
	}

	durations, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "range_request_duration_seconds",
		Help:    "Range request latency in seconds.",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"transport", "method"}), "range_request_duration_seconds")
	if err != nil {
		return nil, err
	}

	slantRanges, err := register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "range_slant_range_meters",
		Help:    "Distribution of computed slant ranges in metres.",
		Buckets: prometheus.ExponentialBuckets(1, 10, 9), // 1 m .. 100 000 km
	}), "range_slant_range_meters")
	if err != nil {
		return nil, err
	}

	rejected, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "range_rejected_inputs_total",
		Help: "Inputs rejected by strict validation, labeled by reason.",
	}, []string{"reason"}), "range_rejected_inputs_total")
	if err != nil {
		return nil, err
	}

	axes, err := register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "range_ellipsoid_axis_meters",
		Help: "Axes of the configured reference ellipsoid.",
	}, []string{"axis"}), "range_ellipsoid_axis_meters")
	if err != nil {
		return nil, err
	}

	return &RangeCollector{
		gatherer:         gatherer,
		Requests:         requests,
		RequestDurations: durations,
		SlantRanges:      slantRanges,
		RejectedInputs:   rejected,
		EllipsoidAxes:    axes,
	}, nil
}

// ObserveRequest records one handled request.
func (c *RangeCollector) ObserveRequest(transport, method, code string, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.Requests.WithLabelValues(transport, method, code).Inc()
	c.RequestDurations.WithLabelValues(transport, method).Observe(elapsed.Seconds())
}

// ObserveSlantRange records a computed distance. NaN results are skipped.
func (c *RangeCollector) ObserveSlantRange(meters float64) {
	if c == nil || math.IsNaN(meters) {
		return
	}
	c.SlantRanges.Observe(meters)
}

// IncRejected counts an input refused by validation.
func (c *RangeCollector) IncRejected(reason string) {
	if c == nil {
		return
	}
	c.RejectedInputs.WithLabelValues(reason).Inc()
}

// SetEllipsoid publishes the configured ellipsoid axes.
func (c *RangeCollector) SetEllipsoid(semiMajor, semiMinor float64) {
	if c == nil {
		return
	}
	c.EllipsoidAxes.WithLabelValues("semi_major").Set(semiMajor)
	c.EllipsoidAxes.WithLabelValues("semi_minor").Set(semiMinor)
}

// UnaryServerInterceptor records request counts and durations for unary RPCs.
func (c *RangeCollector) UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		fullMethod := ""
		if info != nil {
			fullMethod = info.FullMethod
		}
		_, method := SplitMethod(fullMethod)
		c.ObserveRequest(TransportGRPC, method, status.Code(err).String(), time.Since(start))

		return resp, err
	}
}

// Handler exposes a ready-to-use /metrics handler.
func (c *RangeCollector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SplitMethod parses "/pkg.Service/Method" into "Service" and "Method",
// returning "unknown" for parts it cannot find.
func SplitMethod(fullMethod string) (string, string) {
	parts := strings.Split(strings.TrimPrefix(fullMethod, "/"), "/")
	if len(parts) < 2 {
		return "unknown", "unknown"
	}
	service := parts[len(parts)-2]
	method := parts[len(parts)-1]
	if dot := strings.LastIndex(service, "."); dot >= 0 {
		service = service[dot+1:]
	}
	if service == "" {
		service = "unknown"
	}
	if method == "" {
		method = "unknown"
	}
	return service, method
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T, name string) (T, error) {
	if err := reg.Register(c); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			var zero T
			return zero, err
		}
		existing, ok := are.ExistingCollector.(T)
		if !ok {
			var zero T
			return zero, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return existing, nil
	}
	return c, nil
}
