// Command range-server serves slant range computations over gRPC and HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/signalsfoundry/slant-range/internal/logging"
	"github.com/signalsfoundry/slant-range/internal/observability"
	"github.com/signalsfoundry/slant-range/internal/rangegrpc"
	"github.com/signalsfoundry/slant-range/internal/rangehttp"
	"github.com/signalsfoundry/slant-range/internal/ranging"
	"github.com/signalsfoundry/slant-range/internal/ratelimit"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := ConfigFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "range-server: %v\n", err)
		os.Exit(1)
	}
	log := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, AddSource: true})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log, nil); err != nil {
		log.Error(ctx, "range server exited", logging.Err(err))
		os.Exit(1)
	}
}

// run serves until ctx is cancelled. A nil lis makes run listen on
// cfg.GRPCAddress itself.
func run(ctx context.Context, cfg Config, log logging.Logger, lis net.Listener) error {
	tracing := cfg.Tracing
	e := cfg.Ranging.Ellipsoid
	tracing.ResourceAttributes = append(tracing.ResourceAttributes,
		observability.DeploymentAttributes(e.SemiMajorAxis, e.SemiMinorAxis, cfg.Ranging.StrictInputs)...)
	shutdownTracing, err := observability.InitTracing(ctx, tracing, log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer observability.ShutdownWithTimeout(context.Background(), shutdownTracing, log)

	collector, err := observability.NewRangeCollector(nil)
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}

	svc := ranging.NewService(cfg.Ranging, ranging.WithLogger(log), ranging.WithMetrics(collector))
	limiter := ratelimit.New(cfg.RateLimitRPS, cfg.RateLimitBurst)

	if lis == nil {
		lis, err = net.Listen("tcp", cfg.GRPCAddress)
		if err != nil {
			return fmt.Errorf("listen for gRPC on %s: %w", cfg.GRPCAddress, err)
		}
	}

	grpcServer, health := rangegrpc.NewServer(svc, rangegrpc.ServerConfig{
		Logger:  log,
		Metrics: collector,
		Limiter: limiter,
	})

	errCh := make(chan error, 2)
	log.Info(ctx, "starting range gRPC server",
		logging.String("addr", lis.Addr().String()),
		logging.Bool("strict_inputs", cfg.Ranging.StrictInputs),
		logging.Float64("rate_limit_rps", cfg.RateLimitRPS),
	)
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			errCh <- fmt.Errorf("gRPC server: %w", err)
		}
	}()

	var httpServer *http.Server
	if cfg.HTTPAddress != "" {
		router, err := rangehttp.NewRouter(svc, rangehttp.RouterConfig{
			Logger:         log,
			Metrics:        collector,
			Limiter:        limiter,
			TrustedProxies: cfg.TrustedProxies,
		})
		if err != nil {
			grpcServer.Stop()
			return fmt.Errorf("build HTTP router: %w", err)
		}
		httpLis, err := net.Listen("tcp", cfg.HTTPAddress)
		if err != nil {
			grpcServer.Stop()
			return fmt.Errorf("listen for HTTP on %s: %w", cfg.HTTPAddress, err)
		}
		httpServer = &http.Server{
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info(ctx, "starting range HTTP server", logging.String("addr", httpLis.Addr().String()))
		go func() {
			if err := httpServer.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("HTTP server: %w", err)
			}
		}()
	}

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
	}

	log.Info(context.Background(), "shutting down range server")
	health.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	health.SetServingStatus(rangegrpc.ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if httpServer != nil {
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Warn(shutdownCtx, "HTTP shutdown failed", logging.Err(err))
		}
	}
	stopGRPC(shutdownCtx, grpcServer.GracefulStop, grpcServer.Stop)

	return serveErr
}

// stopGRPC waits for graceful until ctx expires, then forces stop.
func stopGRPC(ctx context.Context, graceful, force func()) {
	done := make(chan struct{})
	go func() {
		graceful()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		force()
		<-done
	}
}
