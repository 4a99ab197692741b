package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/signalsfoundry/slant-range/internal/observability"
	"github.com/signalsfoundry/slant-range/internal/ranging"
)

// Config is the full server configuration.
type Config struct {
	GRPCAddress    string
	// HTTPAddress is the gin listener; empty disables the HTTP API.
	HTTPAddress    string
	// TrustedProxies may set X-Forwarded-For on HTTP requests. Empty trusts none.
	TrustedProxies []string

	// RateLimitRPS is the per-client budget on both transports; 0 disables it.
	RateLimitRPS   float64
	RateLimitBurst int

	LogLevel  string
	LogFormat string

	Ranging ranging.Config
	Tracing observability.TracingConfig
}

// ConfigFromEnv reads the server configuration from RANGE_* and LOG_*
// variables.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		GRPCAddress:    envOr("RANGE_GRPC_ADDR", ":50051"),
		HTTPAddress:    ":8080",
		RateLimitBurst: 10,
		LogLevel:       os.Getenv("LOG_LEVEL"),
		LogFormat:      os.Getenv("LOG_FORMAT"),
	}
	if v, ok := os.LookupEnv("RANGE_HTTP_ADDR"); ok {
		cfg.HTTPAddress = strings.TrimSpace(v)
	}

	cfg.TrustedProxies = splitList(os.Getenv("RANGE_TRUSTED_PROXIES"))

	if raw := strings.TrimSpace(os.Getenv("RANGE_RATE_LIMIT_RPS")); raw != "" {
		rps, err := strconv.ParseFloat(raw, 64)
		if err != nil || rps < 0 {
			return Config{}, fmt.Errorf("parse RANGE_RATE_LIMIT_RPS %q: must be a non-negative number", raw)
		}
		cfg.RateLimitRPS = rps
	}
	if raw := strings.TrimSpace(os.Getenv("RANGE_RATE_LIMIT_BURST")); raw != "" {
		burst, err := strconv.Atoi(raw)
		if err != nil || burst < 1 {
			return Config{}, fmt.Errorf("parse RANGE_RATE_LIMIT_BURST %q: must be a positive integer", raw)
		}
		cfg.RateLimitBurst = burst
	}

	rc, err := ranging.ConfigFromEnv()
	if err != nil {
		return Config{}, err
	}
	cfg.Ranging = rc

	tc, err := observability.TracingConfigFromEnv()
	if err != nil {
		return Config{}, err
	}
	cfg.Tracing = tc
	return cfg, nil
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
