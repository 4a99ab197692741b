// Package rangehttp exposes the range service as a JSON API on gin.
package rangehttp

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/signalsfoundry/slant-range/internal/logging"
	"github.com/signalsfoundry/slant-range/internal/observability"
	"github.com/signalsfoundry/slant-range/internal/ranging"
	"github.com/signalsfoundry/slant-range/internal/ratelimit"
)

// RouterConfig carries the optional collaborators of NewRouter.
type RouterConfig struct {
	Logger  logging.Logger
	Metrics *observability.RangeCollector
	Limiter *ratelimit.KeyedLimiter

	// TrustedProxies lists the proxy addresses or CIDRs whose forwarding
	// headers are honoured. Empty means the socket peer is the client.
	TrustedProxies []string
}

// NewRouter builds the gin engine serving the /v1 API, /healthz and /metrics.
// Only the /v1 group is rate limited, keyed by the client IP gin resolves
// through cfg.TrustedProxies.
func NewRouter(svc *ranging.Service, cfg RouterConfig) (*gin.Engine, error) {
	log := cfg.Logger
	if log == nil {
		log = logging.Noop()
	}
	h := &handler{svc: svc, log: log}

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	r.Use(gin.Recovery(), requestID(log), metrics(cfg.Metrics))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))

	v1 := r.Group("/v1", rateLimit(cfg.Limiter))
	v1.POST("/slant-range", h.slantRange)
	v1.POST("/geodetic-to-cartesian", h.geodeticToCartesian)
	v1.POST("/cartesian-to-geodetic", h.cartesianToGeodetic)

	return r, nil
}
