package rangehttp

import (
	"errors"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/signalsfoundry/slant-range/internal/logging"
	"github.com/signalsfoundry/slant-range/internal/ranging"
	"github.com/signalsfoundry/slant-range/model"
)

// GeodeticJSON is a geodetic position on the wire. Pointers make every
// coordinate required while still accepting zero.
type GeodeticJSON struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
	Elevation *float64 `json:"elevation" binding:"required"`
}

// CartesianJSON is an ECEF position on the wire.
type CartesianJSON struct {
	X *float64 `json:"x" binding:"required"`
	Y *float64 `json:"y" binding:"required"`
	Z *float64 `json:"z" binding:"required"`
}

// SlantRangeRequest is the body of POST /v1/slant-range.
type SlantRangeRequest struct {
	Observer *GeodeticJSON  `json:"observer" binding:"required"`
	Target   *CartesianJSON `json:"target" binding:"required"`
}

// SlantRangeResponse is returned by POST /v1/slant-range.
type SlantRangeResponse struct {
	Meters float64 `json:"meters"`
}

type geodeticRequest struct {
	Observer *GeodeticJSON `json:"observer" binding:"required"`
}

type cartesianRequest struct {
	Target *CartesianJSON `json:"target" binding:"required"`
}

type geodeticResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Elevation float64 `json:"elevation"`
}

type cartesianResponse struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (g *GeodeticJSON) position() model.GeodeticPosition {
	return model.GeodeticPosition{Latitude: *g.Latitude, Longitude: *g.Longitude, Elevation: *g.Elevation}
}

func (p *CartesianJSON) position() model.CartesianPosition {
	return model.CartesianPosition{X: *p.X, Y: *p.Y, Z: *p.Z}
}

type handler struct {
	svc *ranging.Service
	log logging.Logger
}

func (h *handler) slantRange(c *gin.Context) {
	var req SlantRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	meters, err := h.svc.SlantRange(c.Request.Context(), req.Observer.position(), req.Target.position())
	if err != nil {
		h.fail(c, err)
		return
	}
	if !finite(meters) {
		h.fail(c, errNonFiniteResult)
		return
	}
	c.JSON(http.StatusOK, SlantRangeResponse{Meters: meters})
}

func (h *handler) geodeticToCartesian(c *gin.Context) {
	var req geodeticRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	out, err := h.svc.GeodeticToCartesian(c.Request.Context(), req.Observer.position())
	if err != nil {
		h.fail(c, err)
		return
	}
	if !finite(out.X, out.Y, out.Z) {
		h.fail(c, errNonFiniteResult)
		return
	}
	c.JSON(http.StatusOK, cartesianResponse{X: out.X, Y: out.Y, Z: out.Z})
}

func (h *handler) cartesianToGeodetic(c *gin.Context) {
	var req cartesianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	out, err := h.svc.CartesianToGeodetic(c.Request.Context(), req.Target.position())
	if err != nil {
		h.fail(c, err)
		return
	}
	if !finite(out.Latitude, out.Longitude, out.Elevation) {
		h.fail(c, errNonFiniteResult)
		return
	}
	c.JSON(http.StatusOK, geodeticResponse{Latitude: out.Latitude, Longitude: out.Longitude, Elevation: out.Elevation})
}

// errNonFiniteResult reports a result JSON cannot carry.
var errNonFiniteResult = errors.New("result is not finite")

func (h *handler) fail(c *gin.Context, err error) {
	ctx := c.Request.Context()
	code := statusFor(err)
	logging.FromContext(ctx, h.log).Warn(ctx, "range request failed",
		logging.Int("status", code),
		logging.Err(err),
	)
	c.JSON(code, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ranging.ErrInvalidInput),
		errors.Is(err, model.ErrNonFinite),
		errors.Is(err, model.ErrLatitudeOutOfRange),
		errors.Is(err, model.ErrLongitudeOutOfRange),
		errors.Is(err, errNonFiniteResult):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
