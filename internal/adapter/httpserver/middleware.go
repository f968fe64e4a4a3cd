package httpserver

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/danielsutton1/Jewelia-sub026/internal/metrics"
	"github.com/danielsutton1/Jewelia-sub026/internal/platform/logging"
)

// newRequestID generates an 8-character hex request ID (4 random bytes).
func newRequestID() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func requestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := logging.WithRequestID(c.Request().Context(), newRequestID())
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

func metricsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		route := c.Path()
		status := strconv.Itoa(c.Response().Status)
		metrics.HTTPRequestDuration.WithLabelValues(route, status).Observe(time.Since(start).Seconds())
		return err
	}
}
