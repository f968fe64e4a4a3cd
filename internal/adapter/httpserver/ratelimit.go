package httpserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/danielsutton1/Jewelia-sub026/internal/metrics"
)

const rateLimiterExpiry = 5 * time.Minute

// newAPIRateLimiter throttles the CRM API per caller. Callers are keyed by
// tenant when the request carries one, so one tenant's bulk import cannot
// starve another tenant sharing the same egress IP; requests without a tenant
// header fall back to the client IP.
func newAPIRateLimiter(ratePerSecond float64, burst int) echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(
		middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(ratePerSecond),
			Burst:     burst,
			ExpiresIn: rateLimiterExpiry,
		},
	)
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		IdentifierExtractor: func(c echo.Context) (string, error) {
			if tenant := strings.TrimSpace(c.Request().Header.Get("X-Tenant-ID")); tenant != "" {
				return "tenant:" + tenant, nil
			}
			return "ip:" + c.RealIP(), nil
		},
		Store: store,
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			metrics.APIRateLimitedTotal.Inc()
			return c.JSON(http.StatusTooManyRequests, map[string]string{
				"error": "rate limit exceeded",
				"type":  "rate_limited",
			})
		},
	})
}
