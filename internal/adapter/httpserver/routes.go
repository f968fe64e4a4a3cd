package httpserver

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielsutton1/Jewelia-sub026/internal/errors"
)

func (s *Server) registerRoutes() {
	s.echo.Use(requestIDMiddleware)
	s.echo.Use(s.setupRequestLoggerMiddleware())
	s.echo.Use(middleware.Recover())
	s.echo.Use(errors.Middleware())
	s.echo.Use(metricsMiddleware)

	s.registerHealthRoutes()
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	s.echo.GET("/ws/notifications", s.handleNotificationsSocket)

	api := s.echo.Group("/api/v1", newAPIRateLimiter(s.config.APIRatePerSecond, s.config.APIRateBurst))

	api.POST("/orders", s.handleCreateOrder)
	api.GET("/orders", s.handleListOrders)
	api.GET("/orders/:id", s.handleGetOrder)
	api.PUT("/orders/:id/status", s.handleUpdateOrderStatus)

	api.POST("/inventory", s.handleCreateInventoryItem)
	api.GET("/inventory", s.handleListInventory)
	api.GET("/inventory/:id", s.handleGetInventoryItem)
	api.POST("/inventory/:id/adjust", s.handleAdjustInventory)

	api.POST("/orders/:id/production", s.handleStartProduction)
	api.GET("/orders/:id/production", s.handleListProduction)
	api.PUT("/orders/:id/production", s.handleAdvanceProduction)
}

func (s *Server) setupRequestLoggerMiddleware() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error)
			}
			slog.Info("Request", attrs...)
			return nil
		},
	})
}
