package handlers

import (
	"net/http"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// RegisterMiddleware installs request ids, request logging and OpenAPI request validation on e.
// Client addresses come from the TCP peer: render nodes are ranked against it, so forwarding headers
// are not trusted.
func RegisterMiddleware(e *echo.Echo, validator echo.MiddlewareFunc, logger log.Logger) {
	logger = log.With(logger, "component", "http")

	e.IPExtractor = echo.ExtractIPDirect()
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			lvl := level.Debug
			if v.Status >= http.StatusInternalServerError {
				lvl = level.Warn
			}
			lvl(logger).Log(
				"msg", "HTTP request",
				"request_id", v.RequestID,
				"remote_ip", v.RemoteIP,
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			)
			return nil
		},
	}))
	if validator != nil {
		e.Use(validator)
	}
}
