package http

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// RequestLogger logs each completed request with its status and latency.
func RequestLogger(logger *logrus.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()

			err := next(ctx)
			if err != nil {
				ctx.Error(err)
			}

			req := ctx.Request()
			entry := logger.WithFields(logrus.Fields{
				"method":   req.Method,
				"path":     req.URL.Path,
				"status":   ctx.Response().Status,
				"remote":   ctx.RealIP(),
				"duration": time.Since(start).Milliseconds(),
			})
			if ctx.Response().Status >= 500 {
				entry.Error("Request completed")
			} else {
				entry.Info("Request completed")
			}
			return nil
		}
	}
}
