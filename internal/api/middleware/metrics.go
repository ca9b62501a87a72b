// Package middleware provides Echo middleware for the mock search server.
package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/searchselect/internal/metrics"
)

// metricsSkipPaths are operational endpoints kept out of request metrics.
var metricsSkipPaths = map[string]struct{}{
	"/metrics": {},
	"/healthz": {},
}

// Metrics returns Echo middleware that records request duration and status.
// /healthz updates the HealthzUp gauge instead.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}

			if _, skip := metricsSkipPaths[path]; skip {
				err := next(c)
				if path == "/healthz" {
					updateHealthGauge(c.Response().Status)
				}
				return err
			}

			start := time.Now()

			err := next(c)

			status := strconv.Itoa(c.Response().Status)
			method := c.Request().Method

			metrics.HTTPRequestDuration.
				WithLabelValues(method, path, status).
				Observe(time.Since(start).Seconds())
			metrics.HTTPRequestsTotal.
				WithLabelValues(method, path, status).
				Inc()

			return err
		}
	}
}

func updateHealthGauge(status int) {
	if status >= 200 && status < 300 {
		metrics.HealthzUp.Set(1)
		return
	}
	metrics.HealthzUp.Set(0)
}
