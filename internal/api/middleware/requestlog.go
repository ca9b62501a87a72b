package middleware

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const requestIDHeader = "X-Request-ID"

// quietPaths are logged on their first success and on every failure.
var quietPaths = map[string]struct{}{
	"/healthz": {},
	"/metrics": {},
}

// RequestLog returns Echo middleware that logs requests with structured fields.
// It reuses the caller's X-Request-ID (the search client always sends one) or
// generates one, and echoes it in the response.
func RequestLog(log *slog.Logger) echo.MiddlewareFunc {
	var seen sync.Map

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			reqID := c.Request().Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}

			c.Set("request_id", reqID)
			c.Response().Header().Set(requestIDHeader, reqID)

			err := next(c)

			path := c.Request().URL.Path
			status := c.Response().Status
			failed := status >= 400

			if _, quiet := quietPaths[path]; quiet && !failed {
				if _, loaded := seen.LoadOrStore(path, struct{}{}); loaded {
					return err
				}
			}

			level := slog.LevelInfo
			if failed {
				level = slog.LevelWarn
			}
			log.Log(c.Request().Context(), level, "request",
				"method", c.Request().Method,
				"path", path,
				"query", c.Request().URL.RawQuery,
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", reqID,
			)

			return err
		}
	}
}
