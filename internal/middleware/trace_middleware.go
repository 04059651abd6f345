package middleware

import (
	"context"

	"adventura/business/recommender"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TraceMiddleware assigns every request a trace id and threads it through
// the request context so engine logs can be correlated with responses.
func TraceMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tid := c.Request().Header.Get("X-Trace-ID")
			if tid == "" {
				tid = uuid.NewString()
			}

			ctx := context.WithValue(c.Request().Context(), recommender.TraceIDKey, tid)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Response().Header().Set("X-Trace-ID", tid)

			return next(c)
		}
	}
}
