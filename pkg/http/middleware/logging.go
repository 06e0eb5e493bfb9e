package middleware

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
)

// RequestLogging logs one line per request: method, path, client,
// status, response size and latency.
func RequestLogging() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			res := c.Response()
			log.Printf("%s %s from %s - %d %dB (%s)",
				c.Request().Method,
				c.Request().RequestURI,
				c.RealIP(),
				res.Status,
				res.Size,
				time.Since(start),
			)

			return err
		}
	}
}
