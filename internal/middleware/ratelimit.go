package middleware

import (
	"net/http"
	"strconv"
	"time"

	"roomledger/internal/caching"
	"roomledger/internal/common"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// RateLimit allows limit requests per client IP in each window. Redis
// errors let the request through.
func RateLimit(cache caching.CacheService, limit int, window time.Duration, logger logrus.FieldLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			limited, err := cache.IsRateLimited(c.Request().Context(), c.RealIP(), limit, window)
			if err != nil {
				logger.WithError(err).Warn("rate limiter unavailable")
				return next(c)
			}
			if limited {
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				return c.JSON(http.StatusTooManyRequests, common.CreateErrorResponse(common.CodeRateLimited, "Too many requests", nil))
			}
			return next(c)
		}
	}
}
