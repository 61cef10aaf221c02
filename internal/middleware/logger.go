package middleware

import (
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

// RequestLogger logs one line per request through logrus.
func RequestLogger(logger logrus.FieldLogger) echo.MiddlewareFunc {
	return echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			entry := logger.WithFields(logrus.Fields{
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"remote_ip":  v.RemoteIP,
				"request_id": v.RequestID,
			})
			switch {
			case v.Error != nil:
				entry.WithError(v.Error).Error("request failed")
			case v.Status >= 500:
				entry.Error("request")
			case v.Status >= 400:
				entry.Warn("request")
			default:
				entry.Info("request")
			}
			return nil
		},
	})
}
