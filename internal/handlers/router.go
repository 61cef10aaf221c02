package handlers

import (
	"net/http"

	_ "roomledger/docs"
	"roomledger/internal/common"
	"roomledger/internal/middleware"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"
)

type RouterConfig struct {
	Rooms   *RoomHandlers
	Tenants *TenantHandlers
	Reports *ReportHandlers
	Health  *HealthHandlers
	Logger  logrus.FieldLogger

	// RateLimit is applied to API routes when set.
	RateLimit   echo.MiddlewareFunc
	CORSOrigins []string
}

// NewRouter mounts the API twice: under /v1 with version headers and at the
// root for unversioned clients.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(e, cfg.Logger)

	e.Pre(echoMiddleware.RemoveTrailingSlash())
	e.Use(echoMiddleware.RequestID())
	e.Use(middleware.RequestLogger(cfg.Logger))
	e.Use(echoMiddleware.Recover())
	if len(cfg.CORSOrigins) > 0 {
		e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{AllowOrigins: cfg.CORSOrigins}))
	} else {
		e.Use(echoMiddleware.CORS())
	}

	versionMiddleware := middleware.NewVersionMiddleware()
	e.Use(versionMiddleware.APIVersionResolver())

	if cfg.Health != nil {
		cfg.Health.RegisterRoutes(e)
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := versionMiddleware.VersionRoute(e, "v1")
	root := e.Group("")
	for _, g := range []*echo.Group{v1, root} {
		if cfg.RateLimit != nil {
			g.Use(cfg.RateLimit)
		}
		cfg.Rooms.RegisterRoutes(g)
		cfg.Tenants.RegisterRoutes(g)
		cfg.Reports.RegisterRoutes(g)
	}

	return e
}

// errorHandler renders echo's own errors (unknown routes, bad methods,
// panics) in the common envelope.
func errorHandler(e *echo.Echo, logger logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "An unexpected error occurred"
		if he, ok := err.(*echo.HTTPError); ok {
			status = he.Code
			if m, ok := he.Message.(string); ok {
				message = m
			}
		} else {
			logger.WithError(err).Error("unhandled error")
		}

		code := common.CodeServer
		switch {
		case status == http.StatusNotFound:
			code = common.CodeNotFound
		case status == http.StatusTooManyRequests:
			code = common.CodeRateLimited
		case status < http.StatusInternalServerError:
			code = common.CodeClient
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, common.CreateErrorResponse(code, message, nil))
		}
		if err != nil {
			e.Logger.Error(err)
		}
	}
}
