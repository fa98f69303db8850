package rest

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/totegamma/agenda/internal/present/rest/middleware"
)

type ServerOptions struct {
	ServiceName string
	EnableTrace bool
	AccessLog   bool
}

// NewEcho builds the echo instance shared by the server and the tests.
func NewEcho(opts ServerOptions) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.JSONSerializer = JSONSerializer{}
	e.HTTPErrorHandler = ErrorHandler

	if opts.AccessLog {
		e.Use(echomiddleware.Logger())
	}
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.RequestID())

	if opts.EnableTrace {
		e.Use(otelecho.Middleware(opts.ServiceName))
		e.Use(middleware.AnnotateSpan)
	}

	return e
}
