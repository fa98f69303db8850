package middleware

import (
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// AnnotateSpan tags the active request span with the request id and the
// matched route so traces can be joined with access logs.
func AnnotateSpan(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		span := trace.SpanFromContext(c.Request().Context())
		if span.IsRecording() {
			span.SetAttributes(
				attribute.String("http.route", c.Path()),
				attribute.String("request.id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)
		}
		return next(c)
	}
}
