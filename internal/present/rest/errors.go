package rest

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/totegamma/agenda/internal/present/rest/presenter"
)

// ErrorHandler renders errors escaping the handlers (unknown routes, panics
// caught by Recover, collaborator faults) as failure envelopes.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(code)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = fmt.Sprint(he.Message)
	}

	if code >= http.StatusInternalServerError {
		slog.ErrorContext(
			c.Request().Context(), "unhandled error",
			slog.String("error", err.Error()),
			slog.String("path", c.Request().URL.Path),
			slog.String("module", "rest"),
		)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, presenter.Failure(msg))
	}
	if err != nil {
		slog.ErrorContext(c.Request().Context(), "failed to write error response", slog.String("error", err.Error()), slog.String("module", "rest"))
	}
}
