package presenter

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Envelope is the body of every API response. Successful envelopes never
// carry errors and failed envelopes never carry data.
type Envelope struct {
	Success bool     `json:"success"`
	Data    any      `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
	Count   *int     `json:"count,omitempty"`
}

func Success(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

func Failure(errs ...string) Envelope {
	return Envelope{Success: false, Errors: errs}
}

// OK wraps a successful response.
func OK(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, Success(data))
}

// List wraps a collection together with its size.
func List(c echo.Context, data any, count int) error {
	env := Success(data)
	env.Count = &count
	return c.JSON(http.StatusOK, env)
}

// Created wraps a successful create and points Location at the new resource.
func Created(c echo.Context, location string, data any) error {
	if location != "" {
		c.Response().Header().Set(echo.HeaderLocation, location)
	}
	return c.JSON(http.StatusCreated, Success(data))
}

func NotFound(c echo.Context, errs []string) error {
	slog.DebugContext(c.Request().Context(), "not found", slog.Any("errors", errs), slog.String("module", "presenter"))
	return c.JSON(http.StatusNotFound, Failure(errs...))
}

func BadRequest(c echo.Context, errs []string) error {
	slog.DebugContext(c.Request().Context(), "bad request", slog.Any("errors", errs), slog.String("module", "presenter"))
	return c.JSON(http.StatusBadRequest, Failure(errs...))
}

func BadRequestMessage(c echo.Context, msg string) error {
	return BadRequest(c, []string{msg})
}

func InternalError(c echo.Context, errs []string) error {
	slog.ErrorContext(c.Request().Context(), "internal error", slog.Any("errors", errs), slog.String("module", "presenter"))
	return c.JSON(http.StatusInternalServerError, Failure(errs...))
}
