package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"multibank/internal/errors"

	"github.com/labstack/echo/v4"
)

// PanicRecovery converts handler panics into a SYSTEM_001 response so a
// single broken request cannot take the dashboard down
func PanicRecovery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if r := recover(); r != nil {
					handlePanic(c, r)
				}
			}()

			return next(c)
		}
	}
}

func handlePanic(c echo.Context, r any) {
	traceID := GetTraceID(c)
	if traceID == "" {
		traceID = "unknown"
	}

	slog.Error("panic recovered",
		"trace_id", traceID,
		"panic", fmt.Sprintf("%v", r),
		"method", c.Request().Method,
		"path", c.Request().URL.Path,
		"stack", string(debug.Stack()),
	)

	response := errors.NewErrorResponse(errors.SystemInternalError, traceID)
	if err := c.JSON(http.StatusInternalServerError, response); err != nil {
		slog.Error("failed to write panic response", "trace_id", traceID, "error", err.Error())
	}
}
