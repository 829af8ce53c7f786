package handlers

import (
	"net/http"

	"multibank/internal/errors"

	"github.com/labstack/echo/v4"
)

// Handlers report failures through SendError (client and business errors,
// 4xx) and SendSystemError (internal errors, 500). Do not use
// echo.NewHTTPError or raw c.JSON for errors: the helpers attach the trace ID
// and keep internal details out of responses.

// TraceIDContextKey is the context key the trace ID is stored under
const TraceIDContextKey = "trace_id"

// SuccessResponse is the standard success envelope
type SuccessResponse struct {
	Data    interface{} `json:"data,omitempty" swaggertype:"object"`
	Message string      `json:"message,omitempty"`
	Meta    interface{} `json:"meta,omitempty" swaggertype:"object"`
}

// ErrorResponse aliases the standardized error envelope
type ErrorResponse = errors.ErrorResponse

func getTraceID(c echo.Context) string {
	traceID, ok := c.Get(TraceIDContextKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// SendError sends a standardized error response with the request's trace ID
func SendError(c echo.Context, code errors.ErrorCode, opts ...errors.ErrorOption) error {
	response := errors.NewErrorResponse(code, getTraceID(c), opts...)
	return c.JSON(response.GetHTTPStatus(), response)
}

// SendSystemError hides an internal error behind the generic system message
func SendSystemError(c echo.Context, err error) error {
	response, _ := errors.WrapSystemError(err, getTraceID(c))
	return c.JSON(http.StatusInternalServerError, response)
}
