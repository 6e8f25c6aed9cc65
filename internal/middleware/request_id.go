package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// TraceIDHeader carries the trace ID on requests and responses
	TraceIDHeader = "X-Trace-ID"
	// TraceIDContextKey is the context key under which the trace ID is stored
	TraceIDContextKey = "trace_id"

	// maxInboundTraceIDLength caps caller-supplied trace IDs so a hostile
	// header cannot bloat logs
	maxInboundTraceIDLength = 64
)

// RequestID assigns every request a trace ID. A caller-supplied X-Trace-ID
// is honored when it is reasonably sized; otherwise a fresh UUID is issued.
// The ID is stored on the context and echoed back on the response.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			traceID := c.Request().Header.Get(TraceIDHeader)
			if traceID == "" || len(traceID) > maxInboundTraceIDLength {
				traceID = uuid.NewString()
			}

			c.Set(TraceIDContextKey, traceID)
			c.Response().Header().Set(TraceIDHeader, traceID)

			return next(c)
		}
	}
}

// GetTraceID returns the trace ID stored on the context, or "" when the
// RequestID middleware has not run.
func GetTraceID(c echo.Context) string {
	traceID, ok := c.Get(TraceIDContextKey).(string)
	if !ok {
		return ""
	}
	return traceID
}
