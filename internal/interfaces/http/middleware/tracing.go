package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracing starts a server span per request. Health and docs routes are not traced.
func Tracing(serviceName string) gin.HandlerFunc {
	return otelgin.Middleware(serviceName,
		otelgin.WithFilter(func(r *http.Request) bool {
			return r.URL.Path != "/health" && r.URL.Path != "/api/v1/ping"
		}),
	)
}

// SpanAttributes tags the request span with the request id and, once
// authentication ran, the workspace and user. 4xx and 5xx responses mark the span as failed.
func SpanAttributes() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}
		attrs := []attribute.KeyValue{attribute.String("crm.request_id", c.GetString(RequestIDKey))}
		if ws := c.GetString(WorkspaceIDKey); ws != "" {
			attrs = append(attrs, attribute.String("crm.workspace_id", ws))
		}
		if user := c.GetString(UserIDKey); user != "" {
			attrs = append(attrs, attribute.String("crm.user_id", user))
		}
		if method := c.GetString(AuthMethodKey); method != "" {
			attrs = append(attrs, attribute.String("crm.auth_method", method))
		}
		span.SetAttributes(attrs...)

		if status := c.Writer.Status(); status >= http.StatusBadRequest {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	}
}
