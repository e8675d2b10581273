package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/salescrm/backend/internal/infrastructure/telemetry"
)

// Profiling labels CPU samples taken while a request is handled with its route,
// method and workspace. Register it after authentication so the workspace is known.
func Profiling() gin.HandlerFunc {
	return func(c *gin.Context) {
		labels := map[string]string{
			telemetry.LabelRoute:       c.FullPath(),
			telemetry.LabelMethod:      c.Request.Method,
			telemetry.LabelWorkspaceID: c.GetString(WorkspaceIDKey),
		}
		telemetry.WithLabels(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}
