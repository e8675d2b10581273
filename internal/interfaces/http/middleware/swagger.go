package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SwaggerGate hides the API docs unless they are enabled
func SwaggerGate(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		c.Next()
	}
}
