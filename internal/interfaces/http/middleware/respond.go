package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/salescrm/backend/internal/interfaces/http/dto"
)

// RequestIDKey is the gin context key holding the request id
const RequestIDKey = "request_id"

// RequestIDHeader carries the request id in and out
const RequestIDHeader = "X-Request-ID"

func abortWithError(c *gin.Context, code, message string) {
	resp := dto.NewErrorResponse(code, message)
	resp.Error.RequestID = c.GetString(RequestIDKey)
	c.AbortWithStatusJSON(dto.GetHTTPStatus(code), resp)
}
