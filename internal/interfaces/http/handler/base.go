package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/shared"
	"github.com/salescrm/backend/internal/infrastructure/logger"
	"github.com/salescrm/backend/internal/interfaces/http/dto"
	"github.com/salescrm/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

func getRequestID(c *gin.Context) string {
	if id := c.GetString(middleware.RequestIDKey); id != "" {
		return id
	}
	return c.GetHeader(middleware.RequestIDHeader)
}

// Success sends a 200 response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Paginated sends a 200 response with pagination meta
func Paginated[T any](c *gin.Context, page shared.Paginated[T]) {
	c.JSON(http.StatusOK, dto.NewPaginatedResponse(page))
}

// Created sends a 201 response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Accepted sends a 202 response for work that finishes asynchronously
func (h *BaseHandler) Accepted(c *gin.Context, data any) {
	c.JSON(http.StatusAccepted, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error envelope with the status derived from code
func (h *BaseHandler) Error(c *gin.Context, code, message string) {
	resp := dto.NewErrorResponse(code, message)
	resp.Error.RequestID = getRequestID(c)
	c.JSON(dto.GetHTTPStatus(code), resp)
}

// BadRequest sends a 400 response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, dto.ErrCodeBadRequest, message)
}

// HandleError maps domain errors to their status; anything else is a logged 500
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.Error(c, dto.NormalizeErrorCode(domainErr.Code), domainErr.Message)
		return
	}
	logger.L(c.Request.Context()).Error("request failed",
		zap.String("route", c.FullPath()),
		zap.Error(err),
	)
	_ = c.Error(err)
	h.Error(c, dto.ErrCodeInternal, "An unexpected error occurred")
}

// BindJSON decodes the body into req. Malformed JSON answers 400, failed
// validation 422 with field details. It returns false when a response was sent.
func (h *BaseHandler) BindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.bindError(c, err)
		return false
	}
	return true
}

// BindQuery decodes query parameters into req
func (h *BaseHandler) BindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		h.bindError(c, err)
		return false
	}
	return true
}

func (h *BaseHandler) bindError(c *gin.Context, err error) {
	if details := middleware.ValidationDetails(err); details != nil {
		resp := dto.NewValidationErrorResponse("Request validation failed", details)
		resp.Error.RequestID = getRequestID(c)
		c.JSON(http.StatusUnprocessableEntity, resp)
		return
	}
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		h.Error(c, dto.ErrCodePayloadTooLarge, "Request body exceeds the maximum allowed size")
		return
	}
	h.BadRequest(c, "Malformed request: "+err.Error())
}

// ParamID parses a UUID path parameter
func (h *BaseHandler) ParamID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.Error(c, dto.ErrCodeInvalidID, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// Workspace returns the workspace resolved by the auth middleware
func (h *BaseHandler) Workspace(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.WorkspaceID(c)
	if !ok {
		h.Error(c, dto.ErrCodeUnauthorized, "Workspace not resolved")
		return uuid.Nil, false
	}
	return id, true
}

// Actor returns the acting user, or nil for API key callers
func (h *BaseHandler) Actor(c *gin.Context) *uuid.UUID {
	return middleware.UserID(c)
}

// ScopedID resolves the workspace and one path id in a single step
func (h *BaseHandler) ScopedID(c *gin.Context, name string) (workspaceID, id uuid.UUID, ok bool) {
	if workspaceID, ok = h.Workspace(c); !ok {
		return
	}
	id, ok = h.ParamID(c, name)
	return
}
