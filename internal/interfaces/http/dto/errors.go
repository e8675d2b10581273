package dto

import (
	"net/http"
	"strings"
)

// Error codes returned in the envelope. Domain codes not listed here are
// forwarded with an ERR_ prefix.
const (
	ErrCodeBadRequest       = "ERR_BAD_REQUEST"
	ErrCodeInvalidID        = "ERR_INVALID_ID"
	ErrCodeInvalidInput     = "ERR_INVALID_INPUT"
	ErrCodeValidation       = "ERR_VALIDATION"
	ErrCodeUnauthorized     = "ERR_UNAUTHORIZED"
	ErrCodeForbidden        = "ERR_FORBIDDEN"
	ErrCodeNotFound         = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists    = "ERR_ALREADY_EXISTS"
	ErrCodeConflict         = "ERR_CONFLICT"
	ErrCodeInvalidState     = "ERR_INVALID_STATE"
	ErrCodePayloadTooLarge  = "ERR_PAYLOAD_TOO_LARGE"
	ErrCodeRateLimited      = "ERR_RATE_LIMITED"
	ErrCodeInternal         = "ERR_INTERNAL"
	ErrCodeUnavailable      = "ERR_SERVICE_UNAVAILABLE"
	ErrCodeWorkspaceMissing = "ERR_WORKSPACE_REQUIRED"
)

// ErrorCodeHTTPStatus maps envelope codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeBadRequest:           http.StatusBadRequest,
	ErrCodeInvalidID:            http.StatusBadRequest,
	ErrCodeInvalidInput:         http.StatusBadRequest,
	ErrCodeWorkspaceMissing:     http.StatusBadRequest,
	ErrCodeUnauthorized:         http.StatusUnauthorized,
	ErrCodeForbidden:            http.StatusForbidden,
	ErrCodeNotFound:             http.StatusNotFound,
	ErrCodeAlreadyExists:        http.StatusConflict,
	ErrCodeConflict:             http.StatusConflict,
	ErrCodePayloadTooLarge:      http.StatusRequestEntityTooLarge,
	ErrCodeRateLimited:          http.StatusTooManyRequests,
	ErrCodeInternal:             http.StatusInternalServerError,
	ErrCodeUnavailable:          http.StatusServiceUnavailable,
	"ERR_ASSISTANT_UNAVAILABLE": http.StatusServiceUnavailable,
}

// domainCodeMapping folds domain codes into their envelope equivalents
var domainCodeMapping = map[string]string{
	"NOT_FOUND":        ErrCodeNotFound,
	"ALREADY_EXISTS":   ErrCodeAlreadyExists,
	"INVALID_INPUT":    ErrCodeInvalidInput,
	"VALIDATION_ERROR": ErrCodeValidation,
	"UNAUTHORIZED":     ErrCodeUnauthorized,
	"FORBIDDEN":        ErrCodeForbidden,
	"INVALID_STATE":    ErrCodeInvalidState,
	"INTERNAL_ERROR":   ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to its envelope form
func NormalizeErrorCode(code string) string {
	if code == "" {
		return ErrCodeInternal
	}
	if mapped, ok := domainCodeMapping[code]; ok {
		return mapped
	}
	if strings.HasPrefix(code, "ERR_") {
		return code
	}
	return "ERR_" + code
}

// GetHTTPStatus returns the HTTP status for an envelope code.
// Codes without an explicit mapping are business rule failures.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusUnprocessableEntity
}
