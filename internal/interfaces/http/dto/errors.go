package dto

import (
	"net/http"
	"strings"
)

// Error codes raised by the interface layer itself
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// domainErrorHTTPStatus maps domain error codes to HTTP status codes.
// Business rule violations answer 422 so clients can tell them apart
// from malformed requests.
var domainErrorHTTPStatus = map[string]int{
	"NOT_FOUND":      http.StatusNotFound,
	"ALREADY_EXISTS": http.StatusConflict,

	"INVALID_ARGUMENT": http.StatusBadRequest,
	"MISSING_FIELD":    http.StatusBadRequest,
	"BAD_REQUEST":      http.StatusBadRequest,

	"INVALID_TRANSITION": http.StatusUnprocessableEntity,
	"INVALID_STATE":      http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK": http.StatusUnprocessableEntity,
	"OUT_OF_STOCK":       http.StatusUnprocessableEntity,
	"ORDER_LOCKED":       http.StatusUnprocessableEntity,

	"UNAUTHORIZED": http.StatusUnauthorized,
	"FORBIDDEN":    http.StatusForbidden,

	"CONCURRENCY_CONFLICT":   http.StatusConflict,
	"OPTIMISTIC_LOCK_FAILED": http.StatusConflict,

	"CONFIGURATION_ERROR": http.StatusInternalServerError,
	"INTERNAL_ERROR":      http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// Unmapped INVALID_* codes come from constructor validation and answer
// 400; anything else unknown answers 500.
func GetHTTPStatus(code string) int {
	if status, ok := domainErrorHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
