package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{"NOT_FOUND", http.StatusNotFound},
		{"ALREADY_EXISTS", http.StatusConflict},
		{"INVALID_TRANSITION", http.StatusUnprocessableEntity},
		{"INVALID_STATE", http.StatusUnprocessableEntity},
		{"MISSING_FIELD", http.StatusBadRequest},
		{"INSUFFICIENT_STOCK", http.StatusUnprocessableEntity},
		{"OUT_OF_STOCK", http.StatusUnprocessableEntity},
		{"ORDER_LOCKED", http.StatusUnprocessableEntity},
		{"UNAUTHORIZED", http.StatusUnauthorized},
		{"FORBIDDEN", http.StatusForbidden},
		{"OPTIMISTIC_LOCK_FAILED", http.StatusConflict},
		{"CONFIGURATION_ERROR", http.StatusInternalServerError},
		// Constructor validation codes fall through to 400.
		{"INVALID_QUANTITY", http.StatusBadRequest},
		{"INVALID_SKU", http.StatusBadRequest},
		// Anything unrecognized is a server fault.
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.status, GetHTTPStatus(tt.code))
		})
	}
}
