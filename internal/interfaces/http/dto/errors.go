package dto

import "net/http"

// Error codes shared between domain errors and HTTP responses
const (
	ErrCodeUnknown      = "UNKNOWN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeMalformed    = "MALFORMED_INPUT"
	ErrCodeInvalidInput = "INVALID_INPUT"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	ErrCodeNotFound: http.StatusNotFound,

	"ALREADY_EXISTS": http.StatusConflict,
	"ALREADY_FILED":  http.StatusConflict,

	ErrCodeMalformed:     http.StatusBadRequest,
	ErrCodeInvalidInput:  http.StatusBadRequest,
	"MISSING_FIELD":      http.StatusBadRequest,
	"INVALID_ID":         http.StatusBadRequest,
	"INVALID_NAME":       http.StatusBadRequest,
	"INVALID_IDENTIFIER": http.StatusBadRequest,
	"INVALID_WEIGHT":     http.StatusBadRequest,
	"INVALID_QUANTITY":   http.StatusBadRequest,
	"INVALID_REGION":     http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	"INVALID_STATE":        http.StatusUnprocessableEntity,
	"DESTINATION_DISABLED": http.StatusUnprocessableEntity,
	"NOTHING_TO_EXPORT":    http.StatusUnprocessableEntity,

	"CARRIER_NETWORK":      http.StatusInternalServerError,
	"CARRIER_REJECTED":     http.StatusInternalServerError,
	"CARRIER_TIMEOUT":      http.StatusInternalServerError,
	"FILING_FAILED":        http.StatusInternalServerError,
	"INVALID_FILING_STATE": http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// Unknown codes map to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
