package dto

import "net/http"

// Error codes follow ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is returned when request binding fails
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeRequestTooLarge is returned when the body exceeds http.max_body_size
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
)

// Resource error codes
const (
	ErrCodeNotFound      = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	ErrCodeConflict      = "ERR_CONFLICT"
)

// Registry rule error codes
const (
	// ErrCodeInvalidDocument is returned for a CPF/CNPJ that fails its check digits
	ErrCodeInvalidDocument = "ERR_INVALID_DOCUMENT"
	// ErrCodeInvalidAreaSum is returned when arable plus vegetation exceeds the total area
	ErrCodeInvalidAreaSum = "ERR_INVALID_AREA_SUM"
)

// Input error codes
const (
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON  = "ERR_INVALID_JSON"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,

	ErrCodeInvalidDocument: http.StatusUnprocessableEntity,
	ErrCodeInvalidAreaSum:  http.StatusUnprocessableEntity,

	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// domainErrorCodes maps domain error codes to their API form
var domainErrorCodes = map[string]string{
	"NOT_FOUND":        ErrCodeNotFound,
	"ALREADY_EXISTS":   ErrCodeAlreadyExists,
	"INVALID_INPUT":    ErrCodeInvalidInput,
	"INVALID_DOCUMENT": ErrCodeInvalidDocument,
	"INVALID_AREA_SUM": ErrCodeInvalidAreaSum,
	"INTERNAL_ERROR":   ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the ERR_ form.
// Codes already in that form, or unknown ones, are returned as-is.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := domainErrorCodes[code]; ok {
		return apiCode
	}
	return code
}
