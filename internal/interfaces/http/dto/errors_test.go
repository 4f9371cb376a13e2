package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeRequestTooLarge, http.StatusRequestEntityTooLarge},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeInvalidDocument, http.StatusUnprocessableEntity},
		{ErrCodeInvalidAreaSum, http.StatusUnprocessableEntity},
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"NOT_FOUND", ErrCodeNotFound},
		{"ALREADY_EXISTS", ErrCodeAlreadyExists},
		{"INVALID_INPUT", ErrCodeInvalidInput},
		{"INVALID_DOCUMENT", ErrCodeInvalidDocument},
		{"INVALID_AREA_SUM", ErrCodeInvalidAreaSum},
		{ErrCodeNotFound, ErrCodeNotFound},
		{"CUSTOM_CODE", "CUSTOM_CODE"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeErrorCode(tt.input))
		})
	}
}

func TestNewSuccessResponseWithMeta_TotalPages(t *testing.T) {
	tests := []struct {
		total    int64
		pageSize int
		pages    int
	}{
		{0, 20, 0},
		{20, 20, 1},
		{21, 20, 2},
		{5, 0, 0},
	}
	for _, tt := range tests {
		resp := NewSuccessResponseWithMeta([]string{}, tt.total, 1, tt.pageSize)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, tt.pages, resp.Meta.TotalPages, "total=%d size=%d", tt.total, tt.pageSize)
	}
}

func TestNewValidationErrorResponse(t *testing.T) {
	resp := NewValidationErrorResponse("Request validation failed", "req-1", []ValidationDetail{
		{Field: "document", Message: "Must be a valid CPF or CNPJ"},
	})

	body, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, false, decoded["success"])

	errObj := decoded["error"].(map[string]any)
	assert.Equal(t, ErrCodeValidation, errObj["code"])
	assert.Equal(t, "req-1", errObj["request_id"])
	details := errObj["details"].([]any)
	require.Len(t, details, 1)
	assert.Equal(t, "document", details[0].(map[string]any)["field"])
}

func TestNewErrorResponse_OmitsEmptyRequestID(t *testing.T) {
	body, err := json.Marshal(NewErrorResponse(ErrCodeNotFound, "Producer not found"))
	require.NoError(t, err)
	assert.NotContains(t, string(body), "request_id")
	assert.NotContains(t, string(body), "details")
}
