package dto

import "github.com/agro/backend/internal/domain/shared"

// Response is the envelope of every JSON body the API returns
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
	Meta    *Meta      `json:"meta,omitempty"`
}

// ErrorInfo describes why a request failed
type ErrorInfo struct {
	Code      string             `json:"code"`
	Message   string             `json:"message"`
	RequestID string             `json:"request_id,omitempty"`
	Details   []ValidationDetail `json:"details,omitempty"`
}

// ValidationDetail describes one rejected request field
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Meta is the pagination block of a list response
type Meta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewMeta builds pagination metadata for a page of a total-row listing
func NewMeta(total int64, page, pageSize int) *Meta {
	return &Meta{
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: shared.TotalPages(total, pageSize),
	}
}

func NewSuccessResponse(data any) Response {
	return Response{Success: true, Data: data}
}

func NewSuccessResponseWithMeta(data any, total int64, page, pageSize int) Response {
	return Response{Success: true, Data: data, Meta: NewMeta(total, page, pageSize)}
}

func NewErrorResponse(code, message string) Response {
	return NewErrorResponseWithRequestID(code, message, "")
}

// NewErrorResponseWithRequestID echoes requestID so clients can quote it in support requests
func NewErrorResponseWithRequestID(code, message, requestID string) Response {
	return Response{
		Error: &ErrorInfo{Code: code, Message: message, RequestID: requestID},
	}
}

// NewValidationErrorResponse lists every rejected field under ERR_VALIDATION
func NewValidationErrorResponse(message, requestID string, details []ValidationDetail) Response {
	resp := NewErrorResponseWithRequestID(ErrCodeValidation, message, requestID)
	resp.Error.Details = details
	return resp
}

// ListRequest holds the paging, ordering and search query parameters
// shared by list endpoints
type ListRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Search   string `form:"search" binding:"max=100"`
}

// DefaultListRequest returns the first page of 20, newest first
func DefaultListRequest() ListRequest {
	return ListRequest{
		Page:     1,
		PageSize: shared.DefaultPageSize,
		OrderBy:  shared.DefaultOrderBy,
		OrderDir: shared.DefaultOrderDir,
	}
}
