package dto

import apperrors "lessonstore/internal/errors"

// ErrorResponse is the single error shape every endpoint writes.
type ErrorResponse struct {
	Success bool                         `json:"success"`
	Code    string                       `json:"code"`
	Message string                       `json:"message"`
	TraceID string                       `json:"traceId,omitempty"`
	Details []apperrors.ValidationDetail `json:"details,omitempty"`
}

const (
	CodeValidation = "VALIDATION_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeInternal   = "INTERNAL_ERROR"
)
