package commons

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"lessonstore/internal/dto"
	apperrors "lessonstore/internal/errors"
)

func WriteJSON(w http.ResponseWriter, status int, data interface{}, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

// WriteError maps err onto the uniform error payload. Validation and
// not-found errors carry their own message; anything else is logged and
// answered with internalMessage so driver detail never reaches the client.
func WriteError(w http.ResponseWriter, traceID string, err error, internalMessage string, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		logger.Info("request rejected", zap.String("reason", ve.Message), zap.Any("details", ve.Details))
		WriteJSON(w, http.StatusBadRequest, dto.ErrorResponse{
			Success: false,
			Code:    dto.CodeValidation,
			Message: ve.Message,
			TraceID: traceID,
			Details: ve.Details,
		}, logger)
		return
	}

	if nfe, ok := apperrors.IsNotFoundError(err); ok {
		logger.Info("not found", zap.String("reason", nfe.Message))
		WriteJSON(w, http.StatusNotFound, dto.ErrorResponse{
			Success: false,
			Code:    dto.CodeNotFound,
			Message: nfe.Message,
			TraceID: traceID,
		}, logger)
		return
	}

	logger.Error(internalMessage, zap.Error(err))
	WriteJSON(w, http.StatusInternalServerError, dto.ErrorResponse{
		Success: false,
		Code:    dto.CodeInternal,
		Message: internalMessage,
		TraceID: traceID,
	}, logger)
}

// WriteInvalidBody answers a request whose body is not the JSON it should be.
func WriteInvalidBody(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	logger.Warn("invalid JSON body", zap.Error(err))
	WriteError(w, traceID, apperrors.NewValidationError("invalid JSON body", apperrors.ValidationDetail{
		Field:   "body",
		Message: "request body must be valid JSON",
	}), "", logger)
}
