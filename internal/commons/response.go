package commons

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bakerydash/internal/dto"
	apperrors "bakerydash/internal/errors"
)

// ActorHeader carries the user recorded in audit fields.
const ActorHeader = "X-User"

const defaultActor = "system"

// Trace returns a fresh trace id and a logger tagged with it.
func Trace(logger *zap.Logger) (string, *zap.Logger) {
	traceID := uuid.New().String()
	return traceID, logger.With(zap.String("traceId", traceID))
}

func Actor(r *http.Request) string {
	if actor := r.Header.Get(ActorHeader); actor != "" {
		return actor
	}
	return defaultActor
}

func WriteJSON(w http.ResponseWriter, logger *zap.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func WriteValidationError(w http.ResponseWriter, logger *zap.Logger, message string, details ...apperrors.ValidationDetail) {
	WriteJSON(w, logger, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

// WriteError maps a service error to its HTTP status and error body.
func WriteError(w http.ResponseWriter, logger *zap.Logger, traceID string, err error) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		WriteValidationError(w, logger, ve.Message, ve.Details...)
		return
	}

	if _, ok := apperrors.IsNotFoundError(err); ok {
		writeErrorResponse(w, logger, traceID, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
		return
	}

	if _, ok := apperrors.IsConflictError(err); ok {
		writeErrorResponse(w, logger, traceID, http.StatusConflict, "CONFLICT", err.Error(), nil)
		return
	}

	if _, ok := apperrors.IsForbiddenError(err); ok {
		writeErrorResponse(w, logger, traceID, http.StatusForbidden, "FORBIDDEN", err.Error(), nil)
		return
	}

	if _, ok := apperrors.IsUnauthorizedError(err); ok {
		writeErrorResponse(w, logger, traceID, http.StatusUnauthorized, "UNAUTHORIZED", err.Error(), nil)
		return
	}

	if ue, ok := apperrors.IsUpstreamError(err); ok {
		logger.Warn("upstream failure", zap.Int("upstreamStatus", ue.StatusCode), zap.Error(err))
		writeErrorResponse(w, logger, traceID, http.StatusBadGateway, "UPSTREAM_ERROR", err.Error(), map[string]int{"upstreamStatus": ue.StatusCode})
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	writeErrorResponse(w, logger, traceID, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred", nil)
}

func writeErrorResponse(w http.ResponseWriter, logger *zap.Logger, traceID string, status int, code, message string, details interface{}) {
	WriteJSON(w, logger, status, dto.ErrorResponse{
		TraceID:   traceID,
		Status:    status,
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
	})
}
