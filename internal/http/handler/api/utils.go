package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/pkg/errors"
	"github.com/tasknest/tasknest/internal/slogx"
)

func writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func writeStatusResponse(w http.ResponseWriter, statusCode int, status string) {
	writeJSONResponse(w, statusCode, StatusResponse{
		Status: status,
		Code:   statusCode,
	})
}

func writeErrorResponse(w http.ResponseWriter, statusCode int, message, code string) {
	writeJSONResponse(w, statusCode, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

func handleInternalError(h *Handler, w http.ResponseWriter, r *http.Request, err error, message string) {
	ctx := r.Context()
	h.logger.ErrorContext(ctx, message, slogx.Error(errors.WithStack(err)))
	writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", "internal_error")
}

func handleValidationError(w http.ResponseWriter, message string) {
	writeErrorResponse(w, http.StatusBadRequest, message, "validation_error")
}

func getTaskIDFromPath(r *http.Request) (uint, error) {
	raw := r.PathValue("id")

	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, errors.Errorf("invalid task ID %q", raw)
	}

	return uint(id), nil
}
