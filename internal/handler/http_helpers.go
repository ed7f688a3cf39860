package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	pkgerrors "ushay-etl/pkg/errors"
)

// writeJSON writes data as a JSON response
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// writeAppError maps err to its status code; AppErrors expose only their message.
func writeAppError(w http.ResponseWriter, err error) {
	var appErr *pkgerrors.AppError
	if errors.As(err, &appErr) {
		writeError(w, pkgerrors.GetStatusCode(err), appErr.Message)
		return
	}
	writeError(w, http.StatusInternalServerError, "Internal server error")
}
