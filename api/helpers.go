package api

import (
	"encoding/json"
	"net/http"

	"log/slog"

	"github.com/webert/crm/internal/validation"
)

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", slog.Any("err", err))
	}
}

// writeMsg writes a single-message error body: {"msg": "..."}.
func writeMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, map[string]string{"msg": msg}, status)
}

// writeFieldErrors writes collected validation failures:
// {"errors":[{"msg","param"},...]}.
func writeFieldErrors(w http.ResponseWriter, status int, errs []validation.FieldError) {
	writeJSON(w, map[string]any{"errors": errs}, status)
}

// writeServerError hides storage and unexpected failures behind a generic 500
// with the detail kept to the log line.
func writeServerError(w http.ResponseWriter, what string, err error) {
	logger.Error(what, slog.Any("err", err))
	writeMsg(w, http.StatusInternalServerError, "server error")
}

// listResponse is the envelope of every filtered list endpoint.
type listResponse struct {
	Data  any   `json:"data"`
	Count int64 `json:"count"`
}
