package response

import (
	"encoding/json"
	"net/http"
	"time"
)

// ErrorBody is the error shape every service returns. Stack traces and
// internal detail never leave the boundary; Details carries field-level
// validation messages only.
type ErrorBody struct {
	Timestamp time.Time         `json:"timestamp"`
	Status    int               `json:"status"`
	Error     string            `json:"error"`
	Message   string            `json:"message"`
	Details   map[string]string `json:"details,omitempty"`
}

func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func Error(w http.ResponseWriter, status int, msg string) {
	writeError(w, status, msg, nil)
}

// FieldErrors reports a 400 with per-field validation messages.
func FieldErrors(w http.ResponseWriter, details map[string]string) {
	writeError(w, http.StatusBadRequest, "Validation Failed", details)
}

func writeError(w http.ResponseWriter, status int, msg string, details map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorBody{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   msg,
		Details:   details,
	})
}
