package middleware

import (
	"encoding/json"
	"net/http"
)

// rejectJSON writes the same {success, error} body the handlers use.
func rejectJSON(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   message,
	})
}
