// Package handlers holds the HTTP surface: the JSON admin/storefront API and
// the server-rendered admin panel pages.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Envelope is the uniform response shape of the JSON API.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func respondData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, Envelope{Success: true, Data: data})
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Envelope{Success: true, Message: message})
}

func respondError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Envelope{Success: false, Message: message})
}

// internalError hides detail from the client; the cause goes to the log.
func internalError(w http.ResponseWriter, context string, err error) {
	slog.Error(context, "error", err)
	respondError(w, http.StatusInternalServerError, "Error interno del servidor")
}
