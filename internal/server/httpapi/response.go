package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
)

// Envelope is the JSON response structure shared by every endpoint.
// Success responses may carry data and a count; failures carry a message
// and, for validation, per-field errors.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, envelope Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(envelope); err != nil {
		s.logger.Error(context.Background(), "failed to encode response", "error", err)
	}
}

func (s *Server) writeData(w http.ResponseWriter, status int, data any) {
	s.writeJSON(w, status, Envelope{Success: true, Data: data})
}

func (s *Server) writeDataCount(w http.ResponseWriter, status int, data any, count int) {
	s.writeJSON(w, status, Envelope{Success: true, Data: data, Count: &count})
}

func (s *Server) writeMessage(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, Envelope{Success: true, Message: message})
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, Envelope{Success: false, Message: message})
}

func (s *Server) writeValidationError(w http.ResponseWriter, errors []string) {
	s.writeJSON(w, http.StatusBadRequest, Envelope{
		Success: false,
		Message: "Validation failed",
		Errors:  errors,
	})
}
