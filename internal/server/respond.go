package server

import (
	"encoding/json"
	"net/http"
)

// Error codes returned in the API envelope.
const (
	errCodeBadRequest = "BAD_REQUEST"
	errCodeNotFound   = "NOT_FOUND"
	errCodeInternal   = "INTERNAL"
)

// envelope is the standard response shape: status "ok" with data, or status
// "error" with error details.
type envelope struct {
	Status string    `json:"status"`
	Data   any       `json:"data,omitempty"`
	Error  *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) respondData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Status: "ok", Data: data})
}

func (s *Server) respondError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, envelope{Status: "error", Error: &apiError{Code: code, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
