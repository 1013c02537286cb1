// Package response writes the JSON envelope used by every API handler.
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sedastudio/boutique/pkg/httperr"
)

type envelope struct {
	Status  int         `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func write(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// Success sends a 200 JSON response with data.
func Success(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusOK, envelope{Status: http.StatusOK, Data: data})
}

// Created sends a 201 JSON response with data.
func Created(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusCreated, envelope{Status: http.StatusCreated, Data: data})
}

// Error sends a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, envelope{Status: status, Message: message})
}

// Err translates a service error into its JSON envelope. Typed errors keep
// their status, message and metadata; anything else becomes a 500 with a
// generic message.
func Err(w http.ResponseWriter, err error) {
	status := httperr.Status(err)

	body := envelope{Status: status, Message: "Error interno"}
	var typed *httperr.Error
	if errors.As(err, &typed) {
		body.Message = typed.Message
		body.Errors = typed.Metadata
	}
	write(w, status, body)
}

// ValidationError sends a 422 with field-level error map.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	write(w, http.StatusUnprocessableEntity, envelope{
		Status:  http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  errs,
	})
}

// Unauthorized sends a 401.
func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = "No autorizado"
	}
	Error(w, http.StatusUnauthorized, message)
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = "No encontrado"
	}
	Error(w, http.StatusNotFound, message)
}
