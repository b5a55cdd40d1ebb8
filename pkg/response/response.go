// Package response renders the JSON wire contract shared by every endpoint:
// successes carry the resource (or a {"message": ...} body), errors carry
// {"error": <string>} with 400 for validation and business failures, 404 for
// missing resources, and 500 for everything unexpected.
package response

import (
	"encoding/json"
	"net/http"
)

func write(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// JSON sends an arbitrary body with the given status code.
func JSON(w http.ResponseWriter, status int, body interface{}) {
	write(w, status, body)
}

// Success sends a 200 response with the resource as the body.
func Success(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusOK, data)
}

// Message sends a 200 response with a {"message": ...} body.
func Message(w http.ResponseWriter, msg string) {
	write(w, http.StatusOK, map[string]string{"message": msg})
}

// Created sends a 201 response with a {"message": ...} body.
func Created(w http.ResponseWriter, msg string) {
	write(w, http.StatusCreated, map[string]string{"message": msg})
}

// Error sends an {"error": ...} body with the given status.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, map[string]string{"error": message})
}

// ValidationError sends a 400 reporting the first violated field verbatim.
func ValidationError(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message)
}

// ValidationErrors sends a 400 with the full field → message aggregate,
// used by the signup and profile-update schemas.
func ValidationErrors(w http.ResponseWriter, first string, errs map[string]string) {
	write(w, http.StatusBadRequest, map[string]interface{}{
		"error":  first,
		"errors": errs,
	})
}

// Unauthorized sends a 401.
func Unauthorized(w http.ResponseWriter, message ...string) {
	msg := "Unauthorized"
	if len(message) > 0 {
		msg = message[0]
	}
	Error(w, http.StatusUnauthorized, msg)
}

// Forbidden sends a 403.
func Forbidden(w http.ResponseWriter, message ...string) {
	msg := "Forbidden"
	if len(message) > 0 {
		msg = message[0]
	}
	Error(w, http.StatusForbidden, msg)
}

// NotFound sends a 404 with the given resource message.
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message)
}

// ServerError sends a 500. The underlying error message is not exposed to
// the client; it belongs in the request log.
func ServerError(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "Server Error")
}
