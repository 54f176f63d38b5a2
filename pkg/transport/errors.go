package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/quotevault/quotevault/pkg/api"
)

// HTTPStatusFromError maps an api.Error kind to the corresponding HTTP
// status code. The body keeps the {status: "error", error} envelope
// regardless of status.
func HTTPStatusFromError(err *api.Error) int {
	switch err.Kind {
	case api.KindValidation:
		return http.StatusBadRequest
	case api.KindAuth, api.KindTokenInvalid, api.KindTokenExpired, api.KindTokenMissing:
		return http.StatusUnauthorized
	case api.KindNotFound:
		return http.StatusNotFound
	case api.KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WriteJSON writes v as a JSON response body with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

// WriteError writes the error envelope for an operation failure, deriving
// the HTTP status from the error kind. Unknown error types are masked as a
// generic server error so internal details never reach the caller.
func WriteError(w http.ResponseWriter, err error) {
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		apiErr = api.NewUnavailableError("Internal error")
	}
	WriteJSON(w, HTTPStatusFromError(apiErr), api.StatusResponse{
		Status: api.StatusError,
		Error:  apiErr.Message,
	})
}
