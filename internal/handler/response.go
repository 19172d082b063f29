package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/spinwin/backend/internal/contextkeys"
	"github.com/spinwin/backend/internal/domain"
)

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("failed to encode JSON response: %v", err)
		}
	}
}

// Error writes an error JSON response, using AppError status codes when available.
func Error(w http.ResponseWriter, err error) {
	if appErr, ok := domain.AsAppError(err); ok {
		body := map[string]interface{}{"error": appErr.Message}
		if appErr.Remaining != nil {
			body["remaining"] = *appErr.Remaining
		}
		if appErr.Err != nil {
			log.Printf("request failed: %v", appErr)
		}
		JSON(w, appErr.Code, body)
		return
	}
	log.Printf("unhandled error: %v", err)
	JSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}

// DecodeJSON decodes a JSON request body into the given struct.
func DecodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.ErrBadRequest("invalid JSON body")
	}
	return nil
}

// AccountID pulls the authenticated account ID set by the Auth middleware.
func AccountID(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(contextkeys.AccountID).(string)
	return id, ok && id != ""
}
