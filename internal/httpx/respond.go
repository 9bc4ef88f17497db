package httpx

import (
	"encoding/json"
	"net/http"

	"chandra-dukan-be/internal/logger"

	"go.uber.org/zap"
)

// Envelope is the canonical JSON body for every API response. Customer-facing
// failures carry a Hindi translation alongside the English message.
type Envelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	MessageHi string `json:"message_hi,omitempty"`
	Data      any    `json:"data,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func OK(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data})
}

func Created(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Envelope{Success: true, Data: data})
}

func Fail(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Envelope{Success: false, Message: message})
}

func FailBilingual(w http.ResponseWriter, status int, message, messageHi string) {
	WriteJSON(w, status, Envelope{Success: false, Message: message, MessageHi: messageHi})
}

// DecodeJSON parses the request body into dst, rejecting unknown fields so
// typos in client payloads surface as 400s instead of silently dropping data.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// Internal logs the underlying error and returns a generic 500 so internals
// never leak to clients in production.
func Internal(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromCtx(r.Context()).Error("internal server error",
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	Fail(w, http.StatusInternalServerError, "something went wrong")
}
