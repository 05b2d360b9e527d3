package apiresp

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

const requestIDHeader = "X-Request-Id"

type ErrorPayload struct {
	Error string `json:"error"`
}

// WriteJSON encodes data as the whole response body. The API returns bare
// objects rather than an envelope so the browser client can read them directly.
func WriteJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	if id := middleware.GetReqID(r.Context()); id != "" {
		w.Header().Set(requestIDHeader, id)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	if msg == "" {
		msg = http.StatusText(status)
	}
	WriteJSON(w, r, status, ErrorPayload{Error: msg})
}
