package common

import (
	"encoding/json"
	"log"
	"net/http"
)

// Result is the envelope of every intake response. OK lets callers branch
// without inspecting the status code.
type Result struct {
	OK          bool   `json:"ok"`
	SavedTo     string `json:"savedTo,omitempty"`
	StoragePath string `json:"storagePath,omitempty"`
	Error       string `json:"error,omitempty"`
}

// WriteJSON serializes payload to JSON with status and logs on failure.
func WriteJSON(logger *log.Logger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Printf("JSON エンコードに失敗: %v", err)
	}
}

// WriteError writes an ok:false envelope.
func WriteError(logger *log.Logger, w http.ResponseWriter, status int, message string) {
	WriteJSON(logger, w, status, Result{OK: false, Error: message})
}
