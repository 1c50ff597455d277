package middleware

import (
	"encoding/json"
	"net/http"
)

type failureEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(failureEnvelope{Success: false, Message: message})
}
