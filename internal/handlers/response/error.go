package response

import (
	"encoding/json"
	"net/http"

	"gitlab.com/codejudge.net/internal/global/logger"
)

// ErrorMessage is the body of every failed API call
type ErrorMessage struct {
	Message    string `json:"error"`
	StatusCode int    `json:"-"`
}

func WriteError(w http.ResponseWriter, err ErrorMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.StatusCode)
	if encErr := json.NewEncoder(w).Encode(err); encErr != nil {
		logger.Warn("Failed to write error response", "status", err.StatusCode, "error", encErr)
	}
}
