package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"gitlab.com/codejudge.net/internal/global/logger"
	"gitlab.com/codejudge.net/internal/handlers/response"
	"gitlab.com/codejudge.net/internal/static/errs"
)

func ResponseWithJson(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Warn("Failed to write response", "status", statusCode, "error", err)
	}
}

func ResponseError(w http.ResponseWriter, message string, code int) {
	response.WriteError(w, response.ErrorMessage{Message: message, StatusCode: code})
}

// StatusFor maps service errors to HTTP status codes
func StatusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrUnsupportedLanguage),
		errors.Is(err, errs.ErrInvalidSignature),
		errors.Is(err, errs.ErrArgumentMismatch),
		errors.Is(err, errs.ErrNoTestCases):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrResultNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrSandboxUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
