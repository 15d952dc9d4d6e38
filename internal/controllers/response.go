package controllers

import (
	"activitybot/internal/services"
	"errors"
	json "github.com/goccy/go-json"
	"net/http"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	gson, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

// writeError maps input errors to 400 and everything else to 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	msg := "Internal Server Error"
	if isBadInput(err) {
		status = http.StatusBadRequest
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

func isBadInput(err error) bool {
	return errors.Is(err, services.ErrInvalidUser) ||
		errors.Is(err, services.ErrInvalidDate) ||
		errors.Is(err, services.ErrInvalidDays) ||
		errors.Is(err, services.ErrUnsupportedFormat)
}
