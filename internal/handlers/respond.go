package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/paddyguard/paddyguard-backend/internal/services"
	"github.com/paddyguard/paddyguard-backend/internal/store"
)

// Response is the common JSON envelope.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps the expected failure taxonomy to 4xx responses with
// user-facing messages; everything else is a 500 with a generic body.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "Something went wrong. Please try again."

	switch {
	case errors.Is(err, store.ErrDuplicateEmail),
		errors.Is(err, store.ErrDuplicateMobile):
		status = http.StatusConflict
		message = capitalize(err.Error()) + "."
	case errors.Is(err, services.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		message = "Invalid email or password"
	case errors.Is(err, store.ErrUserNotFound):
		status = http.StatusNotFound
		message = "No user found with this mobile number."
	case errors.Is(err, services.ErrInvalidRecoveryCode):
		status = http.StatusUnauthorized
		message = "Invalid OTP."
	case errors.Is(err, services.ErrTooManyAttempts):
		status = http.StatusTooManyRequests
		message = "Too many incorrect attempts. Please request a new code."
	case errors.Is(err, services.ErrResetNotAuthorized):
		status = http.StatusForbidden
		message = "Password reset not authorized. Please verify the code first."
	case errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrPasswordMismatch),
		errors.Is(err, services.ErrMissingFields):
		status = http.StatusBadRequest
		message = capitalize(err.Error()) + "."
	default:
		log.Printf("ERROR: %v", err)
	}

	writeJSON(w, status, Response{Success: false, Message: message})
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-('a'-'A')) + s[1:]
}
