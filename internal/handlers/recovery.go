package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/paddyguard/paddyguard-backend/internal/services"
)

type RecoveryRequestBody struct {
	Mobile string `json:"mobile"`
}

type RecoveryVerifyBody struct {
	Mobile string `json:"mobile"`
	Code   string `json:"code"`
}

type RecoveryResetBody struct {
	Mobile          string `json:"mobile"`
	ResetToken      string `json:"reset_token"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// RecoveryHandler drives the password-reset flow:
// request -> verify -> reset.
type RecoveryHandler struct {
	auth *services.AuthService
}

func NewRecoveryHandler(auth *services.AuthService) *RecoveryHandler {
	return &RecoveryHandler{auth: auth}
}

// Request issues a recovery code for a known mobile number. The code is
// dispatched out of band; the response only acknowledges it was sent.
func (h *RecoveryHandler) Request(w http.ResponseWriter, r *http.Request) {
	var req RecoveryRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Mobile == "" {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Message: "Mobile number is required"})
		return
	}

	if err := h.auth.RequestRecovery(r.Context(), req.Mobile); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "A verification code has been sent to your mobile number.",
	})
}

// Verify checks the submitted code and returns a reset token for the
// final step. A wrong code leaves the challenge active for a retry.
func (h *RecoveryHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req RecoveryVerifyBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Mobile == "" {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Message: "Mobile number and code are required"})
		return
	}

	resetToken, err := h.auth.VerifyRecoveryCode(r.Context(), req.Mobile, req.Code)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Code verified. You may now reset your password.",
		Data:    map[string]string{"reset_token": resetToken},
	})
}

// Reset sets the new password. Requires the reset token from Verify.
func (h *RecoveryHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var req RecoveryResetBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Mobile == "" {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Message: "Invalid request body"})
		return
	}

	if err := h.auth.ResetPassword(r.Context(), req.Mobile, req.ResetToken, req.NewPassword, req.ConfirmPassword); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Password reset successfully. Please log in.",
	})
}
