package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/paddyguard/paddyguard-backend/internal/middleware"
	"github.com/paddyguard/paddyguard-backend/internal/models"
	"github.com/paddyguard/paddyguard-backend/internal/services"
)

type RegisterRequest struct {
	Email           string `json:"email"`
	Mobile          string `json:"mobile"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by login and me.
type AuthResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message,omitempty"`
	User    *models.Identity `json:"user,omitempty"`
	Token   string           `json:"token,omitempty"`
}

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register creates a farmer account.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Message: "Invalid request body"})
		return
	}

	if err := h.auth.Register(r.Context(), req.Email, req.Mobile, req.Password, req.ConfirmPassword); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Registration successful! Please log in.",
	})
}

// Login verifies credentials and returns the sanitized identity with a
// session token. Unknown email and wrong password produce the same
// response.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Message: "Invalid request body"})
		return
	}

	identity, token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Message: "Login successful",
		User:    &identity,
		Token:   token,
	})
}

// Logout clears the session. Always 200, even without a valid token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context(), middleware.BearerToken(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Logged out"})
}

// Me returns the authenticated identity; this is how a client restores
// its session after a reload.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, Response{Success: false, Message: "Authentication required"})
		return
	}
	writeJSON(w, http.StatusOK, AuthResponse{Success: true, User: &identity})
}
