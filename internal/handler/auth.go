package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ekaraca/vspecs/internal/apperror"
	"github.com/ekaraca/vspecs/internal/model"
	"github.com/ekaraca/vspecs/internal/service"
)

// AuthHandler exposes registration and login.
type AuthHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(auth *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleRegister creates a new account.
//
// HTTP: POST /api/auth/register
// Body: {"username": ..., "email": ..., "password": ...}
// 201 on success; 400 for a missing field or duplicate username/email.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	if _, err := h.auth.Register(r.Context(), req.Username, req.Email, req.Password); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"message": "registration successful, you can now log in",
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message  string      `json:"message"`
	Token    string      `json:"token"`
	Username string      `json:"username"`
	MySetup  model.Setup `json:"mySetup"`
}

// HandleLogin authenticates and returns a fresh token.
//
// HTTP: POST /api/auth/login
// Body: {"email": ..., "password": ...}
// Unknown email and wrong password are the same 400.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	result, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Message:  "login successful",
		Token:    result.Token,
		Username: result.Username,
		MySetup:  result.MySetup,
	})
}
