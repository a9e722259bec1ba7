package httpx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/target/mmk-auth-api/internal/domain/model"
	"github.com/target/mmk-auth-api/internal/service"
)

// AuthServiceInterface defines the interface for auth service operations.
type AuthServiceInterface interface {
	SignUp(ctx context.Context, creds model.Credentials) (*service.AuthResult, error)
	SignIn(ctx context.Context, creds model.Credentials) (*service.AuthResult, error)
}

// AuthHandlers provides HTTP handlers for authentication operations.
type AuthHandlers struct {
	Svc     AuthServiceInterface
	Cookies CookieConfig
	Logger  *slog.Logger
}

// SignUp handles POST /auth/signup.
func (h *AuthHandlers) SignUp(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials
	if !DecodeJSON(w, r, &creds) {
		return
	}

	res, err := h.Svc.SignUp(r.Context(), creds)
	if err != nil {
		WriteError(w, ErrorParams{R: r, Err: err, Logger: h.Logger})
		return
	}

	h.Cookies.setSessionCookie(w, res.Token)
	WriteJSON(w, http.StatusCreated, MessageResponse{Message: "User created successfully"})
}

// SignIn handles POST /auth/signin.
func (h *AuthHandlers) SignIn(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials
	if !DecodeJSON(w, r, &creds) {
		return
	}

	res, err := h.Svc.SignIn(r.Context(), creds)
	if err != nil {
		WriteError(w, ErrorParams{R: r, Err: err, Logger: h.Logger})
		return
	}

	h.Cookies.setSessionCookie(w, res.Token)
	WriteJSON(w, http.StatusOK, MessageResponse{Message: "Signed in successfully"})
}

// SignOut handles POST /auth/signout. Tokens are not revoked server-side.
func (h *AuthHandlers) SignOut(w http.ResponseWriter, _ *http.Request) {
	h.Cookies.clearSessionCookie(w)
	WriteJSON(w, http.StatusOK, MessageResponse{Message: "Signed out successfully"})
}
