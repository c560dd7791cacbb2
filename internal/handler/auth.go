package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/huzi29/crmsystemdesign/internal/observability/metrics"
	"github.com/huzi29/crmsystemdesign/internal/security/auth"
	"github.com/huzi29/crmsystemdesign/internal/service"
)

// AuthHandler handles registration, login, refresh, logout and the
// administrative user/token reads
type AuthHandler struct {
	authService  *service.AuthService
	tokenManager *auth.TokenManager
	logger       *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, tokenManager *auth.TokenManager, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &AuthHandler{
		authService:  authService,
		tokenManager: tokenManager,
		logger:       logger,
	}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in service.RegisterInput
	if !decodeBody(w, r, &in) {
		return
	}

	user, err := h.authService.Register(r.Context(), in)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respond(w, http.StatusCreated, "User created successfully", user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse carries both tokens in the body in addition to the
// cookies, so the API is usable via either channel.
type loginResponse struct {
	Success      bool        `json:"success"`
	Message      string      `json:"message"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	Data         interface{} `json:"data"`
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		metrics.ObserveAuthAttempt("failure")
		respondError(w, h.logger, err)
		return
	}
	metrics.ObserveAuthAttempt("success")

	http.SetCookie(w, &http.Cookie{
		Name:     "accessToken",
		Value:    result.AccessToken,
		MaxAge:   int(h.tokenManager.AccessTTL().Seconds()),
		HttpOnly: true,
		Secure:   true,
		Path:     "/",
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "refreshToken",
		Value:    result.RefreshToken,
		MaxAge:   int(h.tokenManager.RefreshTTL().Seconds()),
		HttpOnly: true,
		Secure:   true,
		Path:     "/",
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	writeJSON(w, loginResponse{
		Success:      true,
		Message:      "User logged in successfully",
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		Data:         result.User,
	})
}

type refreshResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	AccessToken string `json:"accessToken"`
}

// Refresh handles GET /api/v1/auth/refresh/{token}
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	refreshToken := chi.URLParam(r, "token")

	accessToken, err := h.authService.Refresh(r.Context(), refreshToken)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	writeJSON(w, refreshResponse{
		Success:     true,
		Message:     "Access token generated successfully",
		AccessToken: accessToken,
	})
}

type logoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req logoutRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.authService.Logout(r.Context(), req.RefreshToken); err != nil {
		respondError(w, h.logger, err)
		return
	}

	respond(w, http.StatusOK, "User logged out successfully", nil)
}

// ListUsers handles GET /api/v1/auth/users
func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.authService.ListUsers(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respond(w, http.StatusOK, "Users fetched successfully", users)
}

// ListTokens handles GET /api/v1/auth/token
func (h *AuthHandler) ListTokens(w http.ResponseWriter, r *http.Request) {
	tokens, err := h.authService.ListTokens(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respond(w, http.StatusOK, "Tokens fetched successfully", tokens)
}

// DeleteUser handles GET /api/v1/auth/delete/{id}. The route keeps the
// original GET-based shape for dashboard compatibility.
func (h *AuthHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.authService.DeleteUser(r.Context(), id); err != nil {
		respondError(w, h.logger, err)
		return
	}

	respond(w, http.StatusOK, "User deleted successfully", nil)
}
