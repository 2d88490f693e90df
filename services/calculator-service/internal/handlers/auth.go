package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/md-rashed-zaman/costcalc/libs/auth"
	"github.com/md-rashed-zaman/costcalc/libs/httpx"
	"github.com/md-rashed-zaman/costcalc/services/calculator-service/internal/storage"
)

type AdminFinder interface {
	GetByUsername(ctx context.Context, username string) (storage.Admin, error)
}

type TokenSigner interface {
	Sign(adminID int64, username string) (string, error)
}

type AuthHandler struct {
	admins AdminFinder
	signer TokenSigner
	logger *slog.Logger
}

func NewAuthHandler(admins AdminFinder, signer TokenSigner, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{admins: admins, signer: signer, logger: logger}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	admin, err := h.admins.GetByUsername(r.Context(), req.Username)
	if storage.IsNotFound(err) {
		httpx.WriteError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		serverError(w, r, h.logger, "server error", err)
		return
	}
	if err := auth.VerifyPassword(admin.PasswordHash, req.Password); err != nil {
		httpx.WriteError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.signer.Sign(admin.ID, admin.Username)
	if err != nil {
		serverError(w, r, h.logger, "server error", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, loginResponse{Token: token, Message: "login successful"})
}

// Logout is stateless; clients discard the token.
func (h *AuthHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, messageResponse{Message: "logout successful"})
}
