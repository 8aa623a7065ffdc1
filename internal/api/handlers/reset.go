package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/yervar/yervar-backend/internal/domain"
	"github.com/yervar/yervar-backend/internal/service"
)

type ResetHandler struct {
	resetService *service.ResetService
}

func NewResetHandler(resetService *service.ResetService) *ResetHandler {
	return &ResetHandler{resetService: resetService}
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// Forgot answers 200 whether or not the email is registered.
func (h *ResetHandler) Forgot(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.resetService.Request(r.Context(), req.Email); err != nil {
		log.Printf("ERROR [handlers.Reset.Forgot] %v", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeMessage(w, http.StatusOK, "If an account with this email exists, a recovery code has been issued")
}

func (h *ResetHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.resetService.Redeem(r.Context(), req.Email, req.Token, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidOrExpiredToken):
			writeMessage(w, http.StatusBadRequest, "Recovery code is invalid or has expired")
		case errors.Is(err, domain.ErrNotFound):
			writeMessage(w, http.StatusNotFound, "User not found")
		default:
			log.Printf("ERROR [handlers.Reset.Reset] %v", err)
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeMessage(w, http.StatusOK, "Password has been reset successfully")
}
