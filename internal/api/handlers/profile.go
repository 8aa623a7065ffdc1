package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/yervar/yervar-backend/internal/api/middleware"
	"github.com/yervar/yervar-backend/internal/domain"
	"github.com/yervar/yervar-backend/internal/service"
)

type ProfileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

type UpdateProfileRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Vehicle string `json:"vehicle"`
}

type UpdateProfileResponse struct {
	Message string            `json:"message"`
	User    domain.PublicUser `json:"user"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.profileService.UpdateProfile(r.Context(), userID, service.UpdateProfileInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Vehicle: req.Vehicle,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeMessage(w, http.StatusNotFound, "User not found")
		case errors.Is(err, domain.ErrInvalidPhone):
			writeMessage(w, http.StatusBadRequest, "Phone must be +994 followed by 9 digits")
		default:
			log.Printf("ERROR [handlers.Profile.Update] %v", err)
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, UpdateProfileResponse{
		Message: "Profile updated successfully",
		User:    publicUser(user),
	})
}

func (h *ProfileHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.profileService.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			writeMessage(w, http.StatusBadRequest, "Current password is incorrect")
		case errors.Is(err, domain.ErrWeakPassword):
			writeMessage(w, http.StatusBadRequest, "Password must be at least 6 characters")
		case errors.Is(err, domain.ErrNotFound):
			writeMessage(w, http.StatusNotFound, "User not found")
		default:
			log.Printf("ERROR [handlers.Profile.ChangePassword] %v", err)
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeMessage(w, http.StatusOK, "Password changed successfully")
}
