package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/novikovpa/user-accounts/internal/logger"
	"github.com/novikovpa/user-accounts/internal/services"
)

// Updater defines the interface that the profile update service must implement.
type Updater interface {
	UpdateUser(ctx context.Context, usernameKey, username, email, password string) error
}

// UpdateRequest represents the JSON body for a profile update.
// Empty fields are left untouched; a non-empty password is re-hashed.
// swagger:model UpdateRequest
type UpdateRequest struct {
	// New username
	// example: john_doe2
	Username string `json:"username"`

	// New email
	// example: john2@example.com
	Email string `json:"email"`

	// New password
	// example: secret456
	Password string `json:"password"`
}

// NewUpdateHandler returns an HTTP handler for profile updates.
// @Summary Update a user profile
// @Description Updates the account currently named by the path parameter. Only fields present in the body are applied.
// @Tags auth
// @Accept json
// @Produce json
// @Param username path string true "Current username"
// @Param updateRequest body handlers.UpdateRequest true "Profile update request"
// @Success 200 {object} handlers.MessageResponse "User updated"
// @Failure 400 {object} handlers.MessageResponse "Invalid request"
// @Failure 404 {object} handlers.MessageResponse "User not found"
// @Failure 500 {object} handlers.ErrorResponse "Internal error"
// @Router /{username} [put]
func NewUpdateHandler(svc Updater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdateRequest

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(MessageResponse{
				Message: "Invalid request body",
			})
			return
		}

		usernameKey := chi.URLParam(r, "username")

		if err := svc.UpdateUser(r.Context(), usernameKey, req.Username, req.Email, req.Password); err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(MessageResponse{
					Message: "User not found",
				})
			default:
				logger.Log.Errorw("profile update failed", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(ErrorResponse{
					Error: err.Error(),
				})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(MessageResponse{
			Message: "User updated successfully",
		})
	}
}
