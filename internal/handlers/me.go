package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/novikovpa/user-accounts/internal/logger"
	"github.com/novikovpa/user-accounts/internal/middlewares"
	"github.com/novikovpa/user-accounts/internal/models"
	"github.com/novikovpa/user-accounts/internal/services"
)

// UserGetter defines the interface that the current-user service must implement.
type UserGetter interface {
	GetUser(ctx context.Context, id string) (*models.UserDB, error)
}

// MeResponse represents the current user profile
// swagger:model MeResponse
type MeResponse struct {
	// Document id
	// example: 665f1e9cf2a4a1b2c3d4e5f6
	ID string `json:"id"`

	// Username
	// example: john_doe
	Username string `json:"username"`

	// Email
	// example: john@example.com
	Email string `json:"email"`
}

// NewMeHandler returns an HTTP handler for the current user profile.
// @Summary Current user
// @Description Returns the profile of the account identified by the bearer token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.MeResponse "Current user profile"
// @Failure 401 {object} handlers.MessageResponse "Missing or invalid token"
// @Failure 404 {object} handlers.MessageResponse "User not found"
// @Failure 500 {object} handlers.ErrorResponse "Internal error"
// @Router /me [get]
func NewMeHandler(svc UserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		userID, ok := middlewares.UserIDFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(MessageResponse{
				Message: "Unauthorized",
			})
			return
		}

		user, err := svc.GetUser(r.Context(), userID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(MessageResponse{
					Message: "User not found",
				})
			default:
				logger.Log.Errorw("current user lookup failed", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(ErrorResponse{
					Error: err.Error(),
				})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(MeResponse{
			ID:       user.ID.Hex(),
			Username: user.Username,
			Email:    user.Email,
		})
	}
}
