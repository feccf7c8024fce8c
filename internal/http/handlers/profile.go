package handlers

import (
	"errors"
	"net/http"

	"server/internal/domain"
	"server/internal/middleware"
)

type userProfileDTO struct {
	ID       string  `json:"id"`
	Name     *string `json:"name"`
	Username *string `json:"username"`
	Bio      *string `json:"bio"`
	Email    *string `json:"email"`
	Image    *string `json:"image"`
}

// Me returns the authenticated user's own profile projection for the
// dashboard. The auth middleware keeps anonymous callers out.
func (a *App) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}

	user, err := a.Users.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "user not found")
			return
		}
		a.Logger.Error().Err(err).Str("user_id", userID).Msg("profile lookup failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load profile")
		return
	}

	a.json(w, http.StatusOK, userProfileDTO{
		ID:       user.ID,
		Name:     user.Name,
		Username: user.Username,
		Bio:      user.Bio,
		Email:    user.Email,
		Image:    user.Image,
	})
}
