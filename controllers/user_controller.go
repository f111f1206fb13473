package controllers

import (
	"encoding/json"
	"net/http"

	"linkup_server/middleware"
	"linkup_server/services"
	"linkup_server/utils"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// UserController handles user profile endpoints.
type UserController struct {
	Users *services.UserService
}

// NewUserController creates a new UserController instance
func NewUserController(users *services.UserService) *UserController {
	return &UserController{Users: users}
}

// HandleGetMyProfile returns the authenticated user's own profile.
func (uc *UserController) HandleGetMyProfile(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		utils.SendError(w, "Authentication required",
			[]utils.FieldError{{Field: "auth", Message: "User not authenticated"}}, http.StatusUnauthorized)
		return
	}
	utils.SendSuccess(w, "Profile retrieved successfully", user, http.StatusOK)
}

// HandleUpdateMyProfile updates the authenticated user's editable fields.
func (uc *UserController) HandleUpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		utils.SendError(w, "Authentication required",
			[]utils.FieldError{{Field: "auth", Message: "User not authenticated"}}, http.StatusUnauthorized)
		return
	}

	var request struct {
		Name     string `json:"name" validate:"omitempty,max=100"`
		Username string `json:"username" validate:"omitempty,max=50"`
		Nickname string `json:"nickname" validate:"omitempty,max=100"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.SendError(w, "Invalid request payload", nil, http.StatusBadRequest)
		return
	}
	if fieldErrors := utils.ValidateStruct(request); fieldErrors != nil {
		utils.SendError(w, "Validation Error", fieldErrors, http.StatusBadRequest)
		return
	}

	updated, err := uc.Users.UpdateProfile(r.Context(), user, request.Name, request.Username, request.Nickname)
	if err != nil {
		log.Error().Err(err).Str("userId", user.ID).Msg("Profile update failed")
		utils.ServerError(w, "Profile update failed")
		return
	}

	utils.SendSuccess(w, "Profile updated successfully", updated, http.StatusOK)
}

// HandleGetUserByID returns another user's public profile.
func (uc *UserController) HandleGetUserByID(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	user, err := uc.Users.GetUserByID(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("userId", userID).Msg("Failed to fetch user")
		utils.ServerError(w, "Failed to retrieve user")
		return
	}
	if user == nil || !user.IsActive {
		utils.SendError(w, "User not found",
			[]utils.FieldError{{Field: "id", Message: "User with specified ID does not exist"}}, http.StatusNotFound)
		return
	}

	utils.SendSuccess(w, "User retrieved successfully", user.PublicProfile(), http.StatusOK)
}
