package controllers

import (
	"encoding/json"
	"net/http"

	"linkup_server/middleware"
	"linkup_server/services"
	"linkup_server/utils"

	"github.com/rs/zerolog/log"
)

// AuthController handles registration, login and the token-holder's profile.
type AuthController struct {
	Users  *services.UserService
	Tokens *utils.TokenManager
}

// NewAuthController creates a new AuthController instance
func NewAuthController(users *services.UserService, tokens *utils.TokenManager) *AuthController {
	return &AuthController{Users: users, Tokens: tokens}
}

// HandleRegister registers a new user and returns a fresh access token.
func (ac *AuthController) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Name     string `json:"name" validate:"required,max=100"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8,max=72"`
		Username string `json:"username" validate:"omitempty,max=50"`
		Nickname string `json:"nickname" validate:"omitempty,max=100"`
		Photo    string `json:"photo" validate:"omitempty,url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.SendError(w, "Invalid request payload", nil, http.StatusBadRequest)
		return
	}
	if fieldErrors := utils.ValidateStruct(request); fieldErrors != nil {
		utils.SendError(w, "Validation Error", fieldErrors, http.StatusBadRequest)
		return
	}

	passwordHash, err := utils.HashPassword(request.Password)
	if err != nil {
		log.Error().Err(err).Msg("Password hashing failed")
		utils.ServerError(w, "Registration failed")
		return
	}

	user, err := ac.Users.CreateUser(r.Context(), request.Name, request.Email, passwordHash, request.Username, request.Nickname, request.Photo)
	if err == services.ErrEmailInUse {
		utils.SendError(w, "Registration failed",
			[]utils.FieldError{{Field: "email", Message: "Email already in use"}}, http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("Registration error")
		utils.ServerError(w, "Registration failed")
		return
	}

	token, err := ac.Tokens.Generate(user.ID, user.Email, "")
	if err != nil {
		log.Error().Err(err).Msg("Token generation failed")
		utils.ServerError(w, "Registration failed")
		return
	}

	utils.SendSuccess(w, "User registered successfully", map[string]interface{}{
		"user":  user,
		"token": token,
	}, http.StatusCreated)
}

// HandleLogin verifies credentials and returns an access token.
func (ac *AuthController) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.SendError(w, "Invalid request payload", nil, http.StatusBadRequest)
		return
	}
	if fieldErrors := utils.ValidateStruct(request); fieldErrors != nil {
		utils.SendError(w, "Validation Error", fieldErrors, http.StatusBadRequest)
		return
	}

	user, err := ac.Users.GetUserByEmail(r.Context(), request.Email)
	if err != nil {
		log.Error().Err(err).Msg("Login error")
		utils.ServerError(w, "Login failed")
		return
	}
	if user == nil || !utils.VerifyPassword(request.Password, user.PasswordHash) {
		utils.SendError(w, "Login failed",
			[]utils.FieldError{{Field: "credentials", Message: "Invalid email or password"}}, http.StatusUnauthorized)
		return
	}

	token, err := ac.Tokens.Generate(user.ID, user.Email, "")
	if err != nil {
		log.Error().Err(err).Msg("Token generation failed")
		utils.ServerError(w, "Login failed")
		return
	}

	utils.SendSuccess(w, "Login successful", map[string]interface{}{
		"user":  user,
		"token": token,
	}, http.StatusOK)
}

// HandleGetProfile returns the profile of the authenticated user.
func (ac *AuthController) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		utils.SendError(w, "Authentication required",
			[]utils.FieldError{{Field: "auth", Message: "User not authenticated"}}, http.StatusUnauthorized)
		return
	}
	utils.SendSuccess(w, "Profile retrieved successfully", user, http.StatusOK)
}
