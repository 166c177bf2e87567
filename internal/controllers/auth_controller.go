package controllers

import (
	"net/http"

	"github.com/Rafium-MS/territorio-app/internal/dtos"
	"github.com/Rafium-MS/territorio-app/internal/services"
	"github.com/Rafium-MS/territorio-app/internal/utils"
)

type AuthController struct {
	authService *services.AuthService
}

func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// POST /api/v1/auth/login
func (c *AuthController) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, token, err := c.authService.Login(r.Context(), req)
	if err != nil {
		utils.RespondServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.LoginResponse{
		User:        dtos.NewUserDTO(user),
		AccessToken: token,
	})
}

// POST /api/v1/auth/register (admin only)
func (c *AuthController) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.RegisterUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := c.authService.Register(r.Context(), req)
	if err != nil {
		utils.RespondServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, dtos.NewUserDTO(user))
}
