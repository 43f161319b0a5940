package controllers

import (
	"errors"
	"net/http"

	"lostfound/services"
	"lostfound/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService *services.AuthService
}

func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AdminLoginRequest struct {
	AccessCode string `json:"accessCode" binding:"required"`
}

// Register creates an account; a successful registration also logs the
// user in.
func (ac *AuthController) Register(c *gin.Context) {
	var req services.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request format", err.Error())
		return
	}

	user, token, offline, err := ac.authService.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			utils.ConflictResponse(c, "An account with this email already exists", nil)
			return
		}
		utils.BadRequestResponse(c, "Registration failed", err.Error())
		return
	}

	payload := gin.H{
		"user":  user.Session(),
		"token": token,
	}
	if offline {
		utils.OfflineResponse(c, "Account created", payload)
		return
	}
	utils.CreatedResponse(c, "Account created", payload)
}

func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request format", err.Error())
		return
	}

	user, token, err := ac.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.UnauthorizedResponse(c, "Invalid email or password")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Login failed", err.Error())
		return
	}

	utils.SuccessResponse(c, "Login successful", gin.H{
		"user":  user.Session(),
		"token": token,
	})
}

// AdminLogin exchanges the admin access code for an admin session.
func (ac *AuthController) AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request format", err.Error())
		return
	}

	token, err := ac.authService.AdminLogin(req.AccessCode)
	if err != nil {
		if errors.Is(err, services.ErrInvalidAdminCode) {
			utils.UnauthorizedResponse(c, "Invalid admin access code")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Admin login failed", err.Error())
		return
	}

	utils.SuccessResponse(c, "Admin login successful", gin.H{
		"token": token,
	})
}

// Me returns the authenticated user's profile.
func (ac *AuthController) Me(c *gin.Context) {
	userID := c.GetString("userId")
	if userID == "" {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	user, err := ac.authService.GetUser(userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "User profile not found")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to load profile", err.Error())
		return
	}

	utils.SuccessResponse(c, "Profile retrieved successfully", gin.H{
		"id":        user.ID,
		"fullName":  user.FullName,
		"email":     user.Email,
		"phone":     user.Phone,
		"createdAt": user.CreatedAt,
	})
}
