package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"health-chatbot-backend/models"
	"health-chatbot-backend/services"
)

// AuthController handles account registration and login.
type AuthController struct {
	users *services.UserService
}

func NewAuthController(users *services.UserService) *AuthController {
	return &AuthController{users: users}
}

// Register creates a new account.
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := ac.users.Register(c.Request.Context(), req)
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
	case errors.Is(err, services.ErrUserStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "user accounts are not available"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register user"})
	default:
		c.JSON(http.StatusCreated, user)
	}
}

// Login authenticates credentials and returns a JWT.
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	auth, err := ac.users.Login(c.Request.Context(), req)
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
	case errors.Is(err, services.ErrUserStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "user accounts are not available"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
	default:
		c.JSON(http.StatusOK, auth)
	}
}
