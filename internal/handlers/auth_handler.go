package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/geevapp/geev/internal/services"
)

// AuthHandler handles account onboarding and login
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RegisterRequest is the body for POST /auth/register
type RegisterRequest struct {
	Address  string `json:"address" binding:"required"`
	Passcode string `json:"passcode" binding:"required,min=6"`
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var request RegisterRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.authService.Register(c.Request.Context(), request.Address, request.Passcode)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, account)
}

// LoginRequest is the body for POST /auth/login
type LoginRequest struct {
	Address  string `json:"address" binding:"required"`
	Passcode string `json:"passcode" binding:"required"`
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var request LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.authService.Login(c.Request.Context(), request.Address, request.Passcode)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
