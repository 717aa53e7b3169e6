package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/geevapp/geev/internal/middleware"
	"github.com/geevapp/geev/internal/services"
)

// ProfileHandler handles the username/profile registry
type ProfileHandler struct {
	profileService services.ProfileService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

// SetProfileRequest is the body for PUT /profiles
type SetProfileRequest struct {
	Username   string `json:"username" binding:"required,min=3,max=32"`
	AvatarHash string `json:"avatarHash"`
}

// SetProfile handles PUT /profiles
func (h *ProfileHandler) SetProfile(c *gin.Context) {
	var request SetProfileRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.profileService.SetProfile(c.Request.Context(), middleware.Actor(c), request.Username, request.AvatarHash); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// GetProfile handles GET /profiles/:account
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profileService.GetProfile(c.Request.Context(), c.Param("account"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// ResolveUsername handles GET /usernames/:username
func (h *ProfileHandler) ResolveUsername(c *gin.Context) {
	account, err := h.profileService.ResolveUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"account": account})
}
