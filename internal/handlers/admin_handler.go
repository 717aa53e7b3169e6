package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/geevapp/geev/internal/middleware"
	"github.com/geevapp/geev/internal/services"
)

// AdminHandler handles privileged HTTP requests
type AdminHandler struct {
	adminService services.AdminService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(adminService services.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// InitializeRequest is the body for POST /admin/init
type InitializeRequest struct {
	FeeBps int64 `json:"feeBps"`
}

// Initialize handles POST /admin/init. The caller becomes the admin; the
// operation fails once an admin is already recorded.
func (h *AdminHandler) Initialize(c *gin.Context) {
	var request InitializeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.adminService.Initialize(c.Request.Context(), middleware.Actor(c), request.FeeBps); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"initialized": true})
}

// AddTokenRequest is the body for POST /admin/tokens
type AddTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// AddToken handles POST /admin/tokens
func (h *AdminHandler) AddToken(c *gin.Context) {
	var request AddTokenRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.adminService.AddToken(c.Request.Context(), middleware.Actor(c), request.Token); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"added": true})
}

// SetPausedRequest is the body for POST /admin/pause
type SetPausedRequest struct {
	Paused *bool `json:"paused" binding:"required"`
}

// SetPaused handles POST /admin/pause
func (h *AdminHandler) SetPaused(c *gin.Context) {
	var request SetPausedRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.adminService.SetPaused(c.Request.Context(), middleware.Actor(c), *request.Paused); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"paused": *request.Paused})
}

// WithdrawFeesRequest is the body for POST /admin/withdraw-fees
type WithdrawFeesRequest struct {
	Token string `json:"token" binding:"required"`
}

// WithdrawFees handles POST /admin/withdraw-fees
func (h *AdminHandler) WithdrawFees(c *gin.Context) {
	var request WithdrawFeesRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	amount, err := h.adminService.WithdrawFees(c.Request.Context(), middleware.Actor(c), request.Token)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"withdrawn": amount})
}

// AdminWithdrawRequest is the body for POST /admin/withdraw
type AdminWithdrawRequest struct {
	Token  string `json:"token" binding:"required"`
	Amount int64  `json:"amount" binding:"required"`
	To     string `json:"to" binding:"required"`
}

// AdminWithdraw handles POST /admin/withdraw
func (h *AdminHandler) AdminWithdraw(c *gin.Context) {
	var request AdminWithdrawRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.adminService.AdminWithdraw(c.Request.Context(), middleware.Actor(c), request.Token, request.Amount, request.To); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"withdrawn": request.Amount})
}
