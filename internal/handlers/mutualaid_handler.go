package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/geevapp/geev/internal/middleware"
	"github.com/geevapp/geev/internal/services"
)

// MutualAidHandler handles mutual-aid HTTP requests
type MutualAidHandler struct {
	mutualAidService services.MutualAidService
}

// NewMutualAidHandler creates a new MutualAidHandler
func NewMutualAidHandler(mutualAidService services.MutualAidService) *MutualAidHandler {
	return &MutualAidHandler{
		mutualAidService: mutualAidService,
	}
}

// CreateRequestRequest is the body for POST /requests
type CreateRequestRequest struct {
	Token string `json:"token" binding:"required"`
	Goal  int64  `json:"goal" binding:"required"`
	Title string `json:"title" binding:"required,max=120"`
}

// CreateRequest handles POST /requests
func (h *MutualAidHandler) CreateRequest(c *gin.Context) {
	var request CreateRequestRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.mutualAidService.CreateRequest(c.Request.Context(), middleware.Actor(c), request.Token, request.Goal, request.Title)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// DonateRequest is the body for POST /requests/:id/donate
type DonateRequest struct {
	Amount int64 `json:"amount" binding:"required"`
}

// Donate handles POST /requests/:id/donate
func (h *MutualAidHandler) Donate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var request DonateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.mutualAidService.Donate(c.Request.Context(), middleware.Actor(c), id, request.Amount); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"donated": true})
}

// CancelRequest handles POST /requests/:id/cancel
func (h *MutualAidHandler) CancelRequest(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.mutualAidService.CancelRequest(c.Request.Context(), middleware.Actor(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": true})
}

// ClaimRefund handles POST /requests/:id/refund
func (h *MutualAidHandler) ClaimRefund(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	amount, err := h.mutualAidService.ClaimRefund(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"refunded": amount})
}

// WithdrawAidRequest is the body for POST /requests/:id/withdraw
type WithdrawAidRequest struct {
	Recipient string `json:"recipient" binding:"required"`
}

// WithdrawAid handles POST /requests/:id/withdraw
func (h *MutualAidHandler) WithdrawAid(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var request WithdrawAidRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.mutualAidService.WithdrawAid(c.Request.Context(), middleware.Actor(c), id, request.Recipient); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"withdrawn": true})
}

// GetRequest handles GET /requests/:id
func (h *MutualAidHandler) GetRequest(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	request, err := h.mutualAidService.GetRequest(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

// ListRequests handles GET /requests
func (h *MutualAidHandler) ListRequests(c *gin.Context) {
	page, limit := pagination(c)
	requests, err := h.mutualAidService.ListRequests(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}
