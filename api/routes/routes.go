package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/geevapp/geev/internal/config"
	"github.com/geevapp/geev/internal/handlers"
	"github.com/geevapp/geev/internal/middleware"
)

// Handlers bundles the handlers wired into the router
type Handlers struct {
	Auth      *handlers.AuthHandler
	Giveaway  *handlers.GiveawayHandler
	MutualAid *handlers.MutualAidHandler
	Admin     *handlers.AdminHandler
	Profile   *handlers.ProfileHandler
	Event     *handlers.EventHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, h *Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	// Add middleware
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		// Health check
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
			})
		})

		// Auth routes
		auth := public.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
		}

		// Read-only routes
		public.GET("/giveaways", h.Giveaway.ListGiveaways)
		public.GET("/giveaways/:id", h.Giveaway.GetGiveaway)
		public.GET("/giveaways/:id/participants", h.Giveaway.ListParticipants)
		public.GET("/requests", h.MutualAid.ListRequests)
		public.GET("/requests/:id", h.MutualAid.GetRequest)
		public.GET("/profiles/:account", h.Profile.GetProfile)
		public.GET("/usernames/:username", h.Profile.ResolveUsername)
		public.GET("/events", h.Event.ListEvents)
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		// Giveaway routes
		giveaways := protected.Group("/giveaways")
		{
			giveaways.POST("", h.Giveaway.CreateGiveaway)
			giveaways.POST("/:id/enter", h.Giveaway.EnterGiveaway)
			giveaways.POST("/:id/pick-winner", h.Giveaway.PickWinner)
			giveaways.POST("/:id/distribute", h.Giveaway.DistributePrize)
		}

		// Mutual-aid routes
		requests := protected.Group("/requests")
		{
			requests.POST("", h.MutualAid.CreateRequest)
			requests.POST("/:id/donate", h.MutualAid.Donate)
			requests.POST("/:id/cancel", h.MutualAid.CancelRequest)
			requests.POST("/:id/refund", h.MutualAid.ClaimRefund)
			requests.POST("/:id/withdraw", h.MutualAid.WithdrawAid)
		}

		// Profile routes
		protected.PUT("/profiles", h.Profile.SetProfile)

		// Admin routes
		admin := protected.Group("/admin")
		{
			admin.POST("/init", h.Admin.Initialize)
			admin.POST("/tokens", h.Admin.AddToken)
			admin.POST("/pause", h.Admin.SetPaused)
			admin.POST("/withdraw-fees", h.Admin.WithdrawFees)
			admin.POST("/withdraw", h.Admin.AdminWithdraw)
		}
	}

	return router
}
