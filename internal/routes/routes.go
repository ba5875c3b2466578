package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/merchantfeeadvocate/backend/internal/config"
	"github.com/merchantfeeadvocate/backend/internal/handlers"
	"github.com/merchantfeeadvocate/backend/internal/middleware"
	"github.com/merchantfeeadvocate/backend/internal/queue"
	"github.com/merchantfeeadvocate/backend/internal/services/enrollment"
	"github.com/merchantfeeadvocate/backend/internal/services/storage"
	"github.com/merchantfeeadvocate/backend/internal/session"
)

// RegisterRoutes wires all API routes
func RegisterRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, sessionStore session.Store, jobQueue *queue.Queue, fileStore *storage.FileStore, rateLimiter *middleware.RateLimiter) {
	enrollmentSvc := enrollment.NewService(db, jobQueue, cfg.DefaultCommissionRate)

	authHandler := handlers.NewAuthHandler(db)
	adminSessionHandler := handlers.NewAdminSessionHandler(cfg.Admin, sessionStore)
	adminHandler := handlers.NewAdminHandler(db)
	checkoutHandler := handlers.NewCheckoutHandler(enrollmentSvc)
	signatureHandler := handlers.NewSignatureHandler(enrollmentSvc)
	leadHandler := handlers.NewLeadHandler(db)
	dealHandler := handlers.NewDealHandler(db)
	revenueHandler := handlers.NewRevenueHandler(db)
	applicationHandler := handlers.NewApplicationHandler(db, jobQueue)
	uploadHandler := handlers.NewUploadHandler(fileStore)
	forumHandler := handlers.NewForumHandler(db)
	profileHandler := handlers.NewProfileHandler(db)

	// Public routes with tighter rate limiting
	public := router.Group("/api")
	public.Use(rateLimiter.AuthRateLimiterMiddleware())
	{
		public.POST("/checkout", checkoutHandler.Checkout)
		public.POST("/auth/signup", authHandler.Signup)
		public.POST("/auth/login", authHandler.Login)
		public.POST("/auth/refresh", authHandler.RefreshToken)
		public.POST("/admin/login", adminSessionHandler.Login)
	}

	// Partner routes (JWT authenticated)
	api := router.Group("/api")
	api.Use(rateLimiter.IPRateLimiterMiddleware())
	api.Use(middleware.AuthMiddleware())
	{
		api.GET("/auth/me", authHandler.Me)

		leads := api.Group("/leads")
		{
			leads.GET("", leadHandler.List)
			leads.POST("", leadHandler.Create)
			leads.GET("/:id", leadHandler.Get)
			leads.PUT("/:id", leadHandler.Update)
			leads.PATCH("/:id/status", leadHandler.UpdateStatus)
			leads.DELETE("/:id", leadHandler.Delete)
		}

		deals := api.Group("/deals")
		{
			deals.GET("", dealHandler.List)
			deals.POST("", dealHandler.Create)
			deals.GET("/:id", dealHandler.Get)
			deals.PUT("/:id", dealHandler.Update)
			deals.PATCH("/:id/stage", dealHandler.UpdateStage)
			deals.DELETE("/:id", dealHandler.Delete)
		}

		api.GET("/revenue/summary", revenueHandler.Summary)

		signatures := api.Group("/signatures")
		{
			signatures.GET("", signatureHandler.Progress)
			signatures.POST("/:document/sign", signatureHandler.Sign)
		}

		applications := api.Group("/applications")
		{
			applications.GET("", applicationHandler.List)
			applications.POST("", applicationHandler.Submit)
		}

		api.POST("/uploads", uploadHandler.Upload)

		forum := api.Group("/forum")
		{
			forum.GET("/posts", forumHandler.ListPosts)
			forum.POST("/posts", forumHandler.CreatePost)
			forum.GET("/posts/:slug", forumHandler.GetPost)
			forum.DELETE("/posts/:id", forumHandler.DeletePost)
			forum.POST("/posts/:slug/replies", forumHandler.CreateReply)
			forum.DELETE("/replies/:id", forumHandler.DeleteReply)
		}

		profile := api.Group("/profile")
		{
			profile.GET("", profileHandler.Get)
			profile.PUT("", profileHandler.Update)
		}
	}

	// Admin routes (server-verified session)
	admin := router.Group("/api/admin")
	admin.Use(rateLimiter.IPRateLimiterMiddleware())
	admin.Use(middleware.AdminSessionMiddleware(sessionStore))
	{
		admin.POST("/logout", adminSessionHandler.Logout)
		admin.GET("/overview", adminHandler.Overview)
		admin.GET("/partners", adminHandler.ListPartners)
		admin.GET("/partners/:id", adminHandler.GetPartner)
		admin.PATCH("/partners/:id", adminHandler.UpdatePartner)
		admin.GET("/applications", adminHandler.ListApplications)
		admin.PATCH("/applications/:id/status", adminHandler.UpdateApplicationStatus)
	}
}
