package main

import (
	"github.com/OmondiJoshua/GLOBAL-GTM/internal/config"
	"github.com/OmondiJoshua/GLOBAL-GTM/internal/middleware"
	"github.com/OmondiJoshua/GLOBAL-GTM/pkg/logger"
	"github.com/gin-gonic/gin"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, cfg *config.Config, svc *appServices) {
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.Use(middleware.CORS())

	loginLimiter := middleware.NewRateLimiter(cfg.RateLimit.LoginRPS, cfg.RateLimit.LoginBurst)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": "global-gtm"})
	})

	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/login", loginLimiter.Middleware(), svc.authHandler.Login)
			auth.POST("/refresh", svc.authHandler.Refresh)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired())
		{
			protected.GET("/auth/me", svc.authHandler.GetCurrentUser)
			protected.POST("/auth/logout", svc.authHandler.Logout)
			protected.POST("/auth/change-password", svc.authHandler.ChangePassword)

			// Reports (create/update/delete are manager-only)
			protected.GET("/reports", svc.reportHandler.List)
			protected.GET("/reports/:id", svc.reportHandler.GetByID)
			protected.POST("/reports", middleware.ManagerRequired(), svc.reportHandler.Create)
			protected.PUT("/reports/:id", middleware.ManagerRequired(), svc.reportHandler.Update)
			protected.DELETE("/reports/:id", middleware.ManagerRequired(), svc.reportHandler.Delete)

			// Entries
			protected.GET("/entries", svc.entryHandler.List)
			protected.GET("/entries/export", svc.entryHandler.Export)
			protected.GET("/entries/:id", svc.entryHandler.GetByID)
			protected.POST("/entries", svc.entryHandler.Create)
			protected.POST("/entries/bulk", svc.entryHandler.BulkCreate)
			protected.PUT("/entries/:id", svc.entryHandler.Update)

			// Users (manager only)
			users := protected.Group("/users", middleware.ManagerRequired())
			{
				users.GET("", svc.userHandler.List)
				users.GET("/agents", svc.userHandler.Agents)
				users.GET("/supervisors", svc.userHandler.Supervisors)
				users.POST("", svc.userHandler.Create)
				users.PUT("/:id", svc.userHandler.Update)
				users.DELETE("/:id", svc.userHandler.Deactivate)
			}

			// Dashboard (manager only)
			protected.GET("/dashboard/stats", middleware.ManagerRequired(), svc.dashboardHandler.GetStats)

			// Dropdown choices
			meta := protected.Group("/meta")
			{
				meta.GET("/counties", svc.metaHandler.Counties)
				meta.GET("/sublocations", svc.metaHandler.Sublocations)
				meta.GET("/service-types", svc.metaHandler.ServiceTypes)
				meta.GET("/priorities", svc.metaHandler.Priorities)
			}
		}
	}
}
